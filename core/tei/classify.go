package tei

import (
	"iter"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/corpustools/teitidy/internal/logging"
)

// Category identifies the role of a division child element.
type Category string

const (
	CategoryUtterance Category = "utterance"
	CategoryNote      Category = "note"
	CategoryPageBreak Category = "page-break"
	CategorySegment   Category = "segment"
	CategoryParagraph Category = "paragraph"
	CategorySpan      Category = "span"
	CategoryTitle     Category = "title"
	CategoryHeading   Category = "heading"
	CategoryAuthor    Category = "author"

	// CategoryUnrecognized marks a child whose tag matches no known
	// category or legacy alias. The element is left untouched.
	CategoryUnrecognized Category = "unrecognized"
)

// tagRule maps a local tag name to its category. alias records whether the
// unnamespaced form of the tag is a recognized legacy spelling that gets
// rewritten into the TEI namespace.
type tagRule struct {
	category Category
	alias    bool
}

// tagRules is the single dispatch table for classification. note, seg and
// author are only recognized in their namespaced form.
var tagRules = map[string]tagRule{
	"u":      {CategoryUtterance, true},
	"note":   {CategoryNote, false},
	"pb":     {CategoryPageBreak, true},
	"seg":    {CategorySegment, false},
	"p":      {CategoryParagraph, true},
	"span":   {CategorySpan, true},
	"title":  {CategoryTitle, true},
	"head":   {CategoryHeading, true},
	"author": {CategoryAuthor, false},
}

var divSelector = xpath.MustCompile(
	"//*[local-name()='div' and namespace-uri()='" + Namespace + "']")

// Divisions returns every TEI div element under root in document order.
// Divisions may nest; each nested div appears in its own right.
func Divisions(root *xmlquery.Node) []*xmlquery.Node {
	return xmlquery.QuerySelectorAll(root, divSelector)
}

// Classify yields a (category, element) pair for each direct child of a
// division, in document order. Children carrying a recognized legacy alias
// are rewritten into the TEI namespace as a side effect; already-canonical
// children pass through unchanged, so repeated classification is
// idempotent. Unknown tags yield CategoryUnrecognized with a logged warning
// and keep their original tag.
//
// The sequence is finite and re-walks the division on every consumption.
func Classify(div *xmlquery.Node) iter.Seq2[Category, *xmlquery.Node] {
	return func(yield func(Category, *xmlquery.Node) bool) {
		for _, child := range childElements(div) {
			if !yield(classifyElement(child), child) {
				return
			}
		}
	}
}

func classifyElement(n *xmlquery.Node) Category {
	if rule, ok := tagRules[n.Data]; ok {
		if n.NamespaceURI == Namespace {
			return rule.category
		}
		if n.NamespaceURI == "" && rule.alias {
			n.NamespaceURI = Namespace
			return rule.category
		}
	}
	logging.Warn("unrecognized element in division",
		"tag", n.Data, "namespace", n.NamespaceURI)
	return CategoryUnrecognized
}
