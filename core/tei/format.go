package tei

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Options controls a formatting run.
type Options struct {
	// Indent is the starting indentation column for wrapped text.
	Indent int
	// PruneEmpty deletes elements left with no text and no children
	// after normalization.
	PruneEmpty bool
}

// DefaultOptions returns the formatter defaults: indent 8, pruning enabled.
func DefaultOptions() Options {
	return Options{Indent: 8, PruneEmpty: true}
}

// Stats summarizes a formatting run.
type Stats struct {
	// Divisions is the number of TEI divs walked.
	Divisions int
	// Formatted is the number of classified division children rewritten.
	Formatted int
	// Unrecognized is the number of division children whose tag matched
	// no known category or alias; those are left untouched.
	Unrecognized int
}

// Format rewrites the document tree under root in place. For every TEI div,
// each classified direct child is normalized: attributes canonicalized,
// text runs wrapped, and, when pruning is enabled, elements left with no
// text and no children detached. Unrecognized children are skipped.
func Format(root *xmlquery.Node, opts Options) Stats {
	var stats Stats
	for _, div := range Divisions(root) {
		stats.Divisions++
		for category, elem := range Classify(div) {
			if category == CategoryUnrecognized {
				stats.Unrecognized++
				continue
			}
			stats.Formatted++
			formatElement(elem, opts.Indent, opts.PruneEmpty)
		}
	}
	return stats
}

// formatElement is the depth-first in-place rewrite of one element and its
// subtree. Children are materialized before recursion so detachment never
// happens under a live sibling walk. Pruning is evaluated against the
// element's own direct text and children only; the removal of a grandchild
// never propagates upward by itself.
func formatElement(n *xmlquery.Node, indent int, prune bool) {
	CanonicalizeAttrs(n)
	if text := elementText(n); strings.TrimSpace(text) != "" {
		setElementText(n, wrapParagraph(text, indent+2))
	}
	for _, child := range childElements(n) {
		formatElement(child, indent+2, prune)
	}
	if prune && len(childElements(n)) == 0 && strings.TrimSpace(directText(n)) == "" {
		detach(n)
	}
}
