// Package tei normalizes TEI transcription documents.
//
// The package operates on the xmlquery node tree: it classifies the direct
// children of every TEI div, rewrites legacy unnamespaced tag aliases to
// their canonical namespaced form, reorders attributes into a canonical
// priority order, reflows text runs into fixed-width indented paragraphs,
// prunes elements left empty after normalization, and serializes the
// rewritten tree with an XML declaration.
//
// The tree is owned by the caller and is mutated in place; nothing in this
// package retains it after a call returns.
package tei

import (
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	// Namespace is the TEI P5 namespace.
	Namespace = "http://www.tei-c.org/ns/1.0"
	// XMLNamespace is the namespace bound to the xml: prefix, used by
	// attributes such as xml:id.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// elementText returns the leading text of an element: the concatenated data
// of text nodes that precede the first child element.
func elementText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			break
		}
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// directText returns all text held directly by an element, including text
// between and after child elements.
func directText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// setElementText replaces the element's leading text. Existing text nodes
// before the first child element are removed; an empty replacement leaves
// the element with no leading text.
func setElementText(n *xmlquery.Node, text string) {
	for c := n.FirstChild; c != nil && c.Type != xmlquery.ElementNode; {
		next := c.NextSibling
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			detach(c)
		}
		c = next
	}
	if text == "" {
		return
	}
	t := &xmlquery.Node{Type: xmlquery.TextNode, Data: text, Parent: n}
	t.NextSibling = n.FirstChild
	if n.FirstChild != nil {
		n.FirstChild.PrevSibling = t
	} else {
		n.LastChild = t
	}
	n.FirstChild = t
}

// childElements returns a materialized snapshot of the direct child
// elements of n in document order. Callers that detach nodes must iterate
// the snapshot, never the live sibling chain.
func childElements(n *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// detach removes n from its parent's child list. Detaching a node with no
// parent (the document root) is a no-op.
func detach(n *xmlquery.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	if p.FirstChild == n {
		p.FirstChild = n.NextSibling
	}
	if p.LastChild == n {
		p.LastChild = n.PrevSibling
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent = nil
	n.PrevSibling = nil
	n.NextSibling = nil
}

// Attr returns the value of the named attribute, or "" when absent.
// Prefixed names such as "xml:id" match their namespaced form.
func Attr(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if attrName(a) == name {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets the named attribute, appending it when absent.
func SetAttr(n *xmlquery.Node, name, value string) {
	for i, a := range n.Attr {
		if attrName(a) == name {
			n.Attr[i].Value = value
			return
		}
	}
	var qname xml.Name
	if prefix, local, ok := strings.Cut(name, ":"); ok {
		qname = xml.Name{Space: prefix, Local: local}
	} else {
		qname = xml.Name{Local: name}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{Name: qname, Value: value})
}
