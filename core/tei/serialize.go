package tei

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ulikunitz/xz"

	"github.com/corpustools/teitidy/core/encoding"
	"github.com/corpustools/teitidy/core/errors"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Serialize renders the document as UTF-8 bytes with an XML declaration.
// Elements holding only element children are pretty-printed with two-space
// indentation per depth; elements holding text are rendered inline so the
// wrapped paragraph whitespace survives verbatim.
func Serialize(root *xmlquery.Node) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	renderNode(&buf, root, 0, "")
	return buf.Bytes()
}

// WriteFile serializes root and writes it to path, creating or truncating
// the destination. A path ending in ".xz" is xz-compressed. The file handle
// is closed on every exit path; I/O failures propagate to the caller.
func WriteFile(root *xmlquery.Node, path string) error {
	data := Serialize(root)
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	var w io.Writer = f
	var xw *xz.Writer
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xw, err = xz.NewWriter(f)
		if err != nil {
			f.Close()
			return errors.NewIO("compress", path, err)
		}
		w = xw
	}
	if _, err := w.Write(data); err != nil {
		f.Close()
		return errors.NewIO("write", path, err)
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			f.Close()
			return errors.NewIO("compress", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return errors.NewIO("close", path, err)
	}
	return nil
}

// renderNode writes one node starting at its own indentation and ending
// without a trailing newline. inherited is the default namespace in scope.
func renderNode(w *bytes.Buffer, n *xmlquery.Node, depth int, inherited string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			// The declaration is emitted by Serialize; blank text
			// between top-level nodes is dropped.
			if c.Type == xmlquery.ElementNode || c.Type == xmlquery.CommentNode {
				renderNode(w, c, depth, inherited)
				w.WriteString("\n")
			}
		}

	case xmlquery.ElementNode:
		writeIndent(w, depth)
		ns := openTag(w, n, inherited)
		if n.FirstChild == nil {
			w.WriteString("/>")
			return
		}
		hasElem, hasText := contentKinds(n)
		w.WriteString(">")
		if hasText || !hasElem {
			renderInlineChildren(w, n, ns)
		} else {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xmlquery.ElementNode || c.Type == xmlquery.CommentNode {
					w.WriteString("\n")
					renderNode(w, c, depth+1, ns)
				}
			}
			w.WriteString("\n")
			writeIndent(w, depth)
		}
		closeTag(w, n)

	case xmlquery.CommentNode:
		writeIndent(w, depth)
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")
	}
}

// renderInlineChildren writes mixed or text-only content without inserting
// any whitespace of its own, preserving text verbatim apart from escaping.
func renderInlineChildren(w *bytes.Buffer, n *xmlquery.Node, inherited string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode:
			w.WriteString(encoding.EscapeXMLText(c.Data))
		case xmlquery.CharDataNode:
			w.WriteString("<![CDATA[")
			w.WriteString(c.Data)
			w.WriteString("]]>")
		case xmlquery.ElementNode:
			ns := openTag(w, c, inherited)
			if c.FirstChild == nil {
				w.WriteString("/>")
				continue
			}
			w.WriteString(">")
			renderInlineChildren(w, c, ns)
			closeTag(w, c)
		case xmlquery.CommentNode:
			w.WriteString("<!--")
			w.WriteString(c.Data)
			w.WriteString("-->")
		}
	}
}

// openTag writes "<name" plus attributes. Default-namespace declarations
// are lifted out of the attribute list and re-emitted last, so an
// unprefixed element whose namespace differs from the inherited default is
// always declared exactly once. The tag is left open; the effective default
// namespace for children is returned.
func openTag(w *bytes.Buffer, n *xmlquery.Node, inherited string) string {
	w.WriteString("<")
	w.WriteString(tagName(n))

	ns := inherited
	for _, a := range n.Attr {
		if a.Name.Space == "" && (a.Name.Local == "xmlns" || a.Name.Local == "") {
			ns = a.Value
			continue
		}
		w.WriteString(" ")
		w.WriteString(attrName(a))
		w.WriteString("=\"")
		w.WriteString(encoding.EscapeXMLAttr(a.Value))
		w.WriteString("\"")
	}
	if n.Prefix == "" && n.NamespaceURI != ns {
		ns = n.NamespaceURI
	}
	if ns != inherited {
		w.WriteString(` xmlns="`)
		w.WriteString(encoding.EscapeXMLAttr(ns))
		w.WriteString(`"`)
	}
	return ns
}

func closeTag(w *bytes.Buffer, n *xmlquery.Node) {
	w.WriteString("</")
	w.WriteString(tagName(n))
	w.WriteString(">")
}

func tagName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// contentKinds reports whether n holds element children and non-blank text.
func contentKinds(n *xmlquery.Node) (hasElem, hasText bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			hasElem = true
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				hasText = true
			}
		}
	}
	return hasElem, hasText
}

func writeIndent(w *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}
