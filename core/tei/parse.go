package tei

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/corpustools/teitidy/core/errors"
)

// ParseFile parses the TEI document at path and returns the document node.
// Whitespace-only text nodes are discarded so source indentation never
// counts as element text.
func ParseFile(path string) (*xmlquery.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, errors.NewParse("TEI", path, err.Error())
	}
	return doc, nil
}

// Parse parses a TEI document from r, discarding whitespace-only text
// nodes.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing TEI")
	}
	stripBlankText(doc)
	return doc, nil
}

// stripBlankText removes whitespace-only text nodes from the whole tree.
func stripBlankText(n *xmlquery.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case xmlquery.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				detach(c)
			}
		case xmlquery.ElementNode:
			stripBlankText(c)
		}
		c = next
	}
}
