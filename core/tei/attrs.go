package tei

import (
	"sort"

	"github.com/antchfx/xmlquery"
)

// attrPriority is the canonical leading attribute order. Attributes not
// listed here follow, sorted lexicographically by rendered name.
var attrPriority = []string{"xml:id", "type", "subtype"}

// CanonicalizeAttrs reorders the attributes of n so that xml:id, type and
// subtype appear first in that fixed order, followed by the remaining
// attributes in lexicographic order. Values are never altered. An element
// with zero attributes is returned unchanged. Idempotent.
func CanonicalizeAttrs(n *xmlquery.Node) {
	if len(n.Attr) == 0 {
		return
	}
	ordered := make([]xmlquery.Attr, 0, len(n.Attr))
	taken := make([]bool, len(n.Attr))
	for _, want := range attrPriority {
		for i, a := range n.Attr {
			if !taken[i] && attrName(a) == want {
				ordered = append(ordered, a)
				taken[i] = true
			}
		}
	}
	rest := make([]xmlquery.Attr, 0, len(n.Attr)-len(ordered))
	for i, a := range n.Attr {
		if !taken[i] {
			rest = append(rest, a)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return attrName(rest[i]) < attrName(rest[j])
	})
	n.Attr = append(ordered, rest...)
}

// attrName renders an attribute name with its prefix. The XML namespace URI
// is normalized back to the xml: prefix so xml:id sorts and matches
// consistently regardless of how the parser resolved it.
func attrName(a xmlquery.Attr) string {
	switch a.Name.Space {
	case "":
		return a.Name.Local
	case XMLNamespace:
		return "xml:" + a.Name.Local
	default:
		return a.Name.Space + ":" + a.Name.Local
	}
}
