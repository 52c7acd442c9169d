package tei

import "strings"

// wrapColumn is the accumulated line length past which a line is flushed.
const wrapColumn = 60

// wrapParagraph reflows text into soft-wrapped lines. Embedded newlines and
// whitespace runs are collapsed, words are greedily packed into lines
// flushed once their accumulated length exceeds wrapColumn, and each
// flushed line is prefixed with indent spaces. The closing line is indented
// two columns less than interior lines. Words are never dropped or
// reordered.
//
// Empty or all-whitespace input yields the empty string, so blank text
// counts as "no text" for pruning purposes.
func wrapParagraph(text string, indent int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pad)
	row := ""
	for _, word := range words {
		if len(row) > wrapColumn {
			b.WriteString(strings.TrimSpace(row))
			b.WriteString("\n")
			b.WriteString(pad)
			row = word
		} else {
			row += " " + word
		}
	}
	if strings.TrimSpace(row) != "" {
		b.WriteString(strings.TrimSpace(row))
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", max(indent-2, 0)))
	}
	return b.String()
}
