package encoding

import "testing"

// TestEscapeXMLText verifies the basic entities are escaped in text
// content.
func TestEscapeXMLText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "a & b", "a &amp; b"},
		{"angle brackets", "<tag>", "&lt;tag&gt;"},
		{"quotes untouched", `say "hi"`, `say "hi"`},
		{"whitespace untouched", "\n  indented\n", "\n  indented\n"},
		{"plain", "nothing special", "nothing special"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeXMLText(tt.in); got != tt.want {
				t.Errorf("EscapeXMLText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestEscapeXMLAttr verifies quotes are escaped in attribute values on top
// of the basic entities.
func TestEscapeXMLAttr(t *testing.T) {
	got := EscapeXMLAttr(`a "b" & <c>`)
	want := "a &quot;b&quot; &amp; &lt;c&gt;"
	if got != want {
		t.Errorf("EscapeXMLAttr = %q, want %q", got, want)
	}
}

// TestEscapeXML verifies the standard-library escaping path.
func TestEscapeXML(t *testing.T) {
	got := EscapeXML("a < b")
	if got != "a &lt; b" {
		t.Errorf("EscapeXML = %q, want %q", got, "a &lt; b")
	}
}
