package ident

import (
	"strings"
	"testing"
)

// validXMLNameStart reports whether the identifier starts with a letter, as
// XML names must.
func validXMLNameStart(id string) bool {
	if id == "" {
		return false
	}
	c := id[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// TestNewUnique verifies fresh identifiers differ and are XML-name-safe.
func TestNewUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New()
		if !validXMLNameStart(id) {
			t.Fatalf("identifier %q does not start with a letter", id)
		}
		if strings.ContainsAny(id, " /?#%") {
			t.Fatalf("identifier %q is not URL-safe", id)
		}
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
}

// TestFromSeedDeterministic verifies the same seed always yields the same
// identifier and different seeds diverge.
func TestFromSeedDeterministic(t *testing.T) {
	a := FromSeed("corpus/doc.xml#1")
	b := FromSeed("corpus/doc.xml#1")
	c := FromSeed("corpus/doc.xml#2")

	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
	if a == c {
		t.Errorf("different seeds produced the same identifier %q", a)
	}
	if !validXMLNameStart(a) {
		t.Errorf("identifier %q does not start with a letter", a)
	}
}

// TestIdentifierLength verifies identifiers are short and fixed-length.
func TestIdentifierLength(t *testing.T) {
	if got := len(FromSeed("x")); got != 13 {
		t.Errorf("seeded identifier length = %d, want 13", got)
	}
	if got := len(New()); got != 13 {
		t.Errorf("random identifier length = %d, want 13", got)
	}
}
