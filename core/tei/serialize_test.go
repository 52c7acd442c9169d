package tei

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

const transcriptionSample = `<?xml version="1.0"?>
<tei:TEI xmlns:tei="http://www.tei-c.org/ns/1.0">
  <tei:text>
    <tei:body>
      <tei:div type="transcription">
        <u>so what I was trying to say before you interrupted me was that the recording started late</u>
        <tei:note/>
      </tei:div>
    </tei:body>
  </tei:text>
</tei:TEI>`

// TestSerializeDeclaration verifies the output leads with a UTF-8 XML
// declaration.
func TestSerializeDeclaration(t *testing.T) {
	doc := mustParse(t, `<root/>`)
	out := Serialize(doc)
	if !bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")) {
		t.Errorf("output missing declaration: %q", out[:min(len(out), 60)])
	}
}

// TestSerializeEscapesContent verifies text and attribute escaping.
func TestSerializeEscapesContent(t *testing.T) {
	doc := mustParse(t, `<root attr="a &quot;b&quot;">x &amp; y &lt; z</root>`)
	out := string(Serialize(doc))
	if !strings.Contains(out, "x &amp; y &lt; z") {
		t.Errorf("text not escaped: %q", out)
	}
	if !strings.Contains(out, `attr="a &quot;b&quot;"`) {
		t.Errorf("attribute not escaped: %q", out)
	}
}

// TestSerializePrettyPrintsStructure verifies element-only content is
// indented per depth.
func TestSerializePrettyPrintsStructure(t *testing.T) {
	doc := mustParse(t, `<a><b><c/></b></a>`)
	out := string(Serialize(doc))
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<a>\n  <b>\n    <c/>\n  </b>\n</a>\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

// TestSerializeInlineTextPreserved verifies text-bearing elements render
// their content verbatim, keeping wrapped paragraph whitespace intact.
func TestSerializeInlineTextPreserved(t *testing.T) {
	doc := mustParse(t, transcriptionSample)
	Format(doc, DefaultOptions())
	out := string(Serialize(doc))

	if !strings.Contains(out, "\n          so what I was trying") {
		t.Errorf("wrapped text indentation lost:\n%s", out)
	}
	if !strings.Contains(out, "\n        </u>") {
		t.Errorf("closing-line indent lost:\n%s", out)
	}
}

// TestSerializeEmitsNamespaceForRewrittenTag verifies an element moved into
// the TEI namespace is declared in the output.
func TestSerializeEmitsNamespaceForRewrittenTag(t *testing.T) {
	doc := mustParse(t, transcriptionSample)
	Format(doc, DefaultOptions())
	out := string(Serialize(doc))

	if !strings.Contains(out, `<u xmlns="`+Namespace+`">`) {
		t.Errorf("rewritten u missing namespace declaration:\n%s", out)
	}
	if strings.Contains(out, "<tei:note") {
		t.Error("empty note should have been pruned before serialization")
	}
}

// TestPipelineIdempotent verifies running parse, format and serialize twice
// produces byte-identical output.
func TestPipelineIdempotent(t *testing.T) {
	doc := mustParse(t, transcriptionSample)
	Format(doc, DefaultOptions())
	first := Serialize(doc)

	doc2, err := Parse(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("reparsing output failed: %v", err)
	}
	Format(doc2, DefaultOptions())
	second := Serialize(doc2)

	if !bytes.Equal(first, second) {
		t.Errorf("pipeline not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// TestWriteFile verifies the destination is created and holds the
// serialized bytes.
func TestWriteFile(t *testing.T) {
	doc := mustParse(t, `<a><b/></a>`)
	path := filepath.Join(t.TempDir(), "out.xml")

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}
	if !bytes.Equal(data, Serialize(doc)) {
		t.Error("file contents differ from Serialize output")
	}
}

// TestWriteFileCompressed verifies a .xz destination round-trips through
// decompression.
func TestWriteFileCompressed(t *testing.T) {
	doc := mustParse(t, `<a><b/></a>`)
	path := filepath.Join(t.TempDir(), "out.xml.xz")

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output failed: %v", err)
	}
	defer f.Close()
	r, err := xz.NewReader(f)
	if err != nil {
		t.Fatalf("xz reader failed: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decompressing failed: %v", err)
	}
	if !bytes.Equal(data, Serialize(doc)) {
		t.Error("decompressed contents differ from Serialize output")
	}
}

// TestWriteFileBadDestination verifies I/O failures propagate to the
// caller.
func TestWriteFileBadDestination(t *testing.T) {
	doc := mustParse(t, `<a/>`)
	err := WriteFile(doc, filepath.Join(t.TempDir(), "missing", "out.xml"))
	if err == nil {
		t.Fatal("expected error for unwritable destination")
	}
}
