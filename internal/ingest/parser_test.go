package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	path := writeFile(t, "answers.csv", "base_word,text\nkot,mysz\nkot,\n,orphan\ndom,\"rodzina, ciepło\"\n")
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 responses, got %+v", got)
	}
	if got[0].BaseWord != "kot" || *got[0].Text != "mysz" {
		t.Fatalf("unexpected first response %+v", got[0])
	}
	if got[1].Text != nil {
		t.Fatalf("expected empty cell to be a missing answer, got %q", *got[1].Text)
	}
	if *got[2].Text != "rodzina, ciepło" {
		t.Fatalf("unexpected quoted answer %q", *got[2].Text)
	}
}

func TestParseCSVSemicolonAndBOM(t *testing.T) {
	path := writeFile(t, "answers.csv", "\xef\xbb\xbfAnswer;Base_Word\nżółw;woda\n")
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 1 || got[0].BaseWord != "woda" || *got[0].Text != "żółw" {
		t.Fatalf("unexpected responses %+v", got)
	}
}

func TestParseCSVMissingColumns(t *testing.T) {
	path := writeFile(t, "answers.csv", "prompt,reply\nkot,mysz\n")
	if _, err := ParseFile(path); err == nil {
		t.Fatal("expected header error")
	}
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, "answers.json", `[{"base_word":"kot","text":"mysz"},{"base_word":"kot","text":null},{"base_word":" ","text":"x"}]`)
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 2 || got[1].Text != nil {
		t.Fatalf("unexpected responses %+v", got)
	}
}

func TestParseDOCXTranscript(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Ankieta nr 7</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>kot: </w:t></w:r><w:r><w:t>mysz</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>dom:</w:t></w:r></w:p>`+
		`</w:body></w:document>`)
	path := filepath.Join(t.TempDir(), "sheet.docx")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %+v", got)
	}
	if got[0].BaseWord != "kot" || got[0].Text == nil || *got[0].Text != "mysz" {
		t.Fatalf("unexpected first response %+v", got[0])
	}
	if got[1].BaseWord != "dom" || got[1].Text != nil {
		t.Fatalf("expected missing answer for dom, got %+v", got[1])
	}
}

func TestParseFileUnsupported(t *testing.T) {
	path := writeFile(t, "sample.txt", "hello")
	_, err := ParseFile(path)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return b.Bytes()
}
