package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"wordassoc/internal/analysis"
)

var ErrUnsupported = errors.New("unsupported file type")

// ParseFile reads survey answers from a .csv, .json, .docx or .pdf file.
//
// CSV files need a header with base_word and text columns; JSON files hold an
// array of {"base_word", "text"} objects. DOCX and PDF files are transcripts
// of paper questionnaires with one "base word: answer" pair per line.
func ParseFile(path string) ([]analysis.RawResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return parseCSV(raw)
	case ".json":
		return parseJSON(raw)
	case ".docx":
		text, err := parseDOCX(raw)
		if err != nil {
			return nil, err
		}
		return parseTranscript(text), nil
	case ".pdf":
		text, err := parsePDF(path)
		if err != nil {
			return nil, err
		}
		return parseTranscript(text), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

func parseCSV(raw []byte) ([]analysis.RawResponse, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = sniffDelimiter(raw)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	baseCol, textCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "base_word", "base", "word":
			baseCol = i
		case "text", "answer", "response":
			textCol = i
		}
	}
	if baseCol < 0 || textCol < 0 {
		return nil, fmt.Errorf("csv header must name base_word and text columns, got %v", header)
	}

	var out []analysis.RawResponse
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if baseCol >= len(rec) {
			continue
		}
		resp := analysis.RawResponse{BaseWord: strings.TrimSpace(rec[baseCol])}
		if resp.BaseWord == "" {
			continue
		}
		if textCol < len(rec) && rec[textCol] != "" {
			text := rec[textCol]
			resp.Text = &text
		}
		out = append(out, resp)
	}
	return out, nil
}

func sniffDelimiter(raw []byte) rune {
	firstLine, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func parseJSON(raw []byte) ([]analysis.RawResponse, error) {
	var in []analysis.RawResponse
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode json responses: %w", err)
	}
	out := in[:0]
	for _, r := range in {
		r.BaseWord = strings.TrimSpace(r.BaseWord)
		if r.BaseWord != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// parseTranscript reads "base word: answer" lines. Lines without a separator
// are headings or notes and are skipped; an empty answer is a missing one.
func parseTranscript(text string) []analysis.RawResponse {
	var out []analysis.RawResponse
	for _, line := range strings.Split(normalizeWhitespace(text), "\n") {
		base, answer, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		base = strings.TrimSpace(base)
		if base == "" {
			continue
		}
		resp := analysis.RawResponse{BaseWord: base}
		if answer = strings.TrimSpace(answer); answer != "" {
			resp.Text = &answer
		}
		out = append(out, resp)
	}
	return out
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", fmt.Errorf("open document.xml: %w", openErr)
			}
			defer rc.Close()
			xmlData, err = io.ReadAll(rc)
			if err != nil {
				return "", fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
			if t.Name.Local == "p" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.WriteString(string(t))
			}
		}
	}
	return b.String(), nil
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, rowErr := p.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
