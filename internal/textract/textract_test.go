package textract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []byte
		expect string
	}{
		{
			name:   "utf-8",
			input:  []byte("Senior Go engineer, café team"),
			expect: "Senior Go engineer, café team",
		},
		{
			name:   "utf-8 with bom",
			input:  append([]byte{0xEF, 0xBB, 0xBF}, []byte("Go developer")...),
			expect: "Go developer",
		},
		{
			name:   "utf-16 little endian",
			input:  []byte{0xFF, 0xFE, 'G', 0, 'o', 0, ' ', 0, 'd', 0, 'e', 0, 'v', 0},
			expect: "Go dev",
		},
		{
			name:   "utf-16 big endian",
			input:  []byte{0xFE, 0xFF, 0, 'S', 0, 'Q', 0, 'L'},
			expect: "SQL",
		},
		{
			name:   "latin-1",
			input:  []byte{'R', 0xE9, 's', 'u', 'm', 0xE9},
			expect: "Résumé",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode("cv.txt", tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDecodeHTML(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Job</title><style>p{}</style></head><body>
<h1>Backend   Engineer</h1>
<script>var x = 1;</script>
<ul><li>Design APIs in Go</li><li>Run Kubernetes</li></ul>
</body></html>`

	got, err := Decode("jd.HTML", []byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expect := "Backend Engineer\nDesign APIs in Go\nRun Kubernetes"
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}

func TestDecodeDocx(t *testing.T) {
	t.Parallel()

	got, err := Decode("cv.docx", buildDocx(t, "Experienced in Python and Docker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Experienced in Python and Docker") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		input  []byte
		expect error
	}{
		{"unsupported extension", "cv.exe", []byte("x"), ErrUnsupported},
		{"no extension", "cv", []byte("x"), ErrUnsupported},
		{"broken pdf", "cv.pdf", []byte("not a pdf"), ErrDecode},
		{"binary doc", "cv.doc", []byte{0xD0, 0xCF, 0x11, 0xE0}, ErrDecode},
		{"blank text", "cv.txt", []byte("  \n\t "), ErrEmpty},
		{"too large", "cv.txt", bytes.Repeat([]byte("a"), MaxBytes+1), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.file, tt.input)
			if !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	got := strings.Join(Supported(), ",")
	for _, ext := range []string{".pdf", ".docx", ".doc", ".txt", ".html"} {
		if !strings.Contains(got, ext) {
			t.Fatalf("expected %s in %s", ext, got)
		}
	}
}

func buildDocx(t *testing.T, text string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body>
</w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
