package pdf_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/brdoc/internal/parser/pdf"
)

// buildPDF writes a minimal single-font PDF with one content stream per page.
func buildPDF(pages ...string) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 pages, 3 font, then page/content pairs
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, content := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestNewExtractor(t *testing.T) {
	require.NotNil(t, pdf.NewExtractor())
	require.NotNil(t, pdf.NewExtractor(pdf.WithMaxPages(1)))
}

func TestExtractBytes(t *testing.T) {
	doc := buildPDF(
		"BT /F1 12 Tf 72 720 Td (Pagador: Ana) Tj 0 -14 Td (CPF 529.982.247-25) Tj ET",
		"BT /F1 12 Tf 72 720 Td [(23793.38128 ) -250 (60007.591542)] TJ ET",
	)

	text, err := pdf.NewExtractor().ExtractBytes(t.Context(), doc)
	require.NoError(t, err)
	assert.Contains(t, text, "CPF 529.982.247-25")
	assert.Contains(t, text, "23793.38128 60007.591542")
}

func TestExtract_MaxPages(t *testing.T) {
	doc := buildPDF(
		"BT /F1 12 Tf 72 720 Td (first) Tj ET",
		"BT /F1 12 Tf 72 720 Td (second) Tj ET",
	)

	text, err := pdf.NewExtractor(pdf.WithMaxPages(1)).ExtractBytes(t.Context(), doc)
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF("BT (CNPJ 23.106.535/0001-47) Tj ET"), 0o644))

	text, err := pdf.NewExtractor().ExtractFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "CNPJ 23.106.535/0001-47", text)

	_, err = pdf.NewExtractor().ExtractFile(t.Context(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestExtract_NotAPDF(t *testing.T) {
	_, err := pdf.NewExtractor().ExtractBytes(t.Context(), []byte("plain text"))
	assert.Error(t, err)
}

func TestContentText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", "BT (hello) Tj ET", "hello"},
		{"two lines", "BT (a) Tj T* (b) Tj ET", "a\nb"},
		{"array", "[(52) 10 (9.982) -20 (.247-25)] TJ", "529.982.247-25"},
		{"escapes", `(a\(b\)c\\d) Tj`, `a(b)c\d`},
		{"octal", `(\101\102) Tj`, "AB"},
		{"nested parens", "(f(x)) Tj", "f(x)"},
		{"hex", "<48656C6C6F> Tj", "Hello"},
		{"odd hex", "<414> Tj", "A@"},
		{"dictionary skipped", "/Span <</MCID 0>> BDC (x) Tj EMC", "x"},
		{"comment", "% (ignored)\n(kept) Tj", "kept"},
		{"empty", "q 1 0 0 1 0 0 cm Q", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdf.ContentText([]byte(tt.content)))
		})
	}
}
