package docload

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

// PDFLoader extracts plain text from an uploaded PDF report.
// Implements analysis.Loader.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader { return &PDFLoader{} }

// Load verifies the file, extracts text page by page, and normalizes
// whitespace. Any failure is a DocumentError for the caller to surface as 4xx.
func (l *PDFLoader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &analysis.DocumentError{Path: path, Reason: "file not found", Err: err}
	}
	if info.Size() == 0 {
		return "", &analysis.DocumentError{Path: path, Reason: "file is empty"}
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &analysis.DocumentError{Path: path, Reason: "not a readable PDF", Err: err}
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip pages that fail extraction; the document may still be usable
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	out := collapseWhitespace(b.String())
	if out == "" {
		return "", &analysis.DocumentError{Path: path, Reason: "no text could be extracted"}
	}
	return out, nil
}

// collapseWhitespace folds runs of whitespace into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
