package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/inkfold/cvpress/internal/models"
)

// pdfProvider extracts page text from PDF documents, one page per line group.
type pdfProvider struct{}

func (pdfProvider) Name() string    { return "pdf" }
func (pdfProvider) Available() bool { return true }

func (pdfProvider) Handles(kind models.MediaKind) bool {
	return kind == models.KindPDF
}

func (pdfProvider) Extract(doc models.RawDocument) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 0; i < numPages; i++ {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i+1, err)
		}
		buf.WriteString(text)
		if i < numPages-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}
