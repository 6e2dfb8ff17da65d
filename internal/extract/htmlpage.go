package extract

import (
	"bytes"
	"fmt"

	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/scrape"
)

// htmlPageProvider extracts visible text from an uploaded HTML document with
// the same cleaning rules the shared-page scraper applies to fetched pages.
type htmlPageProvider struct{}

func (htmlPageProvider) Name() string { return "html" }

func (htmlPageProvider) Available() bool { return true }

func (htmlPageProvider) Handles(kind models.MediaKind) bool {
	return kind == models.KindHTMLPage
}

func (htmlPageProvider) Extract(doc models.RawDocument) (string, error) {
	text, err := scrape.FromHTML(bytes.NewReader(doc.Data))
	if err != nil {
		return "", fmt.Errorf("extract HTML: %w", err)
	}
	return text, nil
}
