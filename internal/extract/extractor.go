// Package extract converts uploaded documents into best-effort plain text.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/models"
)

// A Provider extracts text from one family of document formats. Providers
// declare the kinds they handle and whether their backing capability is
// present, so the chain is fixed at construction time instead of probed per
// call.
type Provider interface {
	Name() string
	Available() bool
	Handles(kind models.MediaKind) bool
	Extract(doc models.RawDocument) (string, error)
}

// Extractor runs a fixed, ordered provider chain over a document and keeps
// the longest text any provider produces. Text length is the only quality
// signal. Provider failures are logged and skipped, never fatal.
type Extractor struct {
	logger    *zap.Logger
	providers []Provider
}

// NewExtractor returns an Extractor with the default provider chain:
// word-processor formats (structured parse with a raw-archive fallback),
// PDF, spreadsheet, HTML, plain text.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		logger: logger,
		providers: []Provider{
			docxProvider{},
			odtProvider{},
			pdfProvider{},
			excelProvider{},
			htmlPageProvider{},
			plainProvider{},
		},
	}
}

// Providers returns the names of the available providers in chain order.
func (e *Extractor) Providers() []string {
	names := make([]string, 0, len(e.providers))
	for _, p := range e.providers {
		if p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}

// Extract returns the best-effort plain text for doc. An empty string means
// no provider produced text; that is not an error, callers fall through to
// their next source.
func (e *Extractor) Extract(doc models.RawDocument) string {
	var best string
	for _, p := range e.providers {
		if !p.Available() || !p.Handles(doc.Kind) {
			continue
		}
		text, err := p.Extract(doc)
		if err != nil {
			e.logger.Warn("extraction failed",
				zap.String("provider", p.Name()),
				zap.String("document", doc.Name),
				zap.Error(err))
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) > len(best) {
			best = text
		}
	}
	return best
}

// ExtractFile reads the file at path, detects its media kind, and extracts
// text from it.
func (e *Extractor) ExtractFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	name := filepath.Base(path)
	doc := models.RawDocument{
		Name: name,
		Kind: DetectKind(name, content),
		Data: content,
	}
	return e.Extract(doc), nil
}
