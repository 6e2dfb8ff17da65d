package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/lu4p/cat/odtxt"

	"github.com/inkfold/cvpress/internal/models"
)

// odtContentPath is the path to the main content inside an .odt zip
// (OpenDocument Text).
const odtContentPath = "content.xml"

// odtProvider parses OpenDocument text files with the same structured-first,
// raw-scrape-fallback policy as the DOCX provider.
type odtProvider struct{}

func (odtProvider) Name() string    { return "odt" }
func (odtProvider) Available() bool { return true }

func (odtProvider) Handles(kind models.MediaKind) bool {
	return kind == models.KindODT
}

func (odtProvider) Extract(doc models.RawDocument) (string, error) {
	structured, serr := odtxt.BytesToStr(doc.Data)
	text, err := mergeStructured(structured, serr, func() (string, error) {
		return scrapeOdtArchive(doc.Data)
	})
	if err != nil {
		return "", fmt.Errorf("extract ODT: %w", err)
	}
	return text, nil
}

// scrapeOdtArchive strips content.xml markup. text:p and text:h closers
// become newlines so paragraphs and headings stay on their own lines.
func scrapeOdtArchive(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("not a zip: %w", err)
	}
	contentXML, err := readZipFile(zr, odtContentPath)
	if err != nil {
		return "", err
	}
	xml := strings.ReplaceAll(string(contentXML), "</text:h>", "\n")
	return stripDocumentXML(xml, "</text:p>", "<text:tab/>"), nil
}
