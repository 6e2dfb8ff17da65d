package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/lu4p/cat/docxtxt"

	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/pkg/utils"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// structuredMinChars is the structured-parse result length below which the
// raw-archive scrape runs as a fallback.
const structuredMinChars = 80

// xmlTag matches any XML tag for stripping.
var xmlTag = regexp.MustCompile(`<[^>]+>`)

// partNameRe extracts PartName from Override elements in [Content_Types].xml.
var partNameRe = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// partNameRe2 handles the case where ContentType appears before PartName.
var partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)

// docxProvider parses word-processor documents. The structured parse handles
// clean documents; real-world files whose paragraph tags carry attributes can
// defeat it, so a result below structuredMinChars triggers a raw scrape of
// the document archive and the longer text wins.
type docxProvider struct{}

func (docxProvider) Name() string    { return "docx" }
func (docxProvider) Available() bool { return true }

func (docxProvider) Handles(kind models.MediaKind) bool {
	return kind == models.KindDOCX
}

func (docxProvider) Extract(doc models.RawDocument) (string, error) {
	structured, serr := docxtxt.BytesToStr(doc.Data)
	text, err := mergeStructured(structured, serr, func() (string, error) {
		return scrapeDocxArchive(doc.Data)
	})
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	return text, nil
}

// mergeStructured applies the structured-first policy shared by the
// word-processor providers: keep the structured text when it parses and
// clears structuredMinChars, otherwise run the raw scrape and keep the
// longer of the two results.
func mergeStructured(structured string, serr error, scrape func() (string, error)) (string, error) {
	structured = strings.TrimSpace(structured)
	if serr == nil && len(structured) >= structuredMinChars {
		return structured, nil
	}
	raw, rerr := scrape()
	if rerr != nil {
		if serr != nil {
			return "", serr
		}
		return structured, nil
	}
	if len(raw) > len(structured) {
		return raw, nil
	}
	return structured, nil
}

// scrapeDocxArchive reads the main document part and strips its markup.
// Paragraph boundaries become newlines so downstream line heuristics still
// see the document's structure.
func scrapeDocxArchive(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("not a zip: %w", err)
	}
	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}
	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return "", err
	}
	return stripDocumentXML(string(docXML), "</w:p>", "<w:tab/>"), nil
}

// stripDocumentXML converts paragraph closers to newlines and tab markers to
// tabs, removes every remaining tag, decodes entities, and normalizes
// whitespace per line.
func stripDocumentXML(xml, paragraphCloser, tabMarker string) string {
	xml = strings.ReplaceAll(xml, paragraphCloser, "\n")
	if tabMarker != "" {
		xml = strings.ReplaceAll(xml, tabMarker, "\t")
	}
	txt := xmlTag.ReplaceAllString(xml, " ")
	return utils.NormalizeBlock(html.UnescapeString(txt))
}

// findDocxMainDocumentPath finds the main document path from
// [Content_Types].xml. Returns the path without leading slash, or empty
// string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	for _, f := range zr.File {
		if f.Name != contentTypesPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return ""
		}
		content := string(data)
		// Try both attribute orders
		if matches := partNameRe.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		if matches := partNameRe2.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		return ""
	}
	return ""
}

// readZipFile returns the named member's bytes from a zip reader.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}
