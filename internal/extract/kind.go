package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/inkfold/cvpress/internal/models"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// DetectKind infers a document's media kind from its file name, falling back
// to magic-byte sniffing when the extension is missing or unknown.
func DetectKind(name string, data []byte) models.MediaKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.KindPDF
	case ".docx":
		return models.KindDOCX
	case ".doc":
		return models.KindDOC
	case ".odt":
		return models.KindODT
	case ".xlsx":
		return models.KindXLSX
	case ".txt", ".md", ".text", ".rst":
		return models.KindPlainText
	case ".html", ".htm":
		return models.KindHTMLPage
	}
	return sniffKind(data)
}

// sniffKind inspects content bytes. Zip containers are told apart by their
// well-known member paths.
func sniffKind(data []byte) models.MediaKind {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return models.KindPDF
	case bytes.HasPrefix(data, zipMagic):
		return sniffZipKind(data)
	}
	head := strings.ToLower(string(bytes.TrimSpace(firstBytes(data, 64))))
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") {
		return models.KindHTMLPage
	}
	if utf8.Valid(data) {
		return models.KindPlainText
	}
	return models.KindUnknownBinary
}

func sniffZipKind(data []byte) models.MediaKind {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.KindUnknownBinary
	}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return models.KindDOCX
		case strings.HasPrefix(f.Name, "xl/"):
			return models.KindXLSX
		case f.Name == "mimetype":
			// OpenDocument containers carry their type in a mimetype member.
			rc, err := f.Open()
			if err != nil {
				continue
			}
			mt, _ := io.ReadAll(io.LimitReader(rc, 256))
			_ = rc.Close()
			if strings.Contains(string(mt), "opendocument.text") {
				return models.KindODT
			}
		}
	}
	return models.KindUnknownBinary
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}
