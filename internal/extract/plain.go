package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/inkfold/cvpress/internal/models"
)

// plainProvider reads the document as UTF-8 text, replacing invalid byte
// sequences with the replacement character. Last resort for legacy and
// unknown formats.
type plainProvider struct{}

func (plainProvider) Name() string    { return "plain" }
func (plainProvider) Available() bool { return true }

func (plainProvider) Handles(kind models.MediaKind) bool {
	switch kind {
	case models.KindPlainText, models.KindDOC, models.KindUnknownBinary:
		return true
	}
	return false
}

func (plainProvider) Extract(doc models.RawDocument) (string, error) {
	content := doc.Data
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "�"))
	}
	return string(content), nil
}
