package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/inkfold/cvpress/internal/models"
)

// excelProvider extracts cell text from spreadsheets, one row per line with
// tab-separated cells. Tabular CVs occur in the wild often enough to carry.
type excelProvider struct{}

func (excelProvider) Name() string    { return "xlsx" }
func (excelProvider) Available() bool { return true }

func (excelProvider) Handles(kind models.MediaKind) bool {
	return kind == models.KindXLSX
}

func (excelProvider) Extract(doc models.RawDocument) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		return "", fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
