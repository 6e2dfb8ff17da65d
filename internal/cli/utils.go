// Package cli provides output formatting for the cvpress command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one page per line, for piping into other tools.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputCompact, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// PageSummary is one row of a page listing, as returned by the server.
type PageSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	Score     float64   `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageList is the body of GET /api/v1/pages.
type PageList struct {
	Pages []PageSummary `json:"pages"`
	Total int           `json:"total"`
}

// WritePageList writes a page listing to w in the given format.
func WritePageList(w io.Writer, list *PageList, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case OutputCompact:
		for _, p := range list.Pages {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Source)
		}
		return nil
	default:
		writePageListText(w, list)
		return nil
	}
}

func writePageListText(w io.Writer, list *PageList) {
	fmt.Fprintf(w, "\n%d page(s)\n\n", list.Total)
	for _, p := range list.Pages {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "ID: %s\n", p.ID)
		fmt.Fprintf(w, "Name: %s\n", p.Name)
		if p.Source != "" {
			fmt.Fprintf(w, "Source: %s\n", p.Source)
		}
		fmt.Fprintf(w, "Theme: %s\n", p.Theme)
		if p.Score > 0 {
			fmt.Fprintf(w, "Score: %.4f\n", p.Score)
		}
		if !p.UpdatedAt.IsZero() {
			fmt.Fprintf(w, "Updated: %s\n", p.UpdatedAt.Format(time.RFC3339))
		}
		fmt.Fprintln(w)
	}
}
