package models

import "strings"

// CvSections maps each salient CV field to the text captured for it. Every
// field defaults to the empty string when not found; Raw always holds the
// full extracted text verbatim.
type CvSections struct {
	Name         string `json:"name"`
	Summary      string `json:"summary"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	Skills       string `json:"skills"`
	Projects     string `json:"projects"`
	Achievements string `json:"achievements"`
	Contact      string `json:"contact"`
	Raw          string `json:"raw"`
}

// PlainText joins the parsed fields (excluding Raw) into one searchable
// string, skipping empty fields.
func (s *CvSections) PlainText() string {
	parts := make([]string, 0, 8)
	for _, v := range []string{
		s.Name, s.Summary, s.Experience, s.Education,
		s.Skills, s.Projects, s.Achievements, s.Contact,
	} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}
