// Package render turns parsed CV sections into a self-contained HTML page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/inkfold/cvpress/internal/models"
)

// DefaultAccent is the accent color used when no usable theme color is
// supplied.
const DefaultAccent = "#1f2430"

// ThemeClassic and ThemeBanner are the supported layout variants. Unknown
// theme names fall back to classic.
const (
	ThemeClassic = "classic"
	ThemeBanner  = "banner"
)

// colorTokenRe accepts hex colors and plain color names. Anything else falls
// back to DefaultAccent so arbitrary strings never reach the style block.
var colorTokenRe = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z][a-zA-Z-]{2,31})$`)

// Renderer produces static CV pages from parsed sections. Rendering is a
// pure function of its inputs: the same sections and options produce
// byte-identical output.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer compiles the page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"nl2br": nl2br,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type sectionBlock struct {
	Label       string
	Value       string
	Placeholder string
}

type pageData struct {
	Name        string
	Summary     string
	Accent      template.CSS
	BodyClass   string
	Skills      []string
	BlocksAbove []sectionBlock
	BlocksBelow []sectionBlock
}

// Page renders sections with opts into a complete HTML document. Every field
// value is escaped before interpolation; newlines become line breaks only in
// the escaped value. Sections keep the canonical CV order with the skill
// chips between education and projects.
func (r *Renderer) Page(s models.CvSections, opts models.RenderOptions) (string, error) {
	data := pageData{
		Name:      s.Name,
		Summary:   s.Summary,
		Accent:    template.CSS(accentColor(opts.ThemeColors)),
		BodyClass: bodyClass(opts),
		Skills:    SplitSkills(s.Skills),
		BlocksAbove: []sectionBlock{
			{Label: "Experience", Value: s.Experience, Placeholder: "No experience details found"},
			{Label: "Education", Value: s.Education, Placeholder: "No education details found"},
		},
		BlocksBelow: []sectionBlock{
			{Label: "Projects", Value: s.Projects, Placeholder: "No projects found"},
			{Label: "Achievements", Value: s.Achievements, Placeholder: "No achievements found"},
			{Label: "Contact", Value: s.Contact, Placeholder: "No contact information found"},
		},
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// nl2br escapes s, then converts newlines in the escaped text to break tags.
// Escaping first means CV content can never smuggle markup through the
// conversion.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "<br>")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}

// accentColor returns the first whitespace-delimited token of themeColors if
// it looks like a CSS color, otherwise DefaultAccent.
func accentColor(themeColors string) string {
	fields := strings.Fields(themeColors)
	if len(fields) == 0 || !colorTokenRe.MatchString(fields[0]) {
		return DefaultAccent
	}
	return fields[0]
}

// ThemeName normalizes a requested layout variant. Unknown names fall back
// to classic.
func ThemeName(themeType string) string {
	if themeType == ThemeBanner {
		return ThemeBanner
	}
	return ThemeClassic
}

// bodyClass combines the layout variant with the professional modifier.
func bodyClass(opts models.RenderOptions) string {
	class := "theme-" + ThemeName(opts.ThemeType)
	if opts.Professional {
		class += " professional"
	}
	return class
}

// SplitSkills splits a skills value on commas and newlines into non-empty
// trimmed chip tokens.
func SplitSkills(skills string) []string {
	tokens := strings.FieldsFunc(skills, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var out []string
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
