package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/inkfold/cvpress/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func sampleSections() models.CvSections {
	return models.CvSections{
		Name:         "Jane Doe",
		Summary:      "Platform engineer in Berlin.",
		Experience:   "Acme Corp\nBuilt the deploy pipeline",
		Education:    "TU Berlin",
		Skills:       "Go, SQL\nKubernetes",
		Projects:     "cvpress",
		Achievements: "Speaker award",
		Contact:      "Berlin, Germany",
		Raw:          "raw text",
	}
}

func TestPage_escapesScriptContent(t *testing.T) {
	r := newTestRenderer(t)
	payload := "<script>alert(1)</script>"
	s := models.CvSections{
		Name:       payload,
		Summary:    payload,
		Experience: payload,
		Skills:     payload,
		Contact:    payload,
	}
	out, err := r.Page(s, models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Error("rendered page contains a literal script tag")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("rendered page should contain the escaped form")
	}
}

func TestPage_idempotent(t *testing.T) {
	r := newTestRenderer(t)
	opts := models.RenderOptions{ThemeType: "banner", ThemeColors: "#ff8800", Professional: true}
	first, err := r.Page(sampleSections(), opts)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	second, err := r.Page(sampleSections(), opts)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if first != second {
		t.Error("same inputs must render byte-identical output")
	}
}

func TestPage_skillsChips(t *testing.T) {
	r := newTestRenderer(t)
	s := models.CvSections{Name: "Jane Doe", Skills: "Go, Rust\nPython"}
	out, err := r.Page(s, models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if got := strings.Count(out, `<li class="chip">`); got != 3 {
		t.Errorf("chip count: got %d, want 3", got)
	}
	for _, token := range []string{">Go<", ">Rust<", ">Python<"} {
		if !strings.Contains(out, token) {
			t.Errorf("missing chip token %q", token)
		}
	}
}

func TestPage_newlinesBecomeBreaks(t *testing.T) {
	r := newTestRenderer(t)
	s := models.CvSections{Name: "Jane Doe", Experience: "Acme Corp\nBuilt platform"}
	out, err := r.Page(s, models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(out, "Acme Corp<br>Built platform") {
		t.Error("newline in experience should render as a break tag")
	}
}

func TestPage_placeholders(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Page(models.CvSections{Name: "Candidate Name"}, models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	placeholders := []string{
		"No summary found",
		"No experience details found",
		"No education details found",
		"No skills found",
		"No projects found",
		"No achievements found",
		"No contact information found",
	}
	for _, p := range placeholders {
		if !strings.Contains(out, p) {
			t.Errorf("missing placeholder %q", p)
		}
	}
}

func TestPage_accentColor(t *testing.T) {
	r := newTestRenderer(t)
	s := sampleSections()

	out, err := r.Page(s, models.RenderOptions{ThemeColors: "#ff8800 #001122"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(out, "--accent: #ff8800") {
		t.Error("first theme color token should become the accent")
	}

	out, err = r.Page(s, models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(out, "--accent: "+DefaultAccent) {
		t.Error("missing default accent")
	}

	out, err = r.Page(s, models.RenderOptions{ThemeColors: "</style><script>x</script>"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if strings.Contains(out, "</style><script>") {
		t.Error("unsafe theme color reached the style block")
	}
	if !strings.Contains(out, "--accent: "+DefaultAccent) {
		t.Error("unsafe theme color should fall back to the default accent")
	}
}

func TestPage_themeClasses(t *testing.T) {
	r := newTestRenderer(t)
	s := sampleSections()

	out, _ := r.Page(s, models.RenderOptions{ThemeType: "banner"})
	if !strings.Contains(out, `<body class="theme-banner">`) {
		t.Error("banner theme class missing")
	}
	out, _ = r.Page(s, models.RenderOptions{ThemeType: "neon"})
	if !strings.Contains(out, `<body class="theme-classic">`) {
		t.Error("unknown theme should fall back to classic")
	}
	out, _ = r.Page(s, models.RenderOptions{Professional: true})
	if !strings.Contains(out, `<body class="theme-classic professional">`) {
		t.Error("professional modifier missing")
	}
}

func TestPage_selfContained(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Page(sampleSections(), models.RenderOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	for _, banned := range []string{"http://", "https://", "<link", "<img", "<script"} {
		if strings.Contains(out, banned) {
			t.Errorf("page should be self-contained, found %q", banned)
		}
	}
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills("Go, Rust\nPython")
	want := []string{"Go", "Rust", "Python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := SplitSkills(" , ,\n"); len(got) != 0 {
		t.Errorf("blank tokens should be dropped, got %v", got)
	}
	if got := SplitSkills(""); len(got) != 0 {
		t.Errorf("empty input should yield no chips, got %v", got)
	}
}

func TestAccentColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", DefaultAccent},
		{"#ff8800", "#ff8800"},
		{"#ff8800 #001122", "#ff8800"},
		{"teal something", "teal"},
		{"12px", DefaultAccent},
		{"url(javascript:alert(1))", DefaultAccent},
	}
	for _, c := range cases {
		if got := accentColor(c.in); got != c.want {
			t.Errorf("accentColor(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}
