package sections

import (
	"fmt"
	"strings"
	"testing"
)

func TestParse_headingCapture(t *testing.T) {
	got := Parse("Jane Doe\nBuilt things.\nEXPERIENCE\nDid X\nEDUCATION\nBA")
	if got.Name != "Jane Doe" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Experience != "Did X" {
		t.Errorf("experience: got %q", got.Experience)
	}
	if got.Education != "BA" {
		t.Errorf("education: got %q", got.Education)
	}
}

func TestParse_rawVerbatim(t *testing.T) {
	inputs := []string{
		"Jane Doe\nBuilt things.",
		"  spaced  \n\nlines\n",
		"single",
	}
	for _, in := range inputs {
		if got := Parse(in); got.Raw != in {
			t.Errorf("raw: got %q, want %q", got.Raw, in)
		}
	}
}

func TestParse_noHeadingsFallback(t *testing.T) {
	lines := []string{
		"Jordan Reyes",
		"Line two",
		"Line three",
		"Line four",
		"Line five",
		"Line six",
		"Line seven",
		"Line eight",
		"Line nine",
		"Line ten",
	}
	got := Parse(strings.Join(lines, "\n"))
	if got.Name != "Jordan Reyes" {
		t.Errorf("name: got %q", got.Name)
	}
	wantSummary := strings.Join(lines[1:6], " ")
	if got.Summary != wantSummary {
		t.Errorf("summary: got %q, want %q", got.Summary, wantSummary)
	}
	wantExperience := strings.Join(lines[6:], "\n")
	if got.Experience != wantExperience {
		t.Errorf("experience: got %q, want %q", got.Experience, wantExperience)
	}
}

func TestParse_fallbackBoundedAt60(t *testing.T) {
	var lines []string
	for i := 0; i < 70; i++ {
		lines = append(lines, fmt.Sprintf("Entry row %02d", i))
	}
	got := Parse(strings.Join(lines, "\n"))
	want := strings.Join(lines[6:60], "\n")
	if got.Experience != want {
		t.Errorf("experience span: got %d lines, want %d",
			len(strings.Split(got.Experience, "\n")), 54)
	}
}

func TestParse_noFallbackForShortText(t *testing.T) {
	got := Parse("Ada Smith\nshort\nlines")
	if got.Experience != "" {
		t.Errorf("experience: got %q, want empty", got.Experience)
	}
}

func TestParse_nameDefaults(t *testing.T) {
	cases := []struct {
		desc string
		in   string
	}{
		{"empty text", ""},
		{"too short", "ab"},
		{"all noise", "x=1\n{config}\nrun();"},
		{"too many tokens", "one two three four five six seven eight nine"},
	}
	for _, c := range cases {
		if got := Parse(c.in); got.Name != DefaultName {
			t.Errorf("%s: got %q, want %q", c.desc, got.Name, DefaultName)
		}
	}
}

func TestParse_nameSkipsNoiseLines(t *testing.T) {
	got := Parse("https://example.com/shared/abc\nRosa Park\nEngineer at Large")
	if got.Name != "Rosa Park" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Summary != "Engineer at Large" {
		t.Errorf("summary: got %q", got.Summary)
	}
}

func TestParse_nameWindowStopsAtSix(t *testing.T) {
	// Only the first six lines may carry the name; a qualifying line past the
	// window is ignored.
	in := "a=1\nb=2\nc=3\nd=4\ne=5\nf=6\nReal Person"
	if got := Parse(in); got.Name != DefaultName {
		t.Errorf("name: got %q, want %q", got.Name, DefaultName)
	}
}

func TestParse_duplicateHeadingUsesFirst(t *testing.T) {
	got := Parse("Alex Roe\nIntro line\nSKILLS\nGo\nRust\nMore skills\nPython")
	if got.Skills != "Go\nRust" {
		t.Errorf("skills: got %q", got.Skills)
	}
}

func TestParse_captureRunsToEOF(t *testing.T) {
	got := Parse("Kim Lo\nabout\nPROJECTS\nBuilt a compiler\nWrote a game")
	if got.Projects != "Built a compiler\nWrote a game" {
		t.Errorf("projects: got %q", got.Projects)
	}
}

func TestParse_caseInsensitiveHeadings(t *testing.T) {
	got := Parse("Ann Li\nabout me\neDuCaTiOn\nBSc Computing")
	if got.Education != "BSc Computing" {
		t.Errorf("education: got %q", got.Education)
	}
}

func TestParse_keywordInsideProseTriggers(t *testing.T) {
	// Substring matching is deliberate: prose mentioning a keyword acts as a
	// heading, and the next keyword line closes the running capture.
	got := Parse("Lee Park\nYears of experience with teams\nShipped registry\nEducation\nMSc")
	if got.Experience != "Shipped registry" {
		t.Errorf("experience: got %q", got.Experience)
	}
	if got.Education != "MSc" {
		t.Errorf("education: got %q", got.Education)
	}
}

func TestParse_ownKeywordClosesCapture(t *testing.T) {
	// "Email:" belongs to the contact keyword set, so it closes the contact
	// capture opened by the "Contact" heading.
	got := Parse("Sam Lee\nprofile\nContact\nEmail: sam@example.com")
	if got.Contact != "" {
		t.Errorf("contact: got %q, want empty", got.Contact)
	}
}

func TestParse_allFields(t *testing.T) {
	in := strings.Join([]string{
		"Dana Fox",
		"Systems engineer in Berlin.",
		"Work Experience",
		"Acme Corp, platform team",
		"Education",
		"TU Berlin",
		"Skills",
		"Go, SQL",
		"Projects",
		"cvpress",
		"Awards",
		"Best keynote",
		"Contact",
		"Berlin, Germany",
	}, "\n")
	got := Parse(in)
	if got.Name != "Dana Fox" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Experience != "Acme Corp, platform team" {
		t.Errorf("experience: got %q", got.Experience)
	}
	if got.Education != "TU Berlin" {
		t.Errorf("education: got %q", got.Education)
	}
	if got.Skills != "Go, SQL" {
		t.Errorf("skills: got %q", got.Skills)
	}
	if got.Projects != "cvpress" {
		t.Errorf("projects: got %q", got.Projects)
	}
	if got.Achievements != "Best keynote" {
		t.Errorf("achievements: got %q", got.Achievements)
	}
	if got.Contact != "Berlin, Germany" {
		t.Errorf("contact: got %q", got.Contact)
	}
	if got.Raw != in {
		t.Error("raw should hold the input verbatim")
	}
}
