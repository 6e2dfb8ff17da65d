package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/config"
)

func newTestScraper() *Scraper {
	cfg := config.ScrapeConfig{TimeoutSeconds: 5, UserAgent: "cvpress-test/1.0"}
	return NewScraper(cfg, zap.NewNop())
}

func TestFetch_selectorContent(t *testing.T) {
	cvBody := strings.Repeat("Jane Doe has shipped production systems for a decade. ", 10)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body>
<nav>Home About Login</nav>
<main><p>` + cvBody + `</p></main>
<footer>All rights reserved</footer>
</body></html>`))
	}))
	defer srv.Close()

	got, err := newTestScraper().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(got, "Jane Doe has shipped production systems") {
		t.Errorf("main content missing: %q", got)
	}
	if strings.Contains(got, "Home About Login") || strings.Contains(got, "All rights reserved") {
		t.Errorf("chrome leaked into selector content: %q", got)
	}
	if gotUA != "cvpress-test/1.0" {
		t.Errorf("user agent: got %q", gotUA)
	}
}

func TestFetch_non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := newTestScraper().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetch_invalidURL(t *testing.T) {
	s := newTestScraper()
	for _, u := range []string{"", "not a url", "ftp://example.com/x", "/relative/only"} {
		if _, err := s.Fetch(context.Background(), u); err == nil {
			t.Errorf("expected error for %q", u)
		}
	}
}

func TestFromHTML_scriptAndStyleRemoved(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style></head><body>
<p>Visible profile text</p>
<script>trackVisit()</script>
<noscript>Please enable JavaScript</noscript>
<iframe src="https://ads.example"></iframe>
</body></html>`
	got, err := FromHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(got, "Visible profile text") {
		t.Errorf("visible text missing: %q", got)
	}
	for _, banned := range []string{"trackVisit", "color:red", "enable JavaScript"} {
		if strings.Contains(got, banned) {
			t.Errorf("%q should have been removed: %q", banned, got)
		}
	}
}

func TestFromHTML_fallbackFiltersNoise(t *testing.T) {
	html := `<html><body>
<div>Jane Doe</div>
<div>Accept cookie settings to continue</div>
<div>window.dataLayer.push({});</div>
<div>` + strings.Repeat("a", 120) + `</div>
<div>Experienced platform engineer</div>
</body></html>`
	got, err := FromHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	want := "Jane Doe\nExperienced platform engineer"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFromHTML_shortSelectorFallsThrough(t *testing.T) {
	html := `<html><body>
<main>Short</main>
<div>Jane Doe</div>
<div>Builds data pipelines</div>
</body></html>`
	got, err := FromHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	// main is below the selector threshold, so the whole page is used.
	for _, want := range []string{"Short", "Jane Doe", "Builds data pipelines"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestStripEventHandlers(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><a href="/x" onclick="steal()" ONMOUSEOVER="also()">link</a></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	stripEventHandlers(doc)
	out, err := doc.Html()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.ToLower(out), "onclick") || strings.Contains(strings.ToLower(out), "onmouseover") {
		t.Errorf("event handlers survived: %q", out)
	}
	if !strings.Contains(out, `href="/x"`) {
		t.Errorf("non-handler attribute dropped: %q", out)
	}
}

func TestIsNoiseLine(t *testing.T) {
	noisy := []string{
		"Subscribe to our newsletter",
		"const x = 1",
		"gtag('config', 'UA-1');",
		strings.Repeat("x", 100),
	}
	for _, line := range noisy {
		if !isNoiseLine(line) {
			t.Errorf("%q should be noise", line)
		}
	}
	clean := []string{
		"Jane Doe",
		"10 years of experience with Go (backend)",
		"email: jane@example.com",
	}
	for _, line := range clean {
		if isNoiseLine(line) {
			t.Errorf("%q should not be noise", line)
		}
	}
}
