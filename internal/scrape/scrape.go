// Package scrape fetches shared CV pages and reduces them to plain text.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/config"
	"github.com/inkfold/cvpress/pkg/utils"
)

// selectorMinChars is the cumulative visible-text length a content selector
// must clear before its text is taken as the page body.
const selectorMinChars = 400

// longTokenMax is the length past which a line with no spaces is treated as
// a script or data remnant.
const longTokenMax = 80

// contentSelectors are tried in order, most specific first. Shared chat
// snapshots ship their transcript under markdown or message containers;
// generic pages fall back to the usual content regions.
var contentSelectors = []string{
	".markdown-body",
	".message-content",
	".conversation",
	"main",
	"article",
	".content",
	"#content",
	".main-content",
	"#main-content",
}

// noiseKeywords mark navigation chrome in the whole-page fallback. Lines
// containing any of them are dropped.
var noiseKeywords = []string{
	"cookie",
	"sign in",
	"sign up",
	"log in",
	"subscribe",
	"newsletter",
	"all rights reserved",
	"privacy policy",
	"terms of service",
	"skip to content",
}

// scriptLineRe matches lines that look like leftover script statements.
var scriptLineRe = regexp.MustCompile(`function\s*\(|=>|\)\s*[;{]|^(?:var|const|let)\s|^(?:window|document)\.`)

// Scraper fetches shared pages over HTTP and extracts their visible text.
type Scraper struct {
	client *http.Client
	cfg    config.ScrapeConfig
	logger *zap.Logger
}

// NewScraper returns a Scraper with the request timeout and user agent from
// cfg.
func NewScraper(cfg config.ScrapeConfig, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: cfg.Timeout()},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch retrieves the page at rawURL and returns its cleaned text content.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	text, err := FromHTML(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	s.logger.Debug("scraped page",
		zap.String("url", rawURL),
		zap.Int("chars", len(text)))
	return text, nil
}

// FromHTML reduces an HTML document to its visible text. Script, style,
// noscript, and iframe elements are removed and event-handler attributes
// stripped before extraction. The first content selector whose cumulative
// text clears selectorMinChars wins; otherwise the whole page is used with
// noise lines filtered out.
func FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe").Remove()
	stripEventHandlers(doc)

	for _, selector := range contentSelectors {
		text := utils.NormalizeBlock(doc.Find(selector).Text())
		if len(text) > selectorMinChars {
			return text, nil
		}
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return filterPageLines(doc.Text()), nil
	}
	return filterPageLines(body.Text()), nil
}

// stripEventHandlers removes every attribute whose name matches the
// event-handler pattern (onclick, onload, ...) from the document.
func stripEventHandlers(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			attrs := node.Attr[:0]
			for _, a := range node.Attr {
				if strings.HasPrefix(strings.ToLower(a.Key), "on") {
					continue
				}
				attrs = append(attrs, a)
			}
			node.Attr = attrs
		}
	})
}

// filterPageLines drops navigation chrome and script remnants from
// whole-page text.
func filterPageLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = utils.CollapseSpaces(line)
		if line == "" || isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range noiseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if scriptLineRe.MatchString(line) {
		return true
	}
	// A long run without any space is minified script or encoded data, not CV
	// prose.
	return len(line) > longTokenMax && !strings.Contains(line, " ")
}
