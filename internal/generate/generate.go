// Package generate orchestrates the CV page pipeline: acquire text from the
// request's sources, parse sections, render HTML, and persist the page.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/config"
	"github.com/inkfold/cvpress/internal/extract"
	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/pageid"
	"github.com/inkfold/cvpress/internal/pageindex"
	"github.com/inkfold/cvpress/internal/render"
	"github.com/inkfold/cvpress/internal/scrape"
	"github.com/inkfold/cvpress/internal/sections"
	"github.com/inkfold/cvpress/internal/storage"
)

// ErrTextTooShort reports that no source produced enough text to build a
// page. Handlers map it to a 400 response; anything else is a 500.
var ErrTextTooShort = errors.New("extracted text too short")

// Generator runs the generation pipeline. Source failures are logged and the
// chain continues; only an all-sources-too-short outcome is an error.
type Generator struct {
	cfg       *config.Config
	logger    *zap.Logger
	extractor *extract.Extractor
	scraper   *scrape.Scraper
	renderer  *render.Renderer
	store     storage.Store
	index     pageindex.Index
}

// NewGenerator creates a generator with the given dependencies.
func NewGenerator(
	cfg *config.Config,
	logger *zap.Logger,
	extractor *extract.Extractor,
	scraper *scrape.Scraper,
	renderer *render.Renderer,
	store storage.Store,
	index pageindex.Index,
) *Generator {
	return &Generator{
		cfg:       cfg,
		logger:    logger,
		extractor: extractor,
		scraper:   scraper,
		renderer:  renderer,
		store:     store,
		index:     index,
	}
}

// Generate runs the full pipeline for one request and returns the saved page.
func (g *Generator) Generate(ctx context.Context, req *models.GenerateRequest) (*models.Page, error) {
	text, source, err := g.acquireText(ctx, req)
	if err != nil {
		return nil, err
	}

	secs := sections.Parse(text)
	html, err := g.renderer.Page(secs, req.Options())
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	page := &models.Page{
		ID:      g.pageID(source, req),
		Source:  source,
		Name:    secs.Name,
		Content: secs.PlainText(),
		HTML:    html,
		Theme:   render.ThemeName(req.ThemeType),
	}
	if err := g.store.SavePage(ctx, page); err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	if err := g.index.IndexPage(ctx, page); err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}

	g.logger.Info("page generated",
		zap.String("page_id", page.ID),
		zap.String("source", source),
		zap.String("name", page.Name),
		zap.Int("chars", len(text)))
	return page, nil
}

// DeletePage removes a page from the store and the search index.
func (g *Generator) DeletePage(ctx context.Context, id string) error {
	if err := g.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete from index: %w", err)
	}
	if err := g.store.DeletePage(ctx, id); err != nil {
		return err
	}
	return nil
}

// acquireText tries every supplied source and keeps the longest text.
// Text length is the only quality signal. A failing source is logged and
// skipped; the request only fails when the best candidate is still below the
// viability threshold.
func (g *Generator) acquireText(ctx context.Context, req *models.GenerateRequest) (string, string, error) {
	var best, bestSource string

	if rawURL := req.URL(); rawURL != "" {
		scraped, err := g.scraper.Fetch(ctx, rawURL)
		if err != nil {
			g.logger.Warn("scrape source failed",
				zap.String("url", rawURL),
				zap.Error(err))
		} else if len(scraped) > len(best) {
			best = scraped
			bestSource = rawURL
		}
	}

	if req.UploadedFilePath != "" {
		extracted, err := g.extractor.ExtractFile(req.UploadedFilePath)
		if err != nil {
			g.logger.Warn("file source failed",
				zap.String("path", req.UploadedFilePath),
				zap.Error(err))
		} else if len(extracted) > len(best) {
			best = extracted
			bestSource = req.UploadedFilePath
		}
	}

	best = strings.TrimSpace(best)
	if len(best) < g.cfg.Generate.MinTextChars {
		return "", "", fmt.Errorf("%w: %d characters from all sources, need %d",
			ErrTextTooShort, len(best), g.cfg.Generate.MinTextChars)
	}
	return best, bestSource, nil
}

// pageID derives the deterministic page ID from the winning source.
func (g *Generator) pageID(source string, req *models.GenerateRequest) string {
	if source == req.URL() && source != "" {
		return pageid.FromURL(source)
	}
	return pageid.FromPath(source)
}
