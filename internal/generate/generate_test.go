package generate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/config"
	"github.com/inkfold/cvpress/internal/extract"
	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/pageid"
	"github.com/inkfold/cvpress/internal/pageindex"
	"github.com/inkfold/cvpress/internal/render"
	"github.com/inkfold/cvpress/internal/scrape"
	"github.com/inkfold/cvpress/internal/storage"
)

const cvText = `Jane Doe
Senior platform engineer with a decade of distributed systems work.
EXPERIENCE
Acme Corp, 2015-2025. Built the document ingestion pipeline.
EDUCATION
BSc Computer Science
SKILLS
Go, Rust, Kubernetes
`

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Scrape:   config.ScrapeConfig{TimeoutSeconds: 5, UserAgent: "cvpress-test"},
		Generate: config.GenerateConfig{MinTextChars: 80},
	}
	logger := zap.NewNop()

	store, err := storage.NewSQLiteStore(filepath.Join(dir, "cvpress.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	index, err := pageindex.NewBleveIndex(filepath.Join(dir, "pages.bleve"))
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })

	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	return NewGenerator(cfg, logger,
		extract.NewExtractor(logger),
		scrape.NewScraper(cfg.Scrape, logger),
		renderer, store, index)
}

func writeCV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestGenerate_fromFile(t *testing.T) {
	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", cvText)

	page, err := g.Generate(context.Background(), &models.GenerateRequest{
		UploadedFilePath: path,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if page.Name != "Jane Doe" {
		t.Errorf("got name %q, want %q", page.Name, "Jane Doe")
	}
	if page.Source != path {
		t.Errorf("got source %q, want %q", page.Source, path)
	}
	if page.ID != pageid.FromPath(path) {
		t.Errorf("page ID not derived from file path: %q", page.ID)
	}
	if !strings.Contains(page.HTML, "Jane Doe") {
		t.Error("rendered HTML missing candidate name")
	}
	if page.Theme != "classic" {
		t.Errorf("got theme %q, want classic default", page.Theme)
	}

	stored, err := g.store.GetPage(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("GetPage after generate: %v", err)
	}
	if stored.HTML != page.HTML {
		t.Error("stored HTML differs from returned HTML")
	}

	hits, err := g.index.Search(context.Background(), "kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != page.ID {
		t.Errorf("page not searchable after generate: %v", hits)
	}
}

func TestGenerate_fromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>\n<p>Jane Doe</p>\n<p>Senior platform engineer with a decade of distributed systems work to show.</p>\n</body></html>"))
	}))
	defer srv.Close()

	g := newTestGenerator(t)
	page, err := g.Generate(context.Background(), &models.GenerateRequest{
		DeepseekURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if page.Source != srv.URL {
		t.Errorf("got source %q, want %q", page.Source, srv.URL)
	}
	if page.ID != pageid.FromURL(srv.URL) {
		t.Errorf("page ID not derived from URL: %q", page.ID)
	}
	if page.Name != "Jane Doe" {
		t.Errorf("got name %q, want %q", page.Name, "Jane Doe")
	}
}

func TestGenerate_tooShort(t *testing.T) {
	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", "too little text")

	_, err := g.Generate(context.Background(), &models.GenerateRequest{
		UploadedFilePath: path,
	})
	if !errors.Is(err, ErrTextTooShort) {
		t.Errorf("got %v, want ErrTextTooShort", err)
	}
}

func TestGenerate_noSources(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.Generate(context.Background(), &models.GenerateRequest{})
	if !errors.Is(err, ErrTextTooShort) {
		t.Errorf("got %v, want ErrTextTooShort", err)
	}
}

func TestGenerate_longestSourceWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Short page.</p></body></html>"))
	}))
	defer srv.Close()

	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", cvText)

	page, err := g.Generate(context.Background(), &models.GenerateRequest{
		SourceURL:        srv.URL,
		UploadedFilePath: path,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if page.Source != path {
		t.Errorf("longer file text should win over short scrape, got source %q", page.Source)
	}
}

func TestGenerate_failedSourceFallsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", cvText)

	page, err := g.Generate(context.Background(), &models.GenerateRequest{
		SourceURL:        srv.URL,
		UploadedFilePath: path,
	})
	if err != nil {
		t.Fatalf("Generate should fall through to the file source: %v", err)
	}
	if page.Source != path {
		t.Errorf("got source %q, want file fallback %q", page.Source, path)
	}
}

func TestGenerate_regenerateUpdates(t *testing.T) {
	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", cvText)
	ctx := context.Background()

	first, err := g.Generate(ctx, &models.GenerateRequest{UploadedFilePath: path})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := g.Generate(ctx, &models.GenerateRequest{UploadedFilePath: path, ThemeType: "banner"})
	if err != nil {
		t.Fatalf("Generate again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("same source produced different IDs: %q vs %q", first.ID, second.ID)
	}

	count, err := g.store.CountPages(ctx)
	if err != nil {
		t.Fatalf("CountPages: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d pages after regenerating, want 1", count)
	}

	stored, err := g.store.GetPage(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if stored.Theme != "banner" {
		t.Errorf("got theme %q after regenerate, want banner", stored.Theme)
	}
}

func TestDeletePage(t *testing.T) {
	g := newTestGenerator(t)
	path := writeCV(t, "cv.txt", cvText)
	ctx := context.Background()

	page, err := g.Generate(ctx, &models.GenerateRequest{UploadedFilePath: path})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := g.DeletePage(ctx, page.ID); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}

	if _, err := g.store.GetPage(ctx, page.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v after delete, want ErrNotFound", err)
	}
	hits, err := g.index.Search(ctx, "kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("page still searchable after delete: %v", hits)
	}
}
