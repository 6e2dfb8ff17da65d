// Package main is the cvpress CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/cli"
	"github.com/inkfold/cvpress/internal/config"
	"github.com/inkfold/cvpress/internal/extract"
	"github.com/inkfold/cvpress/internal/generate"
	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/pageindex"
	"github.com/inkfold/cvpress/internal/publish"
	"github.com/inkfold/cvpress/internal/render"
	"github.com/inkfold/cvpress/internal/scrape"
	"github.com/inkfold/cvpress/internal/server"
	"github.com/inkfold/cvpress/internal/storage"
	"github.com/inkfold/cvpress/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/cvpress/config.yaml"

const defaultServerURL = "http://localhost:8080"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so "cvpress server" from the project dir picks up the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "generate":
		runGenerate()
	case "pages":
		runPages()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("cvpress version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (request details, extraction chain, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(
		components.Generator,
		components.Store,
		components.Index,
		components.Extractor,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runGenerate() {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = run the pipeline directly without a server)")
	file := fs.String("file", "", "local CV document to generate from")
	rawURL := fs.String("url", "", "shared-page URL to generate from")
	theme := fs.String("theme", "", "layout variant: classic or banner")
	colors := fs.String("colors", "", "space-separated theme colors; first token is the accent")
	professional := fs.Bool("professional", false, "restrained serif presentation")
	out := fs.String("out", "", "write the page HTML to this file (default: stdout)")
	_ = fs.Parse(os.Args[2:])

	if *file == "" && *rawURL == "" {
		fmt.Println("Usage: cvpress generate [flags] (--file <path> and/or --url <shared-page url>)")
		fs.PrintDefaults()
		os.Exit(1)
	}

	opts := models.RenderOptions{ThemeType: *theme, ThemeColors: *colors, Professional: *professional}

	var html, pageID string
	var err error
	if *serverURL != "" {
		html, pageID, err = generateViaHTTP(*serverURL, *file, *rawURL, opts)
	} else {
		html, pageID, err = generateDirect(*configPath, *file, *rawURL, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(html), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Page written: %s (id %s)\n", *out, pageID)
		return
	}
	fmt.Fprintf(os.Stderr, "Page id: %s\n", pageID)
	fmt.Print(html)
}

// generateViaHTTP uploads the file (when given) and requests generation from
// a running server. Using the HTTP API avoids SQLite/Bleve lock conflicts
// with the server process.
func generateViaHTTP(serverURL, file, rawURL string, opts models.RenderOptions) (string, string, error) {
	ctx := context.Background()
	client := publish.NewClient(serverURL)

	req := &models.GenerateRequest{
		SourceURL:    rawURL,
		ThemeType:    opts.ThemeType,
		ThemeColors:  opts.ThemeColors,
		Professional: opts.Professional,
	}
	if file != "" {
		uploaded, err := client.UploadFile(ctx, file)
		if err != nil {
			return "", "", err
		}
		req.UploadedFilePath = uploaded.LocalPath
	}

	resp, err := client.Generate(ctx, req)
	if err != nil {
		return "", "", err
	}
	return resp.HTML, resp.PageID, nil
}

// generateDirect runs the pipeline in-process against the configured storage.
func generateDirect(configPath, file, rawURL string, opts models.RenderOptions) (string, string, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return "", "", fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return "", "", err
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return "", "", err
	}
	defer components.Close()

	req := &models.GenerateRequest{
		SourceURL:    rawURL,
		ThemeType:    opts.ThemeType,
		ThemeColors:  opts.ThemeColors,
		Professional: opts.Professional,
	}
	if file != "" {
		abs, absErr := filepath.Abs(file)
		if absErr != nil {
			return "", "", absErr
		}
		req.UploadedFilePath = abs
	}

	page, err := components.Generator.Generate(context.Background(), req)
	if err != nil {
		return "", "", err
	}
	return page.HTML, page.ID, nil
}

func runPages() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: cvpress pages <list|search|delete> [flags] [args]")
		fmt.Println("  cvpress pages list                 List recent pages")
		fmt.Println("  cvpress pages search <query>       Keyword search over pages")
		fmt.Println("  cvpress pages delete <page-id>     Delete a page")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("pages "+sub, flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	limit := fs.Int("limit", 20, "number of pages")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[3:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch sub {
	case "list":
		listPages(*serverURL, "", *limit, format)
	case "search":
		query := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if query == "" {
			fmt.Println("Usage: cvpress pages search [flags] <query>")
			os.Exit(1)
		}
		listPages(*serverURL, query, *limit, format)
	case "delete":
		if fs.NArg() < 1 {
			fmt.Println("Usage: cvpress pages delete [flags] <page-id>")
			os.Exit(1)
		}
		deletePage(*serverURL, fs.Arg(0))
	default:
		fmt.Printf("Unknown pages subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func listPages(serverURL, query string, limit int, format cli.OutputFormat) {
	list, err := pagesViaHTTP(serverURL, query, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WritePageList(os.Stdout, list, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func pagesViaHTTP(serverURL, query string, limit int) (*cli.PageList, error) {
	reqURL := fmt.Sprintf("%s/api/v1/pages?limit=%d", strings.TrimRight(serverURL, "/"), limit)
	if query != "" {
		reqURL += "&q=" + url.QueryEscape(query)
	}
	resp, err := http.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var list cli.PageList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &list, nil
}

func deletePage(serverURL, id string) {
	req, err := http.NewRequest(http.MethodDelete,
		strings.TrimRight(serverURL, "/")+"/api/v1/pages/"+id, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Delete failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Printf("Page deleted: %s\n", id)
}

// statusResponse is the shape of GET /api/v1/status.
type statusResponse struct {
	Pages          int64                  `json:"pages"`
	IndexDocs      uint64                 `json:"index_docs"`
	Providers      []string               `json:"providers"`
	DiskUsageBytes *int64                 `json:"disk_usage_bytes,omitempty"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	status, err := statusViaHTTP(*serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("pages:             %d   # stored generated pages\n", status.Pages)
		fmt.Printf("index_docs:        %d   # pages in the search index\n", status.IndexDocs)
		fmt.Printf("providers:         %s   # available extraction providers\n", strings.Join(status.Providers, ", "))
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:  %d   # database + index + uploads on disk\n", *status.DiskUsageBytes)
		}
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"database_path", "page_index_path", "uploads_dir", "min_text_chars"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-18s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store     storage.Store
	Index     pageindex.Index
	Extractor *extract.Extractor
	Generator *generate.Generator
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	index, err := pageindex.NewBleveIndex(cfg.Storage.PageIndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize page index: %w", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		_ = store.Close()
		_ = index.Close()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	extractor := extract.NewExtractor(logger)
	scraper := scrape.NewScraper(cfg.Scrape, logger)
	gen := generate.NewGenerator(cfg, logger, extractor, scraper, renderer, store, index)

	return &Components{
		Store:     store,
		Index:     index,
		Extractor: extractor,
		Generator: gen,
	}, nil
}

func printUsage() {
	fmt.Println(`cvpress - CV page generation service

Usage:
  cvpress server [flags]             Start the HTTP server
  cvpress generate [flags]           Generate a page from a document or URL
  cvpress pages <list|search|delete> Manage generated pages
  cvpress status [flags]             Show server/storage status
  cvpress version                    Show version
  cvpress help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/cvpress/config.yaml)
  --debug            Enable debug logging (request details, extraction chain, etc.)

Generate Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to run the pipeline directly.
  --file string      Local CV document (pdf, docx, odt, xlsx, txt)
  --url string       Shared-page URL to scrape
  --theme string     Layout variant: classic or banner
  --colors string    Space-separated theme colors; first token is the accent
  --professional     Restrained serif presentation
  --out string       Write the page HTML to this file (default: stdout)

Pages Flags:
  --server string    Server URL (default: http://localhost:8080)
  --limit int        Number of pages (default: 20)
  --output string    Output format: text, compact, or json (default: text)

Status Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  cvpress server
  cvpress generate --file cv.pdf --out page.html
  cvpress generate --url https://chat.example.com/share/abc --theme banner
  cvpress generate --server "" --config ./config.yaml --file cv.docx
  cvpress pages list
  cvpress pages search "kubernetes"
  cvpress pages delete page:3c2a...
  cvpress status --output json`)
}
