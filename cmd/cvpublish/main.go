// Package main is the cvpublish entry point: it sends a CV document to a
// cvpress server, sanitizes the generated page, and commits it to a GitHub
// repository.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/publish"
	"github.com/inkfold/cvpress/internal/watcher"
	"github.com/inkfold/cvpress/pkg/utils"
)

var version = "dev"

const defaultServerURL = "http://localhost:8080"

const tokenEnvVar = "GITHUB_TOKEN"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("cvpublish version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		runPublish()
	}
}

// publishFlags are the options shared by one-shot publish and watch mode.
type publishFlags struct {
	repo         string
	branch       string
	message      string
	server       string
	theme        string
	colors       string
	professional bool
	env          string
	debug        bool
}

func (p *publishFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.repo, "repo", "", "target repository as owner/name (required)")
	fs.StringVar(&p.branch, "branch", "", "target branch (default: repository default)")
	fs.StringVar(&p.message, "message", "", "commit message (default: derived from the file name)")
	fs.StringVar(&p.server, "server", defaultServerURL, "cvpress server URL")
	fs.StringVar(&p.theme, "theme", "", "layout variant: classic or banner")
	fs.StringVar(&p.colors, "colors", "", "space-separated theme colors; first token is the accent")
	fs.BoolVar(&p.professional, "professional", false, "restrained serif presentation")
	fs.StringVar(&p.env, "env", "", ".env file to load (default: ./.env when present)")
	fs.BoolVar(&p.debug, "debug", false, "enable debug logging")
}

func (p *publishFlags) options() models.RenderOptions {
	return models.RenderOptions{ThemeType: p.theme, ThemeColors: p.colors, Professional: p.professional}
}

func runPublish() {
	fs := flag.NewFlagSet("cvpublish", flag.ExitOnError)
	var pf publishFlags
	pf.register(fs)
	file := fs.String("file", "", "local CV document to publish (required)")
	remotePath := fs.String("path", "", "file path inside the repository (required)")
	_ = fs.Parse(os.Args[1:])

	if *file == "" || pf.repo == "" || *remotePath == "" {
		fmt.Println("Usage: cvpublish --file <path> --repo owner/name --path remote.html [flags]")
		fs.PrintDefaults()
		os.Exit(1)
	}

	pub, logger, err := buildPublisher(&pf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	owner, repo, err := splitRepo(pf.repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	target := publish.CommitTarget{
		Owner:   owner,
		Repo:    repo,
		Branch:  pf.branch,
		Path:    *remotePath,
		Message: commitMessage(pf.message, *file),
	}

	result, err := pub.Publish(context.Background(), *file, pf.options(), target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Published %s -> %s/%s:%s (commit %s)\n",
		*file, owner, repo, result.RemotePath, result.CommitSHA)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var pf publishFlags
	pf.register(fs)
	dir := fs.String("dir", "", "directory to watch for CV documents (required)")
	remoteDir := fs.String("remote-dir", "", "directory inside the repository to publish into")
	exts := fs.String("ext", "", "comma-separated extensions to publish (default: pdf,docx,doc,odt,xlsx,txt)")
	syncExisting := fs.Bool("sync", true, "publish documents already present in the directory on start")
	_ = fs.Parse(os.Args[2:])

	if *dir == "" || pf.repo == "" {
		fmt.Println("Usage: cvpublish watch --dir <path> --repo owner/name [flags]")
		fs.PrintDefaults()
		os.Exit(1)
	}

	pub, logger, err := buildPublisher(&pf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	owner, repo, err := splitRepo(pf.repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	onDocument := func(path string) {
		target := publish.CommitTarget{
			Owner:   owner,
			Repo:    repo,
			Branch:  pf.branch,
			Path:    remotePathFor(*remoteDir, path),
			Message: commitMessage(pf.message, path),
		}
		result, pubErr := pub.Publish(context.Background(), path, pf.options(), target)
		if pubErr != nil {
			logger.Warn("publish failed", zap.String("file", path), zap.Error(pubErr))
			return
		}
		logger.Info("published",
			zap.String("file", path),
			zap.String("remote_path", result.RemotePath),
			zap.String("commit", result.CommitSHA))
	}

	watchOpts := []watcher.Option{}
	if pf.debug {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	w := watcher.New(*dir, splitExtensions(*exts), true, onDocument, watchOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()
	if *syncExisting {
		w.SyncExisting()
	}
	logger.Info("watching for CV documents",
		zap.String("dir", *dir),
		zap.String("repo", pf.repo))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")
}

// buildPublisher loads the environment, checks the token, and wires the
// publisher with its server client and GitHub committer.
func buildPublisher(pf *publishFlags) (*publish.Publisher, *zap.Logger, error) {
	if pf.env != "" {
		if err := godotenv.Load(pf.env); err != nil {
			return nil, nil, fmt.Errorf("load env file %s: %w", pf.env, err)
		}
	} else {
		_ = godotenv.Load()
	}
	token := os.Getenv(tokenEnvVar)
	if token == "" {
		return nil, nil, fmt.Errorf("%s is not set; export it or put it in a .env file", tokenEnvVar)
	}

	logger, err := utils.NewLogger(pf.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	client := publish.NewClient(pf.server)
	committer := publish.NewGitHubCommitter(context.Background(), token)
	return publish.NewPublisher(client, committer, logger), logger, nil
}

// splitRepo parses an owner/name repository reference.
func splitRepo(s string) (owner, repo string, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q; expected owner/name", s)
	}
	return parts[0], parts[1], nil
}

// remotePathFor derives the repository path for a watched document: the file
// name with its extension swapped for .html, under remoteDir when set.
func remotePathFor(remoteDir, file string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
	if remoteDir == "" {
		return name
	}
	return strings.TrimRight(remoteDir, "/") + "/" + name
}

// commitMessage returns the explicit message, or one derived from the file.
func commitMessage(message, file string) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("Publish CV page for %s", filepath.Base(file))
}

func printUsage() {
	fmt.Println(`cvpublish - publish generated CV pages to a Git repository

Usage:
  cvpublish --file <path> --repo owner/name --path remote.html [flags]
  cvpublish watch --dir <path> --repo owner/name [flags]
  cvpublish version
  cvpublish help

Common Flags:
  --repo string       Target repository as owner/name (required)
  --branch string     Target branch (default: repository default)
  --message string    Commit message (default: derived from the file name)
  --server string     cvpress server URL (default: http://localhost:8080)
  --theme string      Layout variant: classic or banner
  --colors string     Space-separated theme colors; first token is the accent
  --professional      Restrained serif presentation
  --env string        .env file to load (default: ./.env when present)
  --debug             Enable debug logging

Publish Flags:
  --file string       Local CV document to publish (required)
  --path string       File path inside the repository (required)

Watch Flags:
  --dir string        Directory to watch for CV documents (required)
  --remote-dir string Directory inside the repository to publish into
  --ext string        Comma-separated extensions (default: pdf,docx,doc,odt,xlsx,txt)
  --sync              Publish documents already present on start (default: true)

The GitHub token is read from the GITHUB_TOKEN environment variable.

Examples:
  cvpublish --file cv.pdf --repo jane/site --path cv.html
  cvpublish --file cv.docx --repo jane/site --path pages/cv.html --branch gh-pages --theme banner
  cvpublish watch --dir ~/cv-dropbox --repo jane/site --remote-dir pages`)
}

// splitExtensions parses the --ext flag into a list the watcher accepts.
func splitExtensions(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
