package publish

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// CommitTarget names the repository location a page is committed to.
type CommitTarget struct {
	Owner   string
	Repo    string
	Branch  string // empty = repository default branch
	Path    string
	Message string
}

// Committer writes content to a hosted repository. Commit returns the SHA of
// the resulting commit.
type Committer interface {
	Commit(ctx context.Context, target CommitTarget, content []byte) (string, error)
}

// GitHubCommitter commits through the GitHub contents API.
type GitHubCommitter struct {
	client *github.Client
}

// NewGitHubCommitter builds a committer authenticated with token.
func NewGitHubCommitter(ctx context.Context, token string) *GitHubCommitter {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &GitHubCommitter{client: github.NewClient(tc)}
}

// WithBaseURL points the committer at a different API endpoint. Used by tests
// and GitHub Enterprise installs.
func (g *GitHubCommitter) WithBaseURL(rawURL string) (*GitHubCommitter, error) {
	client, err := g.client.WithEnterpriseURLs(rawURL, rawURL)
	if err != nil {
		return nil, fmt.Errorf("set api base url: %w", err)
	}
	return &GitHubCommitter{client: client}, nil
}

// Commit creates or updates the file at target.Path. When the file already
// exists its current SHA is fetched first and sent back with the update so
// the write lands as an update instead of a conflicting create.
func (g *GitHubCommitter) Commit(ctx context.Context, target CommitTarget, content []byte) (string, error) {
	getOpts := &github.RepositoryContentGetOptions{Ref: target.Branch}
	existing, _, resp, err := g.client.Repositories.GetContents(ctx, target.Owner, target.Repo, target.Path, getOpts)

	var sha *string
	switch {
	case err == nil && existing != nil:
		sha = existing.SHA
	case err == nil:
		return "", fmt.Errorf("%s exists in %s/%s but is not a file", target.Path, target.Owner, target.Repo)
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		// New file; create below without a SHA.
	default:
		return "", fmt.Errorf("look up %s: %w", target.Path, err)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(target.Message),
		Content: content,
		SHA:     sha,
	}
	if target.Branch != "" {
		opts.Branch = github.String(target.Branch)
	}

	var result *github.RepositoryContentResponse
	if sha != nil {
		result, _, err = g.client.Repositories.UpdateFile(ctx, target.Owner, target.Repo, target.Path, opts)
	} else {
		result, _, err = g.client.Repositories.CreateFile(ctx, target.Owner, target.Repo, target.Path, opts)
	}
	if err != nil {
		return "", fmt.Errorf("commit %s: %w", target.Path, err)
	}
	if result.Commit.SHA == nil {
		return "", nil
	}
	return *result.Commit.SHA, nil
}
