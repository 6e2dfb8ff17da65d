package publish

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/models"
)

// Publisher runs the full publish flow: upload a local CV document to the
// generate service, sanitize the returned page, commit it to the repository.
type Publisher struct {
	client    *Client
	committer Committer
	policy    *bluemonday.Policy
	logger    *zap.Logger
}

// Result reports where a publish run landed.
type Result struct {
	PageID     string
	RemotePath string
	CommitSHA  string
}

// NewPublisher creates a publisher from a server client and a committer.
func NewPublisher(client *Client, committer Committer, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:    client,
		committer: committer,
		policy:    NewPolicy(),
		logger:    logger,
	}
}

// Publish uploads the file at path, generates a page with opts, sanitizes the
// HTML, and commits it to target.
func (p *Publisher) Publish(ctx context.Context, path string, opts models.RenderOptions, target CommitTarget) (*Result, error) {
	uploaded, err := p.client.UploadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("file uploaded",
		zap.String("file", path),
		zap.String("stored_as", uploaded.Filename))

	generated, err := p.client.Generate(ctx, &models.GenerateRequest{
		UploadedFilePath: uploaded.LocalPath,
		ThemeType:        opts.ThemeType,
		ThemeColors:      opts.ThemeColors,
		Professional:     opts.Professional,
	})
	if err != nil {
		return nil, err
	}

	clean := p.policy.Sanitize(generated.HTML)
	if clean == "" {
		return nil, fmt.Errorf("sanitized page for %s is empty", path)
	}

	sha, err := p.committer.Commit(ctx, target, []byte(clean))
	if err != nil {
		return nil, err
	}

	p.logger.Info("page published",
		zap.String("file", path),
		zap.String("page_id", generated.PageID),
		zap.String("remote_path", target.Path),
		zap.String("commit", sha))
	return &Result{
		PageID:     generated.PageID,
		RemotePath: target.Path,
		CommitSHA:  sha,
	}, nil
}
