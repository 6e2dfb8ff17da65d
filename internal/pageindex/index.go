// Package pageindex provides keyword search over generated CV pages.
package pageindex

import (
	"context"

	"github.com/inkfold/cvpress/internal/models"
)

// Index defines keyword search operations over stored pages.
type Index interface {
	IndexPage(ctx context.Context, page *models.Page) error
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
	Delete(ctx context.Context, id string) error
	Close() error
	// DocCount returns the total number of pages in the index.
	DocCount() (uint64, error)
}

// Hit is a single search hit.
type Hit struct {
	ID    string
	Score float64
}
