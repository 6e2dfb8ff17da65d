// Package storage defines persistence for generated CV pages.
package storage

import (
	"context"
	"errors"

	"github.com/inkfold/cvpress/internal/models"
)

// ErrNotFound reports that no page exists under the requested ID.
var ErrNotFound = errors.New("page not found")

// Store defines page persistence operations. SavePage is an upsert keyed on
// the page's deterministic ID.
type Store interface {
	SavePage(ctx context.Context, page *models.Page) error
	GetPage(ctx context.Context, id string) (*models.Page, error)
	ListPages(ctx context.Context, offset, limit int) ([]*models.Page, error)
	DeletePage(ctx context.Context, id string) error
	CountPages(ctx context.Context) (int64, error)

	Close() error
}
