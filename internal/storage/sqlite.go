// Package storage provides the SQLite implementation of Store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/inkfold/cvpress/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		name TEXT,
		content TEXT NOT NULL,
		html TEXT NOT NULL,
		theme TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pages_updated_at ON pages(updated_at);
	`
	_, err := db.Exec(schema)
	return err
}

// SavePage inserts a page or, when the ID already exists, updates the stored
// record in place. created_at survives updates; updated_at always moves.
func (s *SQLiteStore) SavePage(ctx context.Context, page *models.Page) error {
	now := time.Now()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (id, source, name, content, html, theme, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			name = excluded.name,
			content = excluded.content,
			html = excluded.html,
			theme = excluded.theme,
			updated_at = excluded.updated_at`,
		page.ID, page.Source, page.Name, page.Content, page.HTML, page.Theme,
		page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save page %s: %w", page.ID, err)
	}
	return nil
}

// GetPage returns a page by ID.
func (s *SQLiteStore) GetPage(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, name, content, html, theme, created_at, updated_at
		 FROM pages WHERE id = ?`, id,
	).Scan(&page.ID, &page.Source, &page.Name, &page.Content, &page.HTML,
		&page.Theme, &page.CreatedAt, &page.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages returns pages ordered by most recent update.
func (s *SQLiteStore) ListPages(ctx context.Context, offset, limit int) ([]*models.Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, name, content, html, theme, created_at, updated_at
		 FROM pages ORDER BY updated_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.Page
	for rows.Next() {
		var page models.Page
		if err := rows.Scan(&page.ID, &page.Source, &page.Name, &page.Content,
			&page.HTML, &page.Theme, &page.CreatedAt, &page.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// DeletePage removes a page by ID.
func (s *SQLiteStore) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountPages returns the total number of stored pages.
func (s *SQLiteStore) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
