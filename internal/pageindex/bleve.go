// Package pageindex provides the Bleve implementation of Index.
package pageindex

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/inkfold/cvpress/internal/models"
)

// indexedPage is the subset of a page that gets indexed.
type indexedPage struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// opened and reused so pages survive restarts. If the mapping changes in code,
// remove the index directory to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	pageMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so skill tokens
	// like "Go" or "Kubernetes" match exactly; stemming mangles short terms.
	textFieldMapping.Analyzer = standard.Name
	pageMapping.AddFieldMappingsAt("name", textFieldMapping)
	pageMapping.AddFieldMappingsAt("content", textFieldMapping)
	im.AddDocumentMapping("page", pageMapping)
	im.DefaultType = "page"
	im.DefaultMapping = pageMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// IndexPage indexes a page's name and extracted text under its ID. Re-indexing
// the same ID replaces the previous entry.
func (b *BleveIndex) IndexPage(ctx context.Context, page *models.Page) error {
	return b.index.Index(page.ID, indexedPage{Name: page.Name, Content: page.Content})
}

// Search runs a match query over name and content and returns up to limit hits.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	hits := make([]Hit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = Hit{ID: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Delete removes a page from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

// DocCount returns the total number of pages in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}
