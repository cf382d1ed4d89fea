package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/clusterdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.DocumentQuery) (*db.SearchResult, error)
	queries  []*db.DocumentQuery
}

func (m *mockStore) SearchDocuments(ctx context.Context, q *db.DocumentQuery) (*db.SearchResult, error) {
	m.queries = append(m.queries, q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, Options{
		IndexPrefix: "idx:",
		KeyPrefix:   "doc:",
		Highlight:   db.HighlightOptions{Fragments: 3, FragmentLen: 20, Separator: "|"},
	})
	return repo, ms
}
