package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/clusterdex/internal/db"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
)

// sourceField is the JSONPath root returned by FT.SEARCH on JSON indexes.
const sourceField = "$"

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchDocuments(ctx context.Context, q *db.DocumentQuery) (*db.SearchResult, error)
}

// Options tune how requests map onto the search index.
type Options struct {
	IndexPrefix string // prepended to the requested index name
	KeyPrefix   string // stripped from document keys to form hit ids
	Highlight   db.HighlightOptions
}

// Repo implements usecase/clustering.Searcher over FT.SEARCH.
type Repo struct {
	store store
	opts  Options
}

// New creates a search repository.
func New(s store, opts Options) *Repo {
	if opts.Highlight.Separator == "" {
		opts.Highlight.Separator = "..."
	}
	return &Repo{store: s, opts: opts}
}

// Search runs q and returns hits in search order. Highlighted fragments come
// from a second query restricted to the highlight fields and are merged by key.
func (r *Repo) Search(ctx context.Context, q *hit.Query) ([]hit.Hit, error) {
	indexName := r.opts.IndexPrefix + q.Index

	returnFields := append([]string(nil), q.Fields...)
	if q.IncludeSource {
		returnFields = append(returnFields, sourceField)
	}

	sr, err := r.store.SearchDocuments(ctx, &db.DocumentQuery{
		IndexName:    indexName,
		Query:        q.Query,
		Limit:        q.Size,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", q.Index, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	var highlights map[string]map[string][]string
	if len(q.HighlightFields) > 0 {
		highlights, err = r.searchHighlights(ctx, indexName, q)
		if err != nil {
			return nil, fmt.Errorf("highlight %s: %w", q.Index, err)
		}
	}

	hits := make([]hit.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		h, err := r.toHit(entry, q, highlights[entry.Key])
		if err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func (r *Repo) searchHighlights(
	ctx context.Context, indexName string, q *hit.Query,
) (map[string]map[string][]string, error) {
	opts := r.opts.Highlight
	opts.Fields = q.HighlightFields

	sr, err := r.store.SearchDocuments(ctx, &db.DocumentQuery{
		IndexName:    indexName,
		Query:        q.Query,
		Limit:        q.Size,
		ReturnFields: q.HighlightFields,
		Highlight:    &opts,
	})
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, nil
	}

	out := make(map[string]map[string][]string, len(sr.Entries))
	for _, entry := range sr.Entries {
		byField := make(map[string][]string, len(q.HighlightFields))
		for _, f := range q.HighlightFields {
			if frags := splitFragments(entry.Fields[f], opts.Separator); len(frags) > 0 {
				byField[f] = frags
			}
		}
		out[entry.Key] = byField
	}
	return out, nil
}

func (r *Repo) toHit(entry db.SearchEntry, q *hit.Query, highlights map[string][]string) (hit.Hit, error) {
	id := strings.TrimPrefix(entry.Key, r.opts.KeyPrefix)

	fields := make(map[string]any, len(q.Fields))
	for _, f := range q.Fields {
		if v, ok := entry.Fields[f]; ok {
			fields[f] = v
		}
	}

	var source map[string]any
	if raw, ok := entry.Fields[sourceField]; ok && q.IncludeSource {
		if err := json.Unmarshal([]byte(raw), &source); err != nil {
			return hit.Hit{}, fmt.Errorf("decode source of %s: %w", id, err)
		}
	}

	return hit.New(id, entry.Score, fields, highlights, source), nil
}

// splitFragments splits a summarized value into trimmed, non-empty fragments.
func splitFragments(value, sep string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
