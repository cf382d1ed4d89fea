package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	Searcher
	IndexInspector
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks that the store answers and can serve searches.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchDocuments(ctx context.Context, q *DocumentQuery) (*SearchResult, error)
}

// IndexInfo summarizes one FT index.
type IndexInfo struct {
	Name     string
	NumDocs  int64
	Indexing bool // background indexing still in progress
}

// IndexInspector reports on search indexes.
type IndexInspector interface {
	IndexInfo(ctx context.Context, name string) (*IndexInfo, error)
}
