package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/clusterdex/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	readyInitialDelay = 50 * time.Millisecond
	readyMaxDelay     = time.Second
)

// Config holds connection parameters.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store serves FT.SEARCH queries and the embedding cache over rueidis.
// The server must run the search module (Redis 8+ or Redis Stack).
type Store struct {
	client rueidis.Client
}

// NewStore connects to the configured addresses.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: at least one address is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH and FT.INFO are parsed as flat RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("redis: connect %v: %w", cfg.Addrs, err)
	}

	return &Store{client: client}, nil
}

// Ping checks that the server answers and that the search module is loaded.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if err := s.do(ctx, s.b().Arbitrary(db.OpList).Build()).Error(); err != nil {
		if isRedisErr(err, "unknown command") {
			return fmt.Errorf("%w: %v", db.ErrSearchUnavailable, err)
		}
		return &db.Error{Op: db.OpList, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady retries Ping with backoff until it succeeds or timeout expires.
// A server without the search module fails immediately.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delay := readyInitialDelay
	for {
		err := s.Ping(ctx)
		if err == nil || errors.Is(err, db.ErrSearchUnavailable) {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("store not ready after %s: %w (last error: %v)", timeout, ctx.Err(), err)
		case <-time.After(delay):
		}
		delay = min(delay*2, readyMaxDelay)
	}
}

// IndexInfo reads the document count and indexing state of an FT index.
func (s *Store) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	raw, err := s.do(ctx, s.b().Arbitrary(db.OpInfo).Args(name).Build()).ToArray()
	if err != nil {
		if isIndexMissing(err) {
			return nil, fmt.Errorf("%w: %s", db.ErrIndexNotFound, name)
		}
		return nil, &db.Error{Op: db.OpInfo, Err: err}
	}

	info := &db.IndexInfo{Name: name}
	for i := 0; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		switch key {
		case "num_docs":
			if n, err := raw[i+1].AsInt64(); err == nil {
				info.NumDocs = n
			}
		case "indexing":
			if n, err := raw[i+1].AsInt64(); err == nil {
				info.Indexing = n != 0
			}
		}
	}
	return info, nil
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// isIndexMissing matches the error texts FT commands use for unknown indexes.
func isIndexMissing(err error) bool {
	return isRedisErr(err, "no such index") || isRedisErr(err, "unknown index name")
}

// isRedisErr reports whether err is a server error containing substr, ignoring case.
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
