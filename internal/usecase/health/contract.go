package health

import (
	"context"

	"github.com/kailas-cloud/clusterdex/internal/db"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexInspector reads search index metadata.
type IndexInspector interface {
	IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error)
}

// Checker checks an optional dependency (embedding provider, search index).
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f CheckerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

// IndexCheck fails when the named search index is missing or unreadable.
func IndexCheck(inspector IndexInspector, index string) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		_, err := inspector.IndexInfo(ctx, index)
		return err
	})
}
