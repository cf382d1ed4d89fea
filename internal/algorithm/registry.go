// Package algorithm is the registration table of clustering algorithms.
package algorithm

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/clusterdex/internal/algorithm/attr"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/language"
)

// QueryHintAttribute is the attribute that receives the request's query hint.
const QueryHintAttribute = "queryHint"

// Algorithm is one configured clustering instance. Attributes are applied
// before the first Cluster call; Cluster must be safe to call concurrently
// for different partitions afterwards.
type Algorithm interface {
	Attributes() *attr.Set
	Cluster(ctx context.Context, docs []*document.Document, lang *language.Resources) ([]*cluster.Cluster, error)
}

// Factory creates fresh algorithm instances.
type Factory struct {
	ID          string
	Description string
	New         func() Algorithm
}

// Registry maps algorithm ids to factories. Read-only after startup.
type Registry struct {
	order     []string
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. Ids must be unique.
func (r *Registry) Register(f Factory) error {
	if f.ID == "" {
		return fmt.Errorf("algorithm id is required")
	}
	if f.New == nil {
		return fmt.Errorf("algorithm %q: constructor is required", f.ID)
	}
	if _, dup := r.factories[f.ID]; dup {
		return fmt.Errorf("algorithm %q already registered", f.ID)
	}
	r.factories[f.ID] = f
	r.order = append(r.order, f.ID)
	return nil
}

// MustRegister calls Register and panics on error.
func (r *Registry) MustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	f, ok := r.factories[id]
	return f, ok
}

// List returns factories in registration order.
func (r *Registry) List() []Factory {
	out := make([]Factory, len(r.order))
	for i, id := range r.order {
		out[i] = r.factories[id]
	}
	return out
}

// Default returns the first registered algorithm id.
func (r *Registry) Default() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}
