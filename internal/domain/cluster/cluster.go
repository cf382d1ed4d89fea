package cluster

import "github.com/kailas-cloud/clusterdex/internal/domain/document"

// MaxDepth bounds cluster tree nesting accepted from algorithms.
const MaxDepth = 64

// UngroupedLabel is the reserved label of the synthetic ungrouped bucket.
const UngroupedLabel = "Ungrouped documents"

// Cluster is an algorithm-native cluster. Read-only once returned by an algorithm.
type Cluster struct {
	Labels      []string
	Score       float64
	Documents   []*document.Document
	Subclusters []*Cluster
}

// AllDocuments visits every document referenced by c and its subclusters.
func (c *Cluster) AllDocuments(visit func(*document.Document)) {
	if c == nil {
		return
	}
	for _, d := range c.Documents {
		visit(d)
	}
	for _, sub := range c.Subclusters {
		sub.AllDocuments(visit)
	}
}

// Group is the response-facing form of a cluster.
type Group struct {
	ID        int
	Labels    []string
	Score     float64
	Documents []string // stable references
	Subgroups []Group
	Ungrouped bool
}

// DistinctDocuments counts distinct references held directly by g.
func (g *Group) DistinctDocuments() int {
	seen := make(map[string]struct{}, len(g.Documents))
	for _, ref := range g.Documents {
		seen[ref] = struct{}{}
	}
	return len(seen)
}

// Walk visits g and all nested subgroups depth-first.
func (g *Group) Walk(visit func(*Group)) {
	visit(g)
	for i := range g.Subgroups {
		g.Subgroups[i].Walk(visit)
	}
}
