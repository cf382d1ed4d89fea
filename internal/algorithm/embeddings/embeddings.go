// Package embeddings implements leader clustering over text embeddings:
// each unassigned document opens a cluster and absorbs every later document
// whose cosine similarity to it reaches the threshold.
package embeddings

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/algorithm/attr"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/language"
)

// ID is the registry id of this algorithm.
const ID = "embeddings"

const minLabelTermLength = 3

// Algorithm is one configured instance.
type Algorithm struct {
	embedder       domain.Embedder
	attrs          *attr.Set
	maxClusters    *attr.Int
	minClusterSize *attr.Int
	threshold      *attr.Float
	labelCount     *attr.Int
	queryHint      *attr.String
}

var _ algorithm.Algorithm = (*Algorithm)(nil)

// New creates an instance embedding documents with embedder.
func New(embedder domain.Embedder) *Algorithm {
	a := &Algorithm{
		embedder: embedder,
		maxClusters: attr.NewInt("maxClusters", 15, 1, 1000,
			"Maximum number of clusters returned"),
		minClusterSize: attr.NewInt("minClusterSize", 2, 1, 1000,
			"Smaller clusters are dropped"),
		threshold: attr.NewFloat("similarityThreshold", 0.8, 0, 1,
			"Minimum cosine similarity to a cluster leader"),
		labelCount: attr.NewInt("labelCount", 3, 1, 10,
			"Number of frequent terms used as labels"),
		queryHint: attr.NewString(algorithm.QueryHintAttribute, "",
			"Query terms that should not become cluster labels"),
	}
	a.attrs = attr.NewSet(a.maxClusters, a.minClusterSize, a.threshold, a.labelCount, a.queryHint)
	return a
}

// Factory registers the algorithm bound to embedder.
func Factory(embedder domain.Embedder) algorithm.Factory {
	return algorithm.Factory{
		ID:          ID,
		Description: "Leader clustering over text embeddings",
		New:         func() algorithm.Algorithm { return New(embedder) },
	}
}

// Attributes returns the declared attributes.
func (a *Algorithm) Attributes() *attr.Set { return a.attrs }

// Cluster embeds docs and groups them by similarity.
func (a *Algorithm) Cluster(
	ctx context.Context, docs []*document.Document, lang *language.Resources,
) ([]*cluster.Cluster, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if lang == nil {
		return nil, fmt.Errorf("language resources are required")
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text()
	}
	vectors, err := a.embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	assigned := make([]bool, len(docs))
	var out []*cluster.Cluster
	for i := range docs {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []int{i}
		var simSum float64
		for j := i + 1; j < len(docs); j++ {
			if assigned[j] {
				continue
			}
			if s := cosine(vectors[i], vectors[j]); s >= a.threshold.Value() {
				assigned[j] = true
				members = append(members, j)
				simSum += s
			}
		}
		if len(members) < a.minClusterSize.Value() {
			continue
		}
		c := &cluster.Cluster{Score: 1.0}
		if len(members) > 1 {
			c.Score = simSum / float64(len(members)-1)
		}
		for _, m := range members {
			c.Documents = append(c.Documents, docs[m])
		}
		c.Labels = a.label(c.Documents, lang)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Documents) > len(out[j].Documents)
	})
	if len(out) > a.maxClusters.Value() {
		out = out[:a.maxClusters.Value()]
	}
	return out, nil
}

func (a *Algorithm) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if be, ok := a.embedder.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("batch embed: %w", err)
		}
		return res.Embeddings, nil
	}
	res, err := domain.BatchFallback(ctx, a.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return res.Embeddings, nil
}

// label picks the most frequent terms across docs, skipping query hint terms.
func (a *Algorithm) label(docs []*document.Document, lang *language.Resources) []string {
	hint := make(map[string]struct{})
	for _, t := range lang.Terms(a.queryHint.Value(), 1) {
		hint[t] = struct{}{}
	}
	freq := make(map[string]int)
	for _, d := range docs {
		for _, t := range lang.Terms(d.Text(), minLabelTermLength) {
			if _, skip := hint[t]; !skip {
				freq[t]++
			}
		}
	}
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > a.labelCount.Value() {
		terms = terms[:a.labelCount.Value()]
	}
	return terms
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
