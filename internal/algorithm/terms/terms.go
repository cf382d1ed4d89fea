// Package terms implements a shared-term clustering algorithm: documents
// sharing a frequent non-stopword term form a cluster, and clusters whose
// document sets overlap enough are merged under several labels.
package terms

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/algorithm/attr"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/language"
)

// ID is the registry id of this algorithm.
const ID = "terms"

// OtherTopicsLabel labels the catch-all cluster produced when otherTopics is enabled.
const OtherTopicsLabel = "Other Topics"

const (
	minTermLength = 3
	maxLabels     = 3
)

// Algorithm is one configured instance.
type Algorithm struct {
	attrs            *attr.Set
	maxClusters      *attr.Int
	minClusterSize   *attr.Int
	maxDocumentRatio *attr.Float
	mergeThreshold   *attr.Float
	otherTopics      *attr.Bool
	queryHint        *attr.String
}

var _ algorithm.Algorithm = (*Algorithm)(nil)

// New creates an instance with default attributes.
func New() algorithm.Algorithm {
	a := &Algorithm{
		maxClusters: attr.NewInt("maxClusters", 15, 1, 1000,
			"Maximum number of clusters returned"),
		minClusterSize: attr.NewInt("minClusterSize", 2, 1, 1000,
			"Minimum number of documents sharing a term"),
		maxDocumentRatio: attr.NewFloat("maxDocumentRatio", 0.9, 0, 1,
			"Terms present in a larger share of documents are ignored"),
		mergeThreshold: attr.NewFloat("clusterMergingThreshold", 0.7, 0, 1,
			"Jaccard overlap above which term clusters are merged"),
		otherTopics: attr.NewBool("otherTopics", false,
			"Collect unclustered documents in an \"Other Topics\" cluster"),
		queryHint: attr.NewString(algorithm.QueryHintAttribute, "",
			"Query terms that should not become cluster labels"),
	}
	a.attrs = attr.NewSet(a.maxClusters, a.minClusterSize, a.maxDocumentRatio,
		a.mergeThreshold, a.otherTopics, a.queryHint)
	return a
}

// Factory registers the algorithm.
func Factory() algorithm.Factory {
	return algorithm.Factory{
		ID:          ID,
		Description: "Groups documents by shared frequent terms",
		New:         New,
	}
}

// Attributes returns the declared attributes.
func (a *Algorithm) Attributes() *attr.Set { return a.attrs }

type group struct {
	labels []string
	docs   map[int]struct{}
}

// Cluster groups docs using lang's tokenizer and stopwords.
func (a *Algorithm) Cluster(
	ctx context.Context, docs []*document.Document, lang *language.Resources,
) ([]*cluster.Cluster, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if lang == nil {
		return nil, fmt.Errorf("language resources are required")
	}

	hint := make(map[string]struct{})
	for _, t := range lang.Terms(a.queryHint.Value(), 1) {
		hint[t] = struct{}{}
	}

	termDocs := make(map[string][]int)
	for i, d := range docs {
		seen := make(map[string]struct{})
		for _, t := range lang.Terms(d.Text(), minTermLength) {
			if _, skip := hint[t]; skip {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			termDocs[t] = append(termDocs[t], i)
		}
	}

	maxDF := a.maxDocumentRatio.Value() * float64(len(docs))
	candidates := make([]string, 0, len(termDocs))
	for t, ds := range termDocs {
		if len(ds) >= a.minClusterSize.Value() && float64(len(ds)) <= maxDF {
			candidates = append(candidates, t)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := len(termDocs[candidates[i]]), len(termDocs[candidates[j]])
		if di != dj {
			return di > dj
		}
		return candidates[i] < candidates[j]
	})

	var groups []*group
	for _, term := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ds := termDocs[term]
		merged := false
		for _, g := range groups {
			if jaccard(g.docs, ds) >= a.mergeThreshold.Value() {
				if len(g.labels) < maxLabels {
					g.labels = append(g.labels, term)
				}
				for _, i := range ds {
					g.docs[i] = struct{}{}
				}
				merged = true
				break
			}
		}
		if merged || len(groups) >= a.maxClusters.Value() {
			continue
		}
		g := &group{labels: []string{term}, docs: make(map[int]struct{}, len(ds))}
		for _, i := range ds {
			g.docs[i] = struct{}{}
		}
		groups = append(groups, g)
	}

	clustered := make(map[int]struct{})
	out := make([]*cluster.Cluster, 0, len(groups)+1)
	for _, g := range groups {
		idx := make([]int, 0, len(g.docs))
		for i := range g.docs {
			idx = append(idx, i)
			clustered[i] = struct{}{}
		}
		sort.Ints(idx)
		c := &cluster.Cluster{
			Labels:    g.labels,
			Score:     float64(len(idx)) / float64(len(docs)),
			Documents: make([]*document.Document, len(idx)),
		}
		for k, i := range idx {
			c.Documents[k] = docs[i]
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Documents) > len(out[j].Documents)
	})

	if a.otherTopics.Value() && len(clustered) < len(docs) {
		other := &cluster.Cluster{Labels: []string{OtherTopicsLabel}}
		for i, d := range docs {
			if _, ok := clustered[i]; !ok {
				other.Documents = append(other.Documents, d)
			}
		}
		out = append(out, other)
	}

	return out, nil
}

// jaccard returns |a ∩ b| / |a ∪ b| where b holds distinct indexes.
func jaccard(a map[int]struct{}, b []int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for _, i := range b {
		if _, ok := a[i]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
