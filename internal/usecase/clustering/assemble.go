package clustering

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
)

// idCounter hands out group ids for one response. First id is 1.
type idCounter struct {
	last int
}

func (c *idCounter) next() int {
	c.last++
	return c.last
}

// assemble adapts every language's forest into one response tree and
// optionally appends the ungrouped bucket.
//
// With several languages the top-level groups are stably sorted by the
// number of distinct documents each references directly, largest first.
// The bucket is omitted when every document is clustered.
func assemble(byLanguage []languageClusters, docs []*document.Document, createUngrouped bool) ([]cluster.Group, error) {
	ids := &idCounter{}
	var groups []cluster.Group

	for _, lc := range byLanguage {
		for _, c := range lc.clusters {
			if c == nil {
				continue
			}
			g, err := adapt(c, ids, 1)
			if err != nil {
				return nil, domain.NewClusteringError(fmt.Errorf("language %s: %w", lc.language, err))
			}
			groups = append(groups, g)
		}
	}

	if len(byLanguage) > 1 {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].DistinctDocuments() > groups[j].DistinctDocuments()
		})
	}

	if createUngrouped {
		if rest := ungrouped(byLanguage, docs); len(rest) > 0 {
			groups = append(groups, cluster.Group{
				ID:        ids.next(),
				Labels:    []string{cluster.UngroupedLabel},
				Score:     0,
				Documents: rest,
				Ungrouped: true,
			})
		}
	}

	return groups, nil
}

// adapt converts c and its subclusters, assigning ids in pre-order.
func adapt(c *cluster.Cluster, ids *idCounter, depth int) (cluster.Group, error) {
	if depth > cluster.MaxDepth {
		return cluster.Group{}, fmt.Errorf("cluster tree deeper than %d levels", cluster.MaxDepth)
	}

	g := cluster.Group{
		ID:        ids.next(),
		Labels:    append([]string(nil), c.Labels...),
		Score:     c.Score,
		Documents: make([]string, 0, len(c.Documents)),
	}
	for _, d := range c.Documents {
		g.Documents = append(g.Documents, d.ID())
	}
	for _, sub := range c.Subclusters {
		if sub == nil {
			continue
		}
		sg, err := adapt(sub, ids, depth+1)
		if err != nil {
			return cluster.Group{}, err
		}
		g.Subgroups = append(g.Subgroups, sg)
	}
	return g, nil
}

// ungrouped returns references of docs not claimed by any cluster, in input order.
func ungrouped(byLanguage []languageClusters, docs []*document.Document) []string {
	claimed := make(map[string]struct{})
	for _, lc := range byLanguage {
		for _, c := range lc.clusters {
			if c == nil {
				continue
			}
			c.AllDocuments(func(d *document.Document) {
				claimed[d.ID()] = struct{}{}
			})
		}
	}

	var rest []string
	for _, d := range docs {
		if _, ok := claimed[d.ID()]; !ok {
			rest = append(rest, d.ID())
		}
	}
	return rest
}
