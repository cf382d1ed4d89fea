package chi

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/clusterdex/internal/algorithm/attr"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/fieldspec"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
	"github.com/kailas-cloud/clusterdex/internal/domain/request"
	gen "github.com/kailas-cloud/clusterdex/internal/transport/generated"
	clusteringuc "github.com/kailas-cloud/clusterdex/internal/usecase/clustering"
)

func requestFromGen(index gen.IndexName, body *gen.ClusterRequest) (request.Request, error) {
	mapping := make(map[fieldspec.Logical][]string, len(body.FieldMapping))
	for name, specs := range body.FieldMapping {
		logical, err := fieldspec.ParseLogical(name)
		if err != nil {
			return request.Request{}, fmt.Errorf("field_mapping: %w", err)
		}
		mapping[logical] = append(mapping[logical], specs...)
	}

	params := request.Params{
		Index:           index,
		QueryHint:       deref(body.QueryHint),
		Algorithm:       deref(body.Algorithm),
		FieldMapping:    mapping,
		CreateUngrouped: deref(body.CreateUngrouped),
		IncludeHits:     true,
		MaxHits:         deref(body.MaxHits),
		DefaultLanguage: deref(body.DefaultLanguage),
	}
	if body.SearchRequest != nil {
		params.Query = deref(body.SearchRequest.Query)
		params.Size = deref(body.SearchRequest.Size)
	}
	if body.Attributes != nil {
		params.Attributes = *body.Attributes
	}
	if body.IncludeHits != nil {
		params.IncludeHits = *body.IncludeHits
	}

	r, err := request.New(params)
	if err != nil {
		return request.Request{}, fmt.Errorf("build clustering request: %w", err)
	}
	return r, nil
}

func responseToGen(resp *clusteringuc.Response) gen.ClusterResponse {
	out := gen.ClusterResponse{
		Info:     resp.Info,
		Clusters: groupsToGen(resp.Groups),
	}
	if resp.Hits != nil {
		hits := make([]gen.Hit, len(resp.Hits))
		for i := range resp.Hits {
			hits[i] = hitToGen(&resp.Hits[i])
		}
		out.SearchResponse = &gen.SearchResponse{Hits: hits}
	}
	return out
}

func groupsToGen(groups []cluster.Group) []gen.Cluster {
	out := make([]gen.Cluster, len(groups))
	for i := range groups {
		g := &groups[i]
		phrases := g.Labels
		if phrases == nil {
			phrases = []string{}
		}
		c := gen.Cluster{
			Id:      g.ID,
			Score:   g.Score,
			Label:   strings.Join(g.Labels, ", "),
			Phrases: phrases,
		}
		if g.Ungrouped {
			c.OtherTopics = ptr(true)
		}
		if len(g.Documents) > 0 {
			c.Documents = ptr(g.Documents)
		}
		if len(g.Subgroups) > 0 {
			c.Clusters = ptr(groupsToGen(g.Subgroups))
		}
		out[i] = c
	}
	return out
}

func hitToGen(h *hit.Hit) gen.Hit {
	out := gen.Hit{
		Id:    h.ID(),
		Score: h.Score(),
	}
	if f := h.Fields(); len(f) > 0 {
		out.Fields = &f
	}
	if hl := h.Highlights(); len(hl) > 0 {
		out.Highlight = &hl
	}
	if src := h.Source(); src != nil {
		out.Source = &src
	}
	return out
}

func algorithmsToGen(infos []clusteringuc.AlgorithmInfo) gen.AlgorithmListResponse {
	out := make([]gen.Algorithm, len(infos))
	for i, info := range infos {
		attrs := make([]gen.AlgorithmAttribute, len(info.Attributes))
		for j, d := range info.Attributes {
			attrs[j] = attributeToGen(d)
		}
		out[i] = gen.Algorithm{
			Id:         info.ID,
			Attributes: attrs,
			Languages:  info.Languages,
		}
		if info.Description != "" {
			out[i].Description = ptr(info.Description)
		}
	}
	return gen.AlgorithmListResponse{Algorithms: out}
}

func attributeToGen(d attr.Descriptor) gen.AlgorithmAttribute {
	def := d.Default
	out := gen.AlgorithmAttribute{
		Name:    d.Name,
		Type:    gen.AlgorithmAttributeType(d.Kind),
		Default: &def,
		Min:     d.Min,
		Max:     d.Max,
	}
	if d.Description != "" {
		out.Description = ptr(d.Description)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
