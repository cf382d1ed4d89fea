package clustering

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterdex/internal/algorithm/attr"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/domain/fieldspec"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
	"github.com/kailas-cloud/clusterdex/internal/domain/request"
	logpkg "github.com/kailas-cloud/clusterdex/internal/logger"
	"github.com/kailas-cloud/clusterdex/internal/metrics"
)

// Response is the outcome of one clustering call.
type Response struct {
	Hits   []hit.Hit // nil unless the request asked for hits
	Groups []cluster.Group
	Info   map[string]string
}

// AlgorithmInfo describes a registered algorithm.
type AlgorithmInfo struct {
	ID          string
	Description string
	Attributes  []attr.Descriptor
	Languages   []string
}

// Service runs search, extraction, per-language clustering and result assembly.
// Holds no per-request state; safe for concurrent use.
type Service struct {
	search           Searcher
	registry         Registry
	catalog          LanguageCatalog
	detector         LanguageDetector
	defaultAlgorithm string
	defaultLanguage  string
	maxHitsCap       int
	workers          int
	logger           *zap.Logger
}

// New creates a clustering service.
func New(search Searcher, registry Registry, catalog LanguageCatalog, logger *zap.Logger) *Service {
	return &Service{
		search:   search,
		registry: registry,
		catalog:  catalog,
		workers:  1,
		logger:   logger,
	}
}

// WithDefaults sets the algorithm and language used when a request names none.
func (s *Service) WithDefaults(algorithmID, lang string) *Service {
	s.defaultAlgorithm = algorithmID
	s.defaultLanguage = lang
	return s
}

// WithMaxHitsCap bounds how many hits any request may cluster (0 = unbounded).
func (s *Service) WithMaxHitsCap(n int) *Service {
	if n > 0 {
		s.maxHitsCap = n
	}
	return s
}

// WithWorkers sets how many language partitions are clustered concurrently.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithDetector enables language detection for documents without a mapped language.
func (s *Service) WithDetector(d LanguageDetector) *Service {
	s.detector = d
	return s
}

// Cluster executes req: one search call, then clustering per language partition.
func (s *Service) Cluster(ctx context.Context, req *request.Request) (*Response, error) {
	start := time.Now()
	logger := logpkg.FromContextOr(ctx, s.logger)

	algID := req.Algorithm()
	if algID == "" {
		algID = s.defaultAlgorithm
	}
	factory, ok := s.registry.Lookup(algID)
	if !ok {
		return nil, domain.NewUnknownAlgorithm(algID)
	}

	defaultLang := req.DefaultLanguage()
	if defaultLang == "" {
		defaultLang = s.defaultLanguage
	}
	if !s.catalog.Supports(defaultLang) {
		return nil, &domain.UnsupportedLanguageError{Language: defaultLang, Supported: s.catalog.Supported()}
	}

	alg, err := prepareAlgorithm(factory, req.Attributes(), req.QueryHint())
	if err != nil {
		metrics.ClusteringRequestsTotal.WithLabelValues(algID, "error").Inc()
		return nil, err
	}

	searchStart := time.Now()
	hits, err := s.search.Search(ctx, buildQuery(req))
	searchElapsed := time.Since(searchStart)
	metrics.SearchDuration.Observe(searchElapsed.Seconds())
	if err != nil {
		metrics.ClusteringRequestsTotal.WithLabelValues(algID, "search_error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	maxHits := s.effectiveMaxHits(req.MaxHits())
	clusterHits := hits
	if maxHits > 0 && len(clusterHits) > maxHits {
		clusterHits = clusterHits[:maxHits]
	}

	docs := s.extractAll(clusterHits, req.Mappings(), logger)
	parts := partition(docs, defaultLang)

	ctx, usage := domain.NewContextWithUsage(ctx)
	res, err := s.dispatch(ctx, parts, alg, algID, logger)
	if err != nil {
		metrics.ClusteringRequestsTotal.WithLabelValues(algID, "error").Inc()
		logger.Error("Clustering failed", zap.String("algorithm", algID), zap.Error(err))
		return nil, err
	}

	groups, err := assemble(res.byLanguage, docs, req.CreateUngrouped())
	if err != nil {
		metrics.ClusteringRequestsTotal.WithLabelValues(algID, "error").Inc()
		return nil, err
	}

	tokens, used := usage.Snapshot()
	info := buildInfo(infoInput{
		algorithm:   algID,
		search:      searchElapsed,
		clustering:  res.elapsed,
		total:       time.Since(start),
		maxHits:     maxHits,
		includeHits: req.IncludeHits(),
		languages:   res.Languages(),
		tokens:      tokens,
		usedTokens:  used,
	})

	topLevel := 0
	for _, lc := range res.byLanguage {
		topLevel += len(lc.clusters)
	}
	metrics.ClustersTotal.WithLabelValues(algID).Add(float64(topLevel))
	metrics.ClusteringRequestsTotal.WithLabelValues(algID, "ok").Inc()

	logger.Info("Clustering completed",
		zap.String("algorithm", algID),
		zap.Int("hits", len(hits)),
		zap.Int("documents", len(docs)),
		zap.Int("groups", len(groups)),
		zap.Strings("languages", res.Languages()),
		zap.Strings("unsupported_languages", res.unsupported),
		zap.Duration("search", searchElapsed),
		zap.Duration("clustering", res.elapsed),
	)

	resp := &Response{Groups: groups, Info: info}
	if req.IncludeHits() {
		resp.Hits = hits
	}
	return resp, nil
}

// Algorithms lists registered algorithms with their default attributes.
func (s *Service) Algorithms() []AlgorithmInfo {
	factories := s.registry.List()
	out := make([]AlgorithmInfo, 0, len(factories))
	for _, f := range factories {
		out = append(out, AlgorithmInfo{
			ID:          f.ID,
			Description: f.Description,
			Attributes:  f.New().Attributes().Descriptors(),
			Languages:   s.catalog.Supported(),
		})
	}
	return out
}

func (s *Service) effectiveMaxHits(requested int) int {
	switch {
	case s.maxHitsCap == 0:
		return requested
	case requested == 0 || requested > s.maxHitsCap:
		return s.maxHitsCap
	default:
		return requested
	}
}

func (s *Service) extractAll(hits []hit.Hit, mappings []fieldspec.Mapping, logger *zap.Logger) []*document.Document {
	docs := make([]*document.Document, len(hits))
	for i := range hits {
		d := extract(&hits[i], mappings, logger)
		if !d.HasLanguage() && s.detector != nil {
			if lang := s.detector.Detect(d.Text()); lang != "" {
				d = d.WithLanguage(lang)
			}
		}
		docs[i] = &d
	}
	return docs
}

// buildQuery asks the searcher for exactly what the mappings read.
func buildQuery(req *request.Request) *hit.Query {
	mappings := req.Mappings()
	return &hit.Query{
		Index:           req.Index(),
		Query:           req.Query(),
		Size:            req.Size(),
		Fields:          fieldspec.Select(mappings, fieldspec.Field),
		HighlightFields: fieldspec.Select(mappings, fieldspec.Highlight),
		IncludeSource:   len(fieldspec.Select(mappings, fieldspec.DocSource)) > 0,
	}
}
