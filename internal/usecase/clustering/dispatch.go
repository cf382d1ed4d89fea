package clustering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/language"
	"github.com/kailas-cloud/clusterdex/internal/metrics"
)

// languageClusters is the cluster forest one language produced.
type languageClusters struct {
	language string
	clusters []*cluster.Cluster
	elapsed  time.Duration
}

// dispatchResult lists non-empty forests in partition order.
type dispatchResult struct {
	byLanguage  []languageClusters
	elapsed     time.Duration // sum of per-partition times
	unsupported []string
}

// Languages returns the languages that produced clusters, in merge order.
func (r *dispatchResult) Languages() []string {
	out := make([]string, len(r.byLanguage))
	for i, lc := range r.byLanguage {
		out[i] = lc.language
	}
	return out
}

// prepareAlgorithm creates an instance, applies runtime attribute overrides and
// injects the query hint into the queryHint attribute when the algorithm has one.
func prepareAlgorithm(f algorithm.Factory, attrs map[string]any, queryHint string) (algorithm.Algorithm, error) {
	inst := f.New()
	set := inst.Attributes()
	if err := set.Apply(attrs); err != nil {
		return nil, domain.NewClusteringError(err)
	}
	if queryHint != "" {
		if a, ok := set.Lookup(algorithm.QueryHintAttribute); ok {
			if err := a.Set(queryHint); err != nil {
				return nil, domain.NewClusteringError(fmt.Errorf("attribute %s: %w", algorithm.QueryHintAttribute, err))
			}
		}
	}
	return inst, nil
}

// job is one supported partition ready to be clustered.
type job struct {
	part      partitionEntry
	resources *language.Resources
}

// dispatch runs alg over every supported partition. Unsupported languages are
// skipped with a warning; their documents stay eligible for the ungrouped bucket.
func (s *Service) dispatch(
	ctx context.Context, parts []partitionEntry, alg algorithm.Algorithm, algID string, logger *zap.Logger,
) (dispatchResult, error) {
	var res dispatchResult
	warned := make(map[string]struct{})

	jobs := make([]job, 0, len(parts))
	for _, p := range parts {
		r, ok := s.catalog.ResourcesFor(p.language)
		if !ok {
			if _, done := warned[p.language]; !done {
				warned[p.language] = struct{}{}
				res.unsupported = append(res.unsupported, p.language)
				metrics.UnsupportedLanguageTotal.WithLabelValues(p.language).Inc()
				logger.Warn("Language not supported, documents left unclustered",
					zap.String("language", p.language),
					zap.Int("documents", len(p.docs)),
				)
			}
			continue
		}
		jobs = append(jobs, job{part: p, resources: r})
	}

	out := make([]languageClusters, len(jobs))
	run := func(ctx context.Context, i int) error {
		j := jobs[i]
		start := time.Now()
		clusters, err := safeCluster(ctx, alg, j)
		elapsed := time.Since(start)
		metrics.ClusteringDuration.WithLabelValues(algID).Observe(elapsed.Seconds())
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return fmt.Errorf("cluster %s: %w", j.part.language, err)
			}
			return domain.NewClusteringError(fmt.Errorf("language %s: %w", j.part.language, err))
		}
		logger.Debug("Language partition clustered",
			zap.String("language", j.part.language),
			zap.Int("documents", len(j.part.docs)),
			zap.Int("clusters", len(clusters)),
			zap.Duration("elapsed", elapsed),
		)
		out[i] = languageClusters{language: j.part.language, clusters: clusters, elapsed: elapsed}
		return nil
	}

	if s.workers > 1 && len(jobs) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i := range jobs {
			i := i
			g.Go(func() error { return run(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return dispatchResult{}, err
		}
	} else {
		for i := range jobs {
			if err := run(ctx, i); err != nil {
				return dispatchResult{}, err
			}
		}
	}

	for _, lc := range out {
		res.elapsed += lc.elapsed
		lc.clusters = dropNil(lc.clusters)
		if len(lc.clusters) == 0 {
			continue
		}
		res.byLanguage = append(res.byLanguage, lc)
	}
	return res, nil
}

// dropNil removes nil top-level clusters so a forest of only nils counts as empty.
func dropNil(clusters []*cluster.Cluster) []*cluster.Cluster {
	out := clusters[:0:0]
	for _, c := range clusters {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// safeCluster turns an algorithm panic into an error.
func safeCluster(ctx context.Context, alg algorithm.Algorithm, j job) (clusters []*cluster.Cluster, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("algorithm panic: %v", r)
		}
	}()
	return alg.Cluster(ctx, j.part.docs, j.resources)
}
