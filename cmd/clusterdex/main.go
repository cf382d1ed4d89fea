package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/algorithm/embeddings"
	"github.com/kailas-cloud/clusterdex/internal/algorithm/terms"
	"github.com/kailas-cloud/clusterdex/internal/config"
	"github.com/kailas-cloud/clusterdex/internal/db"
	dbRedis "github.com/kailas-cloud/clusterdex/internal/db/redis"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/language"
	logpkg "github.com/kailas-cloud/clusterdex/internal/logger"
	"github.com/kailas-cloud/clusterdex/internal/metrics"
	"github.com/kailas-cloud/clusterdex/internal/repository/embcache"
	searchrepo "github.com/kailas-cloud/clusterdex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/clusterdex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/clusterdex/internal/transport/openai"
	clusteringuc "github.com/kailas-cloud/clusterdex/internal/usecase/clustering"
	embeddinguc "github.com/kailas-cloud/clusterdex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/clusterdex/internal/usecase/health"
	"github.com/kailas-cloud/clusterdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting clusterdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	for _, name := range cfg.Search.Indexes {
		info, err := store.IndexInfo(ctx, cfg.Search.IndexPrefix+name)
		if err != nil {
			logger.Fatal("Search index unavailable", zap.String("index", name), zap.Error(err))
		}
		logger.Info("Search index ready",
			zap.String("index", info.Name),
			zap.Int64("num_docs", info.NumDocs),
			zap.Bool("indexing", info.Indexing),
		)
	}

	// Register metrics explicitly (no init())
	metrics.RegisterClusteringMetrics()
	metrics.RegisterEmbeddingMetrics()

	catalog, err := language.NewCatalog(cfg.Languages.Enabled)
	if err != nil {
		logger.Fatal("Invalid language configuration", zap.Error(err))
	}

	registry := algorithm.NewRegistry()
	registry.MustRegister(terms.Factory())

	var embeddingChecker healthuc.Checker
	if cfg.Embedding.Enabled() {
		embedder, base := buildEmbedder(&cfg.Embedding, store, logger)
		registry.MustRegister(embeddings.Factory(embedder))
		embeddingChecker = base
		logger.Info("Embeddings algorithm enabled",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
		)
	}

	search := searchrepo.New(store, searchrepo.Options{
		IndexPrefix: cfg.Search.IndexPrefix,
		KeyPrefix:   cfg.Search.KeyPrefix,
		Highlight: db.HighlightOptions{
			Fragments:   cfg.Search.Highlight.Fragments,
			FragmentLen: cfg.Search.Highlight.FragmentLen,
			Separator:   cfg.Search.Highlight.Separator,
			OpenTag:     cfg.Search.Highlight.OpenTag,
			CloseTag:    cfg.Search.Highlight.CloseTag,
		},
	})

	clusteringSvc := clusteringuc.New(search, registry, catalog, logger).
		WithDefaults(cfg.Clustering.DefaultAlgorithm, cfg.Clustering.DefaultLanguage).
		WithMaxHitsCap(cfg.Clustering.MaxHits).
		WithWorkers(cfg.Clustering.Workers)

	if cfg.Languages.Detect {
		detector, err := language.NewDetector(catalog)
		if err != nil {
			logger.Fatal("Failed to build language detector", zap.Error(err))
		}
		clusteringSvc.WithDetector(detector)
	}

	if _, ok := registry.Lookup(cfg.Clustering.DefaultAlgorithm); !ok {
		logger.Fatal("Default algorithm is not registered",
			zap.String("algorithm", cfg.Clustering.DefaultAlgorithm))
	}
	if !catalog.Supports(cfg.Clustering.DefaultLanguage) {
		logger.Fatal("Default language is not enabled",
			zap.String("language", cfg.Clustering.DefaultLanguage),
			zap.Strings("supported", catalog.Supported()))
	}

	healthSvc := healthuc.New(store).WithCheck("embedding", embeddingChecker)
	for _, name := range cfg.Search.Indexes {
		healthSvc.WithCheck("index:"+name, healthuc.IndexCheck(store, cfg.Search.IndexPrefix+name))
	}

	server := chiTransport.NewServer(clusteringSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction.
// The base provider is returned separately for health checks.
func buildEmbedder(
	cfg *config.EmbeddingConfig,
	store db.Store,
	logger *zap.Logger,
) (domain.Embedder, *openaiEmb.Embedder) {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = embcache.New(
		base, store, cfg.CachePrefix,
		time.Duration(cfg.CacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)

	// Instrumented (usage accounting, outside the cache so hits report zero tokens)
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Provider, cfg.Model, cfg.BatchSize, logger,
	)

	// Instruction prefix (outermost; cache key includes instruction)
	if cfg.Instruction != "" {
		return domain.NewInstructionEmbedder(embedder, cfg.Instruction), base
	}

	return embedder, base
}
