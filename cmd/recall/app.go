package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"recall-ai/internal/config"
	"recall-ai/internal/jobs"
	"recall-ai/internal/links"
	"recall-ai/internal/llm"
	"recall-ai/internal/navcache"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/storage"
	badgerstore "recall-ai/internal/storage/badger"
	"recall-ai/internal/tier"
	"recall-ai/internal/topics"
	"recall-ai/internal/vectorstore"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	db       *sql.DB
	badgerDB *badger.DB
	qdrant   *vectorstore.QdrantStore
	// vectors is nil when Qdrant is not configured.
	vectors vectorstore.VectorStore

	embedder *llm.EmbeddingsClient
	contents *storage.ContentRepo
	topics   *storage.TopicRepo
	clusters *storage.ClusterRepo
	links    *links.Indexer
	nav      *navcache.Cache
	// queue is nil unless the app was built with background jobs.
	queue     *jobs.Queue
	selector  *topics.Selector
	retriever *retrieval.Coordinator
}

// newApp opens the stores and wires retrieval. With background set, a job queue
// handles navigation rebuilds and access recording; otherwise a stale snapshot is
// rebuilt before the read returns and co-retrieval is not recorded.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, background bool) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.db, err = storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(a.db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)

	a.badgerDB, err = badgerstore.Open(cfg.BadgerPath, cfg.BadgerPath == "")
	if err != nil {
		return nil, fmt.Errorf("failed to open access store: %w", err)
	}

	a.embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	if cfg.QdrantURL != "" {
		a.qdrant, err = vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
		if err != nil {
			return nil, err
		}
		if err := a.qdrant.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			// Vector retrieval degrades per query; the service stays up.
			logger.WarnContext(ctx, "Qdrant collection unavailable", "collection", cfg.QdrantCollection, "error", err)
		} else {
			logger.InfoContext(ctx, "Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
		}
		a.vectors = a.qdrant
	} else {
		logger.InfoContext(ctx, "QDRANT_URL not set, vector retrieval disabled")
	}

	profiles, err := tier.LoadProfiles(cfg.TiersFile)
	if err != nil {
		return nil, err
	}

	a.contents = storage.NewContentRepo(a.db)
	a.topics = storage.NewTopicRepo(a.db)
	a.clusters = storage.NewClusterRepo(a.db)
	linkRepo := storage.NewLinkRepo(a.db)
	a.links = links.NewIndexer(a.contents, linkRepo)

	navOpts := []navcache.Option{
		navcache.WithAccessWindow(cfg.AccessWindow),
		navcache.WithPoolSize(cfg.PoolSize),
		navcache.WithLogger(logger),
	}
	if background {
		// The queue is created after the cache; the handler resolves it at call time.
		navOpts = append(navOpts, navcache.WithStaleHandler(func(ctx context.Context, owner string) {
			if a.queue != nil {
				a.queue.HandleStale(ctx, owner)
			}
		}))
	} else {
		navOpts = append(navOpts, navcache.WithInlineRebuild())
	}
	a.nav, err = navcache.New(linkRepo, a.contents, badgerstore.NewAccessStore(a.badgerDB), navOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create navigation cache: %w", err)
	}

	deps := retrieval.Deps{
		Embedder:   a.embedder,
		Collection: cfg.QdrantCollection,
		Lexical:    a.contents,
		Contents:   a.contents,
		Navigation: a.nav,
		Topics:     a.topics,
		Clusters:   a.clusters,
		Profiles:   profiles,
		ScanWindow: cfg.ScanWindow,
	}
	if a.vectors != nil {
		deps.Vectors = a.vectors
	}

	if background {
		jobCfg := jobs.DefaultConfig()
		jobCfg.MaxRetries = cfg.JobMaxRetries
		a.queue, err = jobs.NewQueue(jobCfg, a.nav, a.nav, a.links, logger)
		if err != nil {
			return nil, err
		}
		if err := a.queue.Start(ctx); err != nil {
			return nil, err
		}
		deps.Access = a.queue
	}

	a.selector = topics.NewDefaultSelector(a.embedder, llmClient, cfg.TopicMaxKeys, topics.WithScanWindow(cfg.ScanWindow))
	deps.Selector = a.selector

	a.retriever, err = retrieval.NewCoordinator(deps)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Close releases everything newApp opened, in reverse order.
func (a *app) Close() error {
	var errs []error
	if a.queue != nil {
		errs = append(errs, a.queue.Close())
	}
	if a.nav != nil {
		a.nav.Close()
	}
	if a.qdrant != nil {
		errs = append(errs, a.qdrant.Close())
	}
	if a.badgerDB != nil {
		errs = append(errs, a.badgerDB.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
