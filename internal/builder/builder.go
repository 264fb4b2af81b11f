package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/api"
	activityapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/activity"
	adminapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/admin"
	catalogapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/catalog"
	chatapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/chat"
	feedbackapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/feedback"
	healthapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/health"
	libraryapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/library"
	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/auth"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/embedding"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/llm"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/qdrant"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/recommendation"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/Jseow008/ThePlayBook-sub001/internal/ratelimit"
	"github.com/Jseow008/ThePlayBook-sub001/internal/repository"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/activity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/catalog"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/chat"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/feedback"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/indexing"
	"github.com/Jseow008/ThePlayBook-sub001/internal/usecase/library"
	"go.uber.org/zap"
)

// segmentIndex is the vector store behind both retrieval and sync.
type segmentIndex interface {
	chat.SegmentSearcher
	indexing.SegmentIndex
}

type authProvider interface {
	middleware.Authenticator
	middleware.AdminChecker
}

// connectors holds the external services, real or mocked.
type connectors struct {
	auth authProvider
	// textEmbedder serves queries and segments, contentEmbedder content items.
	textEmbedder    indexing.Embedder
	contentEmbedder indexing.Embedder
	libraryLLM      chat.Generator
	authorLLM       chat.Generator
	recommender     library.Recommender
}

// Build loads configuration and wires every component. ctx bounds the
// startup calls (database ping, Qdrant collection check).
func Build(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	app := &App{logger: logger}

	// Migrations create the vector extension the pool registers on connect.
	if cfg.DBRunMigrations {
		logger.Info("Running database migrations")
		migrate := func() error { return repository.RunMigrations(cfg.DatabaseURL) }
		if err := startupRetry.Do(ctx, migrate); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")
	}

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	app.db = db

	// Initialize repositories
	segmentRepo := repository.NewSegmentPostgres(db)
	contentRepo := repository.NewContentPostgres(db)
	libraryRepo := repository.NewLibraryPostgres(db)
	feedbackRepo := repository.NewFeedbackPostgres(db)
	catalogRepo := repository.NewCatalogPostgres(db)
	activityRepo := repository.NewActivityPostgres(db)
	logger.Info("Repositories initialized")

	conns, err := setupConnectors(ctx, cfg, logger)
	if err != nil {
		app.close()
		return nil, err
	}

	index, err := setupSegmentIndex(ctx, cfg, segmentRepo, app, logger)
	if err != nil {
		app.close()
		return nil, err
	}

	local := ratelimit.NewLocal(ratelimit.WithSweepThreshold(cfg.RateLimitCfg.SweepThreshold))
	limiter, closeLimiter, err := ratelimit.New(cfg.RedisCfg.URL, local, logger, ratelimit.WithTimeout(cfg.RedisCfg.Timeout))
	if err != nil {
		app.close()
		return nil, fmt.Errorf("setup rate limiter: %w", err)
	}
	app.closers = append(app.closers, closeLimiter)

	// Initialize validators
	v := validator.NewValidator(cfg.ChatCfg)

	// Initialize use cases
	chatUC := chat.NewUsecase(
		conns.textEmbedder,
		index,
		segmentRepo,
		conns.libraryLLM,
		conns.authorLLM,
		cfg.ChatCfg,
		cfg.LLMCfg.MaxOutputTokens,
		logger,
	)

	libraryUC := library.NewUsecase(
		libraryRepo,
		libraryRepo,
		conns.recommender,
		logger,
	)

	feedbackUC := feedback.NewUsecase(feedbackRepo, logger)
	catalogUC := catalog.NewUsecase(catalogRepo, logger)
	activityUC := activity.NewUsecase(activityRepo, logger)

	indexingUC := indexing.NewUsecase(
		conns.textEmbedder,
		conns.contentEmbedder,
		segmentRepo,
		index,
		contentRepo,
		cfg.SyncCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup router
	router := api.SetupRouter(
		api.Handlers{
			Chat:     chatapi.NewHandler(chatUC, v),
			Library:  libraryapi.NewHandler(libraryUC, v),
			Feedback: feedbackapi.NewHandler(feedbackUC, v),
			Catalog:  catalogapi.NewHandler(catalogUC, v),
			Activity: activityapi.NewHandler(activityUC, v),
			Admin:    adminapi.NewHandler(indexingUC),
			Health:   healthapi.NewHandler(libraryRepo),
		},
		api.Guards{
			Authn:   conns.auth,
			Admins:  conns.auth,
			Limiter: limiter,
		},
		cfg,
		logger,
	)
	logger.Info("HTTP router configured")

	// Streams run until the model finishes, so there is no write timeout.
	app.server = &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return app, nil
}

func setupConnectors(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*connectors, error) {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		mockLLM := llm.NewMockConnector(logger)
		return &connectors{
			auth:            auth.NewMockConnector(logger),
			textEmbedder:    embedding.NewMockConnector(cfg.EmbeddingCfg.Dimensions, logger),
			contentEmbedder: embedding.NewMockConnector(cfg.GeminiCfg.Dimensions, logger),
			libraryLLM:      mockLLM,
			authorLLM:       mockLLM,
			recommender:     recommendation.NewMockConnector(logger),
		}, nil
	}

	logger.Info("Using real connectors for external services")

	authConn, err := auth.NewConnector(cfg.SupabaseCfg, cfg.CacheCfg.SessionTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("setup auth: %w", err)
	}

	recommender, err := recommendation.NewConnector(cfg.SupabaseCfg, cfg.CacheCfg.RecommendationsTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("setup recommendations: %w", err)
	}

	embeddingCfg := cfg.EmbeddingCfg
	if embeddingCfg.Token == "" {
		embeddingCfg.Token = cfg.LLMCfg.OpenAIKey
	}
	if embeddingCfg.Token == "" {
		logger.Warn("No embeddings key configured; library chat and segment sync will fail")
	}

	gemini, err := embedding.NewGeminiConnector(ctx, cfg.GeminiCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup gemini: %w", err)
	}

	return &connectors{
		auth:            authConn,
		textEmbedder:    embedding.NewConnector(embeddingCfg, logger),
		contentEmbedder: gemini,
		libraryLLM:      llm.NewLibraryGenerator(cfg.LLMCfg, logger),
		authorLLM:       llm.NewAuthorGenerator(cfg.LLMCfg, logger),
		recommender:     recommender,
	}, nil
}

func setupSegmentIndex(ctx context.Context, cfg *config.Config, segments *repository.SegmentPostgres, app *App, logger *zap.Logger) (segmentIndex, error) {
	if cfg.VectorCfg.Backend != config.VectorBackendQdrant {
		logger.Info("Segment vectors stored in Postgres")
		return segments, nil
	}

	index, err := qdrant.New(cfg.VectorCfg, cfg.EmbeddingCfg.Dimensions, segments, logger)
	if err != nil {
		return nil, fmt.Errorf("setup qdrant: %w", err)
	}
	app.closers = append(app.closers, index.Close)

	if err := index.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensure qdrant collection: %w", err)
	}

	logger.Info("Segment vectors stored in Qdrant", zap.String("collection", cfg.VectorCfg.QdrantCollection))
	return index, nil
}
