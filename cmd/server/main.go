package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"lorekeeper/internal/auth"
	"lorekeeper/internal/config"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/handler"
	"lorekeeper/internal/middleware"
	"lorekeeper/internal/repository/cache"
	"lorekeeper/internal/repository/postgres"
	postgresCampaign "lorekeeper/internal/repository/postgres/campaign"
	authService "lorekeeper/internal/service/auth"
	serviceCampaign "lorekeeper/internal/service/campaign"
)

func main() {
	// Load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schema, err := config.LoadEditorSchema(cfg.EditorSchemaFile)
	if err != nil {
		log.Fatalf("Failed to load editor schema: %v", err)
	}
	logger.Info("editor schema loaded", "shareable", schema.ShareableKinds())

	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()
	logger.Info("database connected", "max_conns", pool.Config().MaxConns)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	campaigns := postgresCampaign.NewCampaignRepository(repoConfig)
	notes := postgresCampaign.NewNoteRepository(repoConfig)
	blockTags := postgresCampaign.NewBlockTagRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	var tags campaignRepo.TagRepository = postgresCampaign.NewTagRepository(repoConfig)
	healthChecks := map[string]handler.HealthCheck{
		"database": pool.Ping,
	}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		tags = cache.NewCachedTagRepository(tags, rdb, cfg.TagCacheTTL, cfg.TablePrefix, logger)
		healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Info("tag cache enabled", "ttl", cfg.TagCacheTTL)
	}

	authorizer := authService.NewMembershipAuthorizer(campaigns, notes)

	campaignService := serviceCampaign.NewCampaignService(campaigns, txManager, authorizer, logger)
	tagService := serviceCampaign.NewTagService(tags, authorizer, logger)
	noteService := serviceCampaign.NewNoteService(notes, tags, authorizer, schema, logger)
	blockTagService := serviceCampaign.NewBlockTagService(notes, tags, blockTags, authorizer, schema, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Health:   handler.NewHealthHandler(healthChecks, logger),
		Campaign: handler.NewCampaignHandler(campaignService, logger),
		Tag:      handler.NewTagHandler(tagService, logger),
		Note:     handler.NewNoteHandler(noteService, logger),
		BlockTag: handler.NewBlockTagHandler(blockTagService, logger),
	})

	// Middleware runs outermost-last: CORS, recovery, logging, auth.
	var h http.Handler = mux
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
