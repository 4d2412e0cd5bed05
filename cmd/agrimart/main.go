package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agrimart-cloud/agrimart/internal/config"
	dbRedis "github.com/agrimart-cloud/agrimart/internal/db/redis"
	logpkg "github.com/agrimart-cloud/agrimart/internal/logger"
	"github.com/agrimart-cloud/agrimart/internal/metrics"
	catalogrepo "github.com/agrimart-cloud/agrimart/internal/repository/catalog"
	orderrepo "github.com/agrimart-cloud/agrimart/internal/repository/order"
	chiTransport "github.com/agrimart-cloud/agrimart/internal/transport/chi"
	openaiChat "github.com/agrimart-cloud/agrimart/internal/transport/openai"
	assistantuc "github.com/agrimart-cloud/agrimart/internal/usecase/assistant"
	cataloguc "github.com/agrimart-cloud/agrimart/internal/usecase/catalog"
	healthuc "github.com/agrimart-cloud/agrimart/internal/usecase/health"
	orderuc "github.com/agrimart-cloud/agrimart/internal/usecase/order"
	recommenduc "github.com/agrimart-cloud/agrimart/internal/usecase/recommend"
	searchuc "github.com/agrimart-cloud/agrimart/internal/usecase/search"
	"github.com/agrimart-cloud/agrimart/internal/version"
)

func main() {
	// Load .env if present, then configuration based on ENV
	_ = godotenv.Load()
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

	logger.Info("Starting agrimart API server",
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

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	// Repositories
	catalogRepo := catalogrepo.NewRepository(store, cfg.Database.KeyPrefix)
	orderRepo := orderrepo.NewRepository(store, cfg.Database.KeyPrefix)

	// Use case services
	searchSvc := searchuc.NewService(catalogRepo, searchuc.Config{
		SortDefaultRating: cfg.Catalog.SortDefaultRating,
		SuggestionLimit:   cfg.Catalog.SuggestionLimit,
		MaxResults:        cfg.Catalog.MaxResults,
	})
	catalogSvc := cataloguc.NewService(catalogRepo)
	orderSvc := orderuc.NewService(orderRepo, catalogRepo)
	recommendSvc := recommenduc.NewService(catalogRepo, recommenduc.Config{
		Limit:             cfg.Catalog.RecommendationLimit,
		SortDefaultRating: cfg.Catalog.SortDefaultRating,
	})

	// Assistant is optional: no API key, no endpoint.
	var assistantSvc *assistantuc.Service
	var assistantChecker healthuc.AssistantChecker
	if cfg.Assistant.APIKey != "" {
		chat := openaiChat.NewChat(&openaiChat.Config{
			APIKey:  cfg.Assistant.APIKey,
			BaseURL: cfg.Assistant.BaseURL,
			Model:   cfg.Assistant.Model,
			Logger:  logger,
		})
		assistantSvc = assistantuc.NewService(chat, catalogRepo)
		assistantChecker = chat
		logger.Info("Assistant enabled", zap.String("model", cfg.Assistant.Model))
	} else {
		logger.Info("Assistant disabled: no API key configured")
	}

	healthSvc := healthuc.New(store, assistantChecker)

	server := chiTransport.NewServer(
		searchSvc, catalogSvc, orderSvc, recommendSvc, assistantSvc, healthSvc,
		cfg.Catalog.DisplayDefaultRating, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
