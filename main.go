package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"askcaira/backend/ai"
	"askcaira/backend/cache"
	"askcaira/backend/config"
	"askcaira/backend/database"
	"askcaira/backend/logger"
	"askcaira/backend/middlewares"
	"askcaira/backend/observability"
	"askcaira/backend/routes"
	"askcaira/backend/services"
)

func main() {
	cfg := config.Load()
	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	shutdownTracing := observability.InitOTel(ctx, lg, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
	})

	store := openStore(ctx, cfg, lg)
	defer store.Close()

	var gen ai.Generator = ai.Disabled{}
	if cfg.GeminiAPIKey != "" {
		g, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			lg.Fatal("gemini client init failed", "error", err)
		}
		defer g.Close()
		gen = g
	} else {
		lg.Warn("GEMINI_API_KEY not set; chart recommendations and analysis will use fallbacks")
	}
	orch := ai.NewOrchestrator(gen, lg)

	var fc cache.FileCache = cache.NopFileCache{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisFileCache(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			lg.Warn("redis unavailable; file cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer rc.Close()
			fc = rc
		}
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middlewares.CORS(cfg.CORSOrigins))
	r.Use(middlewares.RequestLogger(lg))
	// Multipart bodies beyond this spill to temp files.
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	routes.Register(r, cfg, routes.Services{
		Upload: services.NewUploadService(store, orch, fc, lg, cfg.MaxUploadBytes),
		Chat:   services.NewChatService(store, orch, fc, lg),
		Files:  services.NewFileService(store, fc, lg),
	}, lg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		lg.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen failed", "addr", srv.Addr, "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(sctx); err != nil {
		lg.Warn("tracer shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config, lg *logger.Logger) database.Store {
	if cfg.StoreDriver == config.StoreDriverMemory {
		lg.Warn("using in-memory store; data is lost on restart")
		return database.NewMemoryStore()
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("database connect failed", "error", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		lg.Fatal("database schema failed", "error", err)
	}
	return database.NewPostgresStore(pool)
}
