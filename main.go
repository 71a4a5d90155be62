package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/mysql"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/oracle"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/postgres"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/sqlite"
	"github.com/restgate/registry-engine/pkg/catalog"
	"github.com/restgate/registry-engine/pkg/config"
	"github.com/restgate/registry-engine/pkg/database"
	"github.com/restgate/registry-engine/pkg/handlers"
	"github.com/restgate/registry-engine/pkg/logging"
	"github.com/restgate/registry-engine/pkg/metrics"
	"github.com/restgate/registry-engine/pkg/middleware"
	_ "github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/repositories"
	"github.com/restgate/registry-engine/pkg/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := dbprofile.Resolve(cfg.Database.Profile)
	if err != nil {
		logger.Fatal("Failed to resolve database profile", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("profile", profile.Code),
		zap.String("backend", profile.DisplayName))

	ctx := context.Background()
	settings := cfg.Database.ConnSettings()

	db, err := database.Connect(ctx, profile, settings, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// PostgreSQL profiles carry migration history; everything else creates
	// its schema from the entity catalog.
	if profile.DBType == dbprofile.TypePostgres {
		if err := database.Migrate(profile, settings, cfg.Database.MigrationsPath, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	} else {
		if err := database.Bootstrap(ctx, db, catalog.Default, logger); err != nil {
			logger.Fatal("Failed to bootstrap schema", zap.Error(err))
		}
	}

	defRepo := repositories.NewUriDefRepository(db)
	pathRepo := repositories.NewUriPathRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	defService := services.NewUriDefService(defRepo, logger)
	pathService := services.NewUriPathService(pathRepo, defRepo, logger)
	noteService := services.NewNoteService(noteRepo, logger)
	itemService := services.NewItemService(itemRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewProfileHandler(profile.Code, logger).RegisterRoutes(mux)
	handlers.NewUriDefHandler(defService, logger).RegisterRoutes(mux)
	handlers.NewUriPathHandler(pathService, logger).RegisterRoutes(mux)
	handlers.NewNoteHandler(noteService, logger).RegisterRoutes(mux)
	handlers.NewItemHandler(itemService, logger).RegisterRoutes(mux)

	registry := metrics.NewRegistry()
	mux.Handle("GET /metrics", metrics.Handler(registry))

	var handler http.Handler = mux
	handler = metrics.Instrument(handler)
	handler = middleware.CORS(cfg.CORS.AllowOrigins)(handler)
	handler = middleware.RequestLogger(logger)(handler)

	addr := cfg.BindAddr + ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting registry-engine", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
