package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/sjperalta/kost-listrik-api/docs" // Swagger docs
	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/internal/database"
	"github.com/sjperalta/kost-listrik-api/internal/handlers"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/repository"
	"github.com/sjperalta/kost-listrik-api/internal/services"
	"github.com/sjperalta/kost-listrik-api/internal/storage"
	"github.com/sjperalta/kost-listrik-api/internal/store"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// @title Kost Listrik API
// @version 1.0
// @description REST API for kost electricity billing: meter readings, rollover credit and payments

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if !cfg.AuthEnabled() {
		logger.Warn("Operator login disabled: OPERATOR_PASSWORD_HASH not set, all routes are public")
	}

	kv, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	logger.Info("Opened store", "driver", cfg.StoreDriver)

	files, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	repos := repository.NewRepositories(kv, cfg.DefaultRate)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs, err := services.NewServices(context.Background(), repos, worker, files, cfg, m)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	scheduleJobs(svcs, cfg)

	h := handlers.NewHandlers(svcs, worker)
	router := setupRouter(h, cfg, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// openStore selects the persistence driver
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("Memory store selected: data is lost on restart")
		return store.NewMemoryStore(), nil
	case config.StorePostgres, config.StoreSQLite:
		db, err := database.Connect(cfg.StoreDriver, cfg.DatabaseURL, cfg.IsProduction())
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	default:
		return store.NewFileStore(cfg.DataPath)
	}
}

func scheduleJobs(svcs *services.Services, cfg *config.Config) {
	if cfg.BackupIntervalHours <= 0 {
		logger.Info("Scheduled backups disabled")
		return
	}
	svcs.Backup.Schedule(time.Duration(cfg.BackupIntervalHours) * time.Hour)
	logger.Info("Scheduled recurring jobs", "backup_interval_hours", cfg.BackupIntervalHours)
}
