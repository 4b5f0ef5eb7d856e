package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nbrates/internal/adapters/cache"
	"nbrates/internal/adapters/httpclient"
	"nbrates/internal/adapters/postgres"
	"nbrates/internal/api"
	"nbrates/internal/config"
	"nbrates/internal/currency"
	"nbrates/internal/currency/handler"
	"nbrates/internal/ingest"
	"nbrates/internal/platform/db"
	httpserver "nbrates/internal/platform/http"

	"github.com/sirupsen/logrus"
)

const currencyCacheSize = 1024

// Run wires the application components, starts HTTP server and the
// ingestion scheduler.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Bank feed client (configurable timeout)
	feedTimeout := time.Duration(appCfg.BankFeed.TimeoutSeconds) * time.Second
	if feedTimeout <= 0 {
		feedTimeout = 20 * time.Second
	}
	feedClient := httpclient.NewNationalBankClient(&http.Client{Timeout: feedTimeout}, appCfg.BankFeed.URL)

	// Repositories
	currencyRepo := postgres.NewCurrencyRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)

	// Currency identity cache in front of the resolver's lookups
	currencyCache, err := cache.NewCurrencyCache(currencyCacheSize)
	if err != nil {
		logrus.WithError(err).Error("Failed to create currency cache")
		return err
	}
	defer currencyCache.Close()

	// Ingestion pipeline + scheduler
	resolver := ingest.NewResolver(currencyRepo, currencyCache)
	window := time.Duration(appCfg.Ingest.ValidityWindowMinutes) * time.Minute
	scheduler := ingest.NewScheduler(feedClient, resolver, snapshotRepo, window)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start ingestion scheduler")
		return startErr
	}
	logrus.Info("✅ Ingestion scheduler activation successful")

	// Read API
	currencyService := currency.NewService(currencyRepo, snapshotRepo, favoriteRepo)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	router := api.NewRouter(currencyHandler, appCfg.Auth.JWTSecret)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop the scheduler and in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
