package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpServer "employeedir/internal/directory/adapters/http"
	"employeedir/internal/directory/adapters/seed"
	"employeedir/internal/directory/app"
	"employeedir/internal/directory/config"
	"employeedir/internal/directory/i18n"
	"employeedir/internal/directory/metrics"
	seedport "employeedir/internal/directory/ports/seed"
	"employeedir/internal/directory/resilience"
	"employeedir/internal/directory/snapshot"
	"employeedir/internal/directory/store"
	"employeedir/pkg/logger"
	"employeedir/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "DIRECTORY_LOGGER_MODE"
	EnvLoggerLevel = "DIRECTORY_LOGGER_LEVEL"
	EnvFile        = "DIRECTORY_ENV_FILE"

	defaultEnvFile = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrLoadCatalog          = "failed to load translations"
	ErrInitStorage          = "failed to initialize snapshot storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrServiceStopped       = "service stopped with error"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "directory service started"
	LogServiceShutdownDone = "directory service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogFlushingSnapshot    = "flushing pending snapshot"
	LogClosingStorage      = "closing snapshot storage"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogListingChanged      = "employee listing recomputed"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		if err := run(ctx); err != nil {
			logger.Log(ctx).Error(ctx, ErrServiceStopped, zap.Error(err))
			exitCode = 1
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context) error {
	envFile := os.Getenv(EnvFile)
	if envFile == "" {
		envFile = defaultEnvFile
	}

	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	log := finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	catalog, err := i18n.NewCatalog()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadCatalog, err)
	}

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitStorage, err)
	}

	log.Info(ctx, LogInitServices)
	policy := resilience.NewPolicy("snapshot",
		cfg.Persistence.RetryConfig(),
		cfg.Persistence.CircuitBreakerConfig())
	writer := snapshot.NewWriter(repo, cfg.Storage.Key, policy, m)

	employeeStore := store.New(catalog,
		store.WithPersister(writer),
		store.WithMetrics(m),
		store.WithLanguage(cfg.Locale.Default))

	var seedSource seedport.Source
	if cfg.Seed.Source != "" {
		seedSource = seed.NewLoader(cfg.Seed.Source, cfg.Seed.Timeout)
	}
	directory := app.NewDirectory(employeeStore, catalog, repo, seedSource, cfg.Storage.Key, m)
	directory.Bootstrap(ctx)

	listing := app.NewListing(employeeStore, func(state app.ListingState) {
		log.Debug(ctx, LogListingChanged,
			zap.Uint64("revision", state.Revision),
			zap.Int("total_items", state.Page.TotalItems),
			zap.String("language", state.Language))
	})
	defer listing.Close()

	log.Info(ctx, LogInitHTTPServer)
	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	})
	httpServer.SetupRouter(server, httpServer.Dependencies{
		Service:    directory,
		Listing:    listing,
		Catalog:    catalog,
		Pagination: cfg.Pagination,
		Metrics:    m,
		Gatherer:   registry,
	})

	runCtx, stopWriter := context.WithCancel(ctx)
	defer stopWriter()

	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		return writer.Run(groupCtx)
	})
	group.Go(func() error {
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
		}
		return nil
	})

	shutdownErr := shutdown.Wait(groupCtx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера, затем запись последнего снимка и закрытие хранилища.
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			httpErr := server.ShutdownWithContext(ctx)

			stopWriter()
			log.Info(ctx, LogFlushingSnapshot)
			flushErr := writer.Flush(ctx)

			log.Info(ctx, LogClosingStorage)
			closeErr := repo.Close()

			return errors.Join(httpErr, flushErr, closeErr)
		},
	)

	stopWriter()
	runErr := group.Wait()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	log.Info(ctx, LogServiceShutdownDone)
	return errors.Join(runErr, shutdownErr)
}

