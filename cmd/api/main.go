package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookshelf/db"
	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/logger"
	"bookshelf/internal/platform/postgres"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	var limiter *httpx.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = httpx.NewRateLimiter(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	handler := newRouter(routerDeps{
		cfg:     cfg.Server,
		log:     log,
		books:   book.NewHTTPHandler(book.NewService(repo)),
		storage: repo,
		limiter: limiter,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("storage", cfg.Storage.Driver).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

type storage interface {
	book.Repository
	Pinger
}

// openStorage returns the configured repository and a func releasing it.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return book.NewMemoryRepo(), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.Database, log, cfg.Log.SQL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, postgres.MigrateUp, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return book.NewPostgresRepo(pool, cfg.Database.QueryTimeout), pool.Close, nil
}
