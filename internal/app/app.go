package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg    *config.Config
	logger logrus.FieldLogger
	router *http.ServeMux
	store  repository.Store
	jwt    *config.JWT
	ws     *config.WebSocket

	closers []func() error
}

func New(cfg *config.Config, logger logrus.FieldLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		router: http.NewServeMux(),
	}
}

// openStore connects the configured session store backend.
func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	switch a.cfg.Store.Driver {
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil

	case config.StorePostgres:
		pool, migrator, err := database.ConnectAndMigrate(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		if version, dirty, err := migrator.Version(); err == nil {
			a.logger.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Info("database schema is up to date")
		}
		a.closers = append(a.closers, func() error {
			srcErr, dbErr := migrator.Close()
			return errors.Join(srcErr, dbErr)
		}, func() error {
			pool.Close()
			return nil
		})
		return repository.NewPostgresStore(pool), nil

	case config.StoreRedis:
		client := redis.NewClient(a.cfg.Redis.Options())
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return repository.NewRedisStore(
			client, a.cfg.Redis.Prefix, a.cfg.Store.SessionTTL.Duration,
		), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.WithError(err).Warn("unable to release resource")
		}
	}
	a.closers = nil
}

func (a *App) Start(ctx context.Context) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	a.store = store

	jwt, err := config.NewJWT(a.cfg.JWT)
	if err != nil {
		return err
	}
	a.jwt = jwt
	a.ws = a.cfg.NewWebSocket()

	a.loadRoutes()

	server := &http.Server{
		Addr: a.cfg.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Recover(a.logger),
			middleware.Cors(a.cfg.Development()),
			middleware.Logging(a.logger),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		a.prune(ctx)
		return nil
	})

	return g.Wait()
}

// prune periodically drops sessions idle for longer than the session TTL.
func (a *App) prune(ctx context.Context) {
	ttl := a.cfg.Store.SessionTTL.Duration
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(min(ttl, time.Hour))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := a.store.Prune(ctx, now.Add(-ttl))
			if err != nil {
				a.logger.WithError(err).Warn("unable to prune sessions")
				continue
			}
			if n > 0 {
				a.logger.WithField("count", n).Info("pruned expired sessions")
			}
		}
	}
}
