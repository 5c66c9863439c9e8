package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"talentgigs/common/cache"
	cachememory "talentgigs/common/cache/memory"
	cacheredis "talentgigs/common/cache/redis"
	"talentgigs/internal/aggregator"
	"talentgigs/internal/config"
	"talentgigs/internal/events"
	"talentgigs/internal/matching"
	"talentgigs/internal/scheduler"
	"talentgigs/internal/store"
	"talentgigs/internal/usajobs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.Options{
		DefaultTTL:      cfg.CacheDefaultTTL,
		SlidingWindow:   cfg.CacheSlidingWindow,
		CleanupInterval: cfg.CacheCleanupInterval,
		RedisURL:        cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
	}

	if cfg.CacheBackend == "redis" {
		logger.Info("using redis cache backend", zap.String("addr", cfg.RedisAddr))
		return cacheredis.New(opts)
	}
	logger.Info("using in-process cache backend")
	return cachememory.New(opts)
}

func newPool(lc fx.Lifecycle, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := store.NewPool(context.Background(), cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

func newPositionSource(pool *pgxpool.Pool) store.PositionSource {
	return store.NewPostgresPositionSource(pool)
}

func newEmployeeSource(pool *pgxpool.Pool) store.EmployeeSource {
	return store.NewPostgresEmployeeSource(pool)
}

func newCachedClient(logger *zap.Logger, cfg *config.Config, c cache.Cache) usajobs.Client {
	raw := usajobs.NewClient(logger, cfg)
	return usajobs.NewCachedClient(raw, c, logger, cfg)
}

func newScorer() matching.Scorer {
	return matching.NewHeuristicScorer()
}

func newMatcher(employees store.EmployeeSource, scorer matching.Scorer, logger *zap.Logger, cfg *config.Config) *matching.Matcher {
	return matching.NewMatcher(employees, scorer, logger, cfg.CandidatePoolSize, cfg.MaxCandidates)
}

func newPublisher(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) events.Publisher {
	publisher, err := events.NewPublisher(logger, cfg)
	if err != nil {
		logger.Warn("search auditing disabled, NATS unavailable", zap.Error(err))
		return events.NopPublisher{}
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newCache,
			newPool,
			newPositionSource,
			newEmployeeSource,
			newCachedClient,
			usajobs.NewCodeListService,
			newScorer,
			newMatcher,
			newPublisher,
			aggregator.NewService,
			scheduler.NewRefreshScheduler,
		),
		fx.Invoke(
			func(svc *aggregator.Service, external usajobs.Client, logger *zap.Logger, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if !external.ValidateConnection(ctx) {
							logger.Warn("external job API unreachable, searches will degrade to internal results")
						}
						return nil
					},
				})
			},
			func(refresh *scheduler.RefreshScheduler, c cache.Cache, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return refresh.Start(context.Background())
					},
					OnStop: func(ctx context.Context) error {
						refresh.Stop()
						return c.Close()
					},
				})
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
