// Package bootstrap is the composition root. Every shared handle (gorm DB,
// redis client, queue client) is built exactly once per process and passed
// into constructors; backend fallbacks are decided here, not per call.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	gamificationservice "evergreen/contexts/engagement/gamification-service"
	gamificationpostgres "evergreen/contexts/engagement/gamification-service/adapters/postgres"
	"evergreen/contexts/engagement/gamification-service/application/dispatch"
	gamificationports "evergreen/contexts/engagement/gamification-service/ports"
	leaderboardservice "evergreen/contexts/engagement/leaderboard-service"
	leaderboardmemory "evergreen/contexts/engagement/leaderboard-service/adapters/memory"
	leaderboardredis "evergreen/contexts/engagement/leaderboard-service/adapters/redis"
	leaderboardports "evergreen/contexts/engagement/leaderboard-service/ports"
	submissionservice "evergreen/contexts/learning/submission-service"
	submissionpostgres "evergreen/contexts/learning/submission-service/adapters/postgres"
	"evergreen/internal/platform/config"
	"evergreen/internal/platform/db"
	"evergreen/internal/platform/httpserver"
	"evergreen/internal/platform/queue"
	"evergreen/internal/platform/redisconn"
	"evergreen/internal/shared/events"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *redis.Client
	queue    *queue.Client
	logger   *slog.Logger
}

type WorkerApp struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	postgres *db.Postgres
	redis    *redis.Client
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	ranking, redisClient := buildRankingStore(cfg, logger)

	var queueClient *queue.Client
	if redisClient != nil && cfg.QueueEnabled {
		queueClient = queue.NewClient(queue.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	} else {
		logger.Warn("queue infrastructure unavailable, events run inline",
			"event", "bootstrap_inline_dispatch",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"queue_enabled", cfg.QueueEnabled,
		)
	}

	gamificationRepo := gamificationpostgres.NewRepository(pg.DB, logger)
	gamificationModule := gamificationservice.NewModule(gamificationservice.Dependencies{
		Repository: gamificationRepo,
		Failures:   gamificationRepo,
		Mirror:     ranking,
		Queue:      enqueuerOrNil(queueClient),
		Clock:      gamificationpostgres.SystemClock{},
		IDGen:      gamificationpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	leaderboardModule := leaderboardservice.NewModule(leaderboardservice.Dependencies{
		Ranking: ranking,
		Logger:  logger,
	})

	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: submissionRepo,
		Dispatcher: gamificationModule.Dispatcher,
		Clock:      gamificationpostgres.SystemClock{},
		IDGen:      gamificationpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(
		submissionModule,
		gamificationModule,
		leaderboardModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisClient,
		queue:    queueClient,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if !cfg.RankingBackendConfigured() {
		return nil, errors.New("REDIS_ADDR is required for the worker process")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	ranking, redisClient := buildRankingStore(cfg, logger)

	gamificationRepo := gamificationpostgres.NewRepository(pg.DB, logger)
	gamificationModule := gamificationservice.NewModule(gamificationservice.Dependencies{
		Repository: gamificationRepo,
		Failures:   gamificationRepo,
		Mirror:     ranking,
		Clock:      gamificationpostgres.SystemClock{},
		IDGen:      gamificationpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server, mux := queue.NewServer(
		queue.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		cfg.WorkerConcurrency,
		gamificationModule.Router.Handle,
		exhaustionHook(gamificationRepo, logger),
		logger,
	)
	return &WorkerApp{
		server:   server,
		mux:      mux,
		postgres: pg,
		redis:    redisClient,
		logger:   logger,
	}, nil
}

// buildRankingStore is the one-time backend decision: a redis sorted set
// when connection details are configured and reachable, the process-local
// fallback otherwise.
func buildRankingStore(cfg config.Config, logger *slog.Logger) (leaderboardports.RankingStore, *redis.Client) {
	if cfg.RankingBackendConfigured() {
		client, err := redisconn.Connect(redisconn.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			return leaderboardredis.NewStore(client), client
		}
		logger.Warn("ranking backend unreachable, using in-process fallback",
			"event", "bootstrap_ranking_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err.Error(),
		)
	} else {
		logger.Warn("ranking backend not configured, using in-process fallback",
			"event", "bootstrap_ranking_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return leaderboardmemory.NewStore(), nil
}

// exhaustionHook records events whose retries are spent to the durable
// failure log so they can be replayed manually.
func exhaustionHook(failures gamificationports.FailureStore, logger *slog.Logger) queue.ExhaustionHook {
	return func(ctx context.Context, event events.Event, cause error) {
		failure := gamificationports.EventFailure{
			FailureID: uuid.NewString(),
			EventName: event.Name,
			UserID:    event.UserID,
			Payload:   event.Data,
			Cause:     cause.Error(),
			FailedAt:  gamificationpostgres.SystemClock{}.Now(),
		}
		if err := failures.AppendFailure(ctx, failure); err != nil {
			logger.Error("failure log write failed",
				"event", "bootstrap_failure_log_write_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"event_name", event.Name,
				"error", err.Error(),
			)
		}
	}
}

func enqueuerOrNil(client *queue.Client) dispatch.Enqueuer {
	if client == nil {
		return nil
	}
	return client
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.queue != nil {
		errs = append(errs, a.queue.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(_ context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return w.server.Run(w.mux)
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.redis != nil {
		errs = append(errs, w.redis.Close())
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
