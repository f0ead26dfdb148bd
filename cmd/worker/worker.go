package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bookclub-backend/internal/config"
	"bookclub-backend/internal/domains/user"
	"bookclub-backend/internal/domains/user/job"
	userrepo "bookclub-backend/internal/domains/user/repository"
	userservice "bookclub-backend/internal/domains/user/service"
	infracache "bookclub-backend/internal/infrastructure/cache"
	infradb "bookclub-backend/internal/infrastructure/database"
	"bookclub-backend/internal/infrastructure/queue"
	"bookclub-backend/internal/shared"
	"bookclub-backend/pkg/cache"
	"bookclub-backend/pkg/logger"
)

type worker struct {
	db        *infradb.PostgresDB
	cache     cache.Cache
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func newWorker(ctx context.Context, cfg *config.Config) (*worker, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	db := infradb.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infracache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	var userRepo user.Repository = userrepo.NewPostgresUserRepository(db.Pool, redisCache)
	// The worker only consumes tasks; no catalog, no jwt manager, no enqueuer.
	userService := userservice.NewUserService(userRepo, nil, nil, nil)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeAwardBadge, job.NewAwardBadgeHandler(userService))
	mux.Handle(shared.TypeReconcileStats, job.NewReconcileStatsHandler(userRepo))

	opt := queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	server := queue.NewServer(opt, 10)

	scheduler, err := queue.NewScheduler(opt, cfg.Jobs.ReconcileBatchSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &worker{
		db:        db,
		cache:     redisCache,
		server:    server,
		scheduler: scheduler,
		mux:       mux,
	}, nil
}

// Run starts the task server and the scheduler, then blocks until the
// context is cancelled.
func (w *worker) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		logger.Info("task server starting", nil)
		if err := w.server.Run(w.mux); err != nil {
			errCh <- fmt.Errorf("task server: %w", err)
		}
	}()
	go func() {
		logger.Info("scheduler starting", nil)
		if err := w.scheduler.Run(); err != nil {
			errCh <- fmt.Errorf("scheduler: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down worker", nil)
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}

func (w *worker) Close() {
	if rc, ok := w.cache.(*infracache.RedisCache); ok {
		_ = rc.Close()
	}
	if w.db != nil {
		w.db.Close()
	}
}
