// Package main is the entry point for the jewellery store service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jewelstore/internal/auth"
	"jewelstore/internal/config"
	"jewelstore/internal/provider"
	"jewelstore/internal/repository"
	"jewelstore/internal/scheduler"
	"jewelstore/internal/service"
	"jewelstore/internal/worker"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg         *config.Config
	logger      *zap.SugaredLogger
	db          *sql.DB
	rdbCache    *redis.Client
	rdbAsynq    *redis.Client
	asynqClient *asynq.Client
	asynqServer *asynq.Server
	asynqMux    *asynq.ServeMux
	monitor     *asynqmon.HTTPHandler
	scheduler   *scheduler.Scheduler
	httpServer  *http.Server
}

// services groups the domain services the HTTP layer is built from.
type services struct {
	auth    *service.AuthService
	rates   *service.RateService
	catalog *service.CatalogService
	orders  *service.OrderService
	admin   *service.AdminService
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases database and Redis connections
func (app *App) close() error {
	var errs []error
	if app.monitor != nil {
		if err := app.monitor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynqmon close: %w", err))
		}
	}
	if app.asynqClient != nil {
		if err := app.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynq client close: %w", err))
		}
	}
	if app.rdbAsynq != nil {
		if err := app.rdbAsynq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis asynq close: %w", err))
		}
	}
	if app.rdbCache != nil {
		if err := app.rdbCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis cache close: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	db, err := repository.NewPostgresDB(context.Background(), &app.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to Postgres: %w", err)
	}
	app.db = db

	if err := repository.RunMigrations(context.Background(), app.db, app.logger); err != nil {
		return fmt.Errorf("run DB migrations: %w", err)
	}

	app.rdbCache = redis.NewClient(&redis.Options{
		Addr: app.cfg.Redis.CacheAddr,
	})
	if err := app.rdbCache.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to Redis (cache, %s): %w", app.cfg.Redis.CacheAddr, err)
	}
	app.logger.Infow("Connected to Redis cache", "addr", app.cfg.Redis.CacheAddr)

	return nil
}

func (app *App) initServices() error {
	redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}

	app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
	app.asynqClient = asynq.NewClient(redisOpt)
	app.asynqServer = asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:              app.cfg.Worker.Concurrency,
			DelayedTaskCheckInterval: time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			TaskCheckInterval:        time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			Logger:                   app.logger,
		},
	)
	app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr)

	if app.cfg.Server.ServeAsynqmon {
		app.monitor = asynqmon.New(asynqmon.Options{
			RootPath:     "/monitoring",
			RedisConnOpt: redisOpt,
		})
	}

	source := newMetalPriceSource(app.cfg, app.logger)
	asynqEnqueuer := worker.NewAsynqEnqueuer(
		app.asynqClient,
		app.cfg.Worker.MaxRetry,
		time.Duration(app.cfg.Worker.TimeoutSec)*time.Second,
	)

	dailyRepo := repository.NewPostgresDailyRateRepository(app.db)
	userRepo := repository.NewPostgresUserRepository(app.db)
	productRepo := repository.NewPostgresProductRepository(app.db)
	orderRepo := repository.NewPostgresOrderRepository(app.db)

	rateService := service.NewRateService(
		dailyRepo,
		source,
		app.rdbCache,
		asynqEnqueuer,
		app.logger,
		app.cfg.Rates,
		app.cfg.Cache)

	tokens := auth.NewTokenManager(app.cfg.Auth.JWTSecret, app.cfg.Auth.JWTIssuer, app.cfg.Auth.TokenTTL())
	svcs := services{
		auth:    service.NewAuthService(userRepo, tokens, auth.BcryptVerifier{}, app.rdbCache, app.logger, app.cfg.Auth, app.cfg.Admin),
		rates:   rateService,
		catalog: service.NewCatalogService(productRepo, app.logger),
		orders:  service.NewOrderService(orderRepo, productRepo, rateService, app.logger),
		admin:   service.NewAdminService(userRepo, orderRepo, productRepo, dailyRepo, rateService, app.logger),
	}

	app.asynqMux = asynq.NewServeMux()
	app.asynqMux.HandleFunc(service.TaskTypeRefreshRates, worker.NewRateRefreshHandler(rateService, app.logger))

	if app.cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(app.cfg.Rates.Location, app.logger)
		app.scheduler.Add("rates-prewarm", app.cfg.Scheduler.RefreshCron, scheduler.NewRateRefreshJob(rateService, app.logger))
	}

	return app.initHTTP(svcs)
}

// newMetalPriceSource builds the external price chain: metalpriceapi first, goldapi.io when
// an API key is configured, the whole chain behind one circuit breaker.
func newMetalPriceSource(cfg *config.Config, logger *zap.SugaredLogger) provider.MetalPriceSource {
	sources := []provider.MetalPriceSource{
		provider.NewMetalPriceAPISource(cfg.MetalPriceAPI.BaseURL, cfg.MetalPriceAPI.APIKey, cfg.MetalPriceAPI.Base, cfg.MetalPriceAPI.TimeoutSec),
	}
	if cfg.GoldAPI.APIKey != "" && cfg.GoldAPI.BaseURL != "" {
		sources = append(sources, provider.NewGoldAPISource(cfg.GoldAPI.BaseURL, cfg.GoldAPI.APIKey, cfg.GoldAPI.Currency, cfg.GoldAPI.TimeoutSec))
	}

	var source provider.MetalPriceSource = sources[0]
	if len(sources) > 1 {
		source = provider.NewSourceFacade(sources...)
	}
	logger.Infow("Metal price sources configured", "count", len(sources), "primary", sources[0].Name())

	return provider.NewBreakerSource(
		source,
		cfg.Breaker.Threshold,
		time.Duration(cfg.Breaker.ResetTimeoutSec)*time.Second,
		logger,
	)
}

// Run starts the HTTP server, Asynq worker and scheduler, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("Starting Asynq worker server")
		if err := app.asynqServer.Start(app.asynqMux); err != nil {
			return fmt.Errorf("asynq worker failed to start: %w", err)
		}

		<-ctx.Done()
		return nil
	})

	if app.scheduler != nil {
		g.Go(func() error {
			if err := app.scheduler.Start(ctx); err != nil {
				return fmt.Errorf("scheduler: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server -> Asynq worker -> connections.
// The scheduler stops on its own once the context is done.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	app.asynqServer.Shutdown()

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
