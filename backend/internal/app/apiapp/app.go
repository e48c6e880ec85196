package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/datemarket/app/backend/internal/config"
	"github.com/datemarket/app/backend/internal/jobs/retention"
	"github.com/datemarket/app/backend/internal/repo/memory"
	pgrepo "github.com/datemarket/app/backend/internal/repo/postgres"
	redrepo "github.com/datemarket/app/backend/internal/repo/redis"
	analyticsvc "github.com/datemarket/app/backend/internal/services/analytics"
	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	ratesvc "github.com/datemarket/app/backend/internal/services/rate"
)

type App struct {
	cfg          config.Config
	logger       *zap.Logger
	server       *http.Server
	postgres     *pgxpool.Pool
	redis        *goredis.Client
	retentionJob *retention.Job
	stopJobs     context.CancelFunc
	httpRouter   http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var (
		pool        *pgxpool.Pool
		ledgerStore ledgersvc.Store
		eventStore  analyticsvc.Store
	)
	switch cfg.Ledger.Store {
	case config.StorePostgres:
		p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := pgrepo.Migrate(ctx, p); err != nil {
				p.Close()
				return nil, err
			}
		}
		pool = p
		ledgerStore = pgrepo.NewLedgerRepo(pool)
		eventStore = pgrepo.NewEventRepo(pool)
	default:
		log.Warn("ledger uses in-process storage, state is lost on restart")
		ledgerStore = memory.NewLedgerStore()
		eventStore = memory.NewEventStore()
	}

	rateEnabled := cfg.Ledger.Rate.PerMinute > 0 || cfg.Ledger.Rate.Per10Sec > 0
	var redisClient *goredis.Client
	if cfg.Ledger.RecallStore == config.StoreRedis || rateEnabled || cfg.Auth.RequireSession {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redrepo.Ping(ctx, redisClient); err != nil {
			log.Warn("redis is unreachable, recall and rate limiting will fail until it recovers", zap.Error(err))
		}
	}

	var recallStore ledgersvc.RecallStore
	if cfg.Ledger.RecallStore == config.StoreRedis {
		recallStore = redrepo.NewRecallRepo(redisClient, cfg.Ledger.RecallTTL)
	} else {
		recallStore = memory.NewRecallStore(cfg.Ledger.RecallTTL)
	}

	var rateLimiter ledgersvc.RateLimiter
	if rateEnabled {
		rateLimiter = ratesvc.NewLimiter(
			redrepo.NewRateRepo(redisClient),
			cfg.Ledger.Rate.PerMinute,
			cfg.Ledger.Rate.Per10Sec,
		)
	}

	var sessions authsvc.SessionStore
	if cfg.Auth.RequireSession {
		sessions = redrepo.NewSessionRepo(redisClient)
	}
	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, 0)
	authService := authsvc.NewService(jwtManager, sessions)

	analyticsService := analyticsvc.NewService(eventStore, analyticsvc.Config{
		MaxBatchSize: cfg.Analytics.MaxBatchSize,
	}, log)
	ledgerService := ledgersvc.NewService(ledgersvc.Dependencies{
		Store:       ledgerStore,
		Recall:      recallStore,
		RateLimiter: rateLimiter,
		Events:      analyticsService,
		Logger:      log,
	})

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		LedgerService:    ledgerService,
		AnalyticsService: analyticsService,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:          cfg,
		logger:       log,
		server:       server,
		postgres:     pool,
		redis:        redisClient,
		retentionJob: retention.New(analyticsService, cfg.Analytics.Retention, cfg.Analytics.RetentionInterval, log),
		httpRouter:   r,
	}, nil
}

func (a *App) Run() error {
	jobsCtx, cancel := context.WithCancel(context.Background())
	a.stopJobs = cancel
	go a.retentionJob.Loop(jobsCtx)

	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("ledger_store", a.cfg.Ledger.Store),
		zap.String("recall_store", a.cfg.Ledger.RecallStore),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.stopJobs != nil {
		a.stopJobs()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
