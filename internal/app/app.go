package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/nfl-projections/external/ffdp"
	"github.com/riskibarqy/nfl-projections/external/nflverse"
	"github.com/riskibarqy/nfl-projections/internal/config"
	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nfl-projections/internal/interfaces/httpapi"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/cache"
	idgen "github.com/riskibarqy/nfl-projections/internal/platform/id"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
	"github.com/riskibarqy/nfl-projections/internal/scheduler"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

// App holds the wired service with its long-lived resources.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler
	DB        *sqlx.DB
}

type repositories struct {
	players     player.Repository
	projections projection.Repository
	scoring     scoring.Repository
	jobs        jobs.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	ids := idgen.NewRandomGenerator()

	var db *sqlx.DB
	var repos repositories
	if cfg.DBURL != "" {
		var err error
		db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgres.SeedScoringConfigs(ctx, db, ids); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed scoring configs: %w", err)
		}
		playerRepo := postgres.NewPlayerRepository(db, ids)
		repos = repositories{
			players:     playerRepo,
			projections: postgres.NewProjectionRepository(db, ids),
			scoring:     postgres.NewScoringConfigRepository(db),
			jobs:        postgres.NewJobExecutionRepository(db, ids),
		}
		logger.Info("using postgres repositories")
	} else {
		playerRepo := memory.NewPlayerRepository(ids)
		repos = repositories{
			players:     playerRepo,
			projections: memory.NewProjectionRepository(playerRepo, ids),
			scoring:     memory.NewScoringConfigRepository(),
			jobs:        memory.NewJobExecutionRepository(ids),
		}
		logger.Warn("DATABASE_URL is not set, using in-memory repositories")
	}

	nflverseClient := nflverse.NewClient(nflverse.ClientConfig{
		BaseURL:    cfg.NFLVerseBaseURL,
		Timeout:    cfg.NFLVerseTimeout,
		MaxRetries: cfg.NFLVerseMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NFLVerseCircuitEnabled,
			FailureThreshold: cfg.NFLVerseCircuitFailureCount,
			OpenTimeout:      cfg.NFLVerseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NFLVerseCircuitHalfOpenMaxReq,
		},
	})
	ffdpClient := ffdp.NewClient(ffdp.ClientConfig{
		BaseURL: cfg.FFDPBaseURL,
		Timeout: cfg.FFDPTimeout,
		Logger:  logger,
	})

	registry := loader.NewRegistry(
		loader.NewNFLVerseAdapter(nflverseClient, logger),
		loader.NewFFDPAdapter(ffdpClient, logger),
	)

	importSvc := usecase.NewImportService(registry, loader.NewMapper(), repos.players, repos.projections, logger)
	querySvc := usecase.NewProjectionQueryService(repos.projections, repos.scoring, cache.NewStore(cfg.CacheTTL), logger)
	jobSvc := usecase.NewJobService(importSvc, repos.jobs, logger)

	var sched *scheduler.Scheduler
	var lister httpapi.JobLister
	if cfg.SchedulerEnabled {
		sched = scheduler.New(jobSvc, logger)
		lister = sched
	}

	handler := httpapi.NewHandler(importSvc, querySvc, jobSvc, lister, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Scheduler: sched,
		DB:        db,
	}, nil
}

// Close releases resources that New acquired. The HTTP server and scheduler
// are shut down by the caller before Close.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
