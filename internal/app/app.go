package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/external/cricketdata"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/dburl"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type repositories struct {
	leagues   league.Repository
	players   player.Repository
	managers  manager.Repository
	schedules schedule.Repository
	scoring   scoring.Repository
	db        *sqlx.DB
}

// NewHTTPServer builds the API server. The returned cleanup releases the
// database pool and must be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if repos.db == nil {
			return nil
		}
		return repos.db.Close()
	}

	leagueRepo, playerRepo := repos.leagues, repos.players
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	ids := idgen.NewRandomGenerator()
	scoringSvc := usecase.NewScoringService(leagueRepo, playerRepo, repos.managers, repos.scoring, logger)
	services := httpapi.Services{
		League:    usecase.NewLeagueService(leagueRepo, repos.managers, ids, logger),
		Player:    usecase.NewPlayerService(leagueRepo, playerRepo, repos.managers, ids, logger),
		Roster:    usecase.NewRosterService(leagueRepo, playerRepo, repos.managers, logger),
		Schedule:  usecase.NewScheduleService(leagueRepo, repos.managers, repos.schedules, logger),
		Scoring:   scoringSvc,
		Standings: usecase.NewStandingsService(leagueRepo, repos.managers, repos.schedules, repos.scoring, cfg.StandingsWorkerCount, logger),
		Ingestion: usecase.NewIngestionService(leagueRepo, playerRepo, scoringSvc, newScorecardProvider(cfg, logger), cfg.SyncWorkerCount, logger),
	}

	verifier := anubis.NewClient(anubis.Config{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectPath,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisCacheTTL,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger,
	})

	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("storage driver selected", "driver", config.StorageMemory)
		return repositories{
			leagues:   memory.NewLeagueRepository(memory.SeedLeagues()),
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			managers:  memory.NewManagerRepository(nil),
			schedules: memory.NewScheduleRepository(),
			scoring:   memory.NewScoringRepository(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("storage driver selected", "driver", config.StoragePostgres, "db_name", dburl.Name(cfg.DBURL))

	return repositories{
		leagues:   postgres.NewLeagueRepository(db),
		players:   postgres.NewPlayerRepository(db),
		managers:  postgres.NewManagerRepository(db),
		schedules: postgres.NewScheduleRepository(db),
		scoring:   postgres.NewScoringRepository(db),
		db:        db,
	}, nil
}

// newScorecardProvider returns a nil interface when the provider is disabled so
// ingestion reports the dependency as unavailable.
func newScorecardProvider(cfg config.Config, logger *logging.Logger) usecase.ScorecardProvider {
	if !cfg.CricketDataEnabled {
		logger.Info("cricketdata disabled", "reason", "CRICKETDATA_ENABLED=false")
		return nil
	}

	return cricketdata.NewClient(cricketdata.ClientConfig{
		BaseURL:        cfg.CricketDataBaseURL,
		APIKey:         cfg.CricketDataAPIKey,
		Timeout:        cfg.CricketDataTimeout,
		MaxRetries:     cfg.CricketDataMaxRetries,
		CircuitBreaker: cfg.CricketDataCircuit,
		Logger:         logger,
	})
}
