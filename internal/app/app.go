package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/bracketworks/bracketboard/external/startgg"
	"github.com/bracketworks/bracketboard/internal/config"
	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
	"github.com/bracketworks/bracketboard/internal/domain/scoring"
	"github.com/bracketworks/bracketboard/internal/infrastructure/repository/jsonfile"
	"github.com/bracketworks/bracketboard/internal/infrastructure/repository/postgres"
	"github.com/bracketworks/bracketboard/internal/interfaces/httpapi"
	"github.com/bracketworks/bracketboard/internal/platform/cache"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
	"github.com/bracketworks/bracketboard/internal/platform/resilience"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

// App wires repositories, the standings provider, and the HTTP surface.
// The caller owns the server lifecycle and the startup rebuild.
type App struct {
	Server       *http.Server
	Rebuilder    *usecase.CacheRebuildService
	ResultsCache *usecase.ResultsCache

	db     *sqlx.DB
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db      *sqlx.DB
		players player.Repository
		events  event.Repository
		results result.Repository
	)
	if cfg.DBEnabled {
		var err error
		db, err = openDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		players = postgres.NewPlayerRepository(db)
		events = postgres.NewEventRepository(db)
		results = postgres.NewResultRepository(db)
		logger.Info("storage backend ready", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		players = jsonfile.NewPlayerRepository(cfg.DataDir)
		events = jsonfile.NewEventRepository(cfg.DataDir)
		results = jsonfile.NewResultRepository(cfg.DataDir)
		logger.Info("storage backend ready", "backend", "jsonfile", "data_dir", cfg.DataDir)
	}

	var responseCache *cache.Store
	if cfg.CacheEnabled {
		responseCache = cache.NewStore(cfg.CacheTTL)
	}

	provider := startgg.NewClient(startgg.ClientConfig{
		Endpoint:   cfg.StartGGEndpoint,
		Token:      cfg.StartGGToken,
		Timeout:    cfg.StartGGTimeout,
		MaxRetries: cfg.StartGGMaxRetries,
		PageSize:   cfg.StartGGPageSize,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StartGGCircuitEnabled,
			FailureThreshold: cfg.StartGGCircuitFailureCount,
			OpenTimeout:      cfg.StartGGCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StartGGCircuitHalfOpenMax,
		},
	})

	resultsCache := usecase.NewResultsCache()
	rebuilder := usecase.NewCacheRebuildService(resultsCache, events, players, provider, responseCache, logger)

	playerService := usecase.NewPlayerService(players, nil, logger)
	eventService := usecase.NewEventService(events, players, results)
	importService := usecase.NewImportService(events, players, results, provider, rebuilder, responseCache, logger)
	leaderboardService := usecase.NewLeaderboardService(
		players, events, results,
		resultsCache, scoring.DefaultRules(), responseCache, logger,
	)

	handler := httpapi.NewHandler(
		leaderboardService,
		playerService,
		eventService,
		importService,
		rebuilder,
		resultsCache,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminKey)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		Server:       server,
		Rebuilder:    rebuilder,
		ResultsCache: resultsCache,
		db:           db,
		logger:       logger,
	}, nil
}

// Close releases resources held by the app. The HTTP server is shut down by
// the caller before Close.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
