package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-sync/external/comet"
	"github.com/riskibarqy/league-sync/internal/config"
	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	cacherepo "github.com/riskibarqy/league-sync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-sync/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-sync/internal/platform/cache"
	idgen "github.com/riskibarqy/league-sync/internal/platform/id"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

// dataStore is what both store drivers provide: the sync transaction port
// plus direct read repositories.
type dataStore interface {
	usecase.SyncStore
	Competitions() competition.Repository
	Teams() team.Repository
	Players() player.Repository
	Matches() match.Repository
	Events() matchevent.Repository
	SyncLogs() synclog.Repository
}

// Container holds the wired services shared by the API and the sync CLI.
type Container struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB

	Standings *usecase.StandingsService
	Stats     *usecase.StatsService
	// Sync is nil when no upstream api key is configured.
	Sync *usecase.SyncService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{cfg: cfg, logger: logger}

	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var readCache *cache.Store
	if cfg.CacheEnabled {
		readCache = cache.NewStore(cfg.CacheTTL)
	}
	repos := cacherepo.WrapReadRepositories(usecase.ReadRepositories{
		Competitions: store.Competitions(),
		Teams:        store.Teams(),
		Players:      store.Players(),
		Matches:      store.Matches(),
		Events:       store.Events(),
		SyncLogs:     store.SyncLogs(),
	}, readCache)

	c.Standings = usecase.NewStandingsService(repos, readCache, cfg.CacheWarmWorkers, logger)
	c.Stats = usecase.NewStatsService(repos, readCache)

	if len(cfg.CometAPIKeys) > 0 {
		source, err := comet.NewClient(comet.ClientConfig{
			BaseURL:        cfg.CometBaseURL,
			APIKeys:        cfg.CometAPIKeys,
			AuthMode:       cfg.CometAuthMode,
			Timeout:        cfg.CometTimeout,
			PageSize:       cfg.CometPageSize,
			MatchReportID:  cfg.CometMatchReportID,
			EventReportID:  cfg.CometEventReportID,
			ZoneReportID:   cfg.CometZoneReportID,
			Logger:         logger,
			CircuitBreaker: cfg.CometCircuit,
		})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("build comet client: %w", err)
		}
		c.Sync = usecase.NewSyncService(store, source, usecase.SyncConfig{
			TargetSeason:     cfg.SyncTargetSeason,
			CommitEveryPages: cfg.SyncCommitEveryPages,
			WithReferees:     cfg.SyncRefereesEnabled,
			ZonesEnabled:     cfg.CometZoneReportID > 0,
		}, idgen.NewUUIDGenerator(), c.Standings, logger)
	} else {
		logger.Warn("sync disabled", "reason", "COMET_API_KEYS empty")
	}

	logger.Info("app container ready",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"sync_enabled", c.Sync != nil,
	)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) (dataStore, error) {
	switch c.cfg.StoreDriver {
	case config.StoreDriverMemory:
		c.logger.Warn("using in-memory store; data is lost on exit")
		return memory.NewStore(), nil
	case config.StoreDriverPostgres:
		db, err := openDatabase(ctx, c.cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		return postgres.NewStore(db, c.cfg.SyncRunLockKey), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", c.cfg.StoreDriver)
	}
}

// Close releases the database pool, if any.
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

func (c *Container) NewHTTPServer() (*http.Server, error) {
	if c.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Standings, c.Stats, c.Sync, c.logger)
	router := httpapi.NewRouter(handler, c.logger, c.cfg.SwaggerEnabled(), c.cfg.CORSAllowedOrigins, c.cfg.InternalJobToken)

	return &http.Server{
		Addr:         c.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.cfg.ReadTimeout,
		WriteTimeout: c.cfg.WriteTimeout,
	}, nil
}
