package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/standing"
	"github.com/riskibarqy/league-sync/internal/platform/cache"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

const defaultWarmWorkers = 4

// ZoneTable is the standings table of one zone.
type ZoneTable struct {
	Zone      string                  `json:"zone"`
	Standings []standing.TeamStanding `json:"standings"`
}

type StandingsService struct {
	read        readModel
	warmWorkers int
	logger      *logging.Logger
}

func NewStandingsService(repos ReadRepositories, readCache *cache.Store, warmWorkers int, logger *logging.Logger) *StandingsService {
	if warmWorkers <= 0 {
		warmWorkers = defaultWarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		read:        readModel{repos: repos, cache: readCache},
		warmWorkers: warmWorkers,
		logger:      logger.Named("standings"),
	}
}

func (s *StandingsService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListCompetitions")
	defer span.End()
	s.read.refresh(ctx)

	items, err := s.read.repos.Competitions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

// ListZones returns the zone labels of a competition, interzonal excluded.
func (s *StandingsService) ListZones(ctx context.Context, competitionID int64) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListZones")
	defer span.End()
	s.read.refresh(ctx)

	if _, err := s.read.competition(ctx, competitionID); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.read.cache, readCacheKey("zones", competitionID), func(ctx context.Context) ([]string, error) {
		zones, err := s.read.repos.Matches.ListZones(ctx, competitionID)
		if err != nil {
			return nil, fmt.Errorf("list zones competition_id=%d: %w", competitionID, err)
		}
		return zones, nil
	})
}

// Standings computes the ranked table of a competition, or of one zone when
// zone is not blank.
func (s *StandingsService) Standings(ctx context.Context, competitionID int64, zone string) ([]standing.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()
	s.read.refresh(ctx)

	return s.table(ctx, competitionID, zone, standing.Options{})
}

// ExtendedStandings is Standings with the last five results of every team.
func (s *StandingsService) ExtendedStandings(ctx context.Context, competitionID int64, zone string) ([]standing.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ExtendedStandings")
	defer span.End()
	s.read.refresh(ctx)

	return s.table(ctx, competitionID, zone, standing.Options{WithRecent: true})
}

func (s *StandingsService) table(ctx context.Context, competitionID int64, zone string, opts standing.Options) ([]standing.TeamStanding, error) {
	zone = strings.TrimSpace(zone)
	key := readCacheKey("standings", competitionID, zone, opts.WithRecent)
	return cache.GetOrLoad(ctx, s.read.cache, key, func(ctx context.Context) ([]standing.TeamStanding, error) {
		scope, names, err := s.read.scope(ctx, competitionID, zone)
		if err != nil {
			return nil, err
		}
		return standing.Compute(scope, names, opts), nil
	})
}

// AllZoneStandings computes every zone table of a competition concurrently,
// ordered by zone label.
func (s *StandingsService) AllZoneStandings(ctx context.Context, competitionID int64) ([]ZoneTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.AllZoneStandings")
	defer span.End()

	zones, err := s.ListZones(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[ZoneTable]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.warmWorkers)
	for _, zone := range zones {
		p.Go(func(ctx context.Context) (ZoneTable, error) {
			rows, err := s.table(ctx, competitionID, zone, standing.Options{})
			if err != nil {
				return ZoneTable{}, fmt.Errorf("zone %q: %w", zone, err)
			}
			return ZoneTable{Zone: zone, Standings: rows}, nil
		})
	}
	tables, err := p.Wait()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tables, func(a, b ZoneTable) int {
		return strings.Compare(a.Zone, b.Zone)
	})
	return tables, nil
}

// SyncCompleted drops cached read results and recomputes the standings of
// the competitions the run changed.
func (s *StandingsService) SyncCompleted(ctx context.Context, report SyncReport) {
	removed := s.read.cache.DeletePrefix(ctx, ReadCachePrefix)
	s.logger.DebugContext(ctx, "read cache invalidated", "run_id", report.RunID, "removed", removed)

	if s.read.cache == nil || len(report.CompetitionIDs) == 0 {
		return
	}
	if err := s.Warm(ctx, report.CompetitionIDs); err != nil {
		s.logger.WarnContext(ctx, "standings warm-up incomplete", "run_id", report.RunID, "error", err)
	}
}

// Warm precomputes whole-competition and per-zone standings on a bounded
// worker pool.
func (s *StandingsService) Warm(ctx context.Context, competitionIDs []int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Warm")
	defer span.End()

	workers, err := ants.NewPool(s.warmWorkers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	for _, competitionID := range competitionIDs {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if _, err := s.Standings(ctx, competitionID, ""); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("competition %d: %w", competitionID, err))
				mu.Unlock()
				return
			}
			if _, err := s.AllZoneStandings(ctx, competitionID); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("competition %d zones: %w", competitionID, err))
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit warm task: %w", err)
		}
	}
	wg.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("warm %d of %d competitions failed: %w", len(failures), len(competitionIDs), failures[0])
	}
	s.logger.InfoContext(ctx, "standings warmed", "competitions", len(competitionIDs))
	return nil
}
