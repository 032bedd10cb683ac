package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/standing"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	competitionmock "github.com/riskibarqy/league-sync/internal/mocks/domain/competition"
	matchmock "github.com/riskibarqy/league-sync/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/league-sync/internal/mocks/domain/team"
	"github.com/riskibarqy/league-sync/internal/platform/cache"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

func scored(id, home, away int64, hs, as int, zone string) match.Match {
	m := match.Match{
		ID:            id,
		ExternalID:    100 + id,
		CompetitionID: 1,
		HomeTeamID:    home,
		AwayTeamID:    away,
		Status:        match.StatusPlayed,
		HomeScore:     &hs,
		AwayScore:     &as,
	}
	if zone != "" {
		m.Zone = &zone
	}
	return m
}

func standingsFixture() []match.Match {
	return []match.Match{
		scored(1, 10, 11, 2, 0, "Norte"),
		scored(2, 12, 13, 1, 1, "Sur"),
		scored(3, 11, 12, 3, 1, match.ZoneInterzonal),
	}
}

var fixtureTeams = []team.Team{
	{ID: 10, Name: "Alpha"},
	{ID: 11, Name: "Bravo"},
	{ID: 12, Name: "Charlie"},
	{ID: 13, Name: "Delta"},
}

func TestStandingsService_Standings_CachesTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	matches := matchmock.NewRepository(t)
	teams := teammock.NewRepository(t)

	competitions.On("GetByID", mock.Anything, int64(1)).Return(competition.Competition{ID: 1, Name: "Primera"}, true, nil).Once()
	matches.On("ListByCompetition", mock.Anything, int64(1)).Return(standingsFixture(), nil).Once()
	teams.On("ListByIDs", mock.Anything, mock.Anything).Return(fixtureTeams, nil).Once()

	svc := NewStandingsService(ReadRepositories{Competitions: competitions, Matches: matches, Teams: teams}, cache.NewStore(time.Minute), 2, logging.NewNop())

	first, err := svc.Standings(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Standings(ctx, 1, " ")
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}

	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("expected 4 rows, got %d and %d", len(first), len(second))
	}
	if first[0].TeamName != "Alpha" || first[0].Points != 3 || first[1].TeamName != "Bravo" {
		t.Fatalf("unexpected leader: %+v", first[0])
	}
}

func TestStandingsService_Standings_RejectsUnknownCompetition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	competitions.On("GetByID", mock.Anything, int64(9)).Return(competition.Competition{}, false, nil).Once()

	svc := NewStandingsService(ReadRepositories{Competitions: competitions}, nil, 0, logging.NewNop())

	if _, err := svc.Standings(ctx, 9, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ExtendedStandings(ctx, 0, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingsService_AllZoneStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	matches := matchmock.NewRepository(t)
	teams := teammock.NewRepository(t)

	competitions.On("GetByID", mock.Anything, int64(1)).Return(competition.Competition{ID: 1}, true, nil)
	matches.On("ListZones", mock.Anything, int64(1)).Return([]string{"Norte", "Sur"}, nil).Once()
	matches.On("ListByCompetition", mock.Anything, int64(1)).Return(standingsFixture(), nil)
	teams.On("ListByIDs", mock.Anything, mock.Anything).Return(fixtureTeams, nil)

	svc := NewStandingsService(ReadRepositories{Competitions: competitions, Matches: matches, Teams: teams}, nil, 2, logging.NewNop())

	tables, err := svc.AllZoneStandings(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 2 || tables[0].Zone != "Norte" || tables[1].Zone != "Sur" {
		t.Fatalf("unexpected zones: %+v", tables)
	}
	// The interzonal fixture counts for Bravo in Norte and Charlie in Sur.
	playedIn := func(rows []standing.TeamStanding, teamID int64) int {
		for _, row := range rows {
			if row.TeamID == teamID {
				return row.Played
			}
		}
		return -1
	}
	if got := playedIn(tables[0].Standings, 11); got != 2 {
		t.Fatalf("expected Bravo to have 2 Norte games, got %d", got)
	}
	if got := playedIn(tables[1].Standings, 12); got != 2 {
		t.Fatalf("expected Charlie to have 2 Sur games, got %d", got)
	}
	if got := playedIn(tables[0].Standings, 12); got != -1 {
		t.Fatalf("expected Charlie to have no Norte row, got %d", got)
	}
}

func TestStandingsService_SyncCompletedDropsReadCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := cache.NewStore(time.Minute)
	store.Set(ctx, readCacheKey("zones", int64(1)), []string{"Norte"})
	store.Set(ctx, "other:key", 1)

	svc := NewStandingsService(ReadRepositories{}, store, 1, logging.NewNop())
	svc.SyncCompleted(ctx, SyncReport{RunID: "run-1"})

	if _, ok := store.Get(ctx, readCacheKey("zones", int64(1))); ok {
		t.Fatalf("expected read cache entry to be dropped")
	}
	if _, ok := store.Get(ctx, "other:key"); !ok {
		t.Fatalf("expected unrelated entry to survive")
	}
}

func TestStandingsService_WarmFillsCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	matches := matchmock.NewRepository(t)
	teams := teammock.NewRepository(t)

	competitions.On("GetByID", mock.Anything, int64(1)).Return(competition.Competition{ID: 1}, true, nil)
	matches.On("ListZones", mock.Anything, int64(1)).Return([]string{"Norte"}, nil)
	matches.On("ListByCompetition", mock.Anything, int64(1)).Return(standingsFixture(), nil)
	teams.On("ListByIDs", mock.Anything, mock.Anything).Return(fixtureTeams, nil)

	store := cache.NewStore(time.Minute)
	svc := NewStandingsService(ReadRepositories{Competitions: competitions, Matches: matches, Teams: teams}, store, 2, logging.NewNop())

	if err := svc.Warm(ctx, []int64{1}); err != nil {
		t.Fatalf("unexpected warm error: %v", err)
	}
	for _, zone := range []string{"", "Norte"} {
		if _, ok := store.Get(ctx, readCacheKey("standings", int64(1), zone, false)); !ok {
			t.Fatalf("expected cached standings for zone %q", zone)
		}
	}
}
