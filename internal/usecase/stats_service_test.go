package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	competitionmock "github.com/riskibarqy/league-sync/internal/mocks/domain/competition"
	matchmock "github.com/riskibarqy/league-sync/internal/mocks/domain/match"
	matcheventmock "github.com/riskibarqy/league-sync/internal/mocks/domain/matchevent"
	playermock "github.com/riskibarqy/league-sync/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/league-sync/internal/mocks/domain/team"
)

func minute(v int) *int { return &v }

func TestStatsService_TopScorers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	matches := matchmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	players := playermock.NewRepository(t)
	events := matcheventmock.NewRepository(t)

	competitions.On("GetByID", mock.Anything, int64(1)).Return(competition.Competition{ID: 1}, true, nil)
	matches.On("ListByCompetition", mock.Anything, int64(1)).Return(standingsFixture(), nil)
	teams.On("ListByIDs", mock.Anything, mock.Anything).Return(fixtureTeams, nil)
	events.On("ListByMatches", mock.Anything, mock.Anything).Return([]matchevent.Event{
		{ID: 1, MatchID: 1, PlayerID: 50, TeamID: 10, Kind: "Goal", Minute: minute(5)},
		{ID: 2, MatchID: 1, PlayerID: 50, TeamID: 10, Kind: "penalty", Minute: minute(60)},
		{ID: 3, MatchID: 3, PlayerID: 51, TeamID: 11, Kind: "Goal", Minute: minute(12)},
		{ID: 4, MatchID: 3, PlayerID: 51, TeamID: 11, Kind: "Yellow card", Minute: minute(40)},
	}, nil)
	players.On("ListByIDs", mock.Anything, mock.Anything).Return([]player.Player{
		{ID: 50, Name: "Ana"},
		{ID: 51, Name: "Bea"},
	}, nil)

	svc := NewStatsService(ReadRepositories{Competitions: competitions, Matches: matches, Teams: teams, Players: players, Events: events}, nil)

	scorers, err := svc.TopScorers(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scorers) != 2 {
		t.Fatalf("expected 2 scorers, got %+v", scorers)
	}
	if scorers[0].PlayerName != "Ana" || scorers[0].Goals != 2 || scorers[0].TeamName != "Alpha" {
		t.Fatalf("unexpected top scorer: %+v", scorers[0])
	}

	cards, err := svc.CardRanking(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected card error: %v", err)
	}
	if len(cards) != 1 || cards[0].PlayerID != 51 || cards[0].Yellow != 1 {
		t.Fatalf("unexpected card ranking: %+v", cards)
	}
}

func TestStatsService_TopScorers_RejectsLargeLimit(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(ReadRepositories{}, nil)
	if _, err := svc.TopScorers(context.Background(), 1, "", maxTopScorersLimit+1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_PlayerGoals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := playermock.NewRepository(t)
	events := matcheventmock.NewRepository(t)
	matches := matchmock.NewRepository(t)
	teams := teammock.NewRepository(t)

	players.On("GetByID", mock.Anything, int64(50)).Return(player.Player{ID: 50, Name: "Ana"}, true, nil).Once()
	events.On("ListByPlayer", mock.Anything, int64(50)).Return([]matchevent.Event{
		{ID: 1, MatchID: 1, PlayerID: 50, TeamID: 10, Kind: "Goal", Minute: minute(5)},
		{ID: 2, MatchID: 1, PlayerID: 50, TeamID: 10, Kind: "Red card", Minute: minute(80)},
	}, nil).Once()
	matches.On("ListByIDs", mock.Anything, []int64{1}).Return([]match.Match{standingsFixture()[0]}, nil).Once()
	teams.On("ListByIDs", mock.Anything, mock.Anything).Return(fixtureTeams, nil).Once()

	svc := NewStatsService(ReadRepositories{Players: players, Events: events, Matches: matches, Teams: teams}, nil)

	goals, err := svc.PlayerGoals(ctx, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %+v", goals)
	}
}

func TestStatsService_PlayerSanctions_UnknownPlayer(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	players.On("GetByID", mock.Anything, int64(77)).Return(player.Player{}, false, nil).Once()

	svc := NewStatsService(ReadRepositories{Players: players}, nil)
	if _, err := svc.PlayerSanctions(context.Background(), 77); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.PlayerGoals(context.Background(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
