package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/standing"
	"github.com/riskibarqy/league-sync/internal/platform/cache"
)

const (
	defaultTopScorersLimit = 10
	maxTopScorersLimit     = 100
)

type StatsService struct {
	read readModel
}

func NewStatsService(repos ReadRepositories, readCache *cache.Store) *StatsService {
	return &StatsService{read: readModel{repos: repos, cache: readCache}}
}

func (s *StatsService) Streaks(ctx context.Context, competitionID int64, zone string) ([]standing.Streak, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Streaks")
	defer span.End()
	s.read.refresh(ctx)

	zone = strings.TrimSpace(zone)
	return cache.GetOrLoad(ctx, s.read.cache, readCacheKey("streaks", competitionID, zone), func(ctx context.Context) ([]standing.Streak, error) {
		scope, names, err := s.read.scope(ctx, competitionID, zone)
		if err != nil {
			return nil, err
		}
		return standing.Streaks(scope, names), nil
	})
}

func (s *StatsService) CleanSheets(ctx context.Context, competitionID int64, zone string) ([]standing.CleanSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CleanSheets")
	defer span.End()
	s.read.refresh(ctx)

	zone = strings.TrimSpace(zone)
	return cache.GetOrLoad(ctx, s.read.cache, readCacheKey("clean_sheets", competitionID, zone), func(ctx context.Context) ([]standing.CleanSheet, error) {
		scope, names, err := s.read.scope(ctx, competitionID, zone)
		if err != nil {
			return nil, err
		}
		return standing.CleanSheets(scope, names), nil
	})
}

func (s *StatsService) CardRanking(ctx context.Context, competitionID int64, zone string) ([]standing.CardRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CardRanking")
	defer span.End()
	s.read.refresh(ctx)

	zone = strings.TrimSpace(zone)
	return cache.GetOrLoad(ctx, s.read.cache, readCacheKey("cards", competitionID, zone), func(ctx context.Context) ([]standing.CardRanking, error) {
		scope, events, dir, err := s.eventScope(ctx, competitionID, zone)
		if err != nil {
			return nil, err
		}
		return standing.RankCards(scope, events, dir), nil
	})
}

// TopScorers ranks goal-class events per player. A non-positive limit falls
// back to the default.
func (s *StatsService) TopScorers(ctx context.Context, competitionID int64, zone string, limit int) ([]standing.Scorer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopScorers")
	defer span.End()
	s.read.refresh(ctx)

	if limit <= 0 {
		limit = defaultTopScorersLimit
	}
	if limit > maxTopScorersLimit {
		return nil, fmt.Errorf("%w: limit must be at most %d", ErrInvalidInput, maxTopScorersLimit)
	}
	zone = strings.TrimSpace(zone)
	return cache.GetOrLoad(ctx, s.read.cache, readCacheKey("scorers", competitionID, zone, limit), func(ctx context.Context) ([]standing.Scorer, error) {
		scope, events, dir, err := s.eventScope(ctx, competitionID, zone)
		if err != nil {
			return nil, err
		}
		return standing.TopScorers(scope, events, dir, limit), nil
	})
}

// PlayerGoals lists a player's goal-class events, newest match first.
func (s *StatsService) PlayerGoals(ctx context.Context, playerID int64) ([]standing.EventDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerGoals")
	defer span.End()
	s.read.refresh(ctx)

	return s.playerDetails(ctx, playerID, matchevent.IsGoal)
}

// PlayerSanctions lists a player's yellow and red cards, newest match first.
func (s *StatsService) PlayerSanctions(ctx context.Context, playerID int64) ([]standing.EventDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerSanctions")
	defer span.End()
	s.read.refresh(ctx)

	return s.playerDetails(ctx, playerID, matchevent.IsCard)
}

func (s *StatsService) playerDetails(ctx context.Context, playerID int64, keep func(string) bool) ([]standing.EventDetail, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}
	if _, ok, err := s.read.repos.Players.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player id=%d: %w", playerID, err)
	} else if !ok {
		return nil, fmt.Errorf("%w: player id=%d", ErrNotFound, playerID)
	}

	events, err := s.read.repos.Events.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list events player_id=%d: %w", playerID, err)
	}
	matchIDs := make([]int64, 0, len(events))
	for _, e := range events {
		if keep(e.Kind) {
			matchIDs = append(matchIDs, e.MatchID)
		}
	}
	if len(matchIDs) == 0 {
		return []standing.EventDetail{}, nil
	}

	matches, err := s.read.repos.Matches.ListByIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("list matches for player_id=%d: %w", playerID, err)
	}
	names, err := s.read.teamNames(ctx, matches)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]match.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	return standing.PlayerEventDetails(events, byID, names, keep), nil
}

func (s *StatsService) eventScope(ctx context.Context, competitionID int64, zone string) (standing.Scope, []matchevent.Event, standing.Directory, error) {
	scope, names, err := s.read.scope(ctx, competitionID, zone)
	if err != nil {
		return standing.Scope{}, nil, standing.Directory{}, err
	}
	matchIDs := make([]int64, 0, len(scope.Matches))
	for _, m := range scope.Matches {
		matchIDs = append(matchIDs, m.ID)
	}
	if len(matchIDs) == 0 {
		return scope, nil, standing.Directory{Teams: names}, nil
	}

	events, err := s.read.repos.Events.ListByMatches(ctx, matchIDs)
	if err != nil {
		return standing.Scope{}, nil, standing.Directory{}, fmt.Errorf("list events competition_id=%d: %w", competitionID, err)
	}
	playerIDs := make([]int64, 0, len(events))
	for _, e := range events {
		playerIDs = append(playerIDs, e.PlayerID)
	}
	players, err := s.read.repos.Players.ListByIDs(ctx, playerIDs)
	if err != nil {
		return standing.Scope{}, nil, standing.Directory{}, fmt.Errorf("list players: %w", err)
	}
	return scope, events, standing.Directory{Players: player.Index(players), Teams: names}, nil
}
