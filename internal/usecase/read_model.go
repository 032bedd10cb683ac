package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/standing"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	"github.com/riskibarqy/league-sync/internal/platform/cache"
)

// ReadCachePrefix namespaces every cached read result so a sync can drop
// them all at once.
const ReadCachePrefix = "read:"

// ReadRepositories are the committed-state repositories used by the query
// services.
type ReadRepositories struct {
	Competitions competition.Repository
	Teams        team.Repository
	Players      player.Repository
	Matches      match.Repository
	Events       matchevent.Repository
	// SyncLogs is optional. When set, a new sync log entry written by any
	// process drops the cached read results.
	SyncLogs synclog.Repository
}

type readModel struct {
	repos ReadRepositories
	cache *cache.Store
}

func (m readModel) competition(ctx context.Context, competitionID int64) (competition.Competition, error) {
	if competitionID <= 0 {
		return competition.Competition{}, fmt.Errorf("%w: competition id must be positive", ErrInvalidInput)
	}
	item, ok, err := m.repos.Competitions.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition id=%d: %w", competitionID, err)
	}
	if !ok {
		return competition.Competition{}, fmt.Errorf("%w: competition id=%d", ErrNotFound, competitionID)
	}
	return item, nil
}

// scope loads the matches of a competition, narrowed to one zone when zone is
// not blank, plus the names of every team involved.
func (m readModel) scope(ctx context.Context, competitionID int64, zone string) (standing.Scope, map[int64]string, error) {
	if _, err := m.competition(ctx, competitionID); err != nil {
		return standing.Scope{}, nil, err
	}
	matches, err := m.repos.Matches.ListByCompetition(ctx, competitionID)
	if err != nil {
		return standing.Scope{}, nil, fmt.Errorf("list matches competition_id=%d: %w", competitionID, err)
	}
	scope := standing.NewScope(matches, strings.TrimSpace(zone))

	names, err := m.teamNames(ctx, scope.Matches)
	if err != nil {
		return standing.Scope{}, nil, err
	}
	return scope, names, nil
}

func (m readModel) teamNames(ctx context.Context, matches []match.Match) (map[int64]string, error) {
	seen := make(map[int64]struct{}, len(matches)*2)
	ids := make([]int64, 0, len(matches)*2)
	for _, item := range matches {
		for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := seen[teamID]; ok {
				continue
			}
			seen[teamID] = struct{}{}
			ids = append(ids, teamID)
		}
	}
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	teams, err := m.repos.Teams.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return team.NameIndex(teams), nil
}

// refresh drops the read cache when the latest sync log entry moved since the
// last read. Errors leave the cache to its TTL.
func (m readModel) refresh(ctx context.Context) {
	if m.cache == nil || m.repos.SyncLogs == nil {
		return
	}
	latest, _, err := m.repos.SyncLogs.Latest(ctx)
	if err != nil {
		return
	}
	m.cache.Advance(ctx, ReadCachePrefix, latest.ID)
}

func readCacheKey(kind string, parts ...any) string {
	return ReadCachePrefix + cache.Key(append([]any{kind}, parts...)...)
}
