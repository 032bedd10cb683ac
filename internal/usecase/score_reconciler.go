package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
)

// ScoreRepair describes one corrected match.
type ScoreRepair struct {
	MatchID int64
	Before  match.Match
	After   match.Result
}

// repairScores recomputes score and status of the given matches from their
// goal-class events. Goals count for the acting team of the event; events of
// a team that is neither side are ignored. Consistent matches are left alone.
func repairScores(ctx context.Context, session SyncSession, matchIDs []int64) ([]ScoreRepair, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	ids := slices.Clone(matchIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	matches, err := session.Matches().ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list matches for score repair: %w", err)
	}
	events, err := session.Events().ListByMatches(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list events for score repair: %w", err)
	}

	type tally struct{ home, away int }
	goals := make(map[int64]*tally, len(matches))
	for _, m := range matches {
		goals[m.ID] = &tally{}
	}
	index := make(map[int64]match.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}
	for _, e := range events {
		if !matchevent.IsGoal(e.Kind) {
			continue
		}
		m, ok := index[e.MatchID]
		if !ok {
			continue
		}
		switch e.TeamID {
		case m.HomeTeamID:
			goals[m.ID].home++
		case m.AwayTeamID:
			goals[m.ID].away++
		}
	}

	repairs := make([]ScoreRepair, 0)
	for _, m := range matches {
		t := goals[m.ID]
		result := match.Result{
			HomeScore: t.home,
			AwayScore: t.away,
			Status:    match.Repair(m.Status, t.home+t.away),
		}
		if resultMatches(m, result) {
			continue
		}
		if err := session.Matches().UpdateResult(ctx, m.ID, result); err != nil {
			return repairs, fmt.Errorf("update result match_id=%d: %w", m.ID, err)
		}
		repairs = append(repairs, ScoreRepair{MatchID: m.ID, Before: m, After: result})
	}
	return repairs, nil
}

func resultMatches(m match.Match, result match.Result) bool {
	return m.HasScore() &&
		*m.HomeScore == result.HomeScore &&
		*m.AwayScore == result.AwayScore &&
		m.Status == result.Status
}
