package standing

import (
	"sort"

	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
)

// Directory resolves names for player rankings.
type Directory struct {
	Players map[int64]player.Player
	Teams   map[int64]string
}

func (d Directory) playerName(id int64) string {
	return d.Players[id].Name
}

type CardRanking struct {
	PlayerID   int64
	PlayerName string
	TeamName   string
	Yellow     int
	Red        int
}

func (c CardRanking) Total() int {
	return c.Yellow + c.Red
}

type Scorer struct {
	PlayerID   int64
	PlayerName string
	TeamName   string
	Goals      int
}

// MatchIDs lists the matches of the scope for event filtering.
func (s Scope) MatchIDs() map[int64]struct{} {
	out := make(map[int64]struct{}, len(s.Matches))
	for _, m := range s.Matches {
		out[m.ID] = struct{}{}
	}
	return out
}

// RankCards counts yellow and red card events per player over the scope's
// matches, ranked by reds then yellows, descending.
func RankCards(scope Scope, events []matchevent.Event, dir Directory) []CardRanking {
	inScope := scope.MatchIDs()
	rows := make(map[int64]*CardRanking)
	order := make([]int64, 0)

	for _, e := range byID(events) {
		if _, ok := inScope[e.MatchID]; !ok {
			continue
		}
		yellow, red := matchevent.IsYellowCard(e.Kind), matchevent.IsRedCard(e.Kind)
		if !yellow && !red {
			continue
		}
		row, ok := rows[e.PlayerID]
		if !ok {
			row = &CardRanking{PlayerID: e.PlayerID, PlayerName: dir.playerName(e.PlayerID), TeamName: dir.Teams[e.TeamID]}
			rows[e.PlayerID] = row
			order = append(order, e.PlayerID)
		}
		if yellow {
			row.Yellow++
		} else {
			row.Red++
		}
	}

	out := make([]CardRanking, 0, len(order))
	for _, playerID := range order {
		out = append(out, *rows[playerID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Red != out[j].Red {
			return out[i].Red > out[j].Red
		}
		return out[i].Yellow > out[j].Yellow
	})
	return out
}

// TopScorers counts goal-class events per player over the scope's matches,
// ranked by goals descending and truncated to limit when limit > 0.
func TopScorers(scope Scope, events []matchevent.Event, dir Directory, limit int) []Scorer {
	inScope := scope.MatchIDs()
	rows := make(map[int64]*Scorer)
	order := make([]int64, 0)

	for _, e := range byID(events) {
		if _, ok := inScope[e.MatchID]; !ok || !matchevent.IsGoal(e.Kind) {
			continue
		}
		row, ok := rows[e.PlayerID]
		if !ok {
			row = &Scorer{PlayerID: e.PlayerID, PlayerName: dir.playerName(e.PlayerID), TeamName: dir.Teams[e.TeamID]}
			rows[e.PlayerID] = row
			order = append(order, e.PlayerID)
		}
		row.Goals++
	}

	out := make([]Scorer, 0, len(order))
	for _, playerID := range order {
		out = append(out, *rows[playerID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Goals > out[j].Goals
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func byID(events []matchevent.Event) []matchevent.Event {
	out := make([]matchevent.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
