package standing

import (
	"sort"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

type CleanSheet struct {
	TeamID      int64
	TeamName    string
	Played      int
	CleanSheets int
}

// CleanSheets counts, per scoped team, played matches where the opponent did
// not score. Ranked by clean sheets descending, then matches played ascending.
func CleanSheets(scope Scope, names map[int64]string) []CleanSheet {
	order := teamOrder(scope, match.Match.Counts)
	rows := make(map[int64]*CleanSheet, len(order))
	for _, teamID := range order {
		rows[teamID] = &CleanSheet{TeamID: teamID, TeamName: names[teamID]}
	}

	for _, m := range scope.Matches {
		if !m.Counts() {
			continue
		}
		for _, teamID := range []int64{m.HomeTeamID, m.AwayTeamID} {
			row, ok := rows[teamID]
			if !ok {
				continue
			}
			row.Played++
			if _, against := m.GoalsFor(teamID); against == 0 {
				row.CleanSheets++
			}
		}
	}

	out := make([]CleanSheet, 0, len(order))
	for _, teamID := range order {
		out = append(out, *rows[teamID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CleanSheets != out[j].CleanSheets {
			return out[i].CleanSheets > out[j].CleanSheets
		}
		return out[i].Played < out[j].Played
	})
	return out
}
