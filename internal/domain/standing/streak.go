package standing

import (
	"sort"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

// Streak holds the terminal run counters of a team after its last played match.
type Streak struct {
	TeamID   int64
	TeamName string
	Played   int
	Winning  int
	Unbeaten int
}

// Streaks walks each team's played matches chronologically. The winning
// counter resets on any non-win; the unbeaten counter resets only on a loss.
// Rows are ordered by winning then unbeaten streak, descending.
func Streaks(scope Scope, names map[int64]string) []Streak {
	order := teamOrder(scope, match.Match.Counts)
	rows := make(map[int64]*Streak, len(order))
	for _, teamID := range order {
		rows[teamID] = &Streak{TeamID: teamID, TeamName: names[teamID]}
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
			switch outcomeOf(m.GoalsFor(teamID)) {
			case OutcomeWin:
				row.Winning++
				row.Unbeaten++
			case OutcomeDraw:
				row.Winning = 0
				row.Unbeaten++
			default:
				row.Winning = 0
				row.Unbeaten = 0
			}
		}
	}

	out := make([]Streak, 0, len(order))
	for _, teamID := range order {
		out = append(out, *rows[teamID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Winning != out[j].Winning {
			return out[i].Winning > out[j].Winning
		}
		return out[i].Unbeaten > out[j].Unbeaten
	})
	return out
}
