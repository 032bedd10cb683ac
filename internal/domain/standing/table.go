package standing

import (
	"sort"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

const (
	PointsWin  = 3
	PointsDraw = 1

	// RecentFormSize is the length of the recent results sequence of the
	// extended table.
	RecentFormSize = 5
)

// Outcome is a single-letter result code relative to one team.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

func outcomeOf(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return OutcomeWin
	case goalsFor < goalsAgainst:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// TeamStanding is one ranked table row.
type TeamStanding struct {
	Position     int
	TeamID       int64
	TeamName     string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	// Recent holds up to RecentFormSize outcomes, oldest first. It is only
	// filled by the extended table.
	Recent []Outcome
}

func (s TeamStanding) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

func (s *TeamStanding) record(goalsFor, goalsAgainst int) Outcome {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	outcome := outcomeOf(goalsFor, goalsAgainst)
	switch outcome {
	case OutcomeWin:
		s.Won++
		s.Points += PointsWin
	case OutcomeDraw:
		s.Drawn++
		s.Points += PointsDraw
	default:
		s.Lost++
	}
	return outcome
}

// Options tune Compute.
type Options struct {
	// WithRecent attaches the last RecentFormSize outcomes per team.
	WithRecent bool
}

// Compute ranks the teams of a scope over its played matches (played-class
// status with a stored score). Rows are sorted by points, goal difference and
// goals for, all descending; remaining ties keep first-appearance order.
func Compute(scope Scope, names map[int64]string, opts Options) []TeamStanding {
	order := teamOrder(scope, match.Match.Counts)
	rows := make(map[int64]*TeamStanding, len(order))
	for _, teamID := range order {
		rows[teamID] = &TeamStanding{TeamID: teamID, TeamName: names[teamID]}
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
			gf, ga := m.GoalsFor(teamID)
			outcome := row.record(gf, ga)
			if opts.WithRecent {
				row.Recent = appendRecent(row.Recent, outcome)
			}
		}
	}

	out := make([]TeamStanding, 0, len(order))
	for _, teamID := range order {
		out = append(out, *rows[teamID])
	}
	Rank(out)
	return out
}

// Rank sorts rows in table order and assigns 1-based positions.
func Rank(rows []TeamStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		return Above(rows[i], rows[j])
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}

// Above reports whether a ranks strictly above b.
func Above(a, b TeamStanding) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	return a.GoalsFor > b.GoalsFor
}

func appendRecent(recent []Outcome, outcome Outcome) []Outcome {
	recent = append(recent, outcome)
	if len(recent) > RecentFormSize {
		recent = recent[len(recent)-RecentFormSize:]
	}
	return recent
}
