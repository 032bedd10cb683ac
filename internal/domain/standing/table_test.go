package standing

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

const (
	teamA int64 = iota + 1
	teamB
	teamC
	teamD
	teamE
)

var names = map[int64]string{teamA: "A", teamB: "B", teamC: "C", teamD: "D", teamE: "E"}

var baseDate = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func played(id, home, away int64, hs, as int, day int, zone string) match.Match {
	date := baseDate.AddDate(0, 0, day)
	m := match.Match{
		ID:         id,
		ExternalID: 1000 + id,
		HomeTeamID: home,
		AwayTeamID: away,
		Date:       &date,
		Status:     match.StatusPlayed,
		HomeScore:  &hs,
		AwayScore:  &as,
	}
	if zone != "" {
		m.Zone = &zone
	}
	return m
}

func findRow(t *testing.T, rows []TeamStanding, teamID int64) TeamStanding {
	t.Helper()
	for _, row := range rows {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("team %d not found in table", teamID)
	return TeamStanding{}
}

func TestCompute_ScenarioPointsAndStreak(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(1, teamA, teamB, 2, 1, 0, ""),
		played(2, teamA, teamC, 0, 0, 7, ""),
		played(3, teamA, teamD, 1, 2, 14, ""),
	}
	scope := NewScope(matches, "")

	a := findRow(t, Compute(scope, names, Options{}), teamA)
	if a.Points != 4 || a.Won != 1 || a.Drawn != 1 || a.Lost != 1 || a.Played != 3 {
		t.Fatalf("unexpected row for A: %+v", a)
	}
	if a.GoalsFor != 3 || a.GoalsAgainst != 3 {
		t.Fatalf("expected goals 3:3, got=%d:%d", a.GoalsFor, a.GoalsAgainst)
	}

	for _, s := range Streaks(scope, names) {
		if s.TeamID != teamA {
			continue
		}
		if s.Winning != 0 || s.Unbeaten != 0 {
			t.Fatalf("expected A streak {0,0}, got={%d,%d}", s.Winning, s.Unbeaten)
		}
		return
	}
	t.Fatalf("team A missing from streaks")
}

func TestCompute_PointsConservationAndOrdering(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(1, teamA, teamB, 3, 0, 0, ""),
		played(2, teamC, teamD, 1, 1, 0, ""),
		played(3, teamB, teamC, 2, 2, 7, ""),
		played(4, teamD, teamA, 0, 1, 7, ""),
		played(5, teamA, teamC, 0, 4, 14, ""),
		played(6, teamB, teamD, 5, 1, 14, ""),
	}
	rows := Compute(NewScope(matches, ""), names, Options{})

	total := 0
	for _, row := range rows {
		total += row.Points
		if row.Won+row.Drawn+row.Lost != row.Played {
			t.Fatalf("inconsistent row %+v", row)
		}
	}
	// 4 decisive matches * 3 + 2 draws * 2
	if total != 16 {
		t.Fatalf("expected 16 points in total, got=%d", total)
	}

	for i := 0; i+1 < len(rows); i++ {
		if Above(rows[i+1], rows[i]) {
			t.Fatalf("row %d ranked above row %d: %+v / %+v", i+2, i+1, rows[i+1], rows[i])
		}
		if rows[i].Position != i+1 {
			t.Fatalf("expected position %d, got=%d", i+1, rows[i].Position)
		}
	}
}

func TestCompute_TieBreakers(t *testing.T) {
	t.Parallel()

	// A and B both 3 points; B has better goal difference.
	// C and D both 3 points, same difference, D scored more.
	matches := []match.Match{
		played(1, teamA, teamE, 1, 0, 0, ""),
		played(2, teamB, teamE, 4, 0, 1, ""),
		played(3, teamC, teamE, 2, 1, 2, ""),
		played(4, teamD, teamE, 3, 2, 3, ""),
	}
	rows := Compute(NewScope(matches, ""), names, Options{})

	got := []int64{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID, rows[4].TeamID}
	want := []int64{teamB, teamD, teamC, teamA, teamE}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got=%v", want, got)
		}
	}
}

func TestCompute_IgnoresUnplayedAndScorelessMatches(t *testing.T) {
	t.Parallel()

	scheduled := played(1, teamA, teamB, 5, 0, 0, "")
	scheduled.Status = match.StatusScheduled
	noScore := played(2, teamA, teamC, 0, 0, 1, "")
	noScore.HomeScore, noScore.AwayScore = nil, nil
	corrected := played(3, teamC, teamB, 1, 0, 2, "")
	corrected.Status = match.StatusCorrected

	rows := Compute(NewScope([]match.Match{scheduled, noScore, corrected}, ""), names, Options{})
	if len(rows) != 2 {
		t.Fatalf("expected only teams from counted matches, got=%d rows", len(rows))
	}
	if rows[0].TeamID != teamC || rows[0].Points != 3 {
		t.Fatalf("expected C on top with 3 points, got=%+v", rows[0])
	}
}

func TestCompute_ZoneModeWithInterzonal(t *testing.T) {
	t.Parallel()

	// Norte: A, B. Sur: C, D. A vs C is interzonal. E only plays an
	// interzonal against B but is not a Norte team.
	matches := []match.Match{
		played(1, teamA, teamB, 1, 0, 0, "Norte"),
		played(2, teamC, teamD, 2, 2, 0, "Sur"),
		played(3, teamA, teamC, 0, 3, 7, match.ZoneInterzonal),
		played(4, teamE, teamB, 1, 1, 7, match.ZoneInterzonal),
		played(5, teamD, teamE, 1, 0, 14, match.ZoneInterzonal),
	}

	norte := Compute(NewScope(matches, "Norte"), names, Options{})
	if len(norte) != 2 {
		t.Fatalf("expected 2 Norte rows, got=%d", len(norte))
	}
	a := findRow(t, norte, teamA)
	if a.Played != 2 || a.Points != 3 {
		t.Fatalf("expected A to count zone + interzonal match, got=%+v", a)
	}
	b := findRow(t, norte, teamB)
	if b.Played != 2 || b.Points != 1 {
		t.Fatalf("expected B to count interzonal draw vs E, got=%+v", b)
	}
	for _, row := range norte {
		if row.TeamID == teamC || row.TeamID == teamE {
			t.Fatalf("non-zone team %d must not get a row", row.TeamID)
		}
	}

	sur := Compute(NewScope(matches, "Sur"), names, Options{})
	c := findRow(t, sur, teamC)
	if c.Played != 2 || c.Points != 4 {
		t.Fatalf("expected C to count interzonal win, got=%+v", c)
	}
	d := findRow(t, sur, teamD)
	if d.Played != 2 || d.Points != 4 {
		t.Fatalf("expected D to count interzonal win vs E, got=%+v", d)
	}

	if rows := Compute(NewScope(matches, "Oeste"), names, Options{}); len(rows) != 0 {
		t.Fatalf("expected empty table for unknown zone, got=%d rows", len(rows))
	}
}

func TestCompute_RecentFormOldestToNewest(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(7, teamA, teamB, 0, 1, 6, ""), // L (newest)
		played(1, teamA, teamB, 1, 0, 0, ""), // W (oldest, dropped)
		played(2, teamA, teamC, 0, 0, 1, ""), // D
		played(3, teamA, teamD, 2, 0, 2, ""), // W
		played(4, teamB, teamA, 3, 0, 3, ""), // L
		played(5, teamC, teamA, 1, 1, 4, ""), // D
		played(6, teamD, teamA, 0, 2, 5, ""), // W
	}

	rows := Compute(NewScope(matches, ""), names, Options{WithRecent: true})
	a := findRow(t, rows, teamA)
	want := []Outcome{OutcomeWin, OutcomeLoss, OutcomeDraw, OutcomeWin, OutcomeLoss}
	if len(a.Recent) != len(want) {
		t.Fatalf("expected %d recent results, got=%v", len(want), a.Recent)
	}
	for i := range want {
		if a.Recent[i] != want[i] {
			t.Fatalf("expected recent %v, got=%v", want, a.Recent)
		}
	}

	plain := findRow(t, Compute(NewScope(matches, ""), names, Options{}), teamA)
	if plain.Recent != nil {
		t.Fatalf("expected no recent results without WithRecent")
	}
}
