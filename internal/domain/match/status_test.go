package match

import (
	"testing"
	"time"
)

func TestRepair_MovesOnlyUnplayedForward(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status string
		goals  int
		want   string
	}{
		{status: StatusScheduled, goals: 3, want: StatusPlayed},
		{status: StatusEntered, goals: 1, want: StatusPlayed},
		{status: StatusScheduled, goals: 0, want: StatusScheduled},
		{status: StatusPlayed, goals: 0, want: StatusPlayed},
		{status: StatusCorrected, goals: 2, want: StatusCorrected},
		{status: "scheduled", goals: 2, want: "scheduled"},
		{status: "SUSPENDED", goals: 2, want: "SUSPENDED"},
	}
	for _, tc := range cases {
		if got := Repair(tc.status, tc.goals); got != tc.want {
			t.Fatalf("Repair(%q,%d) expected %q, got=%q", tc.status, tc.goals, tc.want, got)
		}
	}
}

func TestRepair_NeverRegressesPlayed(t *testing.T) {
	t.Parallel()

	status := StatusScheduled
	for _, goals := range []int{2, 0, 1, 0, 0} {
		status = Repair(status, goals)
		if IsUnplayed(status) && goals > 0 {
			t.Fatalf("status stayed unplayed with goals=%d", goals)
		}
	}
	if status != StatusPlayed {
		t.Fatalf("expected PLAYED after passes, got=%q", status)
	}
}

func TestMatch_GoalsForAndBefore(t *testing.T) {
	t.Parallel()

	m := Match{ID: 1, HomeTeamID: 10, AwayTeamID: 20, HomeScore: intPtr(3), AwayScore: intPtr(1), Status: StatusPlayed}
	if !m.Counts() {
		t.Fatalf("expected played match with score to count")
	}
	gf, ga := m.GoalsFor(20)
	if gf != 1 || ga != 3 {
		t.Fatalf("expected away perspective 1:3, got=%d:%d", gf, ga)
	}
	if m.OpponentOf(10) != 20 || m.OpponentOf(20) != 10 {
		t.Fatalf("unexpected opponents")
	}

	kickoff := time.Date(2025, 4, 6, 18, 0, 0, 0, time.UTC)
	dated := Match{ID: 9, Date: &kickoff}
	undated := Match{ID: 1}
	if Before(undated, dated) || !Before(dated, undated) {
		t.Fatalf("expected undated matches to sort after dated ones")
	}
	if !Before(Match{ID: 1}, Match{ID: 2}) {
		t.Fatalf("expected id tie-break for undated matches")
	}
}
