package standing

import (
	"testing"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
)

func TestStreaks_UnbeatenSurvivesDraws(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(1, teamB, teamC, 0, 2, 0, ""),
		played(2, teamB, teamD, 1, 0, 7, ""),
		played(3, teamB, teamA, 1, 1, 14, ""),
		played(4, teamB, teamC, 2, 0, 21, ""),
	}
	streaks := Streaks(NewScope(matches, ""), names)

	var b Streak
	for _, s := range streaks {
		if s.TeamID == teamB {
			b = s
		}
	}
	if b.Winning != 1 || b.Unbeaten != 3 || b.Played != 4 {
		t.Fatalf("expected B winning=1 unbeaten=3 played=4, got=%+v", b)
	}
	if streaks[0].TeamID != teamB {
		t.Fatalf("expected B to lead the streak table, got=%+v", streaks)
	}
}

func TestCleanSheets_RankingAndZoneScope(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(1, teamA, teamB, 1, 0, 0, "Norte"),
		played(2, teamB, teamA, 0, 0, 7, "Norte"),
		played(3, teamC, teamA, 0, 2, 14, match.ZoneInterzonal),
		played(4, teamC, teamD, 0, 0, 14, "Sur"),
	}

	all := CleanSheets(NewScope(matches, ""), names)
	if all[0].TeamID != teamA || all[0].CleanSheets != 3 {
		t.Fatalf("expected A first with 3 clean sheets, got=%+v", all[0])
	}
	// D: 1 clean sheet in 1 match ranks above B and C with 1 in 2.
	if all[1].TeamID != teamD {
		t.Fatalf("expected D second on fewer matches played, got=%+v", all[1])
	}

	norte := CleanSheets(NewScope(matches, "Norte"), names)
	if len(norte) != 2 {
		t.Fatalf("expected only Norte teams, got=%+v", norte)
	}
	if norte[0].TeamID != teamA || norte[0].Played != 3 {
		t.Fatalf("expected A with interzonal match counted, got=%+v", norte[0])
	}
}

func TestRankCards_RedsThenYellows(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played(1, teamA, teamB, 1, 0, 0, "Norte"),
		played(2, teamC, teamD, 1, 0, 0, "Sur"),
	}
	events := []matchevent.Event{
		{ID: 1, MatchID: 1, PlayerID: 10, TeamID: teamA, Kind: "Yellow card"},
		{ID: 2, MatchID: 1, PlayerID: 10, TeamID: teamA, Kind: "Yellow card"},
		{ID: 3, MatchID: 1, PlayerID: 11, TeamID: teamB, Kind: "Red card"},
		{ID: 4, MatchID: 1, PlayerID: 12, TeamID: teamB, Kind: "yellow-card"},
		{ID: 5, MatchID: 1, PlayerID: 12, TeamID: teamB, Kind: "Goal"},
		{ID: 6, MatchID: 2, PlayerID: 13, TeamID: teamC, Kind: "Red card"},
	}
	dir := Directory{
		Players: player.Index([]player.Player{{ID: 10, Name: "Uno"}, {ID: 11, Name: "Dos"}, {ID: 12, Name: "Tres"}, {ID: 13, Name: "Cuatro"}}),
		Teams:   names,
	}

	all := RankCards(NewScope(matches, ""), events, dir)
	if len(all) != 4 {
		t.Fatalf("expected 4 booked players, got=%+v", all)
	}
	if all[0].Red != 1 || all[1].Red != 1 || all[2].PlayerID != 10 || all[3].PlayerID != 12 {
		t.Fatalf("unexpected ranking order: %+v", all)
	}
	if all[2].Yellow != 2 || all[2].Total() != 2 || all[2].PlayerName != "Uno" || all[2].TeamName != "A" {
		t.Fatalf("unexpected row for player 10: %+v", all[2])
	}

	norte := RankCards(NewScope(matches, "Norte"), events, dir)
	for _, row := range norte {
		if row.PlayerID == 13 {
			t.Fatalf("player from Sur match must not be ranked in Norte")
		}
	}
}

func TestTopScorers_GoalClassAndLimit(t *testing.T) {
	t.Parallel()

	matches := []match.Match{played(1, teamA, teamB, 3, 2, 0, "")}
	events := []matchevent.Event{
		{ID: 1, MatchID: 1, PlayerID: 20, TeamID: teamA, Kind: "Goal"},
		{ID: 2, MatchID: 1, PlayerID: 21, TeamID: teamB, Kind: "Penalty"},
		{ID: 3, MatchID: 1, PlayerID: 20, TeamID: teamA, Kind: "Own goal"},
		{ID: 4, MatchID: 1, PlayerID: 22, TeamID: teamB, Kind: "Goal"},
		{ID: 5, MatchID: 1, PlayerID: 23, TeamID: teamA, Kind: "Substitution"},
		{ID: 6, MatchID: 99, PlayerID: 23, TeamID: teamA, Kind: "Goal"},
	}

	scorers := TopScorers(NewScope(matches, ""), events, Directory{Teams: names}, 2)
	if len(scorers) != 2 {
		t.Fatalf("expected limit of 2, got=%d", len(scorers))
	}
	if scorers[0].PlayerID != 20 || scorers[0].Goals != 2 {
		t.Fatalf("expected player 20 with 2 goals, got=%+v", scorers[0])
	}
	if scorers[1].PlayerID != 21 {
		t.Fatalf("expected first-seen tie order, got=%+v", scorers[1])
	}
}

func TestPlayerEventDetails_OpponentAndOrder(t *testing.T) {
	t.Parallel()

	first := played(1, teamA, teamB, 1, 0, 0, "")
	second := played(2, teamC, teamA, 0, 2, 7, "")
	matches := map[int64]match.Match{first.ID: first, second.ID: second}
	m10, m80, m30 := 10, 80, 30
	events := []matchevent.Event{
		{ID: 1, MatchID: 1, PlayerID: 20, TeamID: teamA, Kind: "Goal", Minute: &m10, IsHome: true},
		{ID: 2, MatchID: 2, PlayerID: 20, TeamID: teamA, Kind: "Goal", Minute: &m80},
		{ID: 3, MatchID: 2, PlayerID: 20, TeamID: teamA, Kind: "Penalty", Minute: &m30},
		{ID: 4, MatchID: 2, PlayerID: 20, TeamID: teamA, Kind: "Yellow card"},
		{ID: 5, MatchID: 404, PlayerID: 20, TeamID: teamA, Kind: "Goal"},
	}

	rows := PlayerEventDetails(events, matches, names, matchevent.IsGoal)
	if len(rows) != 3 {
		t.Fatalf("expected 3 goal rows, got=%+v", rows)
	}
	if rows[0].MatchExternalID != second.ExternalID || *rows[0].Minute != 30 || rows[1].Kind != "Goal" {
		t.Fatalf("expected newest match first ordered by minute, got=%+v", rows)
	}
	if rows[0].OpponentName != "C" || rows[2].OpponentName != "B" {
		t.Fatalf("unexpected opponents: %q / %q", rows[0].OpponentName, rows[2].OpponentName)
	}
	if !rows[2].IsHome {
		t.Fatalf("expected home flag on first match goal")
	}

	sanctions := PlayerEventDetails(events, matches, names, matchevent.IsCard)
	if len(sanctions) != 1 || sanctions[0].OpponentName != "C" {
		t.Fatalf("unexpected sanctions: %+v", sanctions)
	}
}
