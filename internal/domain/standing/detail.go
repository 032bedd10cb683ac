package standing

import (
	"sort"
	"time"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
)

// EventDetail is one goal or sanction of a player with its match context.
type EventDetail struct {
	MatchExternalID int64
	MatchDate       *time.Time
	Minute          *int
	Kind            string
	SubType         *string
	IsHome          bool
	OpponentName    string
}

// PlayerEventDetails joins a player's events with their matches, keeping the
// kinds accepted by keep. The opponent is the side other than the event's
// acting team. Rows are newest match first; undated matches go last.
func PlayerEventDetails(events []matchevent.Event, matches map[int64]match.Match, teamNames map[int64]string, keep func(kind string) bool) []EventDetail {
	type row struct {
		detail EventDetail
		match  match.Match
	}
	rows := make([]row, 0, len(events))
	for _, e := range byID(events) {
		if keep != nil && !keep(e.Kind) {
			continue
		}
		m, ok := matches[e.MatchID]
		if !ok {
			continue
		}
		rows = append(rows, row{
			detail: EventDetail{
				MatchExternalID: m.ExternalID,
				MatchDate:       m.Date,
				Minute:          e.Minute,
				Kind:            e.Kind,
				SubType:         e.SubType,
				IsHome:          e.IsHome,
				OpponentName:    teamNames[m.OpponentOf(e.TeamID)],
			},
			match: m,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].match, rows[j].match
		if a.ID == b.ID {
			return minuteOf(rows[i].detail.Minute) < minuteOf(rows[j].detail.Minute)
		}
		return newerFirst(a, b)
	})

	out := make([]EventDetail, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.detail)
	}
	return out
}

func newerFirst(a, b match.Match) bool {
	switch {
	case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
		return a.Date.After(*b.Date)
	case a.Date != nil && b.Date == nil:
		return true
	case a.Date == nil && b.Date != nil:
		return false
	}
	return a.ID > b.ID
}

func minuteOf(minute *int) int {
	if minute == nil {
		return -1
	}
	return *minute
}
