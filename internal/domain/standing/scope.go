package standing

import (
	"sort"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

// Scope is the set of matches and teams a table is computed over.
// Members is nil in whole-competition mode, meaning every team gets a row.
type Scope struct {
	Zone    string
	Matches []match.Match
	Members map[int64]struct{}
}

func (s Scope) Includes(teamID int64) bool {
	if s.Members == nil {
		return true
	}
	_, ok := s.Members[teamID]
	return ok
}

// NewScope selects the matches of one zone. Zone teams are those appearing in
// a match tagged with the zone; the scope then holds matches tagged with the
// zone or the interzonal sentinel that involve at least one zone team. An
// empty zone selects every match. The result is in chronological order.
func NewScope(matches []match.Match, zone string) Scope {
	if zone == "" {
		return Scope{Matches: chronological(matches)}
	}

	members := make(map[int64]struct{})
	for _, m := range matches {
		if m.ZoneLabel() == zone {
			members[m.HomeTeamID] = struct{}{}
			members[m.AwayTeamID] = struct{}{}
		}
	}

	scoped := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		label := m.ZoneLabel()
		if label != zone && label != match.ZoneInterzonal {
			continue
		}
		_, home := members[m.HomeTeamID]
		_, away := members[m.AwayTeamID]
		if home || away {
			scoped = append(scoped, m)
		}
	}

	return Scope{Zone: zone, Matches: chronological(scoped), Members: members}
}

func chronological(matches []match.Match) []match.Match {
	out := make([]match.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return match.Before(out[i], out[j])
	})
	return out
}

// teamOrder lists scoped teams by first appearance so that ties left by the
// ranking sort keep a deterministic order.
func teamOrder(scope Scope, counted func(match.Match) bool) []int64 {
	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	add := func(teamID int64) {
		if !scope.Includes(teamID) {
			return
		}
		if _, ok := seen[teamID]; ok {
			return
		}
		seen[teamID] = struct{}{}
		out = append(out, teamID)
	}
	for _, m := range scope.Matches {
		if counted != nil && !counted(m) {
			continue
		}
		add(m.HomeTeamID)
		add(m.AwayTeamID)
	}
	return out
}
