package match

import "time"

// Match is one fixture keyed by the source's external match id. Identity
// fields are immutable; status, score and zone change only through the
// reconciliation passes.
type Match struct {
	ID            int64
	ExternalID    int64
	CompetitionID int64
	HomeTeamID    int64
	AwayTeamID    int64
	RefereeID     *int64
	Date          *time.Time
	Status        string
	Facility      string
	Round         *string
	Zone          *string
	HomeScore     *int
	AwayScore     *int
}

// Result is the derived state written by score/status reconciliation.
type Result struct {
	HomeScore int
	AwayScore int
	Status    string
}

func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Counts reports whether the match feeds standings: a played-class status
// and a stored score.
func (m Match) Counts() bool {
	return IsPlayed(m.Status) && m.HasScore()
}

func (m Match) Involves(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// GoalsFor returns (for, against) from teamID's perspective. Callers check
// HasScore first.
func (m Match) GoalsFor(teamID int64) (int, int) {
	if m.HomeTeamID == teamID {
		return *m.HomeScore, *m.AwayScore
	}
	return *m.AwayScore, *m.HomeScore
}

func (m Match) OpponentOf(teamID int64) int64 {
	if m.HomeTeamID == teamID {
		return m.AwayTeamID
	}
	return m.HomeTeamID
}

func (m Match) ZoneLabel() string {
	if m.Zone == nil {
		return ""
	}
	return *m.Zone
}

// Before orders matches chronologically; undated matches sort last and ties
// fall back to the internal id.
func Before(a, b Match) bool {
	switch {
	case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
		return a.Date.Before(*b.Date)
	case a.Date != nil && b.Date == nil:
		return true
	case a.Date == nil && b.Date != nil:
		return false
	}
	return a.ID < b.ID
}
