package comet

import (
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

// The report rows mix numbers and strings for the same field depending on
// the report template, so every consumed field is decoded leniently.

type matchRow struct {
	MatchID            flexInt64  `json:"matchId"`
	HomeTeam           flexInt64  `json:"homeTeam"`
	AwayTeam           flexInt64  `json:"awayTeam"`
	MatchDescription   flexString `json:"matchDescription"`
	Season             flexString `json:"season"`
	CompetitionType    flexString `json:"competitionType"`
	Category           flexString `json:"category"`
	Gender             flexString `json:"gender"`
	Round              flexString `json:"round"`
	MatchDate          flexInt64  `json:"matchDate"`
	MatchStatus        flexString `json:"matchStatus"`
	Facility           flexString `json:"facility"`
	AssocName          flexString `json:"assocName"`
	RefereeID          flexInt64  `json:"refereeId"`
	RefereeName        flexString `json:"refereeName"`
	RefereeGender      flexString `json:"refereeGender"`
	RefereeNationality flexString `json:"refereeNationality"`
	RefereeDateOfBirth flexInt64  `json:"refereeDateOfBirth"`
}

func (r matchRow) external() usecase.ExternalMatchRow {
	return usecase.ExternalMatchRow{
		MatchID:            int64(r.MatchID),
		HomeTeamID:         int64(r.HomeTeam),
		AwayTeamID:         int64(r.AwayTeam),
		Description:        string(r.MatchDescription),
		Season:             string(r.Season),
		CompetitionType:    string(r.CompetitionType),
		Category:           string(r.Category),
		Gender:             string(r.Gender),
		Round:              string(r.Round),
		MatchDateMillis:    r.MatchDate.ptr(),
		Status:             string(r.MatchStatus),
		Facility:           string(r.Facility),
		AssociationName:    string(r.AssocName),
		RefereeID:          int64(r.RefereeID),
		RefereeName:        string(r.RefereeName),
		RefereeGender:      string(r.RefereeGender),
		RefereeNationality: string(r.RefereeNationality),
		RefereeBirthMillis: r.RefereeDateOfBirth.ptr(),
	}
}

type eventRow struct {
	MatchID           flexInt64  `json:"matchId"`
	TeamID            flexInt64  `json:"teamId"`
	PersonID          flexInt64  `json:"personId"`
	PersonName        flexString `json:"personName"`
	MatchEventType    flexString `json:"matchEventType"`
	EventSubType      flexString `json:"eventSubType"`
	Minute            flexString `json:"minute"`
	Phase             flexString `json:"phase"`
	Home              flexString `json:"home"`
	StoppageTime      flexString `json:"stoppageTime"`
	AccumulatedYellow flexString `json:"accumulatedYellow"`
	SecondPersonID    flexInt64  `json:"secondPersonId"`
	Season            flexString `json:"season"`
}

func (r eventRow) external() usecase.ExternalEventRow {
	return usecase.ExternalEventRow{
		MatchID:           int64(r.MatchID),
		TeamID:            int64(r.TeamID),
		PersonID:          int64(r.PersonID),
		PersonName:        string(r.PersonName),
		EventType:         string(r.MatchEventType),
		EventSubType:      string(r.EventSubType),
		Minute:            matchevent.ParseMinute(string(r.Minute)),
		Phase:             string(r.Phase),
		IsHome:            matchevent.ParseHomeFlag(string(r.Home)),
		StoppageTime:      matchevent.ParseMinute(string(r.StoppageTime)),
		AccumulatedYellow: string(r.AccumulatedYellow),
		SecondPersonID:    int64(r.SecondPersonID),
		Season:            string(r.Season),
	}
}

type zoneRow struct {
	MatchID flexInt64  `json:"matchId"`
	Name    flexString `json:"name"`
}

func (r zoneRow) external() usecase.ExternalZoneRow {
	return usecase.ExternalZoneRow{MatchID: int64(r.MatchID), Name: string(r.Name)}
}

// flexInt64 accepts a number, a numeric string or null. Anything else
// decodes to zero, which consumers treat as absent.
type flexInt64 int64

func (v *flexInt64) UnmarshalJSON(data []byte) error {
	*v = 0
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return nil
		}
		raw = strings.TrimSpace(text)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*v = flexInt64(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		*v = flexInt64(f)
	}
	return nil
}

func (v flexInt64) ptr() *int64 {
	if v == 0 {
		return nil
	}
	out := int64(v)
	return &out
}

// flexString keeps strings as is and renders numbers and booleans as text.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*s = ""
	case strings.HasPrefix(raw, `"`):
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(text))
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		*s = ""
	default:
		*s = flexString(raw)
	}
	return nil
}
