package match

import (
	"strconv"
	"strings"
	"time"
)

const (
	teamSeparator = " - "
	zoneSeparator = " - "
)

// Description is the parsed form of "<home> - <away> <h>:<a>".
type Description struct {
	HomeName  string
	AwayName  string
	HomeGoals *int
	AwayGoals *int
}

// ParseDescription splits a match description into team names and an
// optional score. The score token is the last whitespace-separated token when
// it contains ':'; each side is nil unless it is a plain non-negative integer
// that fits a score column.
// Descriptions without the " - " separator or with an empty side are rejected.
func ParseDescription(raw string) (Description, bool) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Description{}, false
	}

	var out Description
	if last := tokens[len(tokens)-1]; strings.Contains(last, ":") && len(tokens) > 1 {
		home, away, _ := strings.Cut(last, ":")
		out.HomeGoals = parseGoals(home)
		out.AwayGoals = parseGoals(away)
		tokens = tokens[:len(tokens)-1]
	}

	teams := strings.Join(tokens, " ")
	home, away, found := strings.Cut(teams, teamSeparator)
	if !found {
		return Description{}, false
	}
	out.HomeName = strings.TrimSpace(home)
	out.AwayName = strings.TrimSpace(away)
	if out.HomeName == "" || out.AwayName == "" {
		return Description{}, false
	}
	return out, true
}

func parseGoals(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	goals := int(value)
	return &goals
}

// ParseZoneLabel returns the suffix after the last " - " of a
// "<group> - <zone>" label.
func ParseZoneLabel(raw string) (string, bool) {
	idx := strings.LastIndex(raw, zoneSeparator)
	if idx < 0 {
		return "", false
	}
	zone := strings.TrimSpace(raw[idx+len(zoneSeparator):])
	if zone == "" {
		return "", false
	}
	return zone, true
}

// NormalizeRound maps blank and placeholder rounds to nil.
func NormalizeRound(raw string) *string {
	round := strings.TrimSpace(raw)
	if round == "" || round == "-" {
		return nil
	}
	return &round
}

// FromEpochMillis converts the source's millisecond timestamps; nil or zero
// means the field was absent.
func FromEpochMillis(ms *int64) *time.Time {
	if ms == nil || *ms == 0 {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
