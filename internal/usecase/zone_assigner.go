package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-sync/internal/domain/match"
)

type zoneOutcome int

const (
	zoneUpdated zoneOutcome = iota
	zoneUnchanged
	zoneSkippedUnknownMatch
	zoneSkippedUnparseable
)

// ZoneStageStats counts zone rows by outcome.
type ZoneStageStats struct {
	Updated            int `json:"updated"`
	Unchanged          int `json:"unchanged"`
	SkippedUnknown     int `json:"skipped_unknown_match"`
	SkippedUnparseable int `json:"skipped_unparseable"`
}

func (s *ZoneStageStats) add(outcome zoneOutcome) {
	switch outcome {
	case zoneUpdated:
		s.Updated++
	case zoneUnchanged:
		s.Unchanged++
	case zoneSkippedUnknownMatch:
		s.SkippedUnknown++
	default:
		s.SkippedUnparseable++
	}
}

// assignZone attaches the zone parsed from a "<group> - <zone>" label to a
// known match and returns the match when it changed.
func assignZone(ctx context.Context, resolver *EntityResolver, row ExternalZoneRow) (match.Match, zoneOutcome, error) {
	zone, ok := match.ParseZoneLabel(row.Name)
	if !ok {
		return match.Match{}, zoneSkippedUnparseable, nil
	}
	m, ok, err := resolver.LookupMatch(ctx, row.MatchID)
	if err != nil {
		return match.Match{}, 0, err
	}
	if !ok {
		return match.Match{}, zoneSkippedUnknownMatch, nil
	}
	if m.ZoneLabel() == zone {
		return match.Match{}, zoneUnchanged, nil
	}

	if err := resolver.session.Matches().UpdateZone(ctx, m.ID, zone); err != nil {
		return match.Match{}, 0, fmt.Errorf("update zone match_id=%d: %w", m.ID, err)
	}
	m.Zone = &zone
	resolver.RememberMatch(m)
	return m, zoneUpdated, nil
}
