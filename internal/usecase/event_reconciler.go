package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
)

type eventOutcome int

const (
	eventInserted eventOutcome = iota
	eventHomeFlagCorrected
	eventUnchanged
	eventSkippedUnknownMatch
	eventSkippedUnknownTeam
	eventSkippedMalformed
)

// EventStageStats counts event rows by outcome.
type EventStageStats struct {
	Inserted            int `json:"inserted"`
	HomeFlagCorrected   int `json:"home_flag_corrected"`
	Unchanged           int `json:"unchanged"`
	SkippedUnknownMatch int `json:"skipped_unknown_match"`
	SkippedUnknownTeam  int `json:"skipped_unknown_team"`
	SkippedMalformed    int `json:"skipped_malformed"`
	SkippedSeason       int `json:"skipped_season"`
}

func (s *EventStageStats) add(outcome eventOutcome) {
	switch outcome {
	case eventInserted:
		s.Inserted++
	case eventHomeFlagCorrected:
		s.HomeFlagCorrected++
	case eventUnchanged:
		s.Unchanged++
	case eventSkippedUnknownMatch:
		s.SkippedUnknownMatch++
	case eventSkippedUnknownTeam:
		s.SkippedUnknownTeam++
	default:
		s.SkippedMalformed++
	}
}

// EventReconciler inserts new events and corrects the home flag of existing
// ones. Matches whose events changed are recorded in touched.
type EventReconciler struct {
	targetSeason string
}

func NewEventReconciler(targetSeason string) *EventReconciler {
	return &EventReconciler{targetSeason: strings.TrimSpace(targetSeason)}
}

// InSeason reports whether a row belongs to the synced season. Untagged rows
// are dropped like any other mismatch.
func (r *EventReconciler) InSeason(row ExternalEventRow) bool {
	return r.targetSeason == "" || strings.TrimSpace(row.Season) == r.targetSeason
}

func (r *EventReconciler) Reconcile(ctx context.Context, resolver *EntityResolver, row ExternalEventRow, touched map[int64]struct{}) (eventOutcome, error) {
	kind := strings.TrimSpace(row.EventType)
	if kind == "" || row.PersonID == 0 {
		return eventSkippedMalformed, nil
	}

	m, ok, err := resolver.LookupMatch(ctx, row.MatchID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return eventSkippedUnknownMatch, nil
	}
	actingTeam, ok, err := resolver.LookupTeam(ctx, row.TeamID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return eventSkippedUnknownTeam, nil
	}
	p, ok, err := resolver.Player(ctx, row.PersonID, row.PersonName, actingTeam.ID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return eventSkippedMalformed, nil
	}

	repo := resolver.session.Events()
	key := matchevent.NewNaturalKey(m.ID, p.ID, kind, row.Minute, strings.TrimSpace(row.Phase))
	existing, found, err := repo.GetByNaturalKey(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get event match_id=%d player_id=%d: %w", m.ID, p.ID, err)
	}
	if found {
		if existing.IsHome == row.IsHome {
			return eventUnchanged, nil
		}
		if err := repo.UpdateHomeFlag(ctx, existing.ID, row.IsHome); err != nil {
			return 0, fmt.Errorf("update event id=%d home flag: %w", existing.ID, err)
		}
		touched[m.ID] = struct{}{}
		return eventHomeFlagCorrected, nil
	}

	item := matchevent.Event{
		MatchID:           m.ID,
		PlayerID:          p.ID,
		TeamID:            actingTeam.ID,
		Kind:              key.Kind,
		SubType:           optionalString(row.EventSubType),
		Minute:            key.MinutePtr(),
		Phase:             key.Phase,
		IsHome:            row.IsHome,
		StoppageTime:      row.StoppageTime,
		AccumulatedYellow: optionalString(row.AccumulatedYellow),
	}
	if row.SecondPersonID != 0 {
		second, ok, err := resolver.LookupPlayer(ctx, row.SecondPersonID)
		if err != nil {
			return 0, err
		}
		if ok {
			item.SecondPlayerID = &second.ID
		}
	}

	if err := repo.Create(ctx, &item); err != nil {
		return 0, fmt.Errorf("create event match_id=%d player_id=%d kind=%q: %w", m.ID, p.ID, kind, err)
	}
	touched[m.ID] = struct{}{}
	return eventInserted, nil
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
