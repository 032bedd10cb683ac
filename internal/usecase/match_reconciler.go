package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
)

type matchOutcome int

const (
	matchInserted matchOutcome = iota
	matchExisted
	matchSkippedSeason
	matchSkippedMalformed
)

// MatchStageStats counts match rows by outcome.
type MatchStageStats struct {
	Inserted         int `json:"inserted"`
	Existed          int `json:"existed"`
	SkippedSeason    int `json:"skipped_season"`
	SkippedMalformed int `json:"skipped_malformed"`
}

func (s *MatchStageStats) add(outcome matchOutcome) {
	switch outcome {
	case matchInserted:
		s.Inserted++
	case matchExisted:
		s.Existed++
	case matchSkippedSeason:
		s.SkippedSeason++
	default:
		s.SkippedMalformed++
	}
}

// MatchReconciler inserts matches not yet stored. Existing matches are left
// untouched; their status, score and zone only move through the repair and
// zone passes.
type MatchReconciler struct {
	targetSeason string
	withReferees bool
}

func NewMatchReconciler(targetSeason string, withReferees bool) *MatchReconciler {
	return &MatchReconciler{
		targetSeason: strings.TrimSpace(targetSeason),
		withReferees: withReferees,
	}
}

func (r *MatchReconciler) Reconcile(ctx context.Context, resolver *EntityResolver, row ExternalMatchRow) (match.Match, matchOutcome, error) {
	if r.targetSeason != "" && strings.TrimSpace(row.Season) != r.targetSeason {
		return match.Match{}, matchSkippedSeason, nil
	}
	if row.MatchID == 0 || row.HomeTeamID == 0 || row.AwayTeamID == 0 {
		return match.Match{}, matchSkippedMalformed, nil
	}

	if _, exists, err := resolver.LookupMatch(ctx, row.MatchID); err != nil {
		return match.Match{}, 0, err
	} else if exists {
		return match.Match{}, matchExisted, nil
	}

	desc, ok := match.ParseDescription(row.Description)
	if !ok {
		return match.Match{}, matchSkippedMalformed, nil
	}

	comp, err := resolver.Competition(ctx, competition.Competition{
		Name:     row.CompetitionType,
		Season:   row.Season,
		Category: row.Category,
		Gender:   row.Gender,
	})
	if err != nil {
		return match.Match{}, 0, err
	}
	home, ok, err := resolver.Team(ctx, row.HomeTeamID, desc.HomeName, row.AssociationName)
	if err != nil || !ok {
		return match.Match{}, matchSkippedMalformed, err
	}
	away, ok, err := resolver.Team(ctx, row.AwayTeamID, desc.AwayName, row.AssociationName)
	if err != nil || !ok {
		return match.Match{}, matchSkippedMalformed, err
	}

	item := match.Match{
		ExternalID:    row.MatchID,
		CompetitionID: comp.ID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		Date:          match.FromEpochMillis(row.MatchDateMillis),
		Status:        strings.TrimSpace(row.Status),
		Facility:      strings.TrimSpace(row.Facility),
		Round:         match.NormalizeRound(row.Round),
		HomeScore:     desc.HomeGoals,
		AwayScore:     desc.AwayGoals,
	}
	if r.withReferees {
		ref, ok, err := resolver.Referee(ctx, referee.Referee{
			ExternalID:  row.RefereeID,
			Name:        row.RefereeName,
			Gender:      strings.TrimSpace(row.RefereeGender),
			Nationality: strings.TrimSpace(row.RefereeNationality),
			DateOfBirth: match.FromEpochMillis(row.RefereeBirthMillis),
		})
		if err != nil {
			return match.Match{}, 0, err
		}
		if ok {
			item.RefereeID = &ref.ID
		}
	}

	if err := resolver.session.Matches().Create(ctx, &item); err != nil {
		return match.Match{}, 0, fmt.Errorf("create match external_id=%d: %w", row.MatchID, err)
	}
	resolver.RememberMatch(item)
	return item, matchInserted, nil
}
