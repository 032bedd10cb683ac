package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

const unknownName = "unknown"

// EntityResolver maps external identifiers to stored records for a single
// sync run. It is created by SyncService.Run, rebound to each new session and
// dropped when the run returns, so its caches never outlive the run.
type EntityResolver struct {
	session SyncSession
	logger  *logging.Logger

	competitions map[competition.Key]competition.Competition
	teams        map[int64]team.Team
	players      map[int64]player.Player
	referees     map[int64]referee.Referee
	matches      map[int64]match.Match
}

func NewEntityResolver(session SyncSession, logger *logging.Logger) *EntityResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &EntityResolver{
		session:      session,
		logger:       logger,
		competitions: make(map[competition.Key]competition.Competition),
		teams:        make(map[int64]team.Team),
		players:      make(map[int64]player.Player),
		referees:     make(map[int64]referee.Referee),
		matches:      make(map[int64]match.Match),
	}
}

// Bind points the resolver at a fresh session after a batch commit. Cached
// records stay valid because they were committed with the previous session.
func (r *EntityResolver) Bind(session SyncSession) {
	r.session = session
}

// Competition returns the competition identified by (name, season), creating
// it with the remaining fields of proto when absent.
func (r *EntityResolver) Competition(ctx context.Context, proto competition.Competition) (competition.Competition, error) {
	if strings.TrimSpace(proto.Name) == "" {
		proto.Name = unknownName
	}
	key := proto.Key()
	if cached, ok := r.competitions[key]; ok {
		return cached, nil
	}

	repo := r.session.Competitions()
	found, ok, err := repo.GetByKey(ctx, key)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition name=%q season=%q: %w", key.Name, key.Season, err)
	}
	if ok {
		r.competitions[key] = found
		return found, nil
	}

	item := competition.Competition{
		Name:     key.Name,
		Season:   key.Season,
		Category: strings.TrimSpace(proto.Category),
		Gender:   strings.TrimSpace(proto.Gender),
	}
	if err := repo.Create(ctx, &item); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition name=%q season=%q: %w", key.Name, key.Season, err)
	}
	r.competitions[key] = item
	return item, nil
}

// Team resolves or creates a team. ok is false when externalID is zero, which
// callers treat as "skip this row".
func (r *EntityResolver) Team(ctx context.Context, externalID int64, name, association string) (team.Team, bool, error) {
	found, ok, err := r.LookupTeam(ctx, externalID)
	name = strings.TrimSpace(name)
	if ok && name != "" && name != found.Name {
		// first-seen name wins
		r.logger.DebugContext(ctx, "team name differs from stored name", "external_id", externalID, "stored", found.Name, "seen", name)
	}
	if err != nil || ok || externalID == 0 {
		return found, ok, err
	}

	if name == "" {
		name = unknownName
	}
	item := team.Team{ExternalID: externalID, Name: name, Association: strings.TrimSpace(association)}
	if err := r.session.Teams().Create(ctx, &item); err != nil {
		return team.Team{}, false, fmt.Errorf("create team external_id=%d: %w", externalID, err)
	}
	r.teams[externalID] = item
	return item, true, nil
}

// LookupTeam resolves a team without creating it.
func (r *EntityResolver) LookupTeam(ctx context.Context, externalID int64) (team.Team, bool, error) {
	if externalID == 0 {
		return team.Team{}, false, nil
	}
	if cached, ok := r.teams[externalID]; ok {
		return cached, true, nil
	}

	found, ok, err := r.session.Teams().GetByExternalID(ctx, externalID)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team external_id=%d: %w", externalID, err)
	}
	if ok {
		r.teams[externalID] = found
	}
	return found, ok, nil
}

// Player resolves or creates a player. The team is only used on creation.
func (r *EntityResolver) Player(ctx context.Context, externalID int64, name string, teamID int64) (player.Player, bool, error) {
	found, ok, err := r.LookupPlayer(ctx, externalID)
	if err != nil || ok || externalID == 0 {
		return found, ok, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = unknownName
	}
	item := player.Player{ExternalID: externalID, Name: name}
	if teamID != 0 {
		item.TeamID = &teamID
	}
	if err := r.session.Players().Create(ctx, &item); err != nil {
		return player.Player{}, false, fmt.Errorf("create player external_id=%d: %w", externalID, err)
	}
	r.players[externalID] = item
	return item, true, nil
}

func (r *EntityResolver) LookupPlayer(ctx context.Context, externalID int64) (player.Player, bool, error) {
	if externalID == 0 {
		return player.Player{}, false, nil
	}
	if cached, ok := r.players[externalID]; ok {
		return cached, true, nil
	}

	found, ok, err := r.session.Players().GetByExternalID(ctx, externalID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get player external_id=%d: %w", externalID, err)
	}
	if ok {
		r.players[externalID] = found
	}
	return found, ok, nil
}

// Referee resolves or creates a referee from the referee fields of proto.
func (r *EntityResolver) Referee(ctx context.Context, proto referee.Referee) (referee.Referee, bool, error) {
	if proto.ExternalID == 0 {
		return referee.Referee{}, false, nil
	}
	if cached, ok := r.referees[proto.ExternalID]; ok {
		return cached, true, nil
	}

	repo := r.session.Referees()
	found, ok, err := repo.GetByExternalID(ctx, proto.ExternalID)
	if err != nil {
		return referee.Referee{}, false, fmt.Errorf("get referee external_id=%d: %w", proto.ExternalID, err)
	}
	if ok {
		r.referees[proto.ExternalID] = found
		return found, true, nil
	}

	item := proto
	item.ID = 0
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		item.Name = unknownName
	}
	if err := repo.Create(ctx, &item); err != nil {
		return referee.Referee{}, false, fmt.Errorf("create referee external_id=%d: %w", proto.ExternalID, err)
	}
	r.referees[proto.ExternalID] = item
	return item, true, nil
}

// LookupMatch finds a stored match by external id. Matches are never created
// here; the match reconciler calls RememberMatch after inserting one.
func (r *EntityResolver) LookupMatch(ctx context.Context, externalID int64) (match.Match, bool, error) {
	if externalID == 0 {
		return match.Match{}, false, nil
	}
	if cached, ok := r.matches[externalID]; ok {
		return cached, true, nil
	}

	found, ok, err := r.session.Matches().GetByExternalID(ctx, externalID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match external_id=%d: %w", externalID, err)
	}
	if ok {
		r.matches[externalID] = found
	}
	return found, ok, nil
}

// RememberMatch caches a match after it was inserted or updated.
func (r *EntityResolver) RememberMatch(item match.Match) {
	r.matches[item.ExternalID] = item
}
