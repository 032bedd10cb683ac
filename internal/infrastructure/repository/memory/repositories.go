package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
)

type competitionRepository struct{ db access }

func (r competitionRepository) GetByID(_ context.Context, id int64) (out competition.Competition, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		out, ok = s.competitions[id]
		return nil
	})
	return out, ok, err
}

func (r competitionRepository) GetByKey(_ context.Context, key competition.Key) (out competition.Competition, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.competitions {
			if item.Key() == key {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r competitionRepository) Create(_ context.Context, item *competition.Competition) error {
	return r.db.update(func(s *state) error {
		for _, existing := range s.competitions {
			if existing.Key() == item.Key() {
				return duplicate("competitions", "name_season", item.Key())
			}
		}
		item.ID = s.nextID()
		s.competitions[item.ID] = *item
		return nil
	})
}

func (r competitionRepository) List(_ context.Context) (out []competition.Competition, err error) {
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.competitions, nil)
		return nil
	})
	return out, err
}

type teamRepository struct{ db access }

func (r teamRepository) GetByExternalID(_ context.Context, externalID int64) (out team.Team, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.teams {
			if item.ExternalID == externalID {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r teamRepository) Create(_ context.Context, item *team.Team) error {
	return r.db.update(func(s *state) error {
		for _, existing := range s.teams {
			if existing.ExternalID == item.ExternalID {
				return duplicate("teams", "external_id", item.ExternalID)
			}
		}
		item.ID = s.nextID()
		s.teams[item.ID] = *item
		return nil
	})
}

func (r teamRepository) ListByIDs(_ context.Context, ids []int64) (out []team.Team, err error) {
	wanted := idSet(ids)
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.teams, func(item team.Team) bool {
			_, ok := wanted[item.ID]
			return ok
		})
		return nil
	})
	return out, err
}

type playerRepository struct{ db access }

func (r playerRepository) GetByID(_ context.Context, id int64) (out player.Player, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		out, ok = s.players[id]
		return nil
	})
	return out, ok, err
}

func (r playerRepository) GetByExternalID(_ context.Context, externalID int64) (out player.Player, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.players {
			if item.ExternalID == externalID {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r playerRepository) Create(_ context.Context, item *player.Player) error {
	return r.db.update(func(s *state) error {
		for _, existing := range s.players {
			if existing.ExternalID == item.ExternalID {
				return duplicate("players", "external_id", item.ExternalID)
			}
		}
		item.ID = s.nextID()
		s.players[item.ID] = *item
		return nil
	})
}

func (r playerRepository) ListByIDs(_ context.Context, ids []int64) (out []player.Player, err error) {
	wanted := idSet(ids)
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.players, func(item player.Player) bool {
			_, ok := wanted[item.ID]
			return ok
		})
		return nil
	})
	return out, err
}

type refereeRepository struct{ db access }

func (r refereeRepository) GetByExternalID(_ context.Context, externalID int64) (out referee.Referee, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.referees {
			if item.ExternalID == externalID {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r refereeRepository) Create(_ context.Context, item *referee.Referee) error {
	return r.db.update(func(s *state) error {
		for _, existing := range s.referees {
			if existing.ExternalID == item.ExternalID {
				return duplicate("referees", "external_id", item.ExternalID)
			}
		}
		item.ID = s.nextID()
		s.referees[item.ID] = *item
		return nil
	})
}

type matchRepository struct{ db access }

func (r matchRepository) GetByID(_ context.Context, id int64) (out match.Match, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		out, ok = s.matches[id]
		return nil
	})
	return out, ok, err
}

func (r matchRepository) GetByExternalID(_ context.Context, externalID int64) (out match.Match, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.matches {
			if item.ExternalID == externalID {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r matchRepository) Create(_ context.Context, item *match.Match) error {
	return r.db.update(func(s *state) error {
		for _, existing := range s.matches {
			if existing.ExternalID == item.ExternalID {
				return duplicate("matches", "external_id", item.ExternalID)
			}
		}
		item.ID = s.nextID()
		s.matches[item.ID] = *item
		return nil
	})
}

func (r matchRepository) UpdateZone(_ context.Context, id int64, zone string) error {
	return r.db.update(func(s *state) error {
		item, ok := s.matches[id]
		if !ok {
			return fmt.Errorf("%w: match id=%d", ErrNotFound, id)
		}
		item.Zone = &zone
		s.matches[id] = item
		return nil
	})
}

func (r matchRepository) UpdateResult(_ context.Context, id int64, result match.Result) error {
	return r.db.update(func(s *state) error {
		item, ok := s.matches[id]
		if !ok {
			return fmt.Errorf("%w: match id=%d", ErrNotFound, id)
		}
		home, away := result.HomeScore, result.AwayScore
		item.HomeScore = &home
		item.AwayScore = &away
		item.Status = result.Status
		s.matches[id] = item
		return nil
	})
}

func (r matchRepository) ListByCompetition(_ context.Context, competitionID int64) (out []match.Match, err error) {
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.matches, func(item match.Match) bool {
			return item.CompetitionID == competitionID
		})
		return nil
	})
	return out, err
}

func (r matchRepository) ListByIDs(_ context.Context, ids []int64) (out []match.Match, err error) {
	wanted := idSet(ids)
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.matches, func(item match.Match) bool {
			_, ok := wanted[item.ID]
			return ok
		})
		return nil
	})
	return out, err
}

func (r matchRepository) ListZones(_ context.Context, competitionID int64) (out []string, err error) {
	err = r.db.view(func(s *state) error {
		seen := make(map[string]struct{})
		for _, item := range s.matches {
			zone := item.ZoneLabel()
			if item.CompetitionID != competitionID || zone == "" || zone == match.ZoneInterzonal {
				continue
			}
			if _, ok := seen[zone]; !ok {
				seen[zone] = struct{}{}
				out = append(out, zone)
			}
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

type eventRepository struct{ db access }

func (r eventRepository) GetByNaturalKey(_ context.Context, key matchevent.NaturalKey) (out matchevent.Event, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.events {
			if item.Key() == key {
				out, ok = item, true
				return nil
			}
		}
		return nil
	})
	return out, ok, err
}

func (r eventRepository) Create(_ context.Context, item *matchevent.Event) error {
	return r.db.update(func(s *state) error {
		key := item.Key()
		for _, existing := range s.events {
			if existing.Key() == key {
				return duplicate("events", "natural_key", key)
			}
		}
		item.ID = s.nextID()
		s.events[item.ID] = *item
		return nil
	})
}

func (r eventRepository) UpdateHomeFlag(_ context.Context, id int64, isHome bool) error {
	return r.db.update(func(s *state) error {
		item, ok := s.events[id]
		if !ok {
			return fmt.Errorf("%w: event id=%d", ErrNotFound, id)
		}
		item.IsHome = isHome
		s.events[id] = item
		return nil
	})
}

func (r eventRepository) ListByMatch(ctx context.Context, matchID int64) ([]matchevent.Event, error) {
	return r.ListByMatches(ctx, []int64{matchID})
}

func (r eventRepository) ListByMatches(_ context.Context, matchIDs []int64) (out []matchevent.Event, err error) {
	wanted := idSet(matchIDs)
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.events, func(item matchevent.Event) bool {
			_, ok := wanted[item.MatchID]
			return ok
		})
		return nil
	})
	return out, err
}

func (r eventRepository) ListByPlayer(_ context.Context, playerID int64) (out []matchevent.Event, err error) {
	err = r.db.view(func(s *state) error {
		out = sortedValues(s.events, func(item matchevent.Event) bool {
			return item.PlayerID == playerID
		})
		return nil
	})
	return out, err
}

func (r eventRepository) ListMatchIDsByKinds(_ context.Context, kinds []string) (out []int64, err error) {
	wanted := make(map[string]struct{}, len(kinds))
	for _, kind := range kinds {
		wanted[matchevent.NormalizeKind(kind)] = struct{}{}
	}
	err = r.db.view(func(s *state) error {
		seen := make(map[int64]struct{})
		for _, item := range s.events {
			if _, ok := wanted[matchevent.NormalizeKind(item.Kind)]; !ok {
				continue
			}
			if _, ok := seen[item.MatchID]; !ok {
				seen[item.MatchID] = struct{}{}
				out = append(out, item.MatchID)
			}
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

type syncLogRepository struct{ db access }

func (r syncLogRepository) Append(_ context.Context, item *synclog.Entry) error {
	return r.db.update(func(s *state) error {
		item.ID = s.nextID()
		s.syncLogs[item.ID] = *item
		return nil
	})
}

func (r syncLogRepository) Latest(_ context.Context) (out synclog.Entry, ok bool, err error) {
	err = r.db.view(func(s *state) error {
		for _, item := range s.syncLogs {
			if !ok || item.SyncDate.After(out.SyncDate) || (item.SyncDate.Equal(out.SyncDate) && item.ID > out.ID) {
				out, ok = item, true
			}
		}
		return nil
	})
	return out, ok, err
}
