package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

const eventColumns = "id, match_id, player_id, team_id, kind, sub_type, minute, phase, is_home, second_player_id, stoppage_time, accumulated_yellow"

// normalizedKindSQL mirrors matchevent.NormalizeKind.
const normalizedKindSQL = `btrim(regexp_replace(translate(lower(kind), '-_', '  '), '\s+', ' ', 'g'))`

type EventRepository struct {
	db sqlx.ExtContext
}

func NewEventRepository(db sqlx.ExtContext) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByNaturalKey(ctx context.Context, key matchevent.NaturalKey) (matchevent.Event, bool, error) {
	minute := qb.IsNull("minute")
	if key.MinuteKnown {
		minute = qb.Eq("minute", key.Minute)
	}
	query, args, err := qb.Select(eventColumns).
		From("events").
		Where(
			qb.Eq("match_id", key.MatchID),
			qb.Eq("player_id", key.PlayerID),
			qb.Eq("kind", key.Kind),
			minute,
			qb.Eq("phase", key.Phase),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchevent.Event{}, false, nil
		}
		return matchevent.Event{}, false, fmt.Errorf("get event match_id=%d player_id=%d: %w", key.MatchID, key.PlayerID, err)
	}
	return row.domain(), true, nil
}

func (r *EventRepository) Create(ctx context.Context, item *matchevent.Event) error {
	query, args, err := qb.InsertModel("events", eventModelFrom(*item)).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert event match_id=%d player_id=%d kind=%q", item.MatchID, item.PlayerID, item.Kind)
	}
	return nil
}

func (r *EventRepository) UpdateHomeFlag(ctx context.Context, id int64, isHome bool) error {
	query, args, err := qb.Update("events").Set("is_home", isHome).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build update event home flag query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update home flag of event id=%d: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update home flag of event id=%d: %w", id, errNoRowsAffected)
	}
	return nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID int64) ([]matchevent.Event, error) {
	return r.list(ctx, qb.Eq("match_id", matchID))
}

func (r *EventRepository) ListByMatches(ctx context.Context, matchIDs []int64) ([]matchevent.Event, error) {
	if len(matchIDs) == 0 {
		return []matchevent.Event{}, nil
	}
	return r.list(ctx, qb.Any("match_id", pq.Array(matchIDs)))
}

func (r *EventRepository) ListByPlayer(ctx context.Context, playerID int64) ([]matchevent.Event, error) {
	return r.list(ctx, qb.Eq("player_id", playerID))
}

func (r *EventRepository) list(ctx context.Context, where qb.Condition) ([]matchevent.Event, error) {
	query, args, err := qb.Select(eventColumns).From("events").Where(where).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return mapRows[eventTableModel, matchevent.Event](rows), nil
}

func (r *EventRepository) ListMatchIDsByKinds(ctx context.Context, kinds []string) ([]int64, error) {
	normalized := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		normalized = append(normalized, matchevent.NormalizeKind(kind))
	}
	if len(normalized) == 0 {
		return []int64{}, nil
	}

	query, args, err := qb.SelectDistinct("match_id").
		From("events").
		Where(qb.Expr(normalizedKindSQL+" = ANY(?)", pq.Array(normalized))).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match ids by kinds query: %w", err)
	}

	ids := []int64{}
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list match ids by kinds: %w", err)
	}
	return ids, nil
}
