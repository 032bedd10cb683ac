package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/league-sync/internal/domain/player"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

const playerColumns = "id, external_id, name, team_id"

type PlayerRepository struct {
	db sqlx.ExtContext
}

func NewPlayerRepository(db sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	return r.getOne(ctx, "external_id", externalID)
}

func (r *PlayerRepository) getOne(ctx context.Context, column string, value int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns).From("players").Where(qb.Eq(column, value)).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player %s=%d: %w", column, value, err)
	}
	return row.domain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item *player.Player) error {
	query, args, err := qb.InsertModel("players", playerTableModel{
		ExternalID: item.ExternalID,
		Name:       item.Name,
		TeamID:     nullInt64(item.TeamID),
	}).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert player external_id=%d", item.ExternalID)
	}
	return nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}
	query, args, err := qb.Select(playerColumns).From("players").Where(qb.Any("id", pq.Array(ids))).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players by ids: %w", err)
	}
	return mapRows[playerTableModel, player.Player](rows), nil
}
