package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/league-sync/internal/domain/team"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

const teamColumns = "id, external_id, name, parent_club_id, association"

type TeamRepository struct {
	db sqlx.ExtContext
}

func NewTeamRepository(db sqlx.ExtContext) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams").Where(qb.Eq("external_id", externalID)).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team external_id=%d: %w", externalID, err)
	}
	return row.domain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item *team.Team) error {
	query, args, err := qb.InsertModel("teams", teamTableModel{
		ExternalID:   item.ExternalID,
		Name:         item.Name,
		ParentClubID: nullInt64(item.ParentClubID),
		Association:  item.Association,
	}).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert team external_id=%d", item.ExternalID)
	}
	return nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return []team.Team{}, nil
	}
	query, args, err := qb.Select(teamColumns).From("teams").Where(qb.Any("id", pq.Array(ids))).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by ids: %w", err)
	}
	return mapRows[teamTableModel, team.Team](rows), nil
}
