package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-sync/internal/domain/referee"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

type RefereeRepository struct {
	db sqlx.ExtContext
}

func NewRefereeRepository(db sqlx.ExtContext) *RefereeRepository {
	return &RefereeRepository{db: db}
}

func (r *RefereeRepository) GetByExternalID(ctx context.Context, externalID int64) (referee.Referee, bool, error) {
	query, args, err := qb.Select("id, external_id, name, gender, nationality, date_of_birth").
		From("referees").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return referee.Referee{}, false, fmt.Errorf("build get referee query: %w", err)
	}

	var row refereeTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return referee.Referee{}, false, nil
		}
		return referee.Referee{}, false, fmt.Errorf("get referee external_id=%d: %w", externalID, err)
	}
	return row.domain(), true, nil
}

func (r *RefereeRepository) Create(ctx context.Context, item *referee.Referee) error {
	query, args, err := qb.InsertModel("referees", refereeTableModel{
		ExternalID:  item.ExternalID,
		Name:        item.Name,
		Gender:      item.Gender,
		Nationality: item.Nationality,
		DateOfBirth: nullTime(item.DateOfBirth),
	}).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert referee query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert referee external_id=%d", item.ExternalID)
	}
	return nil
}
