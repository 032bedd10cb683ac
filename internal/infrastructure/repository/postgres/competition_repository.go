package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

const competitionColumns = "id, name, season, category, gender"

type CompetitionRepository struct {
	db sqlx.ExtContext
}

func NewCompetitionRepository(db sqlx.ExtContext) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id int64) (competition.Competition, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("id", id))
}

func (r *CompetitionRepository) GetByKey(ctx context.Context, key competition.Key) (competition.Competition, bool, error) {
	return r.getOne(ctx, "key", qb.Eq("name", key.Name), qb.Eq("season", key.Season))
}

func (r *CompetitionRepository) getOne(ctx context.Context, by string, where ...qb.Condition) (competition.Competition, bool, error) {
	query, args, err := qb.Select(competitionColumns).From("competitions").Where(where...).Limit(1).ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by %s query: %w", by, err)
	}

	var row competitionTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by %s: %w", by, err)
	}
	return row.domain(), true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item *competition.Competition) error {
	query, args, err := qb.InsertModel("competitions", competitionTableModel{
		Name:     item.Name,
		Season:   item.Season,
		Category: item.Category,
		Gender:   item.Gender,
	}).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert competition name=%q season=%q", item.Name, item.Season)
	}
	return nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select(competitionColumns).From("competitions").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return mapRows[competitionTableModel, competition.Competition](rows), nil
}
