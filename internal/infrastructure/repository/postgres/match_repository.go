package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

const matchColumns = "id, external_id, competition_id, home_team_id, away_team_id, referee_id, match_date, status, facility, round, zone, home_score, away_score"

type MatchRepository struct {
	db sqlx.ExtContext
}

func NewMatchRepository(db sqlx.ExtContext) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.getOne(ctx, "id", id)
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID int64) (match.Match, bool, error) {
	return r.getOne(ctx, "external_id", externalID)
}

func (r *MatchRepository) getOne(ctx context.Context, column string, value int64) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches").Where(qb.Eq(column, value)).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match %s=%d: %w", column, value, err)
	}
	return row.domain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item *match.Match) error {
	query, args, err := qb.InsertModel("matches", matchModelFrom(*item)).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert match external_id=%d", item.ExternalID)
	}
	return nil
}

func (r *MatchRepository) UpdateZone(ctx context.Context, id int64, zone string) error {
	query, args, err := qb.Update("matches").Set("zone", zone).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build update match zone query: %w", err)
	}
	return r.exec(ctx, query, args, "update zone of match id=%d", id)
}

func (r *MatchRepository) UpdateResult(ctx context.Context, id int64, result match.Result) error {
	query, args, err := qb.Update("matches").
		Set("home_score", result.HomeScore).
		Set("away_score", result.AwayScore).
		Set("status", result.Status).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match result query: %w", err)
	}
	return r.exec(ctx, query, args, "update result of match id=%d", id)
}

func (r *MatchRepository) exec(ctx context.Context, query string, args []any, format string, id int64) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf(format+": %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf(format+": %w", id, errNoRowsAffected)
	}
	return nil
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]match.Match, error) {
	return r.list(ctx, fmt.Sprintf("competition_id=%d", competitionID), qb.Eq("competition_id", competitionID))
}

func (r *MatchRepository) ListByIDs(ctx context.Context, ids []int64) ([]match.Match, error) {
	if len(ids) == 0 {
		return []match.Match{}, nil
	}
	return r.list(ctx, "by ids", qb.Any("id", pq.Array(ids)))
}

func (r *MatchRepository) list(ctx context.Context, label string, where qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns).
		From("matches").
		Where(where).
		OrderBy("match_date ASC NULLS LAST", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches %s: %w", label, err)
	}
	return mapRows[matchTableModel, match.Match](rows), nil
}

func (r *MatchRepository) ListZones(ctx context.Context, competitionID int64) ([]string, error) {
	query, args, err := qb.SelectDistinct("zone").
		From("matches").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.NotNull("zone"),
			qb.Expr("btrim(zone) <> ''"),
			qb.Expr("zone <> ?", match.ZoneInterzonal),
		).
		OrderBy("zone").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list zones query: %w", err)
	}

	zones := []string{}
	if err := sqlx.SelectContext(ctx, r.db, &zones, query, args...); err != nil {
		return nil, fmt.Errorf("list zones competition_id=%d: %w", competitionID, err)
	}
	return zones, nil
}
