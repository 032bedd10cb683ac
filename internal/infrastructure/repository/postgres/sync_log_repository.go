package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	qb "github.com/riskibarqy/league-sync/internal/platform/querybuilder"
)

type SyncLogRepository struct {
	db sqlx.ExtContext
}

func NewSyncLogRepository(db sqlx.ExtContext) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

func (r *SyncLogRepository) Append(ctx context.Context, item *synclog.Entry) error {
	query, args, err := qb.InsertModel("sync_log", syncLogTableModel{
		RunID:            item.RunID,
		SyncDate:         item.SyncDate.UTC(),
		RecordsProcessed: item.RecordsProcessed,
	}).Returning("id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert sync log query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return insertErr(err, "insert sync log run_id=%s", item.RunID)
	}
	return nil
}

func (r *SyncLogRepository) Latest(ctx context.Context) (synclog.Entry, bool, error) {
	query, args, err := qb.Select("id, run_id, sync_date, records_processed").
		From("sync_log").
		OrderBy("sync_date DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return synclog.Entry{}, false, fmt.Errorf("build latest sync log query: %w", err)
	}

	var row syncLogTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return synclog.Entry{}, false, nil
		}
		return synclog.Entry{}, false, fmt.Errorf("get latest sync log: %w", err)
	}
	return row.domain(), true, nil
}
