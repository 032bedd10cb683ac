package postgres

import (
	"database/sql"
	"errors"
	"math"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// ErrDuplicate reports a unique-key violation on insert.
var ErrDuplicate = crerr.New("duplicate key")

const uniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// insertErr maps unique violations to ErrDuplicate and wraps the rest with
// the operation context.
func insertErr(err error, format string, args ...any) error {
	if isUniqueViolation(err) {
		return crerr.Mark(crerr.Wrapf(err, format, args...), ErrDuplicate)
	}
	return crerr.Wrapf(err, format, args...)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt64ToPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

// nullInt32 stores values that do not fit an INTEGER column as NULL rather
// than truncating them.
func nullInt32(v *int) sql.NullInt32 {
	if v == nil || *v < math.MinInt32 || *v > math.MaxInt32 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullInt32ToPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int32)
	return &out
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}
