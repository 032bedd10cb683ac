package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

// DefaultLockKey is the advisory lock id guarding sync runs.
const DefaultLockKey int64 = 0x6c656167756573

var errNoRowsAffected = errors.New("no rows affected")

// Store runs sync sessions as Postgres transactions. Reads made through the
// store-level repositories see committed state only.
type Store struct {
	db      *sqlx.DB
	lockKey int64
}

var _ usecase.SyncStore = (*Store)(nil)

func NewStore(db *sqlx.DB, lockKey int64) *Store {
	if lockKey == 0 {
		lockKey = DefaultLockKey
	}
	return &Store{db: db, lockKey: lockKey}
}

// TryLock takes a session-level advisory lock on a dedicated connection so
// the lock outlives the per-batch transactions.
func (s *Store) TryLock(ctx context.Context) (func(), bool, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("open lock connection: %w", err)
	}

	var acquired bool
	if err := conn.GetContext(ctx, &acquired, "SELECT pg_try_advisory_lock($1)", s.lockKey); err != nil {
		_ = conn.Close()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", s.lockKey)
			_ = conn.Close()
		})
	}
	return release, true, nil
}

func (s *Store) Begin(ctx context.Context) (usecase.SyncSession, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Session{tx: tx}, nil
}

func (s *Store) Competitions() competition.Repository { return NewCompetitionRepository(s.db) }
func (s *Store) Teams() team.Repository               { return NewTeamRepository(s.db) }
func (s *Store) Players() player.Repository           { return NewPlayerRepository(s.db) }
func (s *Store) Referees() referee.Repository         { return NewRefereeRepository(s.db) }
func (s *Store) Matches() match.Repository            { return NewMatchRepository(s.db) }
func (s *Store) Events() matchevent.Repository        { return NewEventRepository(s.db) }
func (s *Store) SyncLogs() synclog.Repository         { return NewSyncLogRepository(s.db) }

// Session wraps one transaction.
type Session struct {
	tx *sqlx.Tx
}

func (s *Session) Competitions() competition.Repository { return NewCompetitionRepository(s.tx) }
func (s *Session) Teams() team.Repository               { return NewTeamRepository(s.tx) }
func (s *Session) Players() player.Repository           { return NewPlayerRepository(s.tx) }
func (s *Session) Referees() referee.Repository         { return NewRefereeRepository(s.tx) }
func (s *Session) Matches() match.Repository            { return NewMatchRepository(s.tx) }
func (s *Session) Events() matchevent.Repository        { return NewEventRepository(s.tx) }
func (s *Session) SyncLogs() synclog.Repository         { return NewSyncLogRepository(s.tx) }

func (s *Session) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Session) Rollback() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
