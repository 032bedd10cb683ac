package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

var (
	ErrDuplicate    = errors.New("duplicate key")
	ErrNotFound     = errors.New("row not found")
	ErrSessionEnded = errors.New("session already committed or rolled back")
)

type state struct {
	competitions map[int64]competition.Competition
	teams        map[int64]team.Team
	players      map[int64]player.Player
	referees     map[int64]referee.Referee
	matches      map[int64]match.Match
	events       map[int64]matchevent.Event
	syncLogs     map[int64]synclog.Entry
	lastID       int64
}

func newState() *state {
	return &state{
		competitions: make(map[int64]competition.Competition),
		teams:        make(map[int64]team.Team),
		players:      make(map[int64]player.Player),
		referees:     make(map[int64]referee.Referee),
		matches:      make(map[int64]match.Match),
		events:       make(map[int64]matchevent.Event),
		syncLogs:     make(map[int64]synclog.Entry),
	}
}

// clone copies every table. Rows are values whose pointer fields are never
// written through, so a shallow copy per row is enough.
func (s *state) clone() *state {
	return &state{
		competitions: maps.Clone(s.competitions),
		teams:        maps.Clone(s.teams),
		players:      maps.Clone(s.players),
		referees:     maps.Clone(s.referees),
		matches:      maps.Clone(s.matches),
		events:       maps.Clone(s.events),
		syncLogs:     maps.Clone(s.syncLogs),
		lastID:       s.lastID,
	}
}

func (s *state) nextID() int64 {
	s.lastID++
	return s.lastID
}

// access runs a callback against one version of the tables.
type access interface {
	view(fn func(*state) error) error
	update(fn func(*state) error) error
}

// Store keeps all tables in memory. Sessions work on a snapshot that replaces
// the committed state on Commit; the run lock keeps writers serialized.
type Store struct {
	mu      sync.RWMutex
	data    *state
	runLock sync.Mutex
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) view(fn func(*state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) update(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) TryLock(_ context.Context) (func(), bool, error) {
	if !s.runLock.TryLock() {
		return nil, false, nil
	}
	var once sync.Once
	return func() { once.Do(s.runLock.Unlock) }, true, nil
}

func (s *Store) Begin(ctx context.Context) (usecase.SyncSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()
	return &Session{store: s, data: snapshot}, nil
}

func (s *Store) Competitions() competition.Repository { return competitionRepository{s} }
func (s *Store) Teams() team.Repository               { return teamRepository{s} }
func (s *Store) Players() player.Repository           { return playerRepository{s} }
func (s *Store) Referees() referee.Repository         { return refereeRepository{s} }
func (s *Store) Matches() match.Repository            { return matchRepository{s} }
func (s *Store) Events() matchevent.Repository        { return eventRepository{s} }
func (s *Store) SyncLogs() synclog.Repository         { return syncLogRepository{s} }

// Counts reports the number of rows per table.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"competitions": len(s.data.competitions),
		"teams":        len(s.data.teams),
		"players":      len(s.data.players),
		"referees":     len(s.data.referees),
		"matches":      len(s.data.matches),
		"events":       len(s.data.events),
		"sync_log":     len(s.data.syncLogs),
	}
}

// Session is a snapshot transaction.
type Session struct {
	mu    sync.Mutex
	store *Store
	data  *state
	done  bool
}

func (s *Session) view(fn func(*state) error) error {
	return s.update(fn)
}

func (s *Session) update(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrSessionEnded
	}
	return fn(s.data)
}

func (s *Session) Competitions() competition.Repository { return competitionRepository{s} }
func (s *Session) Teams() team.Repository               { return teamRepository{s} }
func (s *Session) Players() player.Repository           { return playerRepository{s} }
func (s *Session) Referees() referee.Repository         { return refereeRepository{s} }
func (s *Session) Matches() match.Repository            { return matchRepository{s} }
func (s *Session) Events() matchevent.Repository        { return eventRepository{s} }
func (s *Session) SyncLogs() synclog.Repository         { return syncLogRepository{s} }

func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrSessionEnded
	}
	s.done = true

	s.store.mu.Lock()
	s.store.data = s.data
	s.store.mu.Unlock()
	return nil
}

func (s *Session) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.data = nil
	return nil
}

func sortedValues[T any](rows map[int64]T, keep func(T) bool) []T {
	ids := slices.Sorted(maps.Keys(rows))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		row := rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func idSet(ids []int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func duplicate(table, key string, value any) error {
	return fmt.Errorf("%w: %s %s=%v", ErrDuplicate, table, key, value)
}
