package usecase

import (
	"context"
	"iter"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
)

// SyncStore opens units of work against the relational store and guards
// against concurrent runs.
type SyncStore interface {
	// TryLock takes the run-level lock without waiting. acquired is false
	// when another run holds it; release must be called once when true.
	TryLock(ctx context.Context) (release func(), acquired bool, err error)
	Begin(ctx context.Context) (SyncSession, error)
}

// SyncSession is a single transaction. Writes made through its repositories
// are visible to later reads in the same session and become durable on
// Commit. Rollback after Commit is a no-op.
type SyncSession interface {
	Competitions() competition.Repository
	Teams() team.Repository
	Players() player.Repository
	Referees() referee.Repository
	Matches() match.Repository
	Events() matchevent.Repository
	SyncLogs() synclog.Repository
	Commit() error
	Rollback() error
}

// ReportSource streams the upstream report pages. A yielded error ends the
// sequence; pages yielded before it stay valid.
type ReportSource interface {
	MatchPages(ctx context.Context) iter.Seq2[ExternalPage[ExternalMatchRow], error]
	EventPages(ctx context.Context) iter.Seq2[ExternalPage[ExternalEventRow], error]
	ZonePages(ctx context.Context) iter.Seq2[ExternalPage[ExternalZoneRow], error]
}

type ExternalPage[T any] struct {
	Page     int
	LastPage int
	Rows     []T
}

// ExternalMatchRow is one row of the match report, typed at the fetch boundary.
type ExternalMatchRow struct {
	MatchID            int64
	HomeTeamID         int64
	AwayTeamID         int64
	Description        string
	Season             string
	CompetitionType    string
	Category           string
	Gender             string
	Round              string
	MatchDateMillis    *int64
	Status             string
	Facility           string
	AssociationName    string
	RefereeID          int64
	RefereeName        string
	RefereeGender      string
	RefereeNationality string
	RefereeBirthMillis *int64
}

// ExternalEventRow is one row of the event report. Minute and StoppageTime
// are already sanitized; nil means absent or non-numeric.
type ExternalEventRow struct {
	MatchID           int64
	TeamID            int64
	PersonID          int64
	PersonName        string
	EventType         string
	EventSubType      string
	Minute            *int
	Phase             string
	IsHome            bool
	StoppageTime      *int
	AccumulatedYellow string
	SecondPersonID    int64
	Season            string
}

type ExternalZoneRow struct {
	MatchID int64
	Name    string
}
