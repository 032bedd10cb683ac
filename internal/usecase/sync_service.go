package usecase

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/platform/id"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

type SyncConfig struct {
	TargetSeason string
	// CommitEveryPages bounds transaction size inside a page loop.
	CommitEveryPages int
	WithReferees     bool
	ZonesEnabled     bool
}

// SyncListener is notified after a run committed successfully.
type SyncListener interface {
	SyncCompleted(ctx context.Context, report SyncReport)
}

// SyncReport summarizes one run.
type SyncReport struct {
	RunID            string          `json:"run_id"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       time.Time       `json:"finished_at"`
	Matches          MatchStageStats `json:"matches"`
	Zones            ZoneStageStats  `json:"zones"`
	Events           EventStageStats `json:"events"`
	ScoreRepairs     int             `json:"score_repairs"`
	RecordsProcessed int             `json:"records_processed"`
	// CompetitionIDs lists competitions whose matches changed during the run.
	CompetitionIDs []int64 `json:"competition_ids"`
}

type SyncService struct {
	store    SyncStore
	source   ReportSource
	cfg      SyncConfig
	ids      id.Generator
	listener SyncListener
	logger   *logging.Logger
	now      func() time.Time
}

func NewSyncService(store SyncStore, source ReportSource, cfg SyncConfig, ids id.Generator, listener SyncListener, logger *logging.Logger) *SyncService {
	if cfg.CommitEveryPages <= 0 {
		cfg.CommitEveryPages = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &SyncService{
		store:    store,
		source:   source,
		cfg:      cfg,
		ids:      ids,
		listener: listener,
		logger:   logger.Named("sync"),
		now:      time.Now,
	}
}

// Run performs one full sync: matches, zones, events with score repair, then
// the sync log entry. Batches committed before a failure are kept.
func (s *SyncService) Run(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	release, err := s.lock(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	defer release()

	runID, err := s.ids.NewID()
	if err != nil {
		return SyncReport{}, fmt.Errorf("generate run id: %w", err)
	}

	run := &syncRun{
		svc:         s,
		logger:      s.logger.With("run_id", runID),
		matches:     NewMatchReconciler(s.cfg.TargetSeason, s.cfg.WithReferees),
		events:      NewEventReconciler(s.cfg.TargetSeason),
		touched:     make(map[int64]struct{}),
		competition: make(map[int64]struct{}),
		report:      SyncReport{RunID: runID, StartedAt: s.now().UTC()},
	}
	run.logger.InfoContext(ctx, "sync run started", "season", s.cfg.TargetSeason)

	if err := run.execute(ctx); err != nil {
		run.logger.ErrorContext(ctx, "sync run failed", "error", err,
			"matches_inserted", run.report.Matches.Inserted,
			"events_inserted", run.report.Events.Inserted,
		)
		return run.report, err
	}

	report := run.report
	run.logger.InfoContext(ctx, "sync run finished",
		"records_processed", report.RecordsProcessed,
		"score_repairs", report.ScoreRepairs,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	if s.listener != nil {
		s.listener.SyncCompleted(ctx, report)
	}
	return report, nil
}

// RepairScores runs score/status repair over every match with at least one
// goal-class event, optionally restricted to one competition.
func (s *SyncService) RepairScores(ctx context.Context, competitionID int64) ([]ScoreRepair, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.RepairScores")
	defer span.End()

	release, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin repair session: %w", err)
	}
	defer func() { _ = session.Rollback() }()

	ids, err := session.Events().ListMatchIDsByKinds(ctx, matchevent.GoalKinds)
	if err != nil {
		return nil, fmt.Errorf("list matches with goals: %w", err)
	}
	if competitionID > 0 {
		matches, err := session.Matches().ListByCompetition(ctx, competitionID)
		if err != nil {
			return nil, fmt.Errorf("list matches competition_id=%d: %w", competitionID, err)
		}
		ids = intersectMatchIDs(ids, matches)
	}

	repairs, err := repairScores(ctx, session, ids)
	if err != nil {
		return nil, err
	}
	if len(repairs) == 0 {
		s.logger.InfoContext(ctx, "score repair finished", "competition_id", competitionID, "candidates", len(ids), "repaired", 0)
		return repairs, nil
	}

	// A repair changes committed results, so it is logged like a run and
	// readers in other processes drop their caches.
	runID, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	finished := s.now().UTC()
	entry := synclog.Entry{RunID: runID, SyncDate: finished, RecordsProcessed: len(repairs)}
	if err := session.SyncLogs().Append(ctx, &entry); err != nil {
		return nil, fmt.Errorf("append sync log: %w", err)
	}
	if err := session.Commit(); err != nil {
		return nil, fmt.Errorf("commit score repair: %w", err)
	}

	s.logger.InfoContext(ctx, "score repair finished", "run_id", runID, "competition_id", competitionID, "candidates", len(ids), "repaired", len(repairs))
	if s.listener != nil {
		s.listener.SyncCompleted(ctx, SyncReport{
			RunID:            runID,
			FinishedAt:       finished,
			ScoreRepairs:     len(repairs),
			RecordsProcessed: len(repairs),
			CompetitionIDs:   repairedCompetitions(repairs),
		})
	}
	return repairs, nil
}

// LastRun returns the latest sync log entry.
func (s *SyncService) LastRun(ctx context.Context) (synclog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.LastRun")
	defer span.End()

	session, err := s.store.Begin(ctx)
	if err != nil {
		return synclog.Entry{}, fmt.Errorf("begin session: %w", err)
	}
	defer func() { _ = session.Rollback() }()

	entry, ok, err := session.SyncLogs().Latest(ctx)
	if err != nil {
		return synclog.Entry{}, fmt.Errorf("get latest sync log: %w", err)
	}
	if !ok {
		return synclog.Entry{}, fmt.Errorf("%w: no sync run recorded", ErrNotFound)
	}
	return entry, nil
}

func (s *SyncService) lock(ctx context.Context) (func(), error) {
	release, acquired, err := s.store.TryLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire sync lock: %v", ErrDependencyUnavailable, err)
	}
	if !acquired {
		return nil, ErrSyncInProgress
	}
	return release, nil
}

type syncRun struct {
	svc      *SyncService
	logger   *logging.Logger
	matches  *MatchReconciler
	events   *EventReconciler
	resolver *EntityResolver

	// touched holds matches whose events changed since the last repair.
	touched     map[int64]struct{}
	competition map[int64]struct{}
	report      SyncReport
}

func (r *syncRun) execute(ctx context.Context) error {
	b := &batch{store: r.svc.store, every: r.svc.cfg.CommitEveryPages}

	err := runStage(ctx, r, b, "matches", r.svc.source.MatchPages(ctx), r.handleMatch, nil)
	if err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "match stage finished",
		"inserted", r.report.Matches.Inserted,
		"existed", r.report.Matches.Existed,
		"skipped_season", r.report.Matches.SkippedSeason,
		"skipped_malformed", r.report.Matches.SkippedMalformed,
	)

	if r.svc.cfg.ZonesEnabled {
		if err := runStage(ctx, r, b, "zones", r.svc.source.ZonePages(ctx), r.handleZone, nil); err != nil {
			return err
		}
		r.logger.InfoContext(ctx, "zone stage finished",
			"updated", r.report.Zones.Updated,
			"skipped_unknown_match", r.report.Zones.SkippedUnknown,
			"skipped_unparseable", r.report.Zones.SkippedUnparseable,
		)
	}

	if err := runStage(ctx, r, b, "events", r.svc.source.EventPages(ctx), r.handleEvent, r.repairTouched); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "event stage finished",
		"inserted", r.report.Events.Inserted,
		"home_flag_corrected", r.report.Events.HomeFlagCorrected,
		"unchanged", r.report.Events.Unchanged,
		"skipped_unknown_match", r.report.Events.SkippedUnknownMatch,
		"skipped_unknown_team", r.report.Events.SkippedUnknownTeam,
		"skipped_season", r.report.Events.SkippedSeason,
		"score_repairs", r.report.ScoreRepairs,
	)

	return r.appendSyncLog(ctx, b)
}

func (r *syncRun) handleMatch(ctx context.Context, row ExternalMatchRow) error {
	inserted, outcome, err := r.matches.Reconcile(ctx, r.resolver, row)
	if err != nil {
		return err
	}
	r.report.Matches.add(outcome)
	switch outcome {
	case matchInserted:
		r.competition[inserted.CompetitionID] = struct{}{}
	case matchSkippedMalformed:
		r.logger.DebugContext(ctx, "match row skipped", "match_id", row.MatchID, "description", row.Description)
	}
	return nil
}

func (r *syncRun) handleZone(ctx context.Context, row ExternalZoneRow) error {
	updated, outcome, err := assignZone(ctx, r.resolver, row)
	if err != nil {
		return err
	}
	r.report.Zones.add(outcome)
	if outcome == zoneUpdated {
		r.competition[updated.CompetitionID] = struct{}{}
	}
	return nil
}

func (r *syncRun) handleEvent(ctx context.Context, row ExternalEventRow) error {
	if !r.events.InSeason(row) {
		r.report.Events.SkippedSeason++
		return nil
	}
	outcome, err := r.events.Reconcile(ctx, r.resolver, row, r.touched)
	if err != nil {
		return err
	}
	r.report.Events.add(outcome)
	if outcome == eventSkippedUnknownMatch || outcome == eventSkippedUnknownTeam {
		r.logger.DebugContext(ctx, "event row skipped", "match_id", row.MatchID, "team_id", row.TeamID, "person_id", row.PersonID)
	}
	return nil
}

// repairTouched runs before each event batch commit so that a committed batch
// never leaves a touched match with a stale score.
func (r *syncRun) repairTouched(ctx context.Context, session SyncSession) error {
	if len(r.touched) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(r.touched))
	for matchID := range r.touched {
		ids = append(ids, matchID)
	}
	repairs, err := repairScores(ctx, session, ids)
	if err != nil {
		return err
	}
	for _, repair := range repairs {
		r.competition[repair.Before.CompetitionID] = struct{}{}
		r.logger.DebugContext(ctx, "match result repaired",
			"match_id", repair.MatchID,
			"status_before", repair.Before.Status,
			"status_after", repair.After.Status,
			"home_score", repair.After.HomeScore,
			"away_score", repair.After.AwayScore,
		)
	}
	r.report.ScoreRepairs += len(repairs)
	clear(r.touched)
	return nil
}

func (r *syncRun) appendSyncLog(ctx context.Context, b *batch) error {
	if err := b.open(ctx, r); err != nil {
		return err
	}

	finished := r.svc.now().UTC()
	r.report.FinishedAt = finished
	r.report.RecordsProcessed = r.report.Matches.Inserted +
		r.report.Events.Inserted +
		r.report.Events.HomeFlagCorrected +
		r.report.Zones.Updated +
		r.report.ScoreRepairs
	r.report.CompetitionIDs = sortedIDs(r.competition)

	entry := synclog.Entry{
		RunID:            r.report.RunID,
		SyncDate:         finished,
		RecordsProcessed: r.report.RecordsProcessed,
	}
	if err := b.session.SyncLogs().Append(ctx, &entry); err != nil {
		b.abort()
		return fmt.Errorf("append sync log: %w", err)
	}
	return b.commit()
}

// batch owns the open session of a stage and commits it every N pages.
type batch struct {
	store   SyncStore
	every   int
	session SyncSession
	pages   int
}

func (b *batch) open(ctx context.Context, run *syncRun) error {
	session, err := b.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	b.session = session
	b.pages = 0
	if run.resolver == nil {
		run.resolver = NewEntityResolver(session, run.logger)
	} else {
		run.resolver.Bind(session)
	}
	return nil
}

func (b *batch) commit() error {
	if b.session == nil {
		return nil
	}
	session := b.session
	b.session = nil
	if err := session.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (b *batch) abort() {
	if b.session == nil {
		return
	}
	_ = b.session.Rollback()
	b.session = nil
}

type flushFunc func(ctx context.Context, session SyncSession) error

func (b *batch) flush(ctx context.Context, flush flushFunc) error {
	if flush != nil {
		if err := flush(ctx, b.session); err != nil {
			return err
		}
	}
	return b.commit()
}

// runStage drives one paged stage. Rows are handled in order; a handler or
// source error rolls back the open session and stops the stage.
func runStage[T any](
	ctx context.Context,
	run *syncRun,
	b *batch,
	stage string,
	pages iter.Seq2[ExternalPage[T], error],
	handle func(context.Context, T) error,
	flush flushFunc,
) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.stage."+stage)
	defer span.End()

	if err := b.open(ctx, run); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			b.abort()
		}
	}()

	for page, fetchErr := range pages {
		if fetchErr != nil {
			return fmt.Errorf("fetch %s page: %w", stage, fetchErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, row := range page.Rows {
			if err := handle(ctx, row); err != nil {
				return fmt.Errorf("%s page %d: %w", stage, page.Page, err)
			}
		}
		run.logger.DebugContext(ctx, "page processed", "stage", stage, "page", page.Page, "last_page", page.LastPage, "rows", len(page.Rows))

		b.pages++
		if b.pages < b.every {
			continue
		}
		if err := b.flush(ctx, flush); err != nil {
			return fmt.Errorf("%s page %d: %w", stage, page.Page, err)
		}
		if err := b.open(ctx, run); err != nil {
			return err
		}
	}

	return b.flush(ctx, flush)
}

func intersectMatchIDs(ids []int64, matches []match.Match) []int64 {
	allowed := make(map[int64]struct{}, len(matches))
	for _, m := range matches {
		allowed[m.ID] = struct{}{}
	}
	out := make([]int64, 0, len(ids))
	for _, matchID := range ids {
		if _, ok := allowed[matchID]; ok {
			out = append(out, matchID)
		}
	}
	return out
}

func repairedCompetitions(repairs []ScoreRepair) []int64 {
	set := make(map[int64]struct{}, len(repairs))
	for _, repair := range repairs {
		set[repair.Before.CompetitionID] = struct{}{}
	}
	return sortedIDs(set)
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	slices.Sort(out)
	return out
}
