package main

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-sync/internal/usecase"
)

type fakeRunner struct {
	runCalls    int
	repairScope []int64
	err         error
}

func (f *fakeRunner) Run(context.Context) (usecase.SyncReport, error) {
	f.runCalls++
	return usecase.SyncReport{RunID: "run-1"}, f.err
}

func (f *fakeRunner) RepairScores(_ context.Context, competitionID int64) ([]usecase.ScoreRepair, error) {
	f.repairScope = append(f.repairScope, competitionID)
	return []usecase.ScoreRepair{{MatchID: 7}, {MatchID: 9}}, f.err
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "defaults", args: nil, want: options{}},
		{name: "repair all", args: []string{"-repair-only"}, want: options{repairOnly: true}},
		{name: "repair one", args: []string{"-repair-only", "-competition", "4"}, want: options{repairOnly: true, competitionID: 4}},
		{name: "competition without repair", args: []string{"-competition", "4"}, wantErr: true},
		{name: "negative competition", args: []string{"-repair-only", "-competition", "-1"}, wantErr: true},
		{name: "stray argument", args: []string{"now"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFlags(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseFlags(%v)=%+v want=%+v", tc.args, got, tc.want)
			}
		})
	}
}

func TestExecute_Run(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	result, err := execute(context.Background(), runner, options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report, ok := result.(usecase.SyncReport)
	if !ok || report.RunID != "run-1" || runner.runCalls != 1 {
		t.Fatalf("unexpected run result: %#v calls=%d", result, runner.runCalls)
	}
	if len(runner.repairScope) != 0 {
		t.Fatalf("repair must not run on a full sync")
	}
}

func TestExecute_RepairOnly(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	result, err := execute(context.Background(), runner, options{repairOnly: true, competitionID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := result.(repairResult)
	if !ok || got.Repaired != 2 || got.MatchIDs[1] != 9 {
		t.Fatalf("unexpected repair result: %#v", result)
	}
	if runner.runCalls != 0 || len(runner.repairScope) != 1 || runner.repairScope[0] != 3 {
		t.Fatalf("unexpected calls: run=%d repair=%v", runner.runCalls, runner.repairScope)
	}
}

func TestExecute_PropagatesLockError(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: usecase.ErrSyncInProgress}
	if _, err := execute(context.Background(), runner, options{}); !errors.Is(err, usecase.ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}
}
