package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/league-sync/internal/app"
	"github.com/riskibarqy/league-sync/internal/config"
	"github.com/riskibarqy/league-sync/internal/observability"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

// Exit codes: a held run lock is reported separately so schedulers can
// tell overlap from failure.
const (
	exitOK         = 0
	exitFailed     = 1
	exitUsage      = 2
	exitInProgress = 3
)

type options struct {
	repairOnly    bool
	competitionID int64
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout))
}

func realMain(args []string, stdout io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		return exitFailed
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return exitFailed
	}
	if err := cfg.RequireSource(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	logger := logging.NewConsole(cfg.LogLevel).Named("sync-cli")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		return exitFailed
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return exitFailed
	}
	defer func() { _ = container.Close() }()

	result, err := execute(ctx, container.Sync, opts)
	if err != nil {
		if errors.Is(err, usecase.ErrSyncInProgress) {
			logger.Warn("another sync run holds the lock", "error", err)
			return exitInProgress
		}
		logger.Error("sync failed", "error", err)
		return exitFailed
	}

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		return exitFailed
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.BoolVar(&opts.repairOnly, "repair-only", false, "only recompute match scores from goal events")
	fs.Int64Var(&opts.competitionID, "competition", 0, "restrict -repair-only to one competition id")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.competitionID < 0 {
		return options{}, fmt.Errorf("-competition must not be negative")
	}
	if opts.competitionID > 0 && !opts.repairOnly {
		return options{}, fmt.Errorf("-competition requires -repair-only")
	}
	return opts, nil
}

// syncRunner is the part of *usecase.SyncService the CLI drives.
type syncRunner interface {
	Run(ctx context.Context) (usecase.SyncReport, error)
	RepairScores(ctx context.Context, competitionID int64) ([]usecase.ScoreRepair, error)
}

type repairResult struct {
	CompetitionID int64   `json:"competition_id,omitempty"`
	Repaired      int     `json:"repaired"`
	MatchIDs      []int64 `json:"match_ids"`
}

func execute(ctx context.Context, runner syncRunner, opts options) (any, error) {
	if opts.repairOnly {
		repairs, err := runner.RepairScores(ctx, opts.competitionID)
		if err != nil {
			return nil, err
		}
		result := repairResult{CompetitionID: opts.competitionID, Repaired: len(repairs), MatchIDs: make([]int64, 0, len(repairs))}
		for _, repair := range repairs {
			result.MatchIDs = append(result.MatchIDs, repair.MatchID)
		}
		return result, nil
	}
	return runner.Run(ctx)
}
