package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"logsweep/internal/daylog"
	dedb "logsweep/internal/db"
	"logsweep/internal/models"
	"logsweep/internal/report"
	"logsweep/internal/sweep"
	"logsweep/internal/workload"

	"go.uber.org/zap"
)

// HistoryFile is the name of the sweep ledger inside the data directory.
const HistoryFile = "history.db"

type Runner struct {
	logger *zap.Logger
	cfg    models.Config
}

func NewRunner(logger *zap.Logger, cfg models.Config) *Runner {
	return &Runner{
		logger: logger,
		cfg:    cfg,
	}
}

// Run executes one workload-then-sweep cycle and returns the exit code the
// process should finish with. That code is always the workload's: sweep,
// ledger and report failures are logged and contained.
func (r *Runner) Run(ctx context.Context) int {
	start := time.Now()
	defer func() {
		r.logger.Info("run finished", zap.Duration("elapsed", time.Since(start)))
	}()

	dl, err := daylog.Open(r.cfg.LogDir)
	if err != nil {
		r.logger.Warn("cannot open day log", zap.Error(err))
	}
	defer func() {
		_ = dl.Footer()
		_ = dl.Close()
	}()
	_ = dl.Header()
	_ = dl.Log("main", "Run started")

	exitCode := r.runWorkload(ctx, dl)
	result := r.sweepLogs(dl)
	r.writeReport(start, exitCode, result)

	_ = dl.Log("main", "Run completed")
	return exitCode
}

func (r *Runner) runWorkload(ctx context.Context, dl *daylog.Writer) int {
	if len(r.cfg.Workload) == 0 {
		r.logger.Warn("no workload configured, sweeping logs only")
		return 0
	}

	_ = dl.Logf("workload", "Running %s", strings.Join(r.cfg.Workload, " "))

	code, err := workload.Run(ctx, r.logger, r.cfg.Workload[0], r.cfg.Workload[1:]...)
	if err != nil {
		r.logger.Error("workload failed to start", zap.Error(err))
		_ = dl.Logf("workload", "ERROR: %v", err)
		return 1
	}

	r.logger.Info("workload finished", zap.Int("exit_code", code))
	_ = dl.Logf("workload", "Finished with exit code %d", code)
	return code
}

// sweepLogs enforces the retention window over the log directory. Nothing in
// here can fail the run.
func (r *Runner) sweepLogs(dl *daylog.Writer) models.SweepResult {
	s := &sweep.Sweeper{Logger: r.logger, DryRun: r.cfg.DryRun}

	result, err := s.Sweep(r.cfg.LogDir, r.cfg.Pattern, r.cfg.Retention)
	if err != nil {
		r.logger.Warn("log sweep failed", zap.Error(err))
		return result
	}

	if len(result.Failed) > 0 {
		r.logger.Warn("some old log files could not be removed", zap.Int("failed", len(result.Failed)))
	}

	if len(result.Deleted) == 0 {
		return result
	}

	r.logger.Info("cleaned up old log files",
		zap.Int("deleted", len(result.Deleted)),
		zap.Int64("freed_bytes", result.FreedBytes))

	_ = dl.Logf("cleanup", "Cleaned up %d old log file(s)", len(result.Deleted))
	r.recordSweep(result)

	return result
}

func (r *Runner) recordSweep(result models.SweepResult) {
	if r.cfg.DataDir == "" {
		return
	}

	if err := os.MkdirAll(r.cfg.DataDir, 0o755); err != nil {
		r.logger.Warn("cannot create data directory", zap.Error(err))
		return
	}

	dbase, err := dedb.Connect(filepath.Join(r.cfg.DataDir, HistoryFile))
	if err != nil {
		r.logger.Warn("cannot open sweep ledger", zap.Error(err))
		return
	}
	defer func() {
		if err := dbase.Close(); err != nil {
			r.logger.Warn("cannot close sweep ledger", zap.Error(err))
		}
	}()

	repo, err := dedb.NewRepository(dbase, r.logger)
	if err != nil {
		r.logger.Warn("cannot open sweep ledger", zap.Error(err))
		return
	}

	if err := repo.Record(result); err != nil {
		r.logger.Warn("cannot record sweep", zap.Error(err))
	}
}

func (r *Runner) writeReport(start time.Time, exitCode int, result models.SweepResult) {
	if r.cfg.DataDir == "" {
		return
	}

	rep := report.Report{
		LastRun:      start,
		WorkloadExit: exitCode,
		Deleted:      len(result.Deleted),
		Failed:       len(result.Failed),
		FreedBytes:   result.FreedBytes,
	}

	if err := report.Write(r.cfg.DataDir, rep); err != nil {
		r.logger.Warn("cannot write run report", zap.Error(err))
	}
}
