package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"logsweep/internal"
	"logsweep/internal/daylog"
	dedb "logsweep/internal/db"
	"logsweep/internal/models"
	"logsweep/internal/report"
	"logsweep/internal/schedule"
	"logsweep/internal/sweep"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:           "logsweep",
		Usage:          "run a workload, then prune its old log files",
		Flags:          flags(),
		DefaultCommand: "run",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run the workload, then sweep the log directory",
				Action: run,
			},
			{
				Name:   "sweep",
				Usage:  "sweep the log directory without running the workload",
				Action: sweepOnly,
			},
			{
				Name:   "history",
				Usage:  "list recorded sweeps",
				Action: history,
			},
			{
				Name:   "report",
				Usage:  "print the last run report",
				Action: lastReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf(err.Error())
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "workload",
			EnvVars: []string{"LOGSWEEP_WORKLOAD"},
			Usage:   "workload command to run before the sweep",
		},
		&cli.StringFlag{
			Name:    "log-dir",
			EnvVars: []string{"LOGSWEEP_LOG_DIR"},
			Value:   defaultDir("logs"),
			Usage:   "directory holding the workload's log files",
		},
		&cli.StringFlag{
			Name:    "data-dir",
			EnvVars: []string{"LOGSWEEP_DATA_DIR"},
			Value:   defaultDir(""),
			Usage:   "directory for the sweep ledger and run report",
		},
		&cli.DurationFlag{
			Name:    "retention",
			EnvVars: []string{"LOGSWEEP_RETENTION"},
			Value:   30 * 24 * time.Hour,
			Usage:   "maximum age a log file may reach before deletion",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Value: "*.log",
			Usage: "glob matched against file names in the log directory",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "log what would be deleted without deleting anything",
		},
		&cli.StringFlag{
			Name:    "schedule",
			EnvVars: []string{"LOGSWEEP_SCHEDULE"},
			Usage:   "cron expression; when set, run keeps cycling on this schedule",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "human-friendly debug logging",
		},
	}
}

// defaultDir resolves a subdirectory of ~/.logsweep, falling back to a
// relative path when the home directory cannot be determined.
func defaultDir(sub string) string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".logsweep", sub)
	}

	return filepath.Join(home, ".logsweep", sub)
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func configFrom(c *cli.Context) models.Config {
	argv := c.Args().Slice()
	if len(argv) == 0 {
		argv = strings.Fields(c.String("workload"))
	}

	return models.Config{
		Workload:  argv,
		LogDir:    c.String("log-dir"),
		DataDir:   c.String("data-dir"),
		Pattern:   c.String("pattern"),
		Retention: c.Duration("retention"),
		DryRun:    c.Bool("dry-run"),
	}
}

// run executes one workload-then-sweep cycle, or keeps cycling when a cron
// schedule is set. The process exit code is the workload's.
func run(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	runner := internal.NewRunner(logger, configFrom(c))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if spec := c.String("schedule"); spec != "" {
		if err := schedule.New(logger, runner.Run).Start(ctx, spec); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}

	if code := runner.Run(ctx); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}

func sweepOnly(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg := configFrom(c)
	s := &sweep.Sweeper{Logger: logger, DryRun: cfg.DryRun}

	result, err := s.Sweep(cfg.LogDir, cfg.Pattern, cfg.Retention)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if len(result.Deleted) == 0 {
		return nil
	}

	summary := fmt.Sprintf("Cleaned up %d old log file(s)", len(result.Deleted))
	fmt.Println(summary)

	if err := daylog.Append(cfg.LogDir, "cleanup", summary); err != nil {
		logger.Warn("cannot append cleanup summary", zap.Error(err))
	}

	return nil
}

func history(c *cli.Context) error {
	cfg := configFrom(c)

	path := filepath.Join(cfg.DataDir, internal.HistoryFile)
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No sweep history yet")
		return nil
	}

	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	dbase, err := dedb.Connect(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() {
		if err := dbase.Close(); err != nil {
			logger.Warn(err.Error())
		}
	}()

	repo, err := dedb.NewRepository(dbase, logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	results, err := repo.List()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, r := range results {
		fmt.Printf("%s  deleted=%d failed=%d freed_bytes=%d\n",
			r.SweptAt.Format(time.RFC3339), len(r.Deleted), len(r.Failed), r.FreedBytes)

		for _, d := range r.Deleted {
			fmt.Printf("  %s  %s\n", d.Path, d.Digest)
		}
	}

	return nil
}

func lastReport(c *cli.Context) error {
	rep, err := report.Read(configFrom(c).DataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("No report yet")
			return nil
		}
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("last run:      %s\n", rep.LastRun.Format(time.RFC3339))
	fmt.Printf("workload exit: %d\n", rep.WorkloadExit)
	fmt.Printf("deleted:       %d\n", rep.Deleted)
	fmt.Printf("failed:        %d\n", rep.Failed)
	fmt.Printf("freed bytes:   %d\n", rep.FreedBytes)

	return nil
}
