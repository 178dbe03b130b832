package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

const filename = "last_run.json"

// Report is the machine-readable summary of the most recent run.
type Report struct {
	LastRun      time.Time `json:"last_run"`
	WorkloadExit int       `json:"workload_exit"`
	Deleted      int       `json:"deleted"`
	Failed       int       `json:"failed"`
	FreedBytes   int64     `json:"freed_bytes"`
}

// Write replaces the report file atomically, so a crash mid-write never
// leaves a truncated report behind.
func Write(dir string, rep Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %v: %w", dir, err)
	}

	marshalled, err := json.MarshalIndent(&rep, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(filepath.Join(dir, filename), bytes.NewReader(marshalled))
}

func Read(dir string) (Report, error) {
	var rep Report

	raw, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return rep, err
	}

	if err := json.Unmarshal(raw, &rep); err != nil {
		return rep, fmt.Errorf("parsing report: %w", err)
	}

	return rep, nil
}
