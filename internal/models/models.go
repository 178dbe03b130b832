package models

import "time"

// Config carries everything a run needs. Defaults are documented on the CLI
// flags; nothing in here is read from globals.
type Config struct {
	Workload  []string
	LogDir    string
	DataDir   string
	Pattern   string
	Retention time.Duration
	DryRun    bool
}

// DeletedFile is the audit record of a log file removed by a sweep. The
// digest is computed right before deletion, since the content is gone after.
type DeletedFile struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Digest  string    `json:"digest,omitempty"`
}

// SweepFailure records a candidate file that could not be removed.
type SweepFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// SweepResult describes one complete pass over a log directory. An empty
// Deleted and empty Failed means there was nothing old enough to remove,
// which is distinct from removals having failed.
type SweepResult struct {
	SweptAt    time.Time      `json:"swept_at"`
	Deleted    []DeletedFile  `json:"deleted,omitempty"`
	Failed     []SweepFailure `json:"failed,omitempty"`
	FreedBytes int64          `json:"freed_bytes"`
}
