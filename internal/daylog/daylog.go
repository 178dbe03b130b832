package daylog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const rule = "############################################"

// Writer appends human-readable entries to the dated log file of the day it
// was opened, one per line, in the form "[HH:MM:SS][tag] - message".
//
// A nil *Writer is valid and writes nothing, so callers that could not open
// the day log keep their call sites unconditional.
type Writer struct {
	f *os.File
}

// Open creates the log directory if needed and opens today's log file
// (YYYY-MM-DD.log) in append mode.
func Open(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %v: %w", dir, err)
	}

	name := time.Now().Format("2006-01-02") + ".log"
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening day log %v: %w", name, err)
	}

	return &Writer{f: f}, nil
}

// Log writes one tagged, timestamped line.
func (w *Writer) Log(tag, message string) error {
	if w == nil {
		return nil
	}
	_, err := fmt.Fprintf(w.f, "[%s][%s] - %s\n", time.Now().Format("15:04:05"), tag, message)
	return err
}

// Logf is Log with a format string.
func (w *Writer) Logf(tag, format string, args ...any) error {
	return w.Log(tag, fmt.Sprintf(format, args...))
}

// Header writes the date header block that opens a run.
func (w *Writer) Header() error {
	if w == nil {
		return nil
	}
	today := time.Now().Format("2006-01-02")
	_, err := fmt.Fprintf(w.f, "\n%s\n# %s\n%s\n", rule, today, rule)
	return err
}

// Footer writes the end-of-run block.
func (w *Writer) Footer() error {
	if w == nil {
		return nil
	}
	_, err := fmt.Fprintf(w.f, "%s\n# End\n%s\n", rule, rule)
	return err
}

func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.f.Close()
}

// Append writes a single tagged line to today's log file, opening and
// closing it around the write.
func Append(dir, tag, message string) error {
	w, err := Open(dir)
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	return w.Log(tag, strings.TrimRight(message, "\n"))
}
