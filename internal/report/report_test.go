package report

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	written := Report{
		LastRun:      time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC),
		WorkloadExit: 0,
		Deleted:      3,
		Failed:       1,
		FreedBytes:   4096,
	}

	if err := Write(dir, written); err != nil {
		t.Fatalf(err.Error())
	}

	read, err := Read(dir)
	if err != nil {
		t.Fatalf(err.Error())
	}

	if !read.LastRun.Equal(written.LastRun) || read.Deleted != written.Deleted ||
		read.Failed != written.Failed || read.FreedBytes != written.FreedBytes {
		t.Errorf("Expected %+v but got %+v instead", written, read)
	}
}

func TestWriteReplacesPreviousReport(t *testing.T) {
	dir := t.TempDir()

	if err := Write(dir, Report{Deleted: 1}); err != nil {
		t.Fatalf(err.Error())
	}
	if err := Write(dir, Report{Deleted: 7}); err != nil {
		t.Fatalf(err.Error())
	}

	read, err := Read(dir)
	if err != nil {
		t.Fatalf(err.Error())
	}

	if read.Deleted != 7 {
		t.Errorf("Expected the latest report but got %+v instead", read)
	}
}

func TestReadMissingReport(t *testing.T) {
	_, err := Read(t.TempDir())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist but got %v instead", err)
	}
}
