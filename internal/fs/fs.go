package fs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"lukechampine.com/blake3"
)

// Candidate is a regular file found directly inside the scanned directory.
type Candidate struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Scan lists the regular files directly inside dir whose base name matches
// the single-level glob pattern. Subdirectories are never entered. A missing
// directory yields an empty result, not an error: there is nothing to sweep
// in a directory that isn't there.
func Scan(dir, pattern string) ([]Candidate, error) {
	// a malformed pattern is rejected up front, independent of the
	// directory's contents
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %v: %w", dir, err)
	}

	var found []Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// entry vanished between ReadDir and Info
			continue
		}

		found = append(found, Candidate{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return found, nil
}

// Digest returns the hex-encoded blake3 digest of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
