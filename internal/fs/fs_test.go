package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"2023-01-01.log", "2023-01-02.log", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf(err.Error())
		}
	}

	// subdirectories must be ignored, even with matching names inside
	sub := filepath.Join(dir, "archive.log")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf(err.Error())
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.log"), []byte("nested"), 0o644); err != nil {
		t.Fatalf(err.Error())
	}

	cases := []struct {
		name     string
		pattern  string
		expected int
	}{
		{
			name:     "matches only top-level files with the log suffix",
			pattern:  "*.log",
			expected: 2,
		},
		{
			name:     "matches nothing when no name fits",
			pattern:  "*.jsonl",
			expected: 0,
		},
	}

	for _, c := range cases {
		found, err := Scan(dir, c.pattern)
		if err != nil {
			t.Fatalf("%v\n\tExpected no error but got %v instead", c.name, err)
		}

		if len(found) != c.expected {
			t.Errorf("%v\n\tExpected %v but got %v instead", c.name, c.expected, len(found))
		}
	}
}

func TestScanMissingDirectory(t *testing.T) {
	found, err := Scan(filepath.Join(t.TempDir(), "nope"), "*.log")
	if err != nil {
		t.Fatalf("Expected no error but got %v instead", err)
	}

	if len(found) != 0 {
		t.Errorf("Expected no candidates but got %v instead", len(found))
	}
}

func TestScanBadPattern(t *testing.T) {
	if _, err := Scan(t.TempDir(), "[.log"); err == nil {
		t.Errorf("Expected an error for a malformed pattern but got none")
	}
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf(err.Error())
		}
		return path
	}

	a := write("a.log", "same content")
	b := write("b.log", "same content")
	other := write("other.log", "different content")

	cases := []struct {
		name     string
		pathA    string
		pathB    string
		expected bool
	}{
		{
			name:     "digesting the same file twice returns the same value",
			pathA:    a,
			pathB:    a,
			expected: true,
		},
		{
			name:     "two files with the same content share a digest",
			pathA:    a,
			pathB:    b,
			expected: true,
		},
		{
			name:     "two different files have different digests",
			pathA:    a,
			pathB:    other,
			expected: false,
		},
	}

	for _, c := range cases {
		da, err := Digest(c.pathA)
		if err != nil {
			t.Errorf(err.Error())
		}
		db, err := Digest(c.pathB)
		if err != nil {
			t.Errorf(err.Error())
		}

		if (da == db) != c.expected {
			t.Errorf("%v\n\tExpected %v but got %v instead", c.name, c.expected, da == db)
		}
	}
}
