package workload

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	cases := []struct {
		name     string
		command  string
		args     []string
		expected int
	}{
		{
			name:     "a succeeding workload yields exit code zero",
			command:  "sh",
			args:     []string{"-c", "exit 0"},
			expected: 0,
		},
		{
			name:     "a failing workload's exit code is preserved",
			command:  "sh",
			args:     []string{"-c", "exit 3"},
			expected: 3,
		},
	}

	for _, c := range cases {
		code, err := Run(context.Background(), zap.NewNop(), c.command, c.args...)
		if err != nil {
			t.Fatalf("%v\n\tExpected no error but got %v instead", c.name, err)
		}

		if code != c.expected {
			t.Errorf("%v\n\tExpected %v but got %v instead", c.name, c.expected, code)
		}
	}
}

func TestRunMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")

	if _, err := Run(context.Background(), zap.NewNop(), missing); err == nil {
		t.Errorf("Expected an error for an unstartable workload but got none")
	}
}
