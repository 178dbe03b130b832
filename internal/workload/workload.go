package workload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Run executes the workload command with inherited stdio and returns its
// exit code. The workload is a black box: nothing but the exit status is
// interpreted here. The error is non-nil only when the command could not be
// started at all.
func Run(ctx context.Context, logger *zap.Logger, command string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info("starting workload", zap.String("command", command), zap.Strings("args", args))

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("starting workload %q: %w", command, err)
}
