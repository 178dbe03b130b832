package schedule

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := New(zap.NewNop(), func(context.Context) int { return 0 })

	if err := s.Start(context.Background(), "not a cron expression"); err == nil {
		t.Errorf("Expected an error for an invalid schedule but got none")
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	s := New(zap.NewNop(), func(context.Context) int { return 0 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx, "* * * * *")
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected no error but got %v instead", err)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("Expected Start to return once the context was cancelled")
	}
}
