package watch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background())
	if err := s.Register("every five minutes", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if err := s.Register("@every 5m", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestRunNowCountsFailures(t *testing.T) {
	s := NewScheduler(context.Background())
	s.RunNow(func(context.Context) error { return errors.New("fetch failed") })
	s.RunNow(func(context.Context) error { return nil })
	if n := s.Runs.Load(); n != 2 {
		t.Errorf("Runs = %d, want 2", n)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx)
	ran := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Run("@every 1h", func(context.Context) error {
			ran <- struct{}{}
			return nil
		})
	}()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run immediately")
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if n := s.Runs.Load(); n < 1 {
			t.Errorf("Runs = %d after immediate run", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
