package sim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVirtualClockSleepAdvances(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewVirtualClock(start)
	c.Drift = time.Second
	if err := c.Sleep(context.Background(), time.Minute); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if got := c.Now(); !got.Equal(start.Add(61 * time.Second)) {
		t.Fatalf("now = %s", got)
	}
	slept, naps := c.Slept()
	if slept != time.Minute || naps != 1 {
		t.Fatalf("slept %s in %d naps", slept, naps)
	}
}

func TestVirtualClockHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewVirtualClock(time.Unix(0, 0))
	if err := c.Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, naps := c.Slept(); naps != 0 {
		t.Fatalf("cancelled sleep must not advance")
	}
}

func TestWallClockSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	begin := time.Now()
	if err := (WallClock{}).Sleep(ctx, time.Hour); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(begin) > time.Second {
		t.Fatalf("sleep ignored the context")
	}
}
