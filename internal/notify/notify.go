// Package notify alerts the subject that an event should be marked.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"symptom-sim/internal/logging"
)

// Alert describes the sound to play. Terminal bells cannot honour the
// frequency; it is carried for richer backends and logged.
type Alert struct {
	FrequencyHz int
	Duration    time.Duration
	Repeats     int
	Gap         time.Duration
}

// DefaultAlert is two 250 Hz tones of 1.5s separated by 100ms.
func DefaultAlert() Alert {
	return Alert{FrequencyHz: 250, Duration: 1500 * time.Millisecond, Repeats: 2, Gap: 100 * time.Millisecond}
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	out   io.Writer
	alert Alert
	tty   bool
	sleep func(context.Context, time.Duration) error
}

// NewBellNotifier creates a BellNotifier writing to os.Stderr.
func NewBellNotifier(alert Alert) *BellNotifier {
	return &BellNotifier{
		out:   os.Stderr,
		alert: alert,
		tty:   term.IsTerminal(int(os.Stderr.Fd())),
		sleep: sleepCtx,
	}
}

// Notify rings the bell Repeats times. The tone duration and the gap are
// waited out between rings to keep the cadence of a real beeper.
func (n *BellNotifier) Notify(ctx context.Context) error {
	log := logging.FromContext(ctx)
	if !n.tty {
		log.Debug("alert suppressed, stderr is not a terminal", "frequency_hz", n.alert.FrequencyHz)
		return nil
	}
	repeats := n.alert.Repeats
	if repeats < 1 {
		repeats = 1
	}
	for i := 0; i < repeats; i++ {
		if _, err := fmt.Fprint(n.out, "\a"); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
		if i == repeats-1 {
			break
		}
		if err := n.sleep(ctx, n.alert.Duration+n.alert.Gap); err != nil {
			return err
		}
	}
	return nil
}

// Nop discards alerts.
type Nop struct{}

// Notify implements sim.Notifier.
func (Nop) Notify(context.Context) error { return nil }

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
