// Simulator driving the symptom event timeline
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"symptom-sim/internal/random"
	"symptom-sim/internal/severity"
	"symptom-sim/internal/timeline"
)

// MaxClustersPerDay caps bursts within a run.
const MaxClustersPerDay = 3

// Overnight quiet window: any event landing in [NightStartHour, NightEndHour)
// is skipped and the clock snaps to NightEndHour:00.
const (
	NightStartHour = 1
	NightEndHour   = 8
)

// ErrInvalidConfig is returned for configurations rejected before a run.
var ErrInvalidConfig = errors.New("invalid simulation config")

// EventWriter receives every emitted event.
type EventWriter interface {
	WriteEvent(timeline.Event) error
}

// Optional: writers may report the run boundaries.
type RunWriter interface {
	WriteRunStart(timeline.RunInfo) error
	WriteSummary(timeline.Summary) error
}

// Optional: writers may report night skips.
type NightSkipWriter interface {
	WriteNightSkip(timeline.NightSkip) error
}

// Notifier alerts the subject before each real-time suspension.
type Notifier interface {
	Notify(ctx context.Context) error
}

// Options configures a Simulator.
type Options struct {
	Severity severity.Level
	// Profile overrides the tier's data when non-zero.
	Profile       severity.Profile
	DurationHours int
	// StartHour anchors the fast-time clock; ignored in real-time mode.
	StartHour int
	Realtime  bool
	Seed      uint64
	// Source defaults to random.New(Seed).
	Source random.Source
	// Clock defaults to WallClock.
	Clock Clock
}

// Simulator generates one patient's event timeline.
type Simulator struct {
	level     severity.Level
	profile   severity.Profile
	duration  int
	startHour int
	realtime  bool
	seed      uint64
	rand      random.Source
	clock     Clock
	writer    EventWriter
	notifier  Notifier
	newID     func() string
}

// NewSimulator validates opts and wires the collaborators. A nil writer
// discards output; a nil notifier stays silent.
func NewSimulator(opts Options, writer EventWriter, notifier Notifier) (*Simulator, error) {
	profile := opts.Profile
	if profile == (severity.Profile{}) {
		if !opts.Severity.Valid() {
			return nil, fmt.Errorf("%w: unknown severity %s", ErrInvalidConfig, opts.Severity)
		}
		profile = opts.Severity.Profile()
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: severity profile: %v", ErrInvalidConfig, err)
	}
	if opts.DurationHours <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %dh", ErrInvalidConfig, opts.DurationHours)
	}
	if opts.StartHour < 0 || opts.StartHour > 23 {
		return nil, fmt.Errorf("%w: start hour %d outside [0,23]", ErrInvalidConfig, opts.StartHour)
	}
	src := opts.Source
	if src == nil {
		src = random.New(opts.Seed)
	}
	clock := opts.Clock
	if clock == nil {
		clock = WallClock{}
	}
	if writer == nil {
		writer = discardWriter{}
	}
	return &Simulator{
		level:     opts.Severity,
		profile:   profile,
		duration:  opts.DurationHours,
		startHour: opts.StartHour,
		realtime:  opts.Realtime,
		seed:      opts.Seed,
		rand:      src,
		clock:     clock,
		writer:    writer,
		notifier:  notifier,
		newID:     uuid.NewString,
	}, nil
}

// TargetEvents scales a daily rate to the run duration, never below one.
func TargetEvents(dailyRate, durationHours int) int {
	n := int(math.Round(float64(dailyRate) * float64(durationHours) / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// InNightWindow reports whether t falls in the overnight quiet window.
func InNightWindow(t time.Time) bool {
	h := t.Hour()
	return h >= NightStartHour && h < NightEndHour
}

func nightEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), NightEndHour, 0, 0, 0, t.Location())
}

func (s *Simulator) mode() string {
	if s.realtime {
		return timeline.ModeRealTime
	}
	return timeline.ModeFastTime
}

// origin returns the first clock reading of a run.
func (s *Simulator) origin() time.Time {
	now := s.clock.Now()
	if s.realtime {
		return now
	}
	return time.Date(now.Year(), now.Month(), now.Day(), s.startHour, 0, 0, 0, now.Location())
}

type discardWriter struct{}

func (discardWriter) WriteEvent(timeline.Event) error { return nil }
