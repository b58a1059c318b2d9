// Package selection prompts the user for a severity tier, a duration and a
// mode before a run.
package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"symptom-sim/internal/severity"
)

// ErrAborted is returned when the user leaves the form.
var ErrAborted = errors.New("selection aborted")

// Choice is the outcome of the prompt.
type Choice struct {
	Severity      severity.Level
	DurationHours int
	Realtime      bool
}

// SeverityOptions lists the tiers with their daily range.
func SeverityOptions() []huh.Option[severity.Level] {
	levels := severity.Levels()
	opts := make([]huh.Option[severity.Level], 0, len(levels))
	for _, l := range levels {
		p := l.Profile()
		label := fmt.Sprintf("%s (%d-%d events/day)", l.Title(), p.MinDailyRate, p.MaxDailyRate)
		opts = append(opts, huh.NewOption(label, l))
	}
	return opts
}

// DurationOptions lists the offered durations in hours.
func DurationOptions(hours []int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(hours))
	for _, h := range hours {
		label := fmt.Sprintf("%d hours", h)
		if h == 1 {
			label = "1 hour"
		}
		opts = append(opts, huh.NewOption(label, h))
	}
	return opts
}

// NewForm builds the prompt writing into c. Preset values in c become the
// initial selection.
func NewForm(c *Choice, durations []int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[severity.Level]().
				Key("severity").
				Title("Choose severity level").
				Options(SeverityOptions()...).
				Value(&c.Severity),

			huh.NewSelect[int]().
				Key("duration").
				Title("Choose duration").
				Options(DurationOptions(durations)...).
				Value(&c.DurationHours),

			huh.NewConfirm().
				Key("realtime").
				Title("Run in real time?").
				Description("Real time waits between events and rings an alert.").
				Affirmative("Real time").
				Negative("Fast time").
				Value(&c.Realtime),
		),
	)
}

// Prompt runs the form and returns the completed choice.
func Prompt(ctx context.Context, initial Choice, durations []int) (Choice, error) {
	c := initial
	if err := NewForm(&c, durations).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return initial, ErrAborted
		}
		return initial, fmt.Errorf("run selection: %w", err)
	}
	return c, nil
}
