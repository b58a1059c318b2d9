// ColorStdoutWriter prints human-friendly, colorized progress lines to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"symptom-sim/internal/timeline"
)

// ColorStdoutWriter renders the timeline the way a person reads it.
type ColorStdoutWriter struct {
	out     io.Writer
	title   lipgloss.Style
	clock   lipgloss.Style
	primary lipgloss.Style
	member  lipgloss.Style
	night   lipgloss.Style
	done    lipgloss.Style
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return newColorWriter(os.Stdout)
}

func newColorWriter(out io.Writer) *ColorStdoutWriter {
	r := lipgloss.NewRenderer(out)
	return &ColorStdoutWriter{
		out:     out,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		clock:   r.NewStyle().Foreground(lipgloss.Color("8")),
		primary: r.NewStyle().Foreground(lipgloss.Color("10")),
		member:  r.NewStyle().Foreground(lipgloss.Color("11")),
		night:   r.NewStyle().Foreground(lipgloss.Color("13")).Faint(true),
		done:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	}
}

// WriteRunStart prints the banner and a run overview.
func (w *ColorStdoutWriter) WriteRunStart(info timeline.RunInfo) error {
	lines := startLines(info)
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, w.title.Render(lines[0]))
	fmt.Fprintln(w.out, lines[1])
	fmt.Fprintln(w.out)

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Run ID:\t%s\n", info.RunID)
	fmt.Fprintf(tw, "Daily Rate:\t%d\n", info.DailyRate)
	fmt.Fprintf(tw, "Mean Interval (min):\t%.1f\n", info.MeanMinutes)
	fmt.Fprintf(tw, "Seed:\t%d\n", info.Seed)
	fmt.Fprintf(tw, "Window:\t%s - %s\n", info.Start.Format("Mon 15:04"), info.End.Format("Mon 15:04"))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w.out)
	_, err := fmt.Fprintln(w.out, w.clock.Render(startedLine(info)))
	return err
}

// WriteEvent prints one event line.
func (w *ColorStdoutWriter) WriteEvent(e timeline.Event) error {
	style := w.primary
	if e.Kind == timeline.KindClusterMember {
		style = w.member
	}
	_, err := fmt.Fprintln(w.out, style.Render(eventLine(e)))
	return err
}

// WriteNightSkip prints a night skip notice.
func (w *ColorStdoutWriter) WriteNightSkip(n timeline.NightSkip) error {
	_, err := fmt.Fprintln(w.out, w.night.Render(nightSkipLine(n)))
	return err
}

// WriteSummary prints the completion banner.
func (w *ColorStdoutWriter) WriteSummary(s timeline.Summary) error {
	for i, l := range summaryLines(s) {
		if i == 1 {
			l = w.done.Render(l)
		}
		if _, err := fmt.Fprintln(w.out, l); err != nil {
			return err
		}
	}
	return nil
}
