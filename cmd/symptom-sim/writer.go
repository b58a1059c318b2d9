package main

import (
	"fmt"

	"symptom-sim/internal/config"
	"symptom-sim/internal/sim"
	"symptom-sim/internal/timeline"
)

// newWriter builds the presentation writer for an output format. It returns
// the writer and a cleanup function to close any resources.
func newWriter(output string) (sim.EventWriter, func(), error) {
	cleanup := func() {}
	switch output {
	case config.OutputColor, "":
		return sim.NewColorStdoutWriter(), cleanup, nil
	case config.OutputJSON:
		return sim.NewJSONStdoutWriter(), cleanup, nil
	case config.OutputTUI:
		// MultiWriter closes in order, so the summary lands on the main
		// screen after the TUI has left the alternate one.
		mw := sim.NewMultiWriter(sim.NewTUIWriter(), &summaryOnClose{out: sim.NewColorStdoutWriter()})
		return mw, func() { mw.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown output %q", config.ErrInvalid, output)
	}
}

// summaryOnClose holds the run summary until Close.
type summaryOnClose struct {
	out     sim.RunWriter
	summary *timeline.Summary
}

func (w *summaryOnClose) WriteEvent(timeline.Event) error { return nil }

func (w *summaryOnClose) WriteRunStart(timeline.RunInfo) error { return nil }

func (w *summaryOnClose) WriteSummary(s timeline.Summary) error {
	w.summary = &s
	return nil
}

func (w *summaryOnClose) Close() error {
	if w.summary == nil {
		return nil
	}
	return w.out.WriteSummary(*w.summary)
}
