package sim

import (
	"io"

	"symptom-sim/internal/timeline"
)

// MultiWriter fan-outs timeline records to multiple writers. Writers that do
// not implement RunWriter or NightSkipWriter only receive events.
type MultiWriter struct {
	writers []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...EventWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WriteEvent sends an event to all writers.
func (mw *MultiWriter) WriteEvent(e timeline.Event) error {
	for _, w := range mw.writers {
		if err := w.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteRunStart forwards the run description to writers supporting it.
func (mw *MultiWriter) WriteRunStart(info timeline.RunInfo) error {
	for _, w := range mw.writers {
		if rw, ok := w.(RunWriter); ok {
			if err := rw.WriteRunStart(info); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSummary forwards the summary to writers supporting it.
func (mw *MultiWriter) WriteSummary(s timeline.Summary) error {
	for _, w := range mw.writers {
		if rw, ok := w.(RunWriter); ok {
			if err := rw.WriteSummary(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteNightSkip forwards a night skip to writers supporting it.
func (mw *MultiWriter) WriteNightSkip(n timeline.NightSkip) error {
	for _, w := range mw.writers {
		if nw, ok := w.(NightSkipWriter); ok {
			if err := nw.WriteNightSkip(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every writer implementing io.Closer and returns the first error.
func (mw *MultiWriter) Close() error {
	var err error
	for _, w := range mw.writers {
		if c, ok := w.(io.Closer); ok {
			if e := c.Close(); e != nil && err == nil {
				err = e
			}
		}
	}
	return err
}
