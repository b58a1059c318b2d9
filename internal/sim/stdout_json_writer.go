package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"symptom-sim/internal/timeline"
)

// Record types written by JSONStdoutWriter.
const (
	RecordRunStart  = "run_start"
	RecordEvent     = "event"
	RecordNightSkip = "night_skip"
	RecordSummary   = "summary"
)

// JSONStdoutWriter prints timeline records as JSON Lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteRunStart outputs the run description.
func (w *JSONStdoutWriter) WriteRunStart(info timeline.RunInfo) error {
	return w.encode(struct {
		Type string `json:"type"`
		timeline.RunInfo
	}{RecordRunStart, info})
}

// WriteEvent outputs one event.
func (w *JSONStdoutWriter) WriteEvent(e timeline.Event) error {
	return w.encode(struct {
		Type string `json:"type"`
		timeline.Event
	}{RecordEvent, e})
}

// WriteNightSkip outputs a night skip.
func (w *JSONStdoutWriter) WriteNightSkip(n timeline.NightSkip) error {
	return w.encode(struct {
		Type string `json:"type"`
		timeline.NightSkip
	}{RecordNightSkip, n})
}

// WriteSummary outputs the completion summary.
func (w *JSONStdoutWriter) WriteSummary(s timeline.Summary) error {
	return w.encode(struct {
		Type string `json:"type"`
		timeline.Summary
	}{RecordSummary, s})
}
