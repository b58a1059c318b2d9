package sim

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"symptom-sim/internal/timeline"
)

func TestJSONStdoutWriterTagsRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &JSONStdoutWriter{out: buf}
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	_ = w.WriteRunStart(timeline.RunInfo{RunID: "r", Start: at})
	_ = w.WriteEvent(timeline.Event{RunID: "r", Seq: 1, Kind: timeline.KindPrimary, Timestamp: at, IntervalMinutes: 12.5})
	_ = w.WriteNightSkip(timeline.NightSkip{RunID: "r", From: at, To: at})
	_ = w.WriteSummary(timeline.Summary{RunID: "r", TotalTriggered: 1})

	want := []string{RecordRunStart, RecordEvent, RecordNightSkip, RecordSummary}
	sc := bufio.NewScanner(buf)
	i := 0
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d not JSON: %v", i, err)
		}
		if rec["type"] != want[i] {
			t.Fatalf("line %d: expected type %q, got %v", i, want[i], rec["type"])
		}
		if rec["run_id"] != "r" {
			t.Fatalf("line %d: run_id not flattened: %v", i, rec)
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), i)
	}
}

func TestColorStdoutWriterLines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newColorWriter(buf)
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	info := timeline.RunInfo{RunID: "abc", Severity: "mild", Mode: timeline.ModeFastTime, DurationHours: 4, TargetEvents: 1, Start: at, End: at.Add(4 * time.Hour)}
	if err := w.WriteRunStart(info); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = w.WriteEvent(timeline.Event{Kind: timeline.KindPrimary, Timestamp: at, IntervalMinutes: 42.3})
	_ = w.WriteEvent(timeline.Event{Kind: timeline.KindClusterMember, Timestamp: at.Add(10 * time.Minute), IntervalMinutes: 10})
	_ = w.WriteNightSkip(timeline.NightSkip{From: at, To: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)})
	_ = w.WriteSummary(timeline.Summary{TotalTriggered: 2, Clusters: 1, ClusterEvents: 1, NightSkips: 1, TargetEvents: 3, UnderDelivered: true})

	out := buf.String()
	for _, want := range []string{
		"Starting Crohn's symptom simulation (Mild, TEST IN FAST TIME)",
		"Run ID:",
		"[09:30] Start...",
		"[09:30] Bathroom event (interval: 42.3 min)",
		"[Cluster 09:40] Another Bathroom event! (interval: 10.0 min)",
		"[08:00] Night skipped",
		"Total bathroom events: 2",
		"Clusters: 1 (1 extra events), night skips: 1",
		"Target of 3 events not reached",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestSummaryLinesPlain(t *testing.T) {
	lines := summaryLines(timeline.Summary{TotalTriggered: 5, TargetEvents: 5})
	if len(lines) != 4 {
		t.Fatalf("expected rule, title, total, rule; got %q", lines)
	}
	if lines[2] != "Total bathroom events: 5" {
		t.Fatalf("unexpected total line %q", lines[2])
	}
}
