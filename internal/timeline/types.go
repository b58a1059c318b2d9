// Timeline record types emitted by the simulator.
package timeline

import "time"

// Kind distinguishes primary events from burst members.
type Kind string

const (
	KindPrimary       Kind = "primary"
	KindClusterMember Kind = "cluster_member"
)

// Mode names.
const (
	ModeFastTime = "fast-time"
	ModeRealTime = "real-time"
)

// Event is one bathroom event.
type Event struct {
	RunID           string    `json:"run_id"`
	Seq             int       `json:"seq"`
	Kind            Kind      `json:"kind"`
	Timestamp       time.Time `json:"ts"`
	IntervalMinutes float64   `json:"interval_minutes"`
	Cluster         int       `json:"cluster,omitempty"` // ordinal of the burst, members only
}

// NightSkip records the clock snapping past the overnight quiet window.
type NightSkip struct {
	RunID string    `json:"run_id"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// RunInfo describes a run at its start.
type RunInfo struct {
	RunID         string    `json:"run_id"`
	Severity      string    `json:"severity"`
	Mode          string    `json:"mode"`
	DurationHours int       `json:"duration_hours"`
	DailyRate     int       `json:"daily_rate"`
	TargetEvents  int       `json:"target_events"`
	MeanMinutes   float64   `json:"mean_minutes"`
	Seed          uint64    `json:"seed"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Summary is reported when a run completes.
type Summary struct {
	RunID          string    `json:"run_id"`
	TotalTriggered int       `json:"total_triggered"`
	PrimaryEvents  int       `json:"primary_events"`
	ClusterEvents  int       `json:"cluster_events"`
	Clusters       int       `json:"clusters"`
	NightSkips     int       `json:"night_skips"`
	TargetEvents   int       `json:"target_events"`
	UnderDelivered bool      `json:"under_delivered"`
	FinishedAt     time.Time `json:"finished_at"`
}
