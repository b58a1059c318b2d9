package sim

import (
	"fmt"
	"strings"
	"time"

	"symptom-sim/internal/timeline"
)

const rule = "------------------------------------------------------------"

func clockLabel(t time.Time) string { return t.Format("15:04") }

func modeLabel(mode string) string {
	if mode == timeline.ModeRealTime {
		return "REAL TIME"
	}
	return "TEST IN FAST TIME"
}

func severityTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func startLines(info timeline.RunInfo) []string {
	return []string{
		fmt.Sprintf("Starting Crohn's symptom simulation (%s, %s)", severityTitle(info.Severity), modeLabel(info.Mode)),
		fmt.Sprintf("Duration: %dh, target %d events", info.DurationHours, info.TargetEvents),
	}
}

func startedLine(info timeline.RunInfo) string {
	return fmt.Sprintf("[%s] Start...", clockLabel(info.Start))
}

func eventLine(e timeline.Event) string {
	if e.Kind == timeline.KindClusterMember {
		return fmt.Sprintf("   [Cluster %s] Another Bathroom event! (interval: %.1f min)", clockLabel(e.Timestamp), e.IntervalMinutes)
	}
	return fmt.Sprintf("[%s] Bathroom event (interval: %.1f min)", clockLabel(e.Timestamp), e.IntervalMinutes)
}

func nightSkipLine(n timeline.NightSkip) string {
	return fmt.Sprintf("[%s] Night skipped", clockLabel(n.To))
}

func summaryLines(s timeline.Summary) []string {
	lines := []string{
		rule,
		"Simulation complete",
		fmt.Sprintf("Total bathroom events: %d", s.TotalTriggered),
	}
	if s.Clusters > 0 || s.NightSkips > 0 {
		lines = append(lines, fmt.Sprintf("Clusters: %d (%d extra events), night skips: %d", s.Clusters, s.ClusterEvents, s.NightSkips))
	}
	if s.UnderDelivered {
		lines = append(lines, fmt.Sprintf("Target of %d events not reached before the end of the window", s.TargetEvents))
	}
	return append(lines, rule)
}
