package sim

import (
	"context"
	"log/slog"
	"time"

	"symptom-sim/internal/cluster"
	"symptom-sim/internal/interval"
	"symptom-sim/internal/logging"
	"symptom-sim/internal/timeline"
)

// runState is owned by a single Run call.
type runState struct {
	runID         string
	current       time.Time
	remaining     int
	clustersToday int
	lastCluster   time.Time
	hasCluster    bool
	total         int
}

// Run simulates the timeline until the target count is delivered or the
// duration elapses. In real-time mode it blocks on the clock between events
// and returns ctx.Err() with the partial summary when ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) (timeline.Summary, error) {
	runID := s.newID()
	log := logging.FromContext(ctx).With("run_id", runID)

	start := s.origin()
	end := start.Add(time.Duration(s.duration) * time.Hour)
	rate := s.profile.RandomDailyRate(s.rand)
	target := TargetEvents(rate, s.duration)
	mean := float64(s.duration) * 60 / float64(target)

	st := &runState{runID: runID, current: start, remaining: target}
	sum := timeline.Summary{RunID: runID, TargetEvents: target}

	info := timeline.RunInfo{
		RunID:         runID,
		Severity:      s.severityName(),
		Mode:          s.mode(),
		DurationHours: s.duration,
		DailyRate:     rate,
		TargetEvents:  target,
		MeanMinutes:   mean,
		Seed:          s.seed,
		Start:         start,
		End:           end,
	}
	log.Info("starting simulation", "severity", info.Severity, "mode", info.Mode,
		"duration_hours", s.duration, "target_events", target)
	if rw, ok := s.writer.(RunWriter); ok {
		if err := rw.WriteRunStart(info); err != nil {
			log.Error("run start write failed", "err", err)
		}
	}

	for st.remaining > 0 {
		left := end.Sub(st.current).Minutes()
		if left <= 0 {
			break
		}
		gap := interval.NextMinutes(s.rand, st.current.Hour(), mean, left, st.remaining)
		if err := s.advance(ctx, st, gap); err != nil {
			return s.finish(ctx, log, st, sum), err
		}

		if InNightWindow(st.current) {
			if err := s.skipNight(ctx, log, st); err != nil {
				return s.finish(ctx, log, st, sum), err
			}
			sum.NightSkips++
			continue
		}

		st.remaining--
		st.total++
		sum.PrimaryEvents++
		s.emit(log, timeline.Event{
			RunID:           runID,
			Seq:             st.total,
			Kind:            timeline.KindPrimary,
			Timestamp:       st.current,
			IntervalMinutes: gap,
		})

		if st.remaining == 0 {
			break
		}
		since := st.current.Sub(st.lastCluster).Hours()
		if !s.profile.ShouldCluster(s.rand, since, st.hasCluster, st.clustersToday, MaxClustersPerDay) {
			continue
		}
		// A single remaining event cannot form a burst.
		gaps := cluster.Generate(s.rand, st.remaining)
		if len(gaps) == 0 {
			continue
		}
		st.lastCluster = st.current
		st.hasCluster = true
		st.clustersToday++
		sum.Clusters++
		log.Debug("cluster formed", "at", st.current, "members", len(gaps), "clusters", st.clustersToday)

		for _, g := range gaps {
			next := st.current.Add(minutes(g))
			if InNightWindow(next) || next.After(end) {
				log.Debug("burst truncated", "at", st.current, "next", next)
				break
			}
			if err := s.advance(ctx, st, g); err != nil {
				return s.finish(ctx, log, st, sum), err
			}
			st.remaining--
			st.total++
			sum.ClusterEvents++
			s.emit(log, timeline.Event{
				RunID:           runID,
				Seq:             st.total,
				Kind:            timeline.KindClusterMember,
				Timestamp:       st.current,
				IntervalMinutes: g,
				Cluster:         st.clustersToday,
			})
		}
	}
	return s.finish(ctx, log, st, sum), nil
}

// advance moves the clock forward by gap minutes. Real-time mode alerts the
// subject, waits, then re-reads the wall clock; drift is accepted.
func (s *Simulator) advance(ctx context.Context, st *runState, gap float64) error {
	d := minutes(gap)
	if !s.realtime {
		st.current = st.current.Add(d)
		return nil
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx); err != nil {
			logging.FromContext(ctx).Error("notification failed", "err", err)
		}
	}
	if err := s.clock.Sleep(ctx, d); err != nil {
		return err
	}
	if now := s.clock.Now(); now.After(st.current) {
		st.current = now
	}
	return nil
}

// skipNight snaps the clock to the end of the quiet window.
func (s *Simulator) skipNight(ctx context.Context, log *slog.Logger, st *runState) error {
	from := st.current
	to := nightEnd(from)
	if s.realtime {
		if wait := to.Sub(s.clock.Now()); wait > 0 {
			if err := s.clock.Sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	st.current = to
	log.Debug("night skipped", "from", from, "to", to)
	if nw, ok := s.writer.(NightSkipWriter); ok {
		if err := nw.WriteNightSkip(timeline.NightSkip{RunID: st.runID, From: from, To: to}); err != nil {
			log.Error("night skip write failed", "err", err)
		}
	}
	return nil
}

func (s *Simulator) emit(log *slog.Logger, e timeline.Event) {
	if err := s.writer.WriteEvent(e); err != nil {
		log.Error("event write failed", "seq", e.Seq, "err", err)
	}
}

func (s *Simulator) finish(ctx context.Context, log *slog.Logger, st *runState, sum timeline.Summary) timeline.Summary {
	sum.TotalTriggered = st.total
	sum.UnderDelivered = st.remaining > 0
	sum.FinishedAt = st.current
	if err := ctx.Err(); err != nil {
		log.Info("simulation interrupted", "total_triggered", st.total, "err", err)
	} else {
		log.Info("simulation complete", "total_triggered", st.total, "target_events", sum.TargetEvents,
			"clusters", sum.Clusters, "night_skips", sum.NightSkips)
	}
	if rw, ok := s.writer.(RunWriter); ok {
		if err := rw.WriteSummary(sum); err != nil {
			log.Error("summary write failed", "err", err)
		}
	}
	return sum
}

func (s *Simulator) severityName() string {
	if s.level.Valid() {
		return s.level.String()
	}
	return "custom"
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
