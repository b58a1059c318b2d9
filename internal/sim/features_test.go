package sim

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"symptom-sim/internal/cluster"
	"symptom-sim/internal/random"
	"symptom-sim/internal/severity"
)

// scenarioState holds state for a single scenario.
type scenarioState struct {
	opts      Options
	writer    *collectWriter
	err       error
	remaining int
	seed      uint64
	gaps      []float64
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func initializeScenario(sc *godog.ScenarioContext) {
	st := &scenarioState{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*st = scenarioState{}
		return ctx, nil
	})

	sc.Step(`^a "([^"]*)" simulation of (\d+) hours starting at (\d+) with seed (\d+)$`, st.aSimulation)
	sc.Step(`^the simulation runs in fast time$`, st.runsInFastTime)
	sc.Step(`^the simulation is created$`, st.isCreated)
	sc.Step(`^the configuration is rejected$`, st.isRejected)
	sc.Step(`^the target is between (\d+) and (\d+) events$`, st.targetBetween)
	sc.Step(`^the target is exactly (\d+) events?$`, st.targetExactly)
	sc.Step(`^(\d+) events? (?:is|are) delivered$`, st.delivered)
	sc.Step(`^no clusters are formed$`, st.noClusters)
	sc.Step(`^at most (\d+) clusters are formed$`, st.atMostClusters)
	sc.Step(`^timestamps are strictly increasing$`, st.strictlyIncreasing)
	sc.Step(`^no event falls between 01:00 and 08:00$`, st.noNightEvents)
	sc.Step(`^the delivered count does not exceed the target$`, st.withinTarget)
	sc.Step(`^(\d+) remaining events and seed (\d+)$`, st.remainingEvents)
	sc.Step(`^a burst is generated$`, st.burstGenerated)
	sc.Step(`^it has between (\d+) and (\d+) gaps$`, st.gapCount)
	sc.Step(`^every gap lies between (\d+) and (\d+) minutes$`, st.gapBounds)
}

func (st *scenarioState) aSimulation(name string, hours, start int, seed int64) error {
	level, err := severity.Parse(name)
	if err != nil {
		return err
	}
	st.opts = Options{
		Severity:      level,
		DurationHours: hours,
		StartHour:     start,
		Seed:          uint64(seed),
		Clock:         NewVirtualClock(testDay),
	}
	return nil
}

func (st *scenarioState) isCreated() error {
	_, st.err = NewSimulator(st.opts, nil, nil)
	return nil
}

func (st *scenarioState) runsInFastTime() error {
	st.writer = &collectWriter{}
	s, err := NewSimulator(st.opts, st.writer, nil)
	if err != nil {
		return err
	}
	_, err = s.Run(context.Background())
	return err
}

func (st *scenarioState) isRejected() error {
	if !errors.Is(st.err, ErrInvalidConfig) {
		return fmt.Errorf("expected ErrInvalidConfig, got %v", st.err)
	}
	return nil
}

func (st *scenarioState) targetBetween(lo, hi int) error {
	if n := st.writer.info.TargetEvents; n < lo || n > hi {
		return fmt.Errorf("target %d outside [%d,%d]", n, lo, hi)
	}
	return nil
}

func (st *scenarioState) targetExactly(n int) error {
	if got := st.writer.info.TargetEvents; got != n {
		return fmt.Errorf("target %d, want %d", got, n)
	}
	return nil
}

func (st *scenarioState) delivered(n int) error {
	if got := st.writer.summary.TotalTriggered; got != n {
		return fmt.Errorf("delivered %d, want %d", got, n)
	}
	return nil
}

func (st *scenarioState) noClusters() error {
	return st.atMostClusters(0)
}

func (st *scenarioState) atMostClusters(n int) error {
	if got := st.writer.summary.Clusters; got > n {
		return fmt.Errorf("%d clusters formed, at most %d allowed", got, n)
	}
	return nil
}

func (st *scenarioState) strictlyIncreasing() error {
	ev := st.writer.events
	for i := 1; i < len(ev); i++ {
		if !ev[i].Timestamp.After(ev[i-1].Timestamp) {
			return fmt.Errorf("event %d at %s not after %s", ev[i].Seq, ev[i].Timestamp, ev[i-1].Timestamp)
		}
	}
	return nil
}

func (st *scenarioState) noNightEvents() error {
	for _, e := range st.writer.events {
		if InNightWindow(e.Timestamp) {
			return fmt.Errorf("event %d at %s", e.Seq, e.Timestamp.Format("15:04"))
		}
	}
	return nil
}

func (st *scenarioState) withinTarget() error {
	s := st.writer.summary
	if s.TotalTriggered > s.TargetEvents {
		return fmt.Errorf("delivered %d over target %d", s.TotalTriggered, s.TargetEvents)
	}
	return nil
}

func (st *scenarioState) remainingEvents(n int, seed int64) error {
	st.remaining = n
	st.seed = uint64(seed)
	return nil
}

func (st *scenarioState) burstGenerated() error {
	st.gaps = cluster.Generate(random.New(st.seed), st.remaining)
	return nil
}

func (st *scenarioState) gapCount(lo, hi int) error {
	if n := len(st.gaps); n < lo || n > hi {
		return fmt.Errorf("%d gaps outside [%d,%d]", n, lo, hi)
	}
	return nil
}

func (st *scenarioState) gapBounds(lo, hi int) error {
	for _, g := range st.gaps {
		if g < float64(lo) || g > float64(hi) {
			return fmt.Errorf("gap %.2f outside [%d,%d]", g, lo, hi)
		}
	}
	return nil
}
