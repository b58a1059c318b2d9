// Package cluster synthesizes tight bursts of follow-on events.
package cluster

import "symptom-sim/internal/random"

// Burst member gap bounds in minutes.
const (
	MinGapMinutes = 5.0
	MaxGapMinutes = 30.0
)

// Sizes and Weights describe the burst size distribution; most bursts are small.
var (
	Sizes   = []int{2, 3, 4}
	Weights = []float64{0.6, 0.35, 0.05}
)

// Size draws a burst size, capped at maxEventsRemaining.
func Size(src random.Source, maxEventsRemaining int) int {
	idx := random.Weighted(src, Weights)
	n := Sizes[idx]
	if n > maxEventsRemaining {
		n = maxEventsRemaining
	}
	return n
}

// Generate returns the gaps between successive burst members. The first
// member coincides with the triggering primary event, so a burst of size n
// yields n-1 gaps.
func Generate(src random.Source, maxEventsRemaining int) []float64 {
	n := Size(src, maxEventsRemaining)
	if n <= 1 {
		return nil
	}
	gaps := make([]float64, n-1)
	for i := range gaps {
		gaps[i] = random.Uniform(src, MinGapMinutes, MaxGapMinutes)
	}
	return gaps
}
