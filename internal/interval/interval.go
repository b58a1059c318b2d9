// Package interval samples the waiting time until the next primary event.
package interval

import (
	"math"

	"symptom-sim/internal/random"
)

// MinMinutes is the smallest interval ever returned (one second).
const MinMinutes = 1.0 / 60

const (
	quietMultiplier = 0.1
	peakMultiplier  = 1.6
	baseMultiplier  = 1.0

	// relStdDev is the standard deviation as a fraction of the mean.
	relStdDev = 0.3
	// maxMeanFactor bounds outliers to this multiple of the adjusted mean.
	maxMeanFactor = 2.0
)

// Multiplier returns the time-of-day rate multiplier for an hour.
// Overnight hours slow events down, morning and evening peaks speed them up.
func Multiplier(hour int) float64 {
	switch {
	case hour >= 0 && hour < 6:
		return quietMultiplier
	case hour >= 6 && hour < 9:
		return peakMultiplier
	case hour >= 15 && hour < 21:
		return peakMultiplier
	default:
		return baseMultiplier
	}
}

// AdjustedMean scales the mean gap by the hour's multiplier.
func AdjustedMean(hour int, meanMinutes float64) float64 {
	return meanMinutes / Multiplier(hour)
}

// NextMinutes returns the minutes until the next primary event.
//
// The sample is drawn from N(adj, 0.3*adj) where adj is the hour-adjusted
// mean, capped at 2*adj and at remainingMinutes/remainingEvents so the
// remaining target can still fit before the horizon, then floored at
// MinMinutes.
func NextMinutes(src random.Source, hour int, meanMinutes, remainingMinutes float64, remainingEvents int) float64 {
	adj := AdjustedMean(hour, meanMinutes)
	v := adj + src.NormFloat64()*relStdDev*adj
	v = math.Min(v, maxMeanFactor*adj)
	if remainingEvents > 0 {
		v = math.Min(v, remainingMinutes/float64(remainingEvents))
	}
	if v < MinMinutes || math.IsNaN(v) {
		v = MinMinutes
	}
	return v
}
