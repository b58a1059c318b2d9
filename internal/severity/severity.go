// Package severity defines the fixed symptom-intensity tiers and the
// per-tier sampling helpers.
package severity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"symptom-sim/internal/random"
)

// CooldownHours is the span over which cluster probability recovers
// linearly after the previous cluster.
const CooldownHours = 4.0

// ErrUnknown is returned by Parse for names outside the fixed tiers.
var ErrUnknown = errors.New("unknown severity")

// Level is one of the fixed severity tiers.
type Level int

const (
	Mild Level = iota + 1
	Moderate
	Severe
)

// Profile holds the numeric data of a tier.
type Profile struct {
	MinDailyRate       int
	MaxDailyRate       int
	ClusterProbability float64
}

var profiles = map[Level]Profile{
	Mild:     {MinDailyRate: 3, MaxDailyRate: 5, ClusterProbability: 0.0},
	Moderate: {MinDailyRate: 6, MaxDailyRate: 10, ClusterProbability: 0.10},
	Severe:   {MinDailyRate: 11, MaxDailyRate: 20, ClusterProbability: 0.15},
}

var names = map[Level]string{
	Mild:     "mild",
	Moderate: "moderate",
	Severe:   "severe",
}

// Levels returns all tiers in ascending order.
func Levels() []Level {
	return []Level{Mild, Moderate, Severe}
}

// Parse resolves a tier by name, case-insensitively.
func Parse(s string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for l, n := range names {
		if n == key {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, s)
}

func (l Level) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Title returns the display name, e.g. "Moderate".
func (l Level) Title() string {
	n := l.String()
	if _, ok := names[l]; !ok {
		return n
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

// Valid reports whether l is one of the fixed tiers.
func (l Level) Valid() bool {
	_, ok := profiles[l]
	return ok
}

// Profile returns the tier's data. Unknown levels yield the zero Profile,
// which fails Validate.
func (l Level) Profile() Profile {
	return profiles[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Validate checks the rate bounds and cluster probability.
func (p Profile) Validate() error {
	if p.MinDailyRate <= 0 || p.MaxDailyRate <= 0 {
		return fmt.Errorf("daily rate bounds must be positive, got [%d,%d]", p.MinDailyRate, p.MaxDailyRate)
	}
	if p.MinDailyRate > p.MaxDailyRate {
		return fmt.Errorf("min daily rate %d exceeds max %d", p.MinDailyRate, p.MaxDailyRate)
	}
	if p.ClusterProbability < 0 || p.ClusterProbability > 1 || math.IsNaN(p.ClusterProbability) {
		return fmt.Errorf("cluster probability %v outside [0,1]", p.ClusterProbability)
	}
	return nil
}

// RandomDailyRate draws a daily event count uniformly from the tier's range.
func (p Profile) RandomDailyRate(src random.Source) int {
	return random.IntBetween(src, p.MinDailyRate, p.MaxDailyRate)
}

// ClusterChance returns the cluster probability after cool-down scaling.
// hasPrevious is false until the first cluster of a run.
func (p Profile) ClusterChance(hoursSinceLast float64, hasPrevious bool) float64 {
	prob := p.ClusterProbability
	if hasPrevious {
		scale := math.Max(0, math.Min(1, hoursSinceLast/CooldownHours))
		prob *= scale
	}
	return prob
}

// ShouldCluster decides whether a primary event spawns a burst.
func (p Profile) ShouldCluster(src random.Source, hoursSinceLast float64, hasPrevious bool, clustersToday, maxPerDay int) bool {
	if clustersToday >= maxPerDay {
		return false
	}
	return src.Float64() < p.ClusterChance(hoursSinceLast, hasPrevious)
}
