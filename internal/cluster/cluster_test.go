package cluster

import (
	"testing"

	"symptom-sim/internal/random"
)

func TestGenerateBounds(t *testing.T) {
	src := random.New(5)
	for i := 0; i < 2000; i++ {
		gaps := Generate(src, 5)
		if len(gaps) < 1 || len(gaps) > 3 {
			t.Fatalf("burst of %d gaps, want size in {2,3,4}", len(gaps))
		}
		for _, g := range gaps {
			if g < MinGapMinutes || g > MaxGapMinutes {
				t.Fatalf("gap %v outside [5,30]", g)
			}
		}
	}
}

func TestGenerateCapped(t *testing.T) {
	src := random.New(11)
	for i := 0; i < 500; i++ {
		if gaps := Generate(src, 2); len(gaps) > 1 {
			t.Fatalf("cap 2 produced %d gaps", len(gaps))
		}
		if gaps := Generate(src, 1); gaps != nil {
			t.Fatalf("cap 1 produced gaps %v", gaps)
		}
		if gaps := Generate(src, 0); gaps != nil {
			t.Fatalf("cap 0 produced gaps %v", gaps)
		}
	}
}

func TestSizeDistribution(t *testing.T) {
	src := random.New(21)
	counts := map[int]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[Size(src, 10)]++
	}
	if len(counts) != 3 {
		t.Fatalf("unexpected sizes %v", counts)
	}
	if counts[2] < counts[3] || counts[3] < counts[4] {
		t.Fatalf("size frequencies not ordered by weight: %v", counts)
	}
	if frac := float64(counts[2]) / n; frac < 0.55 || frac > 0.65 {
		t.Fatalf("size 2 frequency %.3f far from 0.6", frac)
	}
}
