package channel

import (
	"math"
	"math/rand"
	"testing"
)

func TestClock_QuadraticModel(t *testing.T) {
	c := NewClockWithCoefficients(1e-3, 2e-6, 4e-9, 0)

	// error(t) = bias + drift·t + ½·aging·t²
	cases := []struct {
		t    float64
		want float64
	}{
		{0, 1e-3},
		{10, 1e-3 + 2e-5 + 0.5*4e-9*100},
		{100, 1e-3 + 2e-4 + 0.5*4e-9*10000},
	}
	for _, tc := range cases {
		if got := c.ErrorAt(tc.t); math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("ErrorAt(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestClock_EpochOffset(t *testing.T) {
	c := NewClockWithCoefficients(0, 1e-6, 0, 100)
	if got := c.ErrorAt(100); got != 0 {
		t.Errorf("error at epoch = %v, want 0", got)
	}
	if got := c.ErrorAt(200); math.Abs(got-1e-4) > 1e-15 {
		t.Errorf("error 100s past epoch = %v, want 1e-4", got)
	}
}

func TestClock_GradeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		c := NewClock(GradeTCXO, 0, rng)
		if math.Abs(c.bias) > GradeTCXO.BiasMaxSec {
			t.Fatalf("bias %v outside grade bound %v", c.bias, GradeTCXO.BiasMaxSec)
		}
		if math.Abs(c.drift) > GradeTCXO.DriftMaxSecPerSec {
			t.Fatalf("drift %v outside grade bound %v", c.drift, GradeTCXO.DriftMaxSecPerSec)
		}
		if math.Abs(c.aging) > GradeTCXO.AgingMaxPerSec2 {
			t.Fatalf("aging %v outside grade bound %v", c.aging, GradeTCXO.AgingMaxPerSec2)
		}
	}
}

func TestClock_IndependentInstances(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := NewClock(GradeTCXO, 0, rng)
	b := NewClock(GradeTCXO, 0, rng)

	// Two oscillators seeded from the same stream still get distinct
	// coefficient draws.
	if a.ErrorAt(1000) == b.ErrorAt(1000) {
		t.Error("independent clocks should not agree exactly")
	}
}

func TestClock_Resync(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	c := NewClock(GradeTCXO, 0, rng)

	c.Resync(500, GradeTCXO)
	if got := c.ErrorAt(500); got != 0 {
		t.Errorf("error immediately after resync = %v, want 0 (bias cleared)", got)
	}
}
