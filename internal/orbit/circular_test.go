package orbit

import (
	"math"
	"testing"
)

func TestCircular_Period(t *testing.T) {
	c := NewCircular(CircularConfig{AltitudeKm: 550, InclinationDeg: 53})

	// A 550 km circular orbit has a period of roughly 95.6 minutes.
	period := c.PeriodSeconds()
	if period < 90*60 || period > 100*60 {
		t.Errorf("period = %.0f s, want ~5740 s", period)
	}
}

func TestCircular_StateFinite(t *testing.T) {
	c := NewCircular(CircularConfig{
		AltitudeKm:      550,
		InclinationDeg:  53,
		GroundLatDeg:    39.7,
		GroundLonDeg:    -104.99,
		MinElevationDeg: 10,
	})

	for ts := 0.0; ts < 2*c.PeriodSeconds(); ts += 10 {
		st := c.StateAt(ts)
		if math.IsNaN(st.RangeKm) || math.IsNaN(st.RangeRateKmPerSec) || math.IsNaN(st.ElevationDeg) {
			t.Fatalf("NaN state at t=%.0f: %+v", ts, st)
		}
		if st.RangeKm <= 0 {
			t.Fatalf("non-positive range at t=%.0f: %.1f km", ts, st.RangeKm)
		}
		// Slant range can never be shorter than the altitude or longer
		// than roughly the horizon distance for LEO.
		if st.RangeKm < 500 || st.RangeKm > 20000 {
			t.Fatalf("implausible range at t=%.0f: %.1f km", ts, st.RangeKm)
		}
	}
}

func TestCircular_OverheadStart(t *testing.T) {
	// Equatorial orbit with the satellite starting on the prime meridian,
	// station directly beneath it.
	c := NewCircular(CircularConfig{
		AltitudeKm:      550,
		InclinationDeg:  0,
		PhaseDeg:        0,
		GroundLatDeg:    0,
		GroundLonDeg:    0,
		MinElevationDeg: 10,
	})

	st := c.StateAt(0)
	if st.ElevationDeg < 85 {
		t.Errorf("elevation at overhead start = %.1f deg, want ~90", st.ElevationDeg)
	}
	if !st.Visible {
		t.Error("satellite overhead must be visible")
	}
	if math.Abs(st.RangeKm-550) > 25 {
		t.Errorf("range at overhead start = %.1f km, want ~550", st.RangeKm)
	}
}

func TestCircular_VisibilityWindows(t *testing.T) {
	c := NewCircular(CircularConfig{
		AltitudeKm:      550,
		InclinationDeg:  0,
		PhaseDeg:        0,
		GroundLatDeg:    0,
		GroundLonDeg:    0,
		MinElevationDeg: 10,
	})

	// Over one orbit the satellite must both be visible (it starts
	// overhead) and set below the horizon (it travels the far side).
	var visible, hidden int
	for ts := 0.0; ts < c.PeriodSeconds(); ts += 10 {
		if c.StateAt(ts).Visible {
			visible++
		} else {
			hidden++
		}
	}
	if visible == 0 {
		t.Error("expected some visible samples over one orbit")
	}
	if hidden == 0 {
		t.Error("expected some hidden samples over one orbit")
	}
	if visible >= hidden {
		t.Errorf("LEO pass should be short relative to the orbit: visible=%d hidden=%d", visible, hidden)
	}
}

func TestCircular_RangeRateSignFlipsOverPass(t *testing.T) {
	c := NewCircular(CircularConfig{
		AltitudeKm:      550,
		InclinationDeg:  0,
		PhaseDeg:        -20, // approaching from 20 degrees behind
		GroundLatDeg:    0,
		GroundLonDeg:    0,
		MinElevationDeg: 0,
	})

	// Approaching before closest approach: closing (positive).
	early := c.StateAt(0)
	if early.RangeRateKmPerSec <= 0 {
		t.Errorf("approaching satellite should close: range-rate = %.3f km/s", early.RangeRateKmPerSec)
	}

	// Find the time of minimum range, then check the sign flips after.
	minRange := math.Inf(1)
	var minT float64
	for ts := 0.0; ts < 1200; ts += 1 {
		if rg := c.StateAt(ts).RangeKm; rg < minRange {
			minRange = rg
			minT = ts
		}
	}
	late := c.StateAt(minT + 120)
	if late.RangeRateKmPerSec >= 0 {
		t.Errorf("receding satellite should open: range-rate = %.3f km/s", late.RangeRateKmPerSec)
	}
}
