package orbit

import (
	"math"
	"testing"
)

func TestNewGroundStation_ECEFMagnitude(t *testing.T) {
	// Station at sea level on the equator: ECEF magnitude equals the
	// WGS-84 equatorial radius.
	gs := NewGroundStation(0, 0, 0)
	mag := math.Sqrt(gs.ECEFx*gs.ECEFx + gs.ECEFy*gs.ECEFy + gs.ECEFz*gs.ECEFz)
	if math.Abs(mag-6378137.0) > 1.0 {
		t.Errorf("equatorial station ECEF magnitude = %.1f m, want ~6378137 m", mag)
	}

	// North pole: polar radius.
	gs2 := NewGroundStation(90, 0, 0)
	mag2 := math.Sqrt(gs2.ECEFx*gs2.ECEFx + gs2.ECEFy*gs2.ECEFy + gs2.ECEFz*gs2.ECEFz)
	if math.Abs(mag2-6356752.3) > 1.0 {
		t.Errorf("polar station ECEF magnitude = %.1f m, want ~6356752 m", mag2)
	}
}

func TestLookAnglesTo_DirectlyOverhead(t *testing.T) {
	gs := NewGroundStation(0, 0, 0)

	// Satellite 400 km straight up from the equator/prime meridian.
	la := LookAnglesTo(gs, gs.ECEFx+400000, gs.ECEFy, gs.ECEFz, 0, 0, 0)

	if math.Abs(la.ElevationDeg-90.0) > 0.1 {
		t.Errorf("overhead elevation = %.2f deg, want ~90", la.ElevationDeg)
	}
	if math.Abs(la.RangeKm-400.0) > 1.0 {
		t.Errorf("overhead range = %.2f km, want ~400", la.RangeKm)
	}
}

func TestLookAnglesTo_AzimuthDirections(t *testing.T) {
	gs := NewGroundStation(0, 0, 0)

	// North: higher latitude, same longitude.
	satN := NewGroundStation(10, 0, 400000)
	laN := LookAnglesTo(gs, satN.ECEFx, satN.ECEFy, satN.ECEFz, 0, 0, 0)
	if laN.AzimuthDeg > 30 && laN.AzimuthDeg < 330 {
		t.Errorf("northward azimuth = %.2f deg, want near 0/360", laN.AzimuthDeg)
	}

	// East.
	satE := NewGroundStation(0, 10, 400000)
	laE := LookAnglesTo(gs, satE.ECEFx, satE.ECEFy, satE.ECEFz, 0, 0, 0)
	if math.Abs(laE.AzimuthDeg-90.0) > 30 {
		t.Errorf("eastward azimuth = %.2f deg, want near 90", laE.AzimuthDeg)
	}

	// South.
	satS := NewGroundStation(-10, 0, 400000)
	laS := LookAnglesTo(gs, satS.ECEFx, satS.ECEFy, satS.ECEFz, 0, 0, 0)
	if math.Abs(laS.AzimuthDeg-180.0) > 30 {
		t.Errorf("southward azimuth = %.2f deg, want near 180", laS.AzimuthDeg)
	}
}

func TestLookAnglesTo_RangeRateSign(t *testing.T) {
	gs := NewGroundStation(0, 0, 0)

	satX := gs.ECEFx + 400000.0
	// Moving straight down toward the station at 1 km/s: closing, so
	// range-rate must be positive.
	la := LookAnglesTo(gs, satX, 0, 0, -1000, 0, 0)
	if math.Abs(la.RangeRateKmPerSec-1.0) > 1e-9 {
		t.Errorf("closing range-rate = %.6f km/s, want +1.0", la.RangeRateKmPerSec)
	}

	// Moving straight up: receding, negative.
	la = LookAnglesTo(gs, satX, 0, 0, 1000, 0, 0)
	if math.Abs(la.RangeRateKmPerSec+1.0) > 1e-9 {
		t.Errorf("receding range-rate = %.6f km/s, want -1.0", la.RangeRateKmPerSec)
	}

	// Tangential motion: range-rate ~0.
	la = LookAnglesTo(gs, satX, 0, 0, 0, 7500, 0)
	if math.Abs(la.RangeRateKmPerSec) > 1e-9 {
		t.Errorf("tangential range-rate = %.6f km/s, want 0", la.RangeRateKmPerSec)
	}
}
