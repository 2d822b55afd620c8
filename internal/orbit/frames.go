package orbit

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const j2000 = 2451545.0

// omegaEarth is Earth's rotation rate in rad/s (IAU value).
const omegaEarth = 7.292115146706979e-5

// stateECEF is a satellite position and velocity in the Earth-fixed frame,
// meters and m/s.
type stateECEF struct {
	X, Y, Z    float64
	VX, VY, VZ float64
}

// julianDate converts a time.Time (UTC) to Julian Date.
func julianDate(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Jan/Feb count as months 13/14 of the previous year.
	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}

// gmst calculates Greenwich Mean Sidereal Time in radians for a given UTC
// time, using the IAU-82 model (Vallado Eq 3-47).
func gmst(t time.Time) float64 {
	tUT1 := (julianDate(t.UTC()) - j2000) / 36525.0

	// GMST in seconds of time; 876600h = 3155760000 s.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}
	return gmstSec / 86400.0 * 2.0 * math.Pi
}

// inertialToECEF rotates an inertial position/velocity (km, km/s) into the
// Earth-fixed frame given the rotation angle theta (GMST for TEME input, or
// elapsed Earth rotation for a model with its own epoch). Output in meters
// and m/s.
//
// Position: r_ECEF = R3(θ) · r; velocity: v_ECEF = R3(θ) · v − ω × r_ECEF.
func inertialToECEF(x, y, z, vx, vy, vz, theta float64) stateECEF {
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	xe := x*cosT + y*sinT
	ye := -x*sinT + y*cosT
	ze := z

	// ω × r_ECEF = [-ω·y_ECEF, ω·x_ECEF, 0]
	vxe := vx*cosT + vy*sinT + omegaEarth*ye
	vye := -vx*sinT + vy*cosT - omegaEarth*xe
	vze := vz

	return stateECEF{
		X:  xe * 1000.0,
		Y:  ye * 1000.0,
		Z:  ze * 1000.0,
		VX: vxe * 1000.0,
		VY: vye * 1000.0,
		VZ: vze * 1000.0,
	}
}

// plausibleOrbit reports whether an ECEF position is physically reasonable
// for an Earth-orbiting satellite: finite, and between ~6200 km (just below
// LEO) and ~50000 km (above GEO) from the geocenter.
func plausibleOrbit(st stateECEF) bool {
	if math.IsNaN(st.X) || math.IsNaN(st.Y) || math.IsNaN(st.Z) ||
		math.IsInf(st.X, 0) || math.IsInf(st.Y, 0) || math.IsInf(st.Z, 0) {
		return false
	}
	mag := math.Sqrt(st.X*st.X + st.Y*st.Y + st.Z*st.Z)
	return mag >= 6200e3 && mag <= 50000e3
}
