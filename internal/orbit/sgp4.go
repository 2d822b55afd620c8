package orbit

import (
	"fmt"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// SGP4 library choice: github.com/joshuaferrara/go-satellite, pure Go with
// explicit TEME output. Propagate() takes Satellite by value so SGP4 error
// codes are not visible to the caller; propagation failures are detected by
// checking the output for NaN/Inf and unreasonable position magnitudes.

// TLEKinematics drives link geometry from real orbital elements via SGP4.
// Simulation time t=0 corresponds to the configured epoch.
type TLEKinematics struct {
	sat     satellite.Satellite
	gs      GroundStation
	epoch   time.Time
	minElev float64
	noradID int
}

// NewTLEKinematics creates an SGP4-backed kinematics model from TLE lines.
//
// Pre-validates TLE format before passing to the library, because
// go-satellite calls log.Fatal on malformed input (which would kill the
// process).
func NewTLEKinematics(line1, line2 string, noradID int, gs GroundStation, epoch time.Time, minElevationDeg float64) (*TLEKinematics, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for NORAD %d: %w", noradID, err)
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed for NORAD %d: code=%d %s", noradID, sat.Error, sat.ErrorStr)
	}

	return &TLEKinematics{
		sat:     sat,
		gs:      gs,
		epoch:   epoch.UTC(),
		minElev: minElevationDeg,
		noradID: noradID,
	}, nil
}

// validateTLELines performs basic format validation on TLE lines.
func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got %q", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got %q", line2[0])
	}
	return nil
}

// StateAt returns the link geometry t seconds past the epoch. A failed
// propagation (NaN output or implausible magnitude) degrades to a
// non-visible zero State rather than failing.
func (k *TLEKinematics) StateAt(t float64) State {
	at := k.epoch.Add(time.Duration(t * float64(time.Second)))

	pos, vel := satellite.Propagate(k.sat, at.Year(), int(at.Month()), at.Day(), at.Hour(), at.Minute(), at.Second())

	st := inertialToECEF(pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z, gmst(at))
	if !plausibleOrbit(st) {
		return State{}
	}

	la := LookAnglesTo(k.gs, st.X, st.Y, st.Z, st.VX, st.VY, st.VZ)
	return State{
		RangeKm:           la.RangeKm,
		RangeRateKmPerSec: la.RangeRateKmPerSec,
		ElevationDeg:      la.ElevationDeg,
		AzimuthDeg:        la.AzimuthDeg,
		Visible:           la.ElevationDeg >= k.minElev,
	}
}
