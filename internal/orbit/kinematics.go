// Package orbit provides the link geometry between a satellite and a fixed
// ground station: range, range-rate, elevation and visibility as a function
// of simulation time.
//
// Two kinematics models are available. Circular is a closed-form circular
// orbit driven entirely by construction-time parameters. TLEKinematics wraps
// SGP4 for real orbital elements. Both are pure functions of time and never
// fail; degenerate inputs produce a non-visible State.
package orbit

// State is the instantaneous geometry of the satellite-to-ground link.
type State struct {
	RangeKm           float64
	RangeRateKmPerSec float64 // positive = closing
	ElevationDeg      float64
	AzimuthDeg        float64
	Visible           bool
}

// Kinematics yields the link geometry at a given simulation time,
// in seconds since the model's epoch.
type Kinematics interface {
	StateAt(t float64) State
}
