// Package doppler provides the pure frequency conversions between transmit
// and received carrier for a moving satellite: non-relativistic Doppler
// shift, its inverse compensation, and line-of-sight propagation delay.
package doppler

import "math"

// SpeedOfLight in m/s, the value used throughout the link budget.
const SpeedOfLight = 2.998e8

// Shift returns the Doppler shift in Hz for a transmit frequency and a
// range-rate in km/s: Δf = f · v/c. Positive range-rate (closing) produces
// a positive (blue) shift.
func Shift(txFreqHz, rangeRateKmPerSec float64) float64 {
	return txFreqHz * (rangeRateKmPerSec * 1000.0 / SpeedOfLight)
}

// Apply returns the frequency observed at the receiver for a carrier
// transmitted at txFreqHz.
func Apply(txFreqHz, rangeRateKmPerSec float64) float64 {
	return txFreqHz + Shift(txFreqHz, rangeRateKmPerSec)
}

// PropagationDelay returns the one-way line-of-sight delay in seconds.
func PropagationDelay(rangeKm float64) float64 {
	return rangeKm * 1000.0 / SpeedOfLight
}

// RoundTripDelay returns the two-way line-of-sight delay in seconds.
func RoundTripDelay(rangeKm float64) float64 {
	return 2 * PropagationDelay(rangeKm)
}

// Compensator removes the expected Doppler shift from a received carrier.
//
// Compensation uses the expected transmit frequency, not a measured one:
// its correctness depends entirely on the receiver already knowing which
// frequency was intended, i.e. on pattern synchronization holding.
type Compensator struct {
	Disabled bool // passthrough when set
}

// Compensate returns the received frequency with the shift expected for
// expectedTxFreqHz removed. When disabled, the received frequency passes
// through unchanged.
func (c Compensator) Compensate(rxFreqHz, rangeRateKmPerSec, expectedTxFreqHz float64) float64 {
	if c.Disabled {
		return rxFreqHz
	}
	return rxFreqHz - Shift(expectedTxFreqHz, rangeRateKmPerSec)
}

// ShiftMagnitude returns the absolute shift, a convenience for statistics.
func ShiftMagnitude(txFreqHz, rangeRateKmPerSec float64) float64 {
	return math.Abs(Shift(txFreqHz, rangeRateKmPerSec))
}
