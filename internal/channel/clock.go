package channel

import "math/rand"

// OscillatorGrade bounds the magnitudes of the quadratic drift coefficients
// for one class of oscillator. Coefficients are drawn uniformly in ±max at
// construction.
type OscillatorGrade struct {
	BiasMaxSec        float64 // constant offset, seconds
	DriftMaxSecPerSec float64 // linear rate, s/s
	AgingMaxPerSec2   float64 // quadratic aging, s/s²
}

// Oscillator grades for the two ends of the link. The ground transmitter
// carries an ovenized oscillator; the receive terminal a cheaper
// temperature-compensated part.
var (
	GradeOCXO = OscillatorGrade{BiasMaxSec: 1e-4, DriftMaxSecPerSec: 1e-8, AgingMaxPerSec2: 1e-11}
	GradeTCXO = OscillatorGrade{BiasMaxSec: 1e-3, DriftMaxSecPerSec: 1e-6, AgingMaxPerSec2: 1e-9}
)

// Clock is a quadratic-drift oscillator error model:
//
//	error(t) = bias + drift·(t−epoch) + ½·aging·(t−epoch)²
//
// Coefficients are seeded once at construction per instance, so distinct
// clocks drift apart the way two real oscillators would.
type Clock struct {
	bias  float64
	drift float64
	aging float64
	epoch float64
	rng   *rand.Rand
}

// NewClock creates a clock with coefficients drawn from the grade's bounds.
func NewClock(grade OscillatorGrade, epoch float64, rng *rand.Rand) *Clock {
	return &Clock{
		bias:  uniform(rng, grade.BiasMaxSec),
		drift: uniform(rng, grade.DriftMaxSecPerSec),
		aging: uniform(rng, grade.AgingMaxPerSec2),
		epoch: epoch,
		rng:   rng,
	}
}

// NewClockWithCoefficients creates a clock with exact coefficients.
// Used for deterministic tests and ideal-timing scenarios.
func NewClockWithCoefficients(bias, drift, aging, epoch float64) *Clock {
	return &Clock{bias: bias, drift: drift, aging: aging, epoch: epoch}
}

// ErrorAt returns the clock error in seconds at simulation time t.
func (c *Clock) ErrorAt(t float64) float64 {
	dt := t - c.epoch
	return c.bias + c.drift*dt + 0.5*c.aging*dt*dt
}

// Resync models a synchronization event at time t: the accumulated bias is
// zeroed, the epoch moves to t, and the rate coefficients are redrawn (a
// disciplined oscillator settles onto a new operating point). A clock built
// without a random source keeps its rate coefficients.
func (c *Clock) Resync(t float64, grade OscillatorGrade) {
	c.bias = 0
	c.epoch = t
	if c.rng != nil {
		c.drift = uniform(c.rng, grade.DriftMaxSecPerSec)
		c.aging = uniform(c.rng, grade.AgingMaxPerSec2)
	}
}

func uniform(rng *rand.Rand, max float64) float64 {
	return (rng.Float64()*2 - 1) * max
}
