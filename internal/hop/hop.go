// Package hop implements the per-tick hop state machines of the two link
// participants. Sender and Receiver are distinct types composing the same
// hop-timing capability; post-hop behavior (transmit vs. receive-and-
// classify) differs entirely between them.
package hop

import (
	"github.com/BelaBartok39/JIT-FHSS/internal/pattern"
)

// Config holds the construction-time parameters shared by both roles.
type Config struct {
	HopDurationSec float64
}

// Signal is what travels from sender to receiver within a tick: the carrier
// as it arrives at the receive antenna, after Doppler.
type Signal struct {
	Time           float64 `json:"time"`
	TransmitFreqHz float64 `json:"transmitFreq"`
	ReceivedFreqHz float64 `json:"receivedFreq"`
	DataSymbol     int     `json:"dataSymbol"`
}

// channelState is the hop-timing capability shared by both roles: the
// current frequency, the last hop instant, and the owned pattern buffer.
// Frequency changes only through hop().
type channelState struct {
	frequencyHz float64
	lastHopTime float64
	hopDuration float64
	buf         *pattern.Buffer
}

func newChannelState(cfg Config, buf *pattern.Buffer) channelState {
	return channelState{
		// Start one hop interval in the past so the first tick hops
		// immediately onto the first pattern.
		lastHopTime: -cfg.HopDurationSec,
		hopDuration: cfg.HopDurationSec,
		buf:         buf,
	}
}

// dueForHop reports whether a hop is due at the given time. clockErr is the
// participant's instantaneous clock error: an imperfect local clock sees
// elapsed time shifted by its own error.
func (c *channelState) dueForHop(now, clockErr float64) bool {
	return (now-c.lastHopTime)+clockErr >= c.hopDuration
}

// hop pulls the next pattern from the owned buffer, retunes, and compacts
// the buffer opportunistically when it runs low.
func (c *channelState) hop(now float64) pattern.Pattern {
	p := c.buf.Next()
	c.frequencyHz = p.FrequencyHz
	c.lastHopTime = now
	c.buf.CompactIfLow()
	return p
}
