package hop

import (
	"log/slog"

	"github.com/BelaBartok39/JIT-FHSS/internal/doppler"
	"github.com/BelaBartok39/JIT-FHSS/internal/metrics"
	"github.com/BelaBartok39/JIT-FHSS/internal/orbit"
	"github.com/BelaBartok39/JIT-FHSS/internal/pattern"
)

// Sender is the moving transmitter. On each transmission it hops when due,
// applies the Doppler of the current geometry to its carrier, and appends an
// immutable log record.
type Sender struct {
	cs     channelState
	kin    orbit.Kinematics
	logger *slog.Logger

	now float64
	log []TransmitRecord
}

// NewSender creates a sender owning the given buffer.
func NewSender(cfg Config, buf *pattern.Buffer, kin orbit.Kinematics, logger *slog.Logger) *Sender {
	return &Sender{
		cs:     newChannelState(cfg, buf),
		kin:    kin,
		logger: logger,
	}
}

// SetTime advances the sender's notion of current time. Called once per
// driver tick.
func (s *Sender) SetTime(t float64) { s.now = t }

// Frequency returns the current transmit frequency.
func (s *Sender) Frequency() float64 { return s.cs.frequencyHz }

// Transmit runs the hop check, then produces the signal as it will arrive
// at the receiver: the current carrier with the instantaneous Doppler shift
// applied.
func (s *Sender) Transmit(dataSymbol int) Signal {
	if s.cs.dueForHop(s.now, 0) {
		p := s.cs.hop(s.now)
		metrics.IncHop("sender")
		s.logger.Debug("sender hopped",
			"time", s.now,
			"frequency_hz", p.FrequencyHz,
			"sequence", p.Sequence,
			"from_cache", p.FromCache,
		)
	}

	st := s.kin.StateAt(s.now)
	shift := doppler.Shift(s.cs.frequencyHz, st.RangeRateKmPerSec)
	receivedFreq := s.cs.frequencyHz + shift

	s.log = append(s.log, TransmitRecord{
		Time:           s.now,
		TransmitFreqHz: s.cs.frequencyHz,
		ReceivedFreqHz: receivedFreq,
		DopplerShiftHz: shift,
		RangeKm:        st.RangeKm,
		RangeRateKmS:   st.RangeRateKmPerSec,
		DataSymbol:     dataSymbol,
	})

	return Signal{
		Time:           s.now,
		TransmitFreqHz: s.cs.frequencyHz,
		ReceivedFreqHz: receivedFreq,
		DataSymbol:     dataSymbol,
	}
}

// Log returns the append-only transmission log.
func (s *Sender) Log() []TransmitRecord { return s.log }
