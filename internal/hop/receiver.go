package hop

import (
	"log/slog"
	"math"

	"github.com/BelaBartok39/JIT-FHSS/internal/channel"
	"github.com/BelaBartok39/JIT-FHSS/internal/doppler"
	"github.com/BelaBartok39/JIT-FHSS/internal/metrics"
	"github.com/BelaBartok39/JIT-FHSS/internal/orbit"
	"github.com/BelaBartok39/JIT-FHSS/internal/pattern"
)

// DefaultSNRThresholdDB is the decode threshold used when none is
// configured.
const DefaultSNRThresholdDB = 8.0

// ReceiverConfig extends the shared hop config with the receiver's decode
// gates.
type ReceiverConfig struct {
	Config
	SNRThresholdDB float64 // 0 means DefaultSNRThresholdDB
}

// Receiver is the fixed ground terminal. On each received signal it hops
// when due (against its own imperfect clock), removes the Doppler it expects
// for the pattern it believes is current, and classifies decode success
// against the impairment gates.
type Receiver struct {
	cs      channelState
	kin     orbit.Kinematics
	quality *channel.QualityModel
	clock   *channel.Clock
	comp    doppler.Compensator
	snrMin  float64
	logger  *slog.Logger

	now float64
	log []ReceiveRecord
}

// NewReceiver creates a receiver owning the given buffer and clock.
func NewReceiver(cfg ReceiverConfig, buf *pattern.Buffer, kin orbit.Kinematics, quality *channel.QualityModel, clock *channel.Clock, comp doppler.Compensator, logger *slog.Logger) *Receiver {
	snrMin := cfg.SNRThresholdDB
	if snrMin == 0 {
		snrMin = DefaultSNRThresholdDB
	}
	return &Receiver{
		cs:      newChannelState(cfg.Config, buf),
		kin:     kin,
		quality: quality,
		clock:   clock,
		comp:    comp,
		snrMin:  snrMin,
		logger:  logger,
	}
}

// SetTime advances the receiver's notion of current time. Called once per
// driver tick.
func (r *Receiver) SetTime(t float64) { r.now = t }

// Frequency returns the frequency the receiver is currently tuned to.
func (r *Receiver) Frequency() float64 { return r.cs.frequencyHz }

// Receive runs the hop check and classifies the decode. The gates are
// evaluated in priority order (low SNR, then clock drift, then frequency
// mismatch) and only the first failure is recorded. Returns the decoded
// symbol and whether decoding succeeded.
func (r *Receiver) Receive(sig Signal) (int, bool) {
	clockErr := r.clock.ErrorAt(r.now)

	// The receiver's local clock, not true time, decides when to hop.
	if r.cs.dueForHop(r.now, clockErr) {
		p := r.cs.hop(r.now)
		metrics.IncHop("receiver")
		r.logger.Debug("receiver hopped",
			"time", r.now,
			"frequency_hz", p.FrequencyHz,
			"sequence", p.Sequence,
			"from_cache", p.FromCache,
		)
	}

	st := r.kin.StateAt(r.now)
	snr := r.quality.SNR(st.RangeKm, st.ElevationDeg)
	expected := r.cs.frequencyHz
	compensated := r.comp.Compensate(sig.ReceivedFreqHz, st.RangeRateKmPerSec, expected)

	var reason string
	switch {
	case snr < r.snrMin:
		reason = ReasonLowSNR
	case math.Abs(clockErr) > 0.1*r.cs.hopDuration:
		reason = ReasonClockDrift
	case math.Abs(compensated-expected) >= 0.01*math.Abs(expected):
		reason = ReasonFrequencyMismatch
	}

	success := reason == ""
	metrics.IncDecode(decodeOutcome(reason))

	r.log = append(r.log, ReceiveRecord{
		Time:              r.now,
		ExpectedFreqHz:    expected,
		ReceivedFreqHz:    sig.ReceivedFreqHz,
		CompensatedFreqHz: compensated,
		SNRdB:             snr,
		ClockErrorSec:     clockErr,
		RangeKm:           st.RangeKm,
		RangeRateKmS:      st.RangeRateKmPerSec,
		Success:           success,
		FailureReason:     reason,
		DataSymbol:        sig.DataSymbol,
	})

	if !success {
		return 0, false
	}
	return sig.DataSymbol, true
}

// Log returns the append-only decode log.
func (r *Receiver) Log() []ReceiveRecord { return r.log }
