// Package sim drives the discrete-time simulation loop: one shared clock
// advanced in fixed increments, a pattern source feeding both participants'
// buffers with identical pattern values, and a transmit/receive exchange on
// every visible tick.
package sim

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BelaBartok39/JIT-FHSS/internal/hop"
	"github.com/BelaBartok39/JIT-FHSS/internal/orbit"
	"github.com/BelaBartok39/JIT-FHSS/internal/pattern"
)

// JamEvent is a scheduled administrative jam or restore against the pattern
// source.
type JamEvent struct {
	Tick    int
	Channel int
	Restore bool
}

// Options holds the driver-loop parameters.
type Options struct {
	TickSeconds     float64
	Ticks           int
	RegenerateEvery int // generate-and-push cadence, in ticks
	JamSchedule     []JamEvent
}

// Runner owns one simulation run. Each step inside a tick depends on the one
// before it, so the loop is deliberately single-threaded.
type Runner struct {
	opts     Options
	src      *pattern.Source
	sender   *hop.Sender
	receiver *hop.Receiver
	txBuf    *pattern.Buffer
	rxBuf    *pattern.Buffer
	kin      orbit.Kinematics
	logger   *slog.Logger

	runID     string
	refillDue bool
}

// NewRunner wires a run together. The two buffers must be the ones owned by
// the sender and receiver respectively; the runner pushes every generated
// pattern into both.
func NewRunner(opts Options, src *pattern.Source, sender *hop.Sender, receiver *hop.Receiver, txBuf, rxBuf *pattern.Buffer, kin orbit.Kinematics, logger *slog.Logger) *Runner {
	if opts.RegenerateEvery < 1 {
		opts.RegenerateEvery = 1
	}
	return &Runner{
		opts:     opts,
		src:      src,
		sender:   sender,
		receiver: receiver,
		txBuf:    txBuf,
		rxBuf:    rxBuf,
		kin:      kin,
		logger:   logger,
		runID:    uuid.NewString(),
	}
}

// RunID returns this run's identifier, stamped onto the summary.
func (r *Runner) RunID() string { return r.runID }

// RequestRefill marks that a participant buffer ran low; the next tick
// generates and distributes an extra pattern. Wire it as the buffers' OnLow
// callback.
func (r *Runner) RequestRefill(remaining int) {
	r.refillDue = true
}

// Run executes the loop for the configured number of ticks and returns the
// aggregated summary. Cancelling the context ends the run early with a
// partial summary; nothing inside a tick blocks.
func (r *Runner) Run(ctx context.Context) Summary {
	r.logger.Info("simulation starting",
		"run_id", r.runID,
		"ticks", r.opts.Ticks,
		"tick_seconds", r.opts.TickSeconds,
		"regenerate_every", r.opts.RegenerateEvery,
	)

	jamIdx := 0
	visibleTicks := 0
	ticksRun := 0

	for tick := 0; tick < r.opts.Ticks; tick++ {
		select {
		case <-ctx.Done():
			r.logger.Warn("simulation cancelled", "run_id", r.runID, "tick", tick)
			return r.summarize(ticksRun, visibleTicks)
		default:
		}

		now := float64(tick) * r.opts.TickSeconds
		r.sender.SetTime(now)
		r.receiver.SetTime(now)

		for jamIdx < len(r.opts.JamSchedule) && r.opts.JamSchedule[jamIdx].Tick <= tick {
			ev := r.opts.JamSchedule[jamIdx]
			if ev.Restore {
				r.src.RestoreChannel(ev.Channel)
			} else {
				r.src.JamChannel(ev.Channel)
			}
			jamIdx++
		}

		if tick%r.opts.RegenerateEvery == 0 || r.refillDue {
			r.refillDue = false
			r.distribute(now)
		}

		if st := r.kin.StateAt(now); st.Visible {
			visibleTicks++
			sig := r.sender.Transmit(tick % 256)
			r.receiver.Receive(sig)
		}
		ticksRun++
	}

	return r.summarize(ticksRun, visibleTicks)
}

// distribute generates one pattern and pushes the identical value into both
// participants' buffers. Distributing the same value, not the same object,
// is what keeps the two independently buffered participants convergent.
func (r *Runner) distribute(now float64) {
	p := r.src.Generate(now)
	if !r.txBuf.Add(p) {
		r.logger.Debug("sender buffer rejected pattern", "sequence", p.Sequence)
	}
	if !r.rxBuf.Add(p) {
		r.logger.Debug("receiver buffer rejected pattern", "sequence", p.Sequence)
	}
}

func (r *Runner) summarize(ticks, visibleTicks int) Summary {
	s := Summarize(r.runID, r.sender.Log(), r.receiver.Log(), ticks, visibleTicks)
	st := r.src.Stats()
	s.PatternsGenerated = st.Generated
	s.CacheFallbacks = st.CacheFallbacks

	r.logger.Info("simulation complete",
		"run_id", r.runID,
		"ticks", s.Ticks,
		"visible_ticks", s.VisibleTicks,
		"transmissions", s.Transmissions,
		"success_rate", s.SuccessRate,
		"cache_fallbacks", s.CacheFallbacks,
	)
	return s
}
