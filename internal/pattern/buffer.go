package pattern

import (
	"log/slog"
	"sort"

	"github.com/BelaBartok39/JIT-FHSS/internal/metrics"
)

// BufferConfig parameterizes a pattern buffer.
type BufferConfig struct {
	Owner    string              // label for logs and metrics ("sender", "receiver")
	Capacity int
	LowWater int                 // Remaining() below this emits a low-buffer signal
	OnLow    func(remaining int) // optional refill trigger, called after Add/Next
}

// Buffer is an ordered, bounded queue of patterns with sequential
// consumption. Duplicate and regressed sequence numbers are rejected against
// the maximum sequence ever accepted, which is tracked independently of
// insertion order. A drained buffer degrades to repeating its last pattern
// instead of failing; the degradation is observable through the exhaustion
// log/metric.
//
// A buffer is owned by exactly one participant and is not safe for
// concurrent use.
type Buffer struct {
	cfg    BufferConfig
	logger *slog.Logger

	patterns []Pattern
	cursor   int // index of the next pattern to consume
	maxSeen  uint64

	exhausted bool // warn once per exhaustion episode
}

// NewBuffer creates an empty pattern buffer.
func NewBuffer(cfg BufferConfig, logger *slog.Logger) *Buffer {
	return &Buffer{cfg: cfg, logger: logger}
}

// Add inserts a pattern, keeping contents sorted ascending by sequence.
// Returns false for a duplicate or out-of-order pattern (sequence at or
// below the maximum ever accepted); the caller retries with a newer one.
func (b *Buffer) Add(p Pattern) bool {
	if p.Sequence <= b.maxSeen {
		metrics.IncBufferReject(b.cfg.Owner)
		b.logger.Debug("rejecting duplicate or regressed pattern",
			"owner", b.cfg.Owner,
			"sequence", p.Sequence,
			"max_seen", b.maxSeen,
		)
		return false
	}

	b.patterns = append(b.patterns, p)
	sort.Slice(b.patterns, func(i, j int) bool {
		return b.patterns[i].Sequence < b.patterns[j].Sequence
	})

	// Trim to capacity: consumed entries go first, and the cursor's current
	// target is never dropped.
	for b.cfg.Capacity > 0 && len(b.patterns) > b.cfg.Capacity {
		switch {
		case b.cursor > 0:
			b.patterns = b.patterns[1:]
			b.cursor--
		case len(b.patterns) > 1:
			b.patterns = append(b.patterns[:1], b.patterns[2:]...)
		default:
			return true
		}
	}

	if p.Sequence > b.maxSeen {
		b.maxSeen = p.Sequence
	}
	b.exhausted = false

	b.signalLevel()
	return true
}

// Next returns the next pattern in sequence order. Past the end of the
// buffer it clamps to the last pattern and repeats it indefinitely, a
// desynchronization signal rather than an error. An empty buffer returns
// the zero Pattern.
func (b *Buffer) Next() Pattern {
	if len(b.patterns) == 0 {
		b.noteExhausted()
		return Pattern{}
	}

	if b.cursor >= len(b.patterns) {
		b.noteExhausted()
		b.cursor = len(b.patterns) - 1
		p := b.patterns[b.cursor]
		b.cursor++
		b.signalLevel()
		return p
	}

	p := b.patterns[b.cursor]
	b.cursor++
	b.signalLevel()
	return p
}

func (b *Buffer) noteExhausted() {
	metrics.IncBufferExhaustion(b.cfg.Owner)
	if !b.exhausted {
		b.exhausted = true
		b.logger.Warn("pattern buffer exhausted, repeating last pattern",
			"owner", b.cfg.Owner,
			"max_seen", b.maxSeen,
		)
	}
}

// signalLevel publishes the backlog gauge and fires the low-buffer callback
// when the backlog drops under the low watermark.
func (b *Buffer) signalLevel() {
	remaining := b.Remaining()
	metrics.SetBufferRemaining(b.cfg.Owner, remaining)
	if remaining < b.cfg.LowWater && b.cfg.OnLow != nil {
		b.cfg.OnLow(remaining)
	}
}

// Remaining returns the number of unconsumed patterns.
func (b *Buffer) Remaining() int {
	if b.cursor >= len(b.patterns) {
		return 0
	}
	return len(b.patterns) - b.cursor
}

// Len returns the total number of buffered patterns, consumed or not.
func (b *Buffer) Len() int {
	return len(b.patterns)
}

// MaxSequenceSeen returns the largest sequence number ever accepted.
func (b *Buffer) MaxSequenceSeen() uint64 {
	return b.maxSeen
}

// Compact drops every consumed pattern and resets the cursor, bounding
// memory during long runs.
func (b *Buffer) Compact() {
	if b.cursor == 0 {
		return
	}
	if b.cursor > len(b.patterns) {
		b.cursor = len(b.patterns)
	}
	b.patterns = append([]Pattern(nil), b.patterns[b.cursor:]...)
	b.cursor = 0
	metrics.IncBufferCompaction(b.cfg.Owner)
	b.logger.Debug("pattern buffer compacted", "owner", b.cfg.Owner, "len", len(b.patterns))
}

// CompactIfLow compacts when the backlog is under the low watermark.
// Returns true if a compaction ran.
func (b *Buffer) CompactIfLow() bool {
	if b.Remaining() >= b.cfg.LowWater {
		return false
	}
	b.Compact()
	return true
}
