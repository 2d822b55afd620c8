package pattern

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/BelaBartok39/JIT-FHSS/internal/metrics"
)

// fallbackCacheSeed fixes the fallback cache contents: every source built
// with the same band and cache size serves identical cache frequencies,
// which is what keeps both participants synchronized under total channel
// loss.
const fallbackCacheSeed = 0x46485353 // "FHSS"

// defaultCacheSize backstops a zero or negative configured cache size, so
// Generate can always serve the fallback path.
const defaultCacheSize = 64

// SourceConfig parameterizes a pattern source.
type SourceConfig struct {
	NumChannels    int
	NumFrequencies int
	BandMinHz      float64
	BandMaxHz      float64
	CacheSize      int

	// JamToggleProb is the per-channel probability, sampled on every
	// Generate call, of flipping a channel's stochastic jam state. Zero
	// disables stochastic jamming; administrative overrides still apply.
	JamToggleProb float64
}

// SourceStats counts source activity since construction.
type SourceStats struct {
	Generated      uint64
	CacheFallbacks uint64
}

// Source generates sequenced hop patterns from N redundant entropy channels
// with round-robin failover. When every channel is unavailable it degrades
// to a deterministic fallback cache; Generate never fails.
//
// All mutable state sits behind one mutex so several participants may share
// a source without breaking the monotonic-sequence invariant.
type Source struct {
	cfg    SourceConfig
	logger *slog.Logger

	mu          sync.Mutex
	rng         *rand.Rand
	available   []bool
	jammed      []bool // stochastic jam state
	adminJammed []bool // administrative override, sticky until restored
	current     int    // rotating channel pointer
	sequence    uint64
	stats       SourceStats

	fallback []float64 // generated once, deterministically
}

// NewSource creates a pattern source. The random source drives stochastic
// jamming and frequency draws; seed it for reproducible scenarios. The
// fallback cache is always generated from its own fixed seed regardless of
// rng.
func NewSource(cfg SourceConfig, rng *rand.Rand, logger *slog.Logger) *Source {
	if cfg.CacheSize < 1 {
		cfg.CacheSize = defaultCacheSize
	}
	s := &Source{
		cfg:         cfg,
		logger:      logger,
		rng:         rng,
		available:   make([]bool, cfg.NumChannels),
		jammed:      make([]bool, cfg.NumChannels),
		adminJammed: make([]bool, cfg.NumChannels),
		fallback:    make([]float64, cfg.CacheSize),
	}
	for i := range s.available {
		s.available[i] = true
	}

	cacheRng := rand.New(rand.NewSource(fallbackCacheSeed))
	for i := range s.fallback {
		s.fallback[i] = s.frequencyForIndex(cacheRng.Intn(cfg.NumFrequencies) + 1)
	}

	return s
}

// frequencyForIndex maps a 1-based frequency index linearly onto the band.
func (s *Source) frequencyForIndex(idx int) float64 {
	if s.cfg.NumFrequencies <= 1 {
		return s.cfg.BandMinHz
	}
	step := (s.cfg.BandMaxHz - s.cfg.BandMinHz) / float64(s.cfg.NumFrequencies-1)
	return s.cfg.BandMinHz + float64(idx-1)*step
}

// Generate emits the next sequenced pattern for the given timestamp. It
// scans the channels round-robin from the current pointer; if none is clear
// it serves the fallback cache entry for the new sequence number. Never
// fails.
func (s *Source) Generate(timestamp float64) Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.toggleChannels()

	n := s.cfg.NumChannels
	idx := s.current
	for i := 0; i < n; i++ {
		if s.channelClear(idx) {
			s.current = (idx + 1) % n
			s.sequence++
			s.stats.Generated++
			metrics.IncPatternGenerated(false)
			return Pattern{
				FrequencyHz: s.frequencyForIndex(s.rng.Intn(s.cfg.NumFrequencies) + 1),
				Timestamp:   timestamp,
				Sequence:    s.sequence,
				SourceID:    idx + 1,
			}
		}
		idx = (idx + 1) % n
	}

	// Total source loss: fall back to the deterministic cache. The sequence
	// still advances so consumers stay aligned on the same cache index.
	s.sequence++
	s.stats.Generated++
	s.stats.CacheFallbacks++
	metrics.IncPatternGenerated(true)

	cacheIndex := int(s.sequence % uint64(len(s.fallback)))
	s.logger.Warn("all pattern channels unavailable, serving fallback cache",
		"sequence", s.sequence,
		"cache_index", cacheIndex,
	)

	return Pattern{
		FrequencyHz: s.fallback[cacheIndex],
		Timestamp:   timestamp,
		Sequence:    s.sequence,
		SourceID:    CacheSourceID,
		FromCache:   true,
	}
}

// channelClear reports whether channel idx can serve a pattern.
// Caller holds mu.
func (s *Source) channelClear(idx int) bool {
	return s.available[idx] && !s.jammed[idx] && !s.adminJammed[idx]
}

// toggleChannels flips each channel's stochastic jam state with the
// configured probability. Caller holds mu.
func (s *Source) toggleChannels() {
	if s.cfg.JamToggleProb <= 0 {
		return
	}
	for i := range s.jammed {
		if s.rng.Float64() < s.cfg.JamToggleProb {
			s.jammed[i] = !s.jammed[i]
		}
	}
}

// JamChannel administratively jams the 1-based channel id. Idempotent;
// unknown ids are ignored.
func (s *Source) JamChannel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id > s.cfg.NumChannels {
		return
	}
	if !s.adminJammed[id-1] {
		s.adminJammed[id-1] = true
		s.logger.Info("channel jammed", "channel", id)
	}
}

// RestoreChannel clears an administrative jam. Idempotent; unknown ids are
// ignored.
func (s *Source) RestoreChannel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id > s.cfg.NumChannels {
		return
	}
	if s.adminJammed[id-1] {
		s.adminJammed[id-1] = false
		s.logger.Info("channel restored", "channel", id)
	}
}

// Sequence returns the last issued sequence number.
func (s *Source) Sequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequence
}

// Stats returns a snapshot of source activity.
func (s *Source) Stats() SourceStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// FallbackCache returns a copy of the deterministic fallback frequencies.
func (s *Source) FallbackCache() []float64 {
	out := make([]float64, len(s.fallback))
	copy(out, s.fallback)
	return out
}
