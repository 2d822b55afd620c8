// Package pattern implements just-in-time hop pattern distribution: a
// redundant pattern source with round-robin failover and a deterministic
// fallback cache, and the ordered bounded buffer each hop participant
// consumes from.
//
// Both participants of a link receive the same Pattern values; Pattern is a
// comparable value type so "same pattern" means structural equality, never
// shared object identity.
package pattern

// CacheSourceID marks a pattern served from the fallback cache instead of a
// live entropy channel.
const CacheSourceID = -1

// Pattern is one sequenced frequency assignment. Sequence strictly increases
// with every Source.Generate call, live or cached, for the life of the
// source.
type Pattern struct {
	FrequencyHz float64
	Timestamp   float64 // seconds, simulation time of generation
	Sequence    uint64
	SourceID    int // channel id ≥1, or CacheSourceID
	FromCache   bool
}

// SameAssignment reports whether two patterns carry the same frequency
// assignment: equal frequency, sequence number and source.
func (p Pattern) SameAssignment(o Pattern) bool {
	return p.FrequencyHz == o.FrequencyHz && p.Sequence == o.Sequence && p.SourceID == o.SourceID
}
