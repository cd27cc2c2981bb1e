// Package seeded provides the deterministic random stream used for daily
// challenges and the small Source interface the rest of the engine draws from.
package seeded

import "time"

// Source yields floats in [0,1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Mulberry32 is a 32-bit generator with a single word of state.
// The same seed produces the same stream on every platform.
type Mulberry32 struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the stream and returns the next 32-bit value.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0,1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// State returns the internal state word.
func (m *Mulberry32) State() uint32 {
	return m.state
}

// DateToSeed hashes a calendar date string into a seed.
// Not cryptographic; it only needs to be stable.
func DateToSeed(date string) uint32 {
	var h uint32
	for i := 0; i < len(date); i++ {
		h = h*31 + uint32(date[i])
	}
	return h
}

// Today formats now as an ISO date (YYYY-MM-DD) in now's location.
func Today(now time.Time) string {
	return now.Format("2006-01-02")
}

// Intn returns an int in [0,n) drawn from src. n <= 0 returns 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Pick returns a uniformly chosen element of items. It panics on an empty
// slice.
func Pick[T any](src Source, items []T) T {
	return items[Intn(src, len(items))]
}
