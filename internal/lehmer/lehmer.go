// Package lehmer implements the Park-Miller "minimal standard" multiplicative
// congruential generator (MINSTD).
//
// The generator's output is fully determined by its seed and is stable across
// platforms and Go releases, which is what allows a scrambled image to be
// restored years later from nothing but the stored seed. It is not suitable
// for anything security related.
package lehmer

import (
	"github.com/coder/quartz"
)

const (
	// Multiplier is 7^5, the MINSTD multiplier.
	Multiplier int64 = 16807

	// Modulus is the Mersenne prime 2^31 - 1.
	Modulus int64 = 2147483647

	// Schrage decomposition of the modulus: Modulus = Multiplier*quotient + remainder.
	quotient  = Modulus / Multiplier // 127773
	remainder = Modulus % Multiplier // 2836
)

// Generator is a MINSTD generator. The zero value is not usable; construct
// one with New or NewFromClock. A Generator is not safe for concurrent use;
// give each goroutine its own.
type Generator struct {
	state int64
}

// New returns a generator seeded with the normalized form of seed.
func New(seed int64) *Generator {
	return &Generator{state: Normalize(seed)}
}

// NewFromClock seeds a generator from the clock's wall time in milliseconds.
func NewFromClock(clock quartz.Clock) *Generator {
	return New(clock.Now().UnixMilli() % Modulus)
}

// Normalize maps any 64-bit value onto a valid generator state in
// [1, Modulus-1]. Values already in that range are returned unchanged.
func Normalize(raw int64) int64 {
	v := raw % Modulus
	if v < 0 {
		v += Modulus
	}
	for gcd(v, Modulus) > 1 {
		v = (v + 1) % Modulus
	}
	return v
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Seed returns the current state. Feeding it back into New reproduces every
// value the generator would produce from here on.
func (g *Generator) Seed() int64 {
	return g.state
}

// next advances the state using Schrage's method so that no intermediate
// product leaves the 32-bit signed range.
func (g *Generator) next() int64 {
	hi := g.state / quotient
	lo := g.state % quotient
	s := Multiplier*lo - remainder*hi
	if s < 0 {
		s += Modulus
	}
	g.state = s
	return s
}

// Range advances the generator and returns a value in [lo, hi).
func (g *Generator) Range(lo, hi float64) float64 {
	s := g.next()
	return lo + (hi-lo)*float64(s-1)/float64(Modulus-1)
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return g.Range(0, 1)
}

// Intn returns floor(Range(0, n)), a value in [0, n). It panics if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic("lehmer: invalid argument to Intn")
	}
	return int(g.Range(0, float64(n)))
}
