// Package seed turns user input into the generator that drives a scramble.
package seed

import (
	"encoding/binary"

	"github.com/coder/quartz"
	"golang.org/x/crypto/blake2b"

	"github.com/lox/pixelshuffle/internal/lehmer"
)

// Random asks Resolve for a seed drawn from system entropy.
const Random int64 = -1

// FromPassphrase hashes a passphrase into a raw seed with BLAKE2b-256.
func FromPassphrase(passphrase string) int64 {
	sum := blake2b.Sum256([]byte(passphrase))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Resolver picks the raw seed for a run.
type Resolver struct {
	// Clock seeds the default entropy source.
	Clock quartz.Clock
	// Entropy returns a fresh raw seed when Random is requested. If nil, the
	// seed is taken from Clock in milliseconds.
	Entropy func() int64
}

// NewResolver returns a Resolver using the real clock.
func NewResolver() *Resolver {
	return &Resolver{Clock: quartz.NewReal()}
}

// Resolve returns a generator for the request. A non-empty passphrase takes
// precedence over raw; raw == Random draws from the entropy source. The
// returned generator's Seed is the normalized value to scramble with and to
// persist.
func (r *Resolver) Resolve(raw int64, passphrase string) *lehmer.Generator {
	switch {
	case passphrase != "":
		return lehmer.New(FromPassphrase(passphrase))
	case raw == Random:
		return lehmer.New(r.entropy())
	default:
		return lehmer.New(raw)
	}
}

func (r *Resolver) entropy() int64 {
	if r.Entropy != nil {
		return r.Entropy()
	}
	clock := r.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return lehmer.NewFromClock(clock).Seed()
}
