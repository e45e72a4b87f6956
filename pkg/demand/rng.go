package demand

import (
	"math/rand/v2"

	"github.com/matzehuels/ltd/pkg/errors"
)

// XorShift is Marsaglia's xorshift128 generator. It implements
// [rand.Source], so it can drive a [rand.Rand].
//
// XorShift is not safe for concurrent use.
type XorShift struct {
	x, y, z, w uint32
}

// NewXorShift creates a generator whose state is the four seed words.
// Returns an INVALID_SEED error for the all-zero seed.
func NewXorShift(seed Seed) (*XorShift, error) {
	if seed.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidSeed, "seed must not be zero")
	}
	return &XorShift{x: seed[0], y: seed[1], z: seed[2], w: seed[3]}, nil
}

// NewRand returns a rand.Rand driven by a XorShift seeded with seed.
func NewRand(seed Seed) (*rand.Rand, error) {
	src, err := NewXorShift(seed)
	if err != nil {
		return nil, err
	}
	return rand.New(src), nil
}

// Uint32 returns the next 32 bits of the stream.
func (r *XorShift) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x, r.y, r.z = r.y, r.z, r.w
	r.w = r.w ^ (r.w >> 19) ^ (t ^ (t >> 8))
	return r.w
}

// Uint64 returns two consecutive 32-bit outputs, the first in the high half.
func (r *XorShift) Uint64() uint64 {
	hi := uint64(r.Uint32())
	return hi<<32 | uint64(r.Uint32())
}

var _ rand.Source = (*XorShift)(nil)
