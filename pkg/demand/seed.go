package demand

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/matzehuels/ltd/pkg/errors"
)

// DefaultSeed is the seed used when none is given.
const DefaultSeed = "1234"

// Seed is a 128-bit generator seed as four 32-bit words, most significant
// word first.
type Seed [4]uint32

// maxSeed is 2^128, the exclusive upper bound of a seed.
var maxSeed = new(big.Int).Lsh(big.NewInt(1), 128)

// ParseSeed parses a decimal integer in [1, 2^128) into a Seed.
//
// Zero is rejected: a XorShift generator whose state is all zero only ever
// emits zero. All failures carry [errors.ErrCodeInvalidSeed].
func ParseSeed(s string) (Seed, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Seed{}, errors.New(errors.ErrCodeInvalidSeed, "seed is empty")
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return Seed{}, errors.New(errors.ErrCodeInvalidSeed, "seed %q is not a non-negative decimal integer", s)
		}
	}
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Seed{}, errors.New(errors.ErrCodeInvalidSeed, "seed %q is not a non-negative decimal integer", s)
	}
	if v.Cmp(maxSeed) >= 0 {
		return Seed{}, errors.New(errors.ErrCodeInvalidSeed, "seed %q does not fit in 128 bits", s)
	}
	if v.Sign() == 0 {
		return Seed{}, errors.New(errors.ErrCodeInvalidSeed, "seed must not be zero")
	}

	var seed Seed
	word := new(big.Int)
	mask := big.NewInt(0xFFFFFFFF)
	for i := 3; i >= 0; i-- {
		seed[i] = uint32(word.And(v, mask).Uint64())
		v.Rsh(v, 32)
	}
	return seed, nil
}

// IsZero reports whether all words are zero.
func (s Seed) IsZero() bool {
	return s == Seed{}
}

// String returns the decimal form of the seed.
func (s Seed) String() string {
	v := new(big.Int)
	for _, w := range s {
		v.Lsh(v, 32)
		v.Or(v, big.NewInt(int64(w)))
	}
	return v.String()
}

// GoString returns the word form, e.g. demand.Seed{0x0, 0x0, 0x0, 0x4d2}.
func (s Seed) GoString() string {
	return fmt.Sprintf("demand.Seed{%#x, %#x, %#x, %#x}", s[0], s[1], s[2], s[3])
}
