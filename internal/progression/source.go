package progression

import (
	"math/bits"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Source is anything that can be spent as experience, e.g. an enhancement material
type Source interface {
	XP() uint64
}

// Amount is a plain xp quantity usable as a Source
type Amount uint64

// XP implements Source
func (a Amount) XP() uint64 {
	return uint64(a)
}

// Total sums a batch of sources. The order of the batch does not matter.
// A total that does not fit in a uint64 is rejected.
func Total(sources ...Source) (uint64, error) {
	var total uint64
	for i, src := range sources {
		if src == nil {
			return 0, errors.InvalidArgumentf("xp source %d is nil", i)
		}

		sum, carry := bits.Add64(total, src.XP(), 0)
		if carry != 0 {
			return 0, errors.InvalidArgument("total xp overflows")
		}
		total = sum
	}
	return total, nil
}

// ValidateGrant converts an externally supplied signed xp amount, rejecting negatives
func ValidateGrant(amount int64) (uint64, error) {
	if amount < 0 {
		return 0, errors.InvalidArgumentf("xp grant must not be negative, got %d", amount)
	}
	return uint64(amount), nil
}
