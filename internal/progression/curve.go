// Package progression holds the leveling core shared by every leveled thing in
// the game: the XP curve and the advancement algorithm that applies a batch of
// XP to a level/xp pair.
package progression

import (
	"math"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Curve maps a level onto the XP needed to reach the next one:
//
//	floor(BaseXP * level^Exponent + level * LinearFactor)
type Curve struct {
	BaseXP       float64 `yaml:"base_xp" json:"base_xp"`
	Exponent     float64 `yaml:"exponent" json:"exponent"`
	LinearFactor float64 `yaml:"linear_factor" json:"linear_factor"`
}

// Default curve constants
const (
	DefaultBaseXP       = 1000.0
	DefaultExponent     = 1.3
	DefaultLinearFactor = 1.7
)

// DefaultCurve is the curve every attribute and item uses unless one is passed explicitly
var DefaultCurve = Curve{
	BaseXP:       DefaultBaseXP,
	Exponent:     DefaultExponent,
	LinearFactor: DefaultLinearFactor,
}

// XPRequired returns the XP needed to go from level to level+1 on the default curve
func XPRequired(level uint32) uint64 {
	return DefaultCurve.Required(level)
}

// Required returns the XP needed to go from level to level+1
func (c Curve) Required(level uint32) uint64 {
	l := float64(level)
	return uint64(c.BaseXP*math.Pow(l, c.Exponent) + l*c.LinearFactor)
}

// Validate rejects parameters that would make the floored curve non increasing.
// With BaseXP >= 1 and Exponent >= 1 consecutive unfloored values differ by at
// least 1, so Required(1) >= 1 and every floored step strictly grows.
func (c Curve) Validate() error {
	vb := errors.NewValidationBuilder()

	if !(c.BaseXP >= 1) || math.IsInf(c.BaseXP, 0) {
		vb.Fieldf("base_xp", "must be a finite number of at least 1, got %v", c.BaseXP)
	}
	if !(c.Exponent >= 1) || math.IsInf(c.Exponent, 0) {
		vb.Fieldf("exponent", "must be at least 1, got %v", c.Exponent)
	}
	if !(c.LinearFactor >= 0) || math.IsInf(c.LinearFactor, 0) {
		vb.Fieldf("linear_factor", "must not be negative, got %v", c.LinearFactor)
	}

	return vb.Build()
}

// IsZero reports whether no curve parameters were set
func (c Curve) IsZero() bool {
	return c == Curve{}
}

// OrDefault returns c, or DefaultCurve when c is unset
func (c Curve) OrDefault() Curve {
	if c.IsZero() {
		return DefaultCurve
	}
	return c
}
