package progression_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

func TestXPRequired_KnownValues(t *testing.T) {
	testCases := []struct {
		level    uint32
		expected uint64
	}{
		{level: 1, expected: 1001},
		{level: 2, expected: 2465},
		{level: 10, expected: 19969},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, progression.XPRequired(tc.level), "level %d", tc.level)
	}
}

func TestXPRequired_StrictlyIncreasing(t *testing.T) {
	for level := uint32(1); level < 500; level++ {
		require.Greater(t, progression.XPRequired(level+1), progression.XPRequired(level), "level %d", level)
	}
}

func TestCurve_CustomParameters(t *testing.T) {
	linear := progression.Curve{BaseXP: 100, Exponent: 1, LinearFactor: 0}

	assert.Equal(t, uint64(100), linear.Required(1))
	assert.Equal(t, uint64(700), linear.Required(7))
	assert.NoError(t, linear.Validate())
}

func TestCurve_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		curve progression.Curve
		field string
	}{
		{name: "zero base", curve: progression.Curve{BaseXP: 0, Exponent: 1.3}, field: "base_xp"},
		{name: "fractional base floors to zero", curve: progression.Curve{BaseXP: 0.1, Exponent: 1}, field: "base_xp"},
		{name: "nan base", curve: progression.Curve{BaseXP: math.NaN(), Exponent: 1.3}, field: "base_xp"},
		{name: "shrinking exponent", curve: progression.Curve{BaseXP: 1000, Exponent: 0.5}, field: "exponent"},
		{name: "negative linear", curve: progression.Curve{BaseXP: 1000, Exponent: 1.3, LinearFactor: -1}, field: "linear_factor"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.curve.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	assert.NoError(t, progression.DefaultCurve.Validate())
}

func TestCurve_ValidCurvesStrictlyIncrease(t *testing.T) {
	curves := []progression.Curve{
		{BaseXP: 1, Exponent: 1},
		{BaseXP: 1, Exponent: 1, LinearFactor: 0.3},
		{BaseXP: 1.5, Exponent: 1.01},
		progression.DefaultCurve,
	}

	for _, curve := range curves {
		require.NoError(t, curve.Validate())
		require.Positive(t, curve.Required(1), "%+v", curve)
		for level := uint32(1); level < 200; level++ {
			require.Less(t, curve.Required(level), curve.Required(level+1), "%+v level %d", curve, level)
		}
	}
}

func TestCurve_OrDefault(t *testing.T) {
	assert.Equal(t, progression.DefaultCurve, progression.Curve{}.OrDefault())

	custom := progression.Curve{BaseXP: 10, Exponent: 2}
	assert.Equal(t, custom, custom.OrDefault())
}
