package bonusstat_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

func TestStat_UpgradeAttackDamagePercent(t *testing.T) {
	src := rng.NewSeeded(8)

	for i := 0; i < 500; i++ {
		stat := bonusstat.Generate(src, bonusstat.AttackDamagePercent)
		before := stat.Value()
		require.GreaterOrEqual(t, before, 0.17)
		require.Less(t, before, 0.37)

		delta := stat.Upgrade(src)

		assert.Equal(t, bonusstat.AttackDamagePercent, stat.Type())
		assert.GreaterOrEqual(t, delta.Ratio, 0.07)
		assert.Less(t, delta.Ratio, 0.22)
		assert.InDelta(t, before+delta.Ratio, stat.Value(), 1e-12)
		assert.GreaterOrEqual(t, stat.Value(), 0.24)
		assert.Less(t, stat.Value(), 0.59)
	}
}

func TestStat_UpgradeIsMonotonic(t *testing.T) {
	src := rng.NewSeeded(21)

	for _, typ := range bonusstat.AllTypes() {
		stat := bonusstat.Generate(src, typ)
		prev := stat.Value()
		for i := 0; i < 50; i++ {
			stat.Upgrade(src)
			require.Equal(t, typ, stat.Type())
			require.Greater(t, stat.Value(), prev, typ.String())
			prev = stat.Value()
		}
	}
}

func TestStat_Float32PrecisionIsKept(t *testing.T) {
	src := rng.NewSeeded(4)

	for _, typ := range []bonusstat.Type{bonusstat.ArmorPercent, bonusstat.MagicResistancePercent} {
		stat := bonusstat.Generate(src, typ)
		for i := 0; i < 20; i++ {
			v, ok := stat.Ratio()
			require.True(t, ok)
			require.Equal(t, v, float64(float32(v)), typ.String())
			stat.Upgrade(src)
		}
	}
}

func TestStat_FlatAccessors(t *testing.T) {
	src := rng.NewSeeded(4)

	flat := bonusstat.Generate(src, bonusstat.ArmorFlat)
	v, ok := flat.Flat()
	assert.True(t, ok)
	assert.Equal(t, float64(v), flat.Value())
	_, ok = flat.Ratio()
	assert.False(t, ok)

	ratio := bonusstat.Generate(src, bonusstat.DodgeChance)
	_, ok = ratio.Flat()
	assert.False(t, ok)
	assert.Equal(t, bonusstat.PayloadFloat64, ratio.Payload())
}

func TestRestore(t *testing.T) {
	stat, err := bonusstat.Restore(bonusstat.MaxHealthFlat, 120)
	require.NoError(t, err)
	v, _ := stat.Flat()
	assert.Equal(t, uint64(120), v)

	stat, err = bonusstat.Restore(bonusstat.ArmorPercent, 0.3)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.3)), stat.Value())

	testCases := []struct {
		name  string
		typ   bonusstat.Type
		value float64
	}{
		{"negative", bonusstat.ArmorFlat, -1},
		{"nan", bonusstat.DodgeChance, math.NaN()},
		{"uint32 overflow", bonusstat.ArmorFlat, math.MaxUint32 + 1.0},
		{"fractional uint64 flat", bonusstat.MaxHealthFlat, 120.5},
		{"fractional uint32 flat", bonusstat.ArmorFlat, 0.3},
		{"unknown type", bonusstat.Type(99), 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bonusstat.Restore(tc.typ, tc.value)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestStat_JSON(t *testing.T) {
	stat, err := bonusstat.Restore(bonusstat.MagicResistancePercent, 0.25)
	require.NoError(t, err)

	data, err := json.Marshal(stat)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"MagicResistancePercent"`)

	var decoded bonusstat.Stat
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, stat, decoded)

	err = json.Unmarshal([]byte(`{"type":"Mystery","value":1}`), &decoded)
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	for _, typ := range bonusstat.AllTypes() {
		parsed, err := bonusstat.ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := bonusstat.ParseType("Strength")
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, "Unknown", bonusstat.Type(42).String())
}
