package bonusstat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

func TestCatalog_CoversEveryType(t *testing.T) {
	require.Len(t, bonusstat.AllTypes(), bonusstat.TypeCount)
	assert.Equal(t, 16, bonusstat.TypeCount)

	for _, typ := range bonusstat.AllTypes() {
		entry, ok := bonusstat.Lookup(typ)
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, entry.Type)
		assert.Less(t, entry.Generate.Low, entry.Generate.High, typ.String())
		assert.Less(t, entry.Upgrade.Low, entry.Upgrade.High, typ.String())
		assert.GreaterOrEqual(t, entry.Upgrade.Low, 0.0, typ.String())
	}

	_, ok := bonusstat.Lookup(bonusstat.Type(bonusstat.TypeCount))
	assert.False(t, ok)
}

func TestCatalog_Payloads(t *testing.T) {
	testCases := []struct {
		typ     bonusstat.Type
		payload bonusstat.Payload
	}{
		{bonusstat.MaxHealthFlat, bonusstat.PayloadUint64},
		{bonusstat.MaxManaFlat, bonusstat.PayloadUint64},
		{bonusstat.ArmorFlat, bonusstat.PayloadUint32},
		{bonusstat.MagicResistanceFlat, bonusstat.PayloadUint32},
		{bonusstat.ArmorPercent, bonusstat.PayloadFloat32},
		{bonusstat.MagicResistancePercent, bonusstat.PayloadFloat32},
		{bonusstat.AttackDamagePercent, bonusstat.PayloadFloat64},
		{bonusstat.DodgeChance, bonusstat.PayloadFloat64},
	}

	for _, tc := range testCases {
		entry, _ := bonusstat.Lookup(tc.typ)
		assert.Equal(t, tc.payload, entry.Payload, tc.typ.String())
	}
}

func TestCatalog_Bounds(t *testing.T) {
	testCases := []struct {
		typ      bonusstat.Type
		generate bonusstat.Range
		upgrade  bonusstat.Range
	}{
		{bonusstat.MaxHealthFlat, bonusstat.Range{Low: 77, High: 137}, bonusstat.Range{Low: 27, High: 57}},
		{bonusstat.MaxManaFlat, bonusstat.Range{Low: 27, High: 57}, bonusstat.Range{Low: 12, High: 37}},
		{bonusstat.HealthRegen, bonusstat.Range{Low: 0.02, High: 0.07}, bonusstat.Range{Low: 0.01, High: 0.04}},
		{bonusstat.AttackDamagePercent, bonusstat.Range{Low: 0.17, High: 0.37}, bonusstat.Range{Low: 0.07, High: 0.22}},
		{bonusstat.MagicDamagePercent, bonusstat.Range{Low: 0.17, High: 0.37}, bonusstat.Range{Low: 0.10, High: 0.22}},
		{bonusstat.ArmorPercent, bonusstat.Range{Low: 0.17, High: 0.37}, bonusstat.Range{Low: 0.10, High: 0.22}},
		{bonusstat.MagicResistancePercent, bonusstat.Range{Low: 0.17, High: 0.37}, bonusstat.Range{Low: 0.07, High: 0.22}},
		{bonusstat.ArmorFlat, bonusstat.Range{Low: 17, High: 47}, bonusstat.Range{Low: 7, High: 27}},
	}

	for _, tc := range testCases {
		entry, _ := bonusstat.Lookup(tc.typ)
		assert.Equal(t, tc.generate, entry.Generate, tc.typ.String())
		assert.Equal(t, tc.upgrade, entry.Upgrade, tc.typ.String())
	}
}

func TestGenerate_StaysInRange(t *testing.T) {
	src := rng.NewSeeded(1)

	for _, typ := range bonusstat.AllTypes() {
		entry, _ := bonusstat.Lookup(typ)
		for i := 0; i < 2000; i++ {
			stat := bonusstat.Generate(src, typ)
			require.Equal(t, typ, stat.Type())
			require.True(t, entry.Generate.Contains(stat.Value()), "%s rolled %v", typ, stat.Value())
		}
	}
}

func TestGenerate_FlatRangesReachBothEnds(t *testing.T) {
	src := rng.NewSeeded(3)
	seen := map[uint64]bool{}

	for i := 0; i < 5000; i++ {
		v, ok := bonusstat.Generate(src, bonusstat.AttackDamageFlat).Flat()
		require.True(t, ok)
		seen[v] = true
	}

	assert.True(t, seen[17])
	assert.True(t, seen[46])
	assert.False(t, seen[47])
	assert.Len(t, seen, 30)
}

func TestRollUpgradeDelta_StaysInRange(t *testing.T) {
	src := rng.NewSeeded(2)

	for _, typ := range bonusstat.AllTypes() {
		entry, _ := bonusstat.Lookup(typ)
		for i := 0; i < 2000; i++ {
			delta := bonusstat.RollUpgradeDelta(src, typ)
			v := delta.Ratio
			if entry.Payload.IsFlat() {
				v = float64(delta.Flat)
			}
			require.True(t, entry.Upgrade.Contains(v), "%s rolled delta %v", typ, v)
		}
	}
}

func TestRandomType_IsUniform(t *testing.T) {
	src := rng.NewSeeded(11)
	counts := make(map[bonusstat.Type]int)
	const draws = 32_000

	for i := 0; i < draws; i++ {
		counts[bonusstat.RandomType(src)]++
	}

	require.Len(t, counts, bonusstat.TypeCount)
	expected := draws / bonusstat.TypeCount
	for typ, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.15, typ.String())
	}
}

func TestRandomTypeFrom(t *testing.T) {
	src := rng.NewSeeded(5)
	pool := bonusstat.Defensive()
	seen := make(map[bonusstat.Type]bool)

	for i := 0; i < 400; i++ {
		typ, err := bonusstat.RandomTypeFrom(src, pool)
		require.NoError(t, err)
		require.Contains(t, pool, typ)
		seen[typ] = true
	}
	assert.Len(t, seen, len(pool))

	_, err := bonusstat.RandomTypeFrom(src, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestGenerate_PanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		bonusstat.Generate(rng.NewSeeded(1), bonusstat.Type(200))
	})
}
