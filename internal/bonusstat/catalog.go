package bonusstat

import (
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

// Payload is the numeric representation a type's value is kept in
type Payload uint8

// Payload kinds
const (
	PayloadUint64 Payload = iota
	PayloadUint32
	PayloadFloat64
	PayloadFloat32
)

// IsFlat reports whether the payload is an unsigned integer
func (p Payload) IsFlat() bool {
	return p == PayloadUint64 || p == PayloadUint32
}

// Range is a half open [Low, High) interval
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether v lies in [Low, High)
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v < r.High
}

// Entry describes one catalog type
type Entry struct {
	Type     Type
	Payload  Payload
	Generate Range
	Upgrade  Range
}

// catalog holds the balance table. Ranges are carried as-is from the game
// design sheet and must not be re-derived.
var catalog = [TypeCount]Entry{
	{MaxHealthFlat, PayloadUint64, Range{77, 137}, Range{27, 57}},
	{MaxHealthPercent, PayloadFloat64, Range{0.17, 0.37}, Range{0.07, 0.22}},
	{HealthRegen, PayloadFloat64, Range{0.02, 0.07}, Range{0.01, 0.04}},
	{MaxManaFlat, PayloadUint64, Range{27, 57}, Range{12, 37}},
	{MaxManaPercent, PayloadFloat64, Range{0.17, 0.37}, Range{0.07, 0.22}},
	{ManaRegen, PayloadFloat64, Range{0.02, 0.07}, Range{0.01, 0.04}},
	{AttackDamageFlat, PayloadUint64, Range{17, 47}, Range{7, 27}},
	{AttackDamagePercent, PayloadFloat64, Range{0.17, 0.37}, Range{0.07, 0.22}},
	{AttackSpeed, PayloadFloat64, Range{0.02, 0.07}, Range{0.01, 0.04}},
	{MagicDamageFlat, PayloadUint64, Range{17, 47}, Range{7, 27}},
	{MagicDamagePercent, PayloadFloat64, Range{0.17, 0.37}, Range{0.10, 0.22}},
	{ArmorFlat, PayloadUint32, Range{17, 47}, Range{7, 27}},
	{ArmorPercent, PayloadFloat32, Range{0.17, 0.37}, Range{0.10, 0.22}},
	{MagicResistanceFlat, PayloadUint32, Range{17, 47}, Range{7, 27}},
	{MagicResistancePercent, PayloadFloat32, Range{0.17, 0.37}, Range{0.07, 0.22}},
	{DodgeChance, PayloadFloat64, Range{0.02, 0.07}, Range{0.01, 0.04}},
}

// Lookup returns the catalog entry for t
func Lookup(t Type) (Entry, bool) {
	if !t.IsValid() {
		return Entry{}, false
	}
	return catalog[t], true
}

// RandomType draws uniformly over the whole catalog
func RandomType(r rng.Source) Type {
	return Type(r.IntN(TypeCount))
}

// RandomTypeFrom draws uniformly from candidates
func RandomTypeFrom(r rng.Source, candidates []Type) (Type, error) {
	if len(candidates) == 0 {
		return 0, errors.InvalidArgument("candidate stat types must not be empty")
	}
	return candidates[r.IntN(len(candidates))], nil
}

// Generate rolls a fresh stat of type t from its generation range.
// It is the only way to obtain a new Stat; t must be a catalog type.
func Generate(r rng.Source, t Type) Stat {
	entry := mustLookup(t)
	amount := sample(r, entry.Payload, entry.Generate)
	return Stat{typ: t, flat: amount.Flat, ratio: amount.Ratio}
}

// RollUpgradeDelta rolls an increment for type t from its upgrade range
func RollUpgradeDelta(r rng.Source, t Type) Amount {
	entry := mustLookup(t)
	return sample(r, entry.Payload, entry.Upgrade)
}

func mustLookup(t Type) Entry {
	entry, ok := Lookup(t)
	if !ok {
		panic("bonusstat: unknown type " + t.String())
	}
	return entry
}

// sample draws uniformly from rg at the payload's precision
func sample(r rng.Source, payload Payload, rg Range) Amount {
	switch payload {
	case PayloadUint64, PayloadUint32:
		low, high := int(rg.Low), int(rg.High)
		return Amount{Flat: uint64(low + r.IntN(high-low))}
	case PayloadFloat32:
		low, high := float32(rg.Low), float32(rg.High)
		for {
			v := low + (high-low)*r.Float32()
			if v < high {
				return Amount{Ratio: float64(v)}
			}
		}
	default:
		for {
			v := rg.Low + (rg.High-rg.Low)*r.Float64()
			if v < rg.High {
				return Amount{Ratio: v}
			}
		}
	}
}
