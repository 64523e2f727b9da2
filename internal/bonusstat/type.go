// Package bonusstat is the bonus stat catalog: the closed set of stat kinds
// equipment can roll, their payload precision, and the ranges their values
// are generated and upgraded from.
package bonusstat

import (
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Type tags a bonus stat. Types are ordered by their numeric value, which is
// also the order sub stats are enumerated in.
type Type uint8

// Bonus stat types
const (
	MaxHealthFlat Type = iota
	MaxHealthPercent
	HealthRegen
	MaxManaFlat
	MaxManaPercent
	ManaRegen
	AttackDamageFlat
	AttackDamagePercent
	AttackSpeed
	MagicDamageFlat
	MagicDamagePercent
	ArmorFlat
	ArmorPercent
	MagicResistanceFlat
	MagicResistancePercent
	DodgeChance

	// TypeCount is the number of types. Anything that draws over the whole
	// catalog uses it, so adding a type keeps draws uniform.
	TypeCount = int(DodgeChance) + 1
)

var typeNames = [TypeCount]string{
	MaxHealthFlat:          "MaxHealthFlat",
	MaxHealthPercent:       "MaxHealthPercent",
	HealthRegen:            "HealthRegen",
	MaxManaFlat:            "MaxManaFlat",
	MaxManaPercent:         "MaxManaPercent",
	ManaRegen:              "ManaRegen",
	AttackDamageFlat:       "AttackDamageFlat",
	AttackDamagePercent:    "AttackDamagePercent",
	AttackSpeed:            "AttackSpeed",
	MagicDamageFlat:        "MagicDamageFlat",
	MagicDamagePercent:     "MagicDamagePercent",
	ArmorFlat:              "ArmorFlat",
	ArmorPercent:           "ArmorPercent",
	MagicResistanceFlat:    "MagicResistanceFlat",
	MagicResistancePercent: "MagicResistancePercent",
	DodgeChance:            "DodgeChance",
}

// String returns the type name
func (t Type) String() string {
	if !t.IsValid() {
		return "Unknown"
	}
	return typeNames[t]
}

// IsValid reports whether t is one of the catalog types
func (t Type) IsValid() bool {
	return int(t) < TypeCount
}

// AllTypes returns every type in order
func AllTypes() []Type {
	types := make([]Type, TypeCount)
	for i := range types {
		types[i] = Type(i)
	}
	return types
}

// Defensive returns the types armor may roll as its main stat
func Defensive() []Type {
	return []Type{ArmorFlat, ArmorPercent, MagicResistanceFlat, MagicResistancePercent}
}

// ParseType converts a type name into a Type
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown bonus stat type %q", name)
}

// MarshalText encodes the type by name
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errors.InvalidArgumentf("unknown bonus stat type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
