package character

// AttributeType names a leveled character attribute
type AttributeType string

// Leveled attributes. Each one levels independently on the shared curve.
const (
	AttributeLevel       AttributeType = "level"
	AttributeStrength    AttributeType = "strength"
	AttributeWisdom      AttributeType = "wisdom"
	AttributeCrafting    AttributeType = "crafting"
	AttributeEnhancement AttributeType = "enhancement"
	AttributeCombat      AttributeType = "combat"
	AttributeMagic       AttributeType = "magic"
	AttributeLuck        AttributeType = "luck"
)

// String returns the string representation of the attribute
func (a AttributeType) String() string {
	return string(a)
}

// IsValid checks if the attribute is known
func (a AttributeType) IsValid() bool {
	switch a {
	case AttributeLevel, AttributeStrength, AttributeWisdom, AttributeCrafting,
		AttributeEnhancement, AttributeCombat, AttributeMagic, AttributeLuck:
		return true
	default:
		return false
	}
}

// AllAttributes returns every leveled attribute in display order
func AllAttributes() []AttributeType {
	return []AttributeType{
		AttributeLevel,
		AttributeStrength,
		AttributeWisdom,
		AttributeCrafting,
		AttributeEnhancement,
		AttributeCombat,
		AttributeMagic,
		AttributeLuck,
	}
}

// Pool is a depleting resource such as health or mana
type Pool struct {
	Max     uint64 `json:"max"`
	Current uint64 `json:"current"`
	// Regen is restored per second
	Regen float64 `json:"regen"`
}

// Defense groups the mitigation stats
type Defense struct {
	Armor           uint32  `json:"armor"`
	MagicResistance uint32  `json:"magic_resistance"`
	DodgeChance     float64 `json:"dodge_chance"`
}

// Vitals are the non leveled combat stats
type Vitals struct {
	Health       Pool    `json:"health"`
	Mana         Pool    `json:"mana"`
	AttackDamage uint64  `json:"attack_damage"`
	AttackSpeed  float64 `json:"attack_speed"`
	MagicDamage  uint64  `json:"magic_damage"`
	Defense      Defense `json:"defense"`
}

// DefaultVitals are the stats every new character starts with
func DefaultVitals() Vitals {
	return Vitals{
		Health:      Pool{Max: 1000, Current: 1000, Regen: 2.0},
		Mana:        Pool{Max: 350, Current: 350, Regen: 1.5},
		AttackSpeed: 1.0,
	}
}
