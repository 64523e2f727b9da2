package equipment

import (
	"fmt"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// ExhaustedPolicy decides what an unlock milestone does when every eligible
// sub stat type is already present
type ExhaustedPolicy string

// Exhausted policies
const (
	// ExhaustedSkip leaves the sub stats untouched
	ExhaustedSkip ExhaustedPolicy = "skip"
	// ExhaustedReinforce upgrades a random existing sub stat instead
	ExhaustedReinforce ExhaustedPolicy = "reinforce"
)

// IsValid checks if the policy is known. The empty value means skip.
func (p ExhaustedPolicy) IsValid() bool {
	switch p {
	case "", ExhaustedSkip, ExhaustedReinforce:
		return true
	default:
		return false
	}
}

// Policy holds the milestone rules of an equipment kind.
// A zero interval disables the rule; an empty pool means the whole catalog.
type Policy struct {
	ReinforceEvery uint32           `yaml:"reinforce_every" json:"reinforce_every"`
	UnlockEvery    uint32           `yaml:"unlock_every" json:"unlock_every"`
	MainStatPool   []bonusstat.Type `yaml:"main_stat_pool,omitempty" json:"main_stat_pool,omitempty"`
	SubStatPool    []bonusstat.Type `yaml:"sub_stat_pool,omitempty" json:"sub_stat_pool,omitempty"`
	OnExhausted    ExhaustedPolicy  `yaml:"on_exhausted,omitempty" json:"on_exhausted,omitempty"`
}

// Default milestone intervals
const (
	ArmorReinforceEvery    = 5
	ArmorUnlockEvery       = 10
	ArtifactReinforceEvery = 2
	ArtifactUnlockEvery    = 4
)

// ArmorPolicy rolls defensive main stats and grows slowly
func ArmorPolicy() Policy {
	return Policy{
		ReinforceEvery: ArmorReinforceEvery,
		UnlockEvery:    ArmorUnlockEvery,
		MainStatPool:   bonusstat.Defensive(),
		OnExhausted:    ExhaustedSkip,
	}
}

// ArtifactPolicy rolls any main stat and hits milestones often
func ArtifactPolicy() Policy {
	return Policy{
		ReinforceEvery: ArtifactReinforceEvery,
		UnlockEvery:    ArtifactUnlockEvery,
		OnExhausted:    ExhaustedSkip,
	}
}

// PolicyFor returns the default policy of a kind
func PolicyFor(kind Kind) (Policy, error) {
	switch kind {
	case KindArmor:
		return ArmorPolicy(), nil
	case KindArtifact:
		return ArtifactPolicy(), nil
	default:
		return Policy{}, errors.InvalidArgumentf("unknown equipment kind %q", kind)
	}
}

// Validate checks that pools hold known, distinct types
func (p Policy) Validate() error {
	vb := errors.NewValidationBuilder()

	validatePool("main_stat_pool", p.MainStatPool, vb)
	validatePool("sub_stat_pool", p.SubStatPool, vb)

	if !p.OnExhausted.IsValid() {
		vb.Fieldf("on_exhausted", "must be %q or %q, got %q", ExhaustedSkip, ExhaustedReinforce, p.OnExhausted)
	}

	return vb.Build()
}

func validatePool(field string, pool []bonusstat.Type, vb *errors.ValidationBuilder) {
	seen := make(map[bonusstat.Type]bool, len(pool))
	for i, t := range pool {
		name := fmt.Sprintf("%s[%d]", field, i)
		if !t.IsValid() {
			vb.Fieldf(name, "unknown bonus stat type %d", uint8(t))
			continue
		}
		if seen[t] {
			vb.Fieldf(name, "duplicate bonus stat type %s", t)
		}
		seen[t] = true
	}
}

func (p Policy) mainPool() []bonusstat.Type {
	if len(p.MainStatPool) == 0 {
		return bonusstat.AllTypes()
	}
	return p.MainStatPool
}

func (p Policy) subPool() []bonusstat.Type {
	if len(p.SubStatPool) == 0 {
		return bonusstat.AllTypes()
	}
	return p.SubStatPool
}

func (p Policy) reinforcesAt(level uint32) bool {
	return p.ReinforceEvery != 0 && level%p.ReinforceEvery == 0
}

func (p Policy) unlocksAt(level uint32) bool {
	return p.UnlockEvery != 0 && level%p.UnlockEvery == 0
}

func (p Policy) clone() Policy {
	p.MainStatPool = append([]bonusstat.Type(nil), p.MainStatPool...)
	p.SubStatPool = append([]bonusstat.Type(nil), p.SubStatPool...)
	return p
}
