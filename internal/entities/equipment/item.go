package equipment

import (
	"sort"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Config configures a new item
type Config struct {
	ID   string
	Name string
	Kind Kind
	// Policy overrides the kind's default policy when set
	Policy *Policy
	// Curve defaults to progression.DefaultCurve
	Curve progression.Curve
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", c.ID, vb)
	if !c.Kind.IsValid() {
		vb.Fieldf("kind", "unknown equipment kind %q", c.Kind)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			return errors.Wrap(err, "invalid policy")
		}
	}
	if err := c.Curve.OrDefault().Validate(); err != nil {
		return errors.Wrap(err, "invalid curve")
	}

	return nil
}

// Item is a leveled piece of equipment.
// It is not safe for concurrent use; callers serialize access per item.
type Item struct {
	id       string
	name     string
	kind     Kind
	policy   Policy
	curve    progression.Curve
	state    progression.State
	mainStat bonusstat.Stat
	subStats map[bonusstat.Type]bonusstat.Stat
}

// New creates a level 1 item with a freshly rolled main stat and no sub stats
func New(r rng.Source, cfg *Config) (*Item, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := PolicyFor(cfg.Kind)
	if err != nil {
		return nil, err
	}
	if cfg.Policy != nil {
		policy = cfg.Policy.clone()
	}

	mainType, err := bonusstat.RandomTypeFrom(r, policy.mainPool())
	if err != nil {
		return nil, err
	}

	return &Item{
		id:       cfg.ID,
		name:     cfg.Name,
		kind:     cfg.Kind,
		policy:   policy,
		curve:    cfg.Curve.OrDefault(),
		state:    progression.NewState(),
		mainStat: bonusstat.Generate(r, mainType),
		subStats: make(map[bonusstat.Type]bonusstat.Stat),
	}, nil
}

// NewArmor creates armor with the default armor policy
func NewArmor(r rng.Source, id, name string) (*Item, error) {
	return New(r, &Config{ID: id, Name: name, Kind: KindArmor})
}

// NewArtifact creates an artifact with the default artifact policy
func NewArtifact(r rng.Source, id, name string) (*Item, error) {
	return New(r, &Config{ID: id, Name: name, Kind: KindArtifact})
}

// GetID returns the item id
func (i *Item) GetID() string {
	return i.id
}

// GetType returns the entity type for rpg-toolkit
func (i *Item) GetType() string {
	return i.kind.String()
}

// ID returns the item id
func (i *Item) ID() string { return i.id }

// Name returns the display name
func (i *Item) Name() string { return i.name }

// Kind returns the equipment kind
func (i *Item) Kind() Kind { return i.kind }

// Level returns the current level
func (i *Item) Level() uint32 { return i.state.Level }

// XP returns the xp held toward the next level
func (i *Item) XP() uint64 { return i.state.XP }

// Required returns the xp needed to leave the current level
func (i *Item) Required() uint64 { return i.curve.Required(i.state.Level) }

// Remaining returns the xp still missing before the next level
func (i *Item) Remaining() uint64 { return i.state.Remaining(i.curve) }

// Curve returns the item's xp curve
func (i *Item) Curve() progression.Curve { return i.curve }

// Policy returns a copy of the item's milestone policy
func (i *Item) Policy() Policy { return i.policy.clone() }

// MainStatType returns the type fixed at creation
func (i *Item) MainStatType() bonusstat.Type { return i.mainStat.Type() }

// MainStat returns the main stat
func (i *Item) MainStat() bonusstat.Stat { return i.mainStat }

// SubStat returns the sub stat of type t, if unlocked
func (i *Item) SubStat(t bonusstat.Type) (bonusstat.Stat, bool) {
	s, ok := i.subStats[t]
	return s, ok
}

// SubStats returns the unlocked sub stats ordered by type
func (i *Item) SubStats() []bonusstat.Stat {
	types := i.subStatTypes()
	stats := make([]bonusstat.Stat, len(types))
	for n, t := range types {
		stats[n] = i.subStats[t]
	}
	return stats
}

func (i *Item) subStatTypes() []bonusstat.Type {
	types := make([]bonusstat.Type, 0, len(i.subStats))
	for t := range i.subStats {
		types = append(types, t)
	}
	sort.Slice(types, func(a, b int) bool { return types[a] < types[b] })
	return types
}

// Reinforcement records one sub stat upgrade
type Reinforcement struct {
	Type  bonusstat.Type
	Delta bonusstat.Amount
}

// LevelUp records the side effects of crossing into Level
type LevelUp struct {
	Level         uint32
	MainStatDelta bonusstat.Amount
	Reinforced    []Reinforcement
	Unlocked      *bonusstat.Stat
	// Exhausted is set when an unlock milestone found no free sub stat type
	Exhausted bool
}

// AdvanceResult describes what one grant did to an item
type AdvanceResult struct {
	FromLevel uint32
	ToLevel   uint32
	XPApplied uint64
	LevelUps  []LevelUp
}

// LevelsGained returns how many levels were crossed
func (r *AdvanceResult) LevelsGained() uint32 {
	return r.ToLevel - r.FromLevel
}

// Unlocks counts sub stats unlocked across all level ups
func (r *AdvanceResult) Unlocks() int {
	n := 0
	for _, lu := range r.LevelUps {
		if lu.Unlocked != nil {
			n++
		}
	}
	return n
}

// Reinforcements counts sub stat upgrades across all level ups
func (r *AdvanceResult) Reinforcements() int {
	n := 0
	for _, lu := range r.LevelUps {
		n += len(lu.Reinforced)
	}
	return n
}

// Advance grants xp, crossing as many levels as it pays for. Each crossing
// upgrades the main stat, then reinforces a sub stat on a reinforce
// milestone, then unlocks a sub stat on an unlock milestone.
// It is the only way an item changes after creation.
func (i *Item) Advance(r rng.Source, xp uint64) *AdvanceResult {
	result := &AdvanceResult{
		FromLevel: i.state.Level,
		XPApplied: xp,
	}

	i.state.Advance(i.curve, xp, func(level uint32) {
		result.LevelUps = append(result.LevelUps, i.levelUp(r, level))
	})

	result.ToLevel = i.state.Level
	return result
}

// Feed spends a batch of xp sources on the item
func (i *Item) Feed(r rng.Source, sources ...progression.Source) (*AdvanceResult, error) {
	total, err := progression.Total(sources...)
	if err != nil {
		return nil, err
	}
	return i.Advance(r, total), nil
}

func (i *Item) levelUp(r rng.Source, level uint32) LevelUp {
	lu := LevelUp{Level: level}

	lu.MainStatDelta = i.mainStat.Upgrade(r)

	if len(i.subStats) > 0 && i.policy.reinforcesAt(level) {
		lu.Reinforced = append(lu.Reinforced, i.reinforce(r))
	}

	if i.policy.unlocksAt(level) {
		if stat, ok := i.unlock(r); ok {
			lu.Unlocked = &stat
		} else {
			lu.Exhausted = true
			if i.policy.OnExhausted == ExhaustedReinforce && len(i.subStats) > 0 {
				lu.Reinforced = append(lu.Reinforced, i.reinforce(r))
			}
		}
	}

	return lu
}

// reinforce upgrades one existing sub stat picked uniformly in type order
func (i *Item) reinforce(r rng.Source) Reinforcement {
	types := i.subStatTypes()
	t := types[r.IntN(len(types))]

	stat := i.subStats[t]
	delta := stat.Upgrade(r)
	i.subStats[t] = stat

	return Reinforcement{Type: t, Delta: delta}
}

// unlock draws uniformly among pool types not yet present, so an existing
// sub stat is never overwritten
func (i *Item) unlock(r rng.Source) (bonusstat.Stat, bool) {
	pool := i.policy.subPool()
	free := make([]bonusstat.Type, 0, len(pool))
	for _, t := range pool {
		if _, taken := i.subStats[t]; !taken {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return bonusstat.Stat{}, false
	}

	t := free[r.IntN(len(free))]
	stat := bonusstat.Generate(r, t)
	i.subStats[t] = stat
	return stat, true
}
