package equipment

import (
	"slices"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Snapshot is the storable form of an item
type Snapshot struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Kind         Kind              `json:"kind"`
	Level        uint32            `json:"level"`
	XP           uint64            `json:"xp"`
	Curve        progression.Curve `json:"curve"`
	Policy       Policy            `json:"policy"`
	MainStatType bonusstat.Type    `json:"main_stat_type"`
	MainStat     bonusstat.Stat    `json:"main_stat"`
	SubStats     []bonusstat.Stat  `json:"sub_stats"`
}

// Snapshot captures the item's current state
func (i *Item) Snapshot() *Snapshot {
	return &Snapshot{
		ID:           i.id,
		Name:         i.name,
		Kind:         i.kind,
		Level:        i.state.Level,
		XP:           i.state.XP,
		Curve:        i.curve,
		Policy:       i.policy.clone(),
		MainStatType: i.mainStat.Type(),
		MainStat:     i.mainStat,
		SubStats:     i.SubStats(),
	}
}

// Restore rebuilds an item from a snapshot, rejecting any snapshot that
// breaks an item invariant
func Restore(s *Snapshot) (*Item, error) {
	if s == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	cfg := &Config{ID: s.ID, Name: s.Name, Kind: s.Kind, Policy: &s.Policy, Curve: s.Curve}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid snapshot for item %q", s.ID)
	}

	curve := s.Curve.OrDefault()
	state, err := progression.RestoreState(curve, s.Level, s.XP)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid snapshot for item %q", s.ID)
	}

	if s.MainStat.Type() != s.MainStatType {
		return nil, errors.InvalidArgumentf("item %q main stat is %s but main stat type is %s",
			s.ID, s.MainStat.Type(), s.MainStatType)
	}
	if !slices.Contains(s.Policy.mainPool(), s.MainStatType) {
		return nil, errors.InvalidArgumentf("item %q main stat %s is outside its main stat pool", s.ID, s.MainStatType)
	}

	subPool := s.Policy.subPool()
	subStats := make(map[bonusstat.Type]bonusstat.Stat, len(s.SubStats))
	for _, stat := range s.SubStats {
		if !slices.Contains(subPool, stat.Type()) {
			return nil, errors.InvalidArgumentf("item %q sub stat %s is outside its sub stat pool", s.ID, stat.Type())
		}
		if _, dup := subStats[stat.Type()]; dup {
			return nil, errors.InvalidArgumentf("item %q has duplicate sub stat %s", s.ID, stat.Type())
		}
		subStats[stat.Type()] = stat
	}

	return &Item{
		id:       s.ID,
		name:     s.Name,
		kind:     s.Kind,
		policy:   s.Policy.clone(),
		curve:    curve,
		state:    state,
		mainStat: s.MainStat,
		subStats: subStats,
	}, nil
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Policy = s.Policy.clone()
	out.SubStats = append([]bonusstat.Stat(nil), s.SubStats...)
	return &out
}
