package progression

import (
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// State is the level/xp pair embedded in every leveled attribute and item.
// After any call to Advance, XP < curve.Required(Level).
type State struct {
	Level uint32 `json:"level"`
	XP    uint64 `json:"xp"`
}

// NewState returns the starting state: level 1 with no xp
func NewState() State {
	return State{Level: 1}
}

// RestoreState rebuilds a state from stored values, rejecting any that break
// the level >= 1 and xp < required invariants
func RestoreState(curve Curve, level uint32, xp uint64) (State, error) {
	if level == 0 {
		return State{}, errors.InvalidArgument("level must be at least 1")
	}
	if required := curve.Required(level); xp >= required {
		return State{}, errors.InvalidArgumentf("xp %d must be below %d required for level %d", xp, required, level)
	}
	return State{Level: level, XP: xp}, nil
}

// LevelUpFunc is invoked once per level crossed, in ascending order, with the new level
type LevelUpFunc func(newLevel uint32)

// Advance applies amount xp, crossing as many levels as it pays for.
// onLevelUp may be nil. It returns the number of levels gained; an amount of
// zero changes nothing.
func (s *State) Advance(curve Curve, amount uint64, onLevelUp LevelUpFunc) uint32 {
	var gained uint32

	for amount != 0 {
		needed := curve.Required(s.Level) - s.XP
		used := min(needed, amount)

		s.XP += used
		amount -= used

		if used == needed {
			s.Level++
			s.XP = 0
			gained++

			if onLevelUp != nil {
				onLevelUp(s.Level)
			}
		}
	}

	return gained
}

// Progress returns the xp held and the xp required for the current level
func (s State) Progress(curve Curve) (xp, required uint64) {
	return s.XP, curve.Required(s.Level)
}

// Remaining returns the xp still missing before the next level
func (s State) Remaining(curve Curve) uint64 {
	return curve.Required(s.Level) - s.XP
}
