package bonusstat

import (
	"encoding/json"
	"math"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

// Amount is a rolled quantity. Flat is set for integer payloads, Ratio for
// float payloads.
type Amount struct {
	Flat  uint64
	Ratio float64
}

// Stat is one concrete value of a catalog type. Its type never changes after
// creation; only Generate and Restore produce one.
type Stat struct {
	typ   Type
	flat  uint64
	ratio float64
}

// Type returns the stat's type
func (s Stat) Type() Type {
	return s.typ
}

// Payload returns the payload kind of the stat's type
func (s Stat) Payload() Payload {
	return catalog[s.typ].Payload
}

// Flat returns the integer value for flat stats
func (s Stat) Flat() (uint64, bool) {
	return s.flat, s.Payload().IsFlat()
}

// Ratio returns the fractional value for percent and rate stats
func (s Stat) Ratio() (float64, bool) {
	return s.ratio, !s.Payload().IsFlat()
}

// Value returns the value as a float64 regardless of payload
func (s Stat) Value() float64 {
	if s.Payload().IsFlat() {
		return float64(s.flat)
	}
	return s.ratio
}

// Upgrade adds a rolled upgrade delta in place and returns the delta.
// Arithmetic happens at the type's precision.
func (s *Stat) Upgrade(r rng.Source) Amount {
	delta := RollUpgradeDelta(r, s.typ)
	s.apply(delta)
	return delta
}

func (s *Stat) apply(delta Amount) {
	switch s.Payload() {
	case PayloadUint64:
		s.flat += delta.Flat
	case PayloadUint32:
		s.flat = uint64(uint32(s.flat) + uint32(delta.Flat))
	case PayloadFloat32:
		s.ratio = float64(float32(s.ratio) + float32(delta.Ratio))
	default:
		s.ratio += delta.Ratio
	}
}

// Restore rebuilds a stored stat, coercing value to the type's precision
func Restore(t Type, value float64) (Stat, error) {
	entry, ok := Lookup(t)
	if !ok {
		return Stat{}, errors.InvalidArgumentf("unknown bonus stat type %d", uint8(t))
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return Stat{}, errors.InvalidArgumentf("%s value must be a non-negative number, got %v", t, value)
	}

	flat := entry.Payload == PayloadUint64 || entry.Payload == PayloadUint32
	if flat && value != math.Trunc(value) {
		return Stat{}, errors.InvalidArgumentf("%s is a flat stat, got fractional value %v", t, value)
	}

	switch entry.Payload {
	case PayloadUint64:
		if value >= math.MaxUint64 {
			return Stat{}, errors.InvalidArgumentf("%s value %v overflows", t, value)
		}
		return Stat{typ: t, flat: uint64(value)}, nil
	case PayloadUint32:
		if value > math.MaxUint32 {
			return Stat{}, errors.InvalidArgumentf("%s value %v overflows", t, value)
		}
		return Stat{typ: t, flat: uint64(uint32(value))}, nil
	case PayloadFloat32:
		return Stat{typ: t, ratio: float64(float32(value))}, nil
	default:
		return Stat{typ: t, ratio: value}, nil
	}
}

type statJSON struct {
	Type  Type    `json:"type"`
	Value float64 `json:"value"`
}

// MarshalJSON encodes the stat as {"type": name, "value": number}
func (s Stat) MarshalJSON() ([]byte, error) {
	return json.Marshal(statJSON{Type: s.typ, Value: s.Value()})
}

// UnmarshalJSON decodes the stat through Restore
func (s *Stat) UnmarshalJSON(data []byte) error {
	var raw statJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	restored, err := Restore(raw.Type, raw.Value)
	if err != nil {
		return err
	}
	*s = restored
	return nil
}
