// Package material holds enhancement materials, the consumables that are fed
// to equipment as experience.
package material

import (
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Material is a single consumable worth a fixed amount of xp
type Material struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Worth is the xp the material grants when consumed
	Worth uint64 `json:"xp"`
}

// New creates a material
func New(id, name string, xp uint64) (*Material, error) {
	m := &Material{ID: id, Name: name, Worth: xp}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate validates the material
func (m *Material) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", m.ID, vb)
	errors.ValidateMaxLength("name", m.Name, 100, vb)
	return vb.Build()
}

// XP implements progression.Source
func (m *Material) XP() uint64 {
	return m.Worth
}
