// Package character models a player character: independently leveled
// attributes, combat vitals and the inventory holding their equipment.
package character

import (
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Config configures a new character
type Config struct {
	ID   string
	Name string
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
	errors.ValidateRequired("name", c.Name, vb)
	errors.ValidateMaxLength("name", c.Name, 100, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	return c.Curve.OrDefault().Validate()
}

// Character is a player character.
// It is not safe for concurrent use.
type Character struct {
	id         string
	name       string
	curve      progression.Curve
	attributes map[AttributeType]*progression.State
	vitals     Vitals
	inventory  *Inventory
}

// New creates a character with every attribute at level 1
func New(cfg *Config) (*Character, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attributes := make(map[AttributeType]*progression.State, len(AllAttributes()))
	for _, attr := range AllAttributes() {
		state := progression.NewState()
		attributes[attr] = &state
	}

	return &Character{
		id:         cfg.ID,
		name:       cfg.Name,
		curve:      cfg.Curve.OrDefault(),
		attributes: attributes,
		vitals:     DefaultVitals(),
		inventory:  NewInventory(),
	}, nil
}

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.id
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return "character"
}

// Name returns the character's name
func (c *Character) Name() string { return c.name }

// Vitals returns the combat stats
func (c *Character) Vitals() Vitals { return c.vitals }

// Inventory returns the character's inventory
func (c *Character) Inventory() *Inventory { return c.inventory }

// Attribute returns the level and xp of attr
func (c *Character) Attribute(attr AttributeType) (progression.State, error) {
	state, ok := c.attributes[attr]
	if !ok {
		return progression.State{}, errors.InvalidArgumentf("unknown attribute %q", attr)
	}
	return *state, nil
}

// GrantXP advances attr by amount and returns the levels gained
func (c *Character) GrantXP(attr AttributeType, amount uint64) (uint32, error) {
	state, ok := c.attributes[attr]
	if !ok {
		return 0, errors.InvalidArgumentf("unknown attribute %q", attr)
	}
	return state.Advance(c.curve, amount, nil), nil
}
