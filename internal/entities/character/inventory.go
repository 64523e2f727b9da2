package character

import (
	"math/bits"
	"sort"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/entities/material"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Inventory holds a character's equipment, materials and currency.
// It owns the lifecycle of its items; the items themselves never delete.
type Inventory struct {
	items     map[string]*equipment.Item
	materials map[string]*material.Material

	baseCurrency    uint64
	premiumCurrency uint64
}

// NewInventory returns an empty inventory
func NewInventory() *Inventory {
	return &Inventory{
		items:     make(map[string]*equipment.Item),
		materials: make(map[string]*material.Material),
	}
}

// AddItem stores an item; ids must be unique
func (inv *Inventory) AddItem(item *equipment.Item) error {
	if item == nil {
		return errors.InvalidArgument("item is required")
	}
	if _, exists := inv.items[item.ID()]; exists {
		return errors.AlreadyExistsf("item %s already in inventory", item.ID())
	}
	inv.items[item.ID()] = item
	return nil
}

// Item returns the item with id
func (inv *Inventory) Item(id string) (*equipment.Item, error) {
	item, ok := inv.items[id]
	if !ok {
		return nil, errors.NotFoundf("item %s not found", id)
	}
	return item, nil
}

// RemoveItem takes an item out of the inventory
func (inv *Inventory) RemoveItem(id string) (*equipment.Item, error) {
	item, err := inv.Item(id)
	if err != nil {
		return nil, err
	}
	delete(inv.items, id)
	return item, nil
}

// Items returns every item ordered by id
func (inv *Inventory) Items() []*equipment.Item {
	return inv.itemsOf("")
}

// Armor returns the armor pieces ordered by id
func (inv *Inventory) Armor() []*equipment.Item {
	return inv.itemsOf(equipment.KindArmor)
}

// Artifacts returns the artifacts ordered by id
func (inv *Inventory) Artifacts() []*equipment.Item {
	return inv.itemsOf(equipment.KindArtifact)
}

func (inv *Inventory) itemsOf(kind equipment.Kind) []*equipment.Item {
	items := make([]*equipment.Item, 0, len(inv.items))
	for _, item := range inv.items {
		if kind == "" || item.Kind() == kind {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID() < items[b].ID() })
	return items
}

// AddMaterial stores a material; ids must be unique
func (inv *Inventory) AddMaterial(m *material.Material) error {
	if m == nil {
		return errors.InvalidArgument("material is required")
	}
	if _, exists := inv.materials[m.ID]; exists {
		return errors.AlreadyExistsf("material %s already in inventory", m.ID)
	}
	inv.materials[m.ID] = m
	return nil
}

// Materials returns every material ordered by id
func (inv *Inventory) Materials() []*material.Material {
	mats := make([]*material.Material, 0, len(inv.materials))
	for _, m := range inv.materials {
		mats = append(mats, m)
	}
	sort.Slice(mats, func(a, b int) bool { return mats[a].ID < mats[b].ID })
	return mats
}

// Currency returns the base and premium balances
func (inv *Inventory) Currency() (base, premium uint64) {
	return inv.baseCurrency, inv.premiumCurrency
}

// AddCurrency credits both balances, rejecting overflow
func (inv *Inventory) AddCurrency(base, premium uint64) error {
	newBase, carry := bits.Add64(inv.baseCurrency, base, 0)
	if carry != 0 {
		return errors.OutOfRangef("base currency overflows")
	}
	newPremium, carry := bits.Add64(inv.premiumCurrency, premium, 0)
	if carry != 0 {
		return errors.OutOfRangef("premium currency overflows")
	}
	inv.baseCurrency, inv.premiumCurrency = newBase, newPremium
	return nil
}

// Enhance consumes materials into an item. Nothing is consumed unless every
// material exists, none is listed twice and their xp sums without overflow.
func (inv *Inventory) Enhance(r rng.Source, itemID string, materialIDs ...string) (*equipment.AdvanceResult, error) {
	item, err := inv.Item(itemID)
	if err != nil {
		return nil, err
	}
	if len(materialIDs) == 0 {
		return nil, errors.InvalidArgument("at least one material is required")
	}

	seen := make(map[string]bool, len(materialIDs))
	sources := make([]progression.Source, 0, len(materialIDs))
	for _, id := range materialIDs {
		if seen[id] {
			return nil, errors.InvalidArgumentf("material %s listed more than once", id)
		}
		seen[id] = true

		m, ok := inv.materials[id]
		if !ok {
			return nil, errors.NotFoundf("material %s not found", id)
		}
		sources = append(sources, m)
	}

	total, err := progression.Total(sources...)
	if err != nil {
		return nil, err
	}

	for _, id := range materialIDs {
		delete(inv.materials, id)
	}
	return item.Advance(r, total), nil
}
