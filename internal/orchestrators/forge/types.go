package forge

import (
	"time"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
)

// Item is a stored item with its ownership
type Item struct {
	OwnerID   string
	Item      *equipment.Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateItemInput defines the request for forging a new item
type CreateItemInput struct {
	OwnerID string
	Name    string
	Kind    equipment.Kind
}

// CreateItemOutput defines the response for forging a new item
type CreateItemOutput struct {
	Item *Item
}

// GetItemInput defines the request for loading an item
type GetItemInput struct {
	ItemID string
}

// GetItemOutput defines the response for loading an item
type GetItemOutput struct {
	Item *Item
}

// ListItemsInput defines the request for listing an owner's items
type ListItemsInput struct {
	OwnerID string
}

// ListItemsOutput defines the response for listing an owner's items
type ListItemsOutput struct {
	Items []*Item
}

// MaterialInput is one material offered to an item. XP arrives signed from
// callers and is validated before anything is spent.
type MaterialInput struct {
	// ID is generated when empty
	ID   string
	Name string
	XP   int64
}

// EnhanceItemInput defines the request for feeding materials to an item
type EnhanceItemInput struct {
	ItemID    string
	Materials []MaterialInput
}

// EnhanceItemOutput defines the response for feeding materials to an item
type EnhanceItemOutput struct {
	Item   *Item
	Result *equipment.AdvanceResult
}

// DeleteItemInput defines the request for deleting an item
type DeleteItemInput struct {
	ItemID string
}

// DeleteItemOutput defines the response for deleting an item
type DeleteItemOutput struct{}
