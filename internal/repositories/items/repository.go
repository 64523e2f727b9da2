// Package items provides the repository for persisted equipment items
package items

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=itemsmock github.com/KirkDiggler/rpg-progression/internal/repositories/items Repository

// Record is a stored item together with its ownership and timestamps
type Record struct {
	OwnerID   string
	Item      *equipment.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput contains parameters for storing a new item
type CreateInput struct {
	OwnerID string
	Item    *equipment.Snapshot
}

// CreateOutput contains the stored record
type CreateOutput struct {
	Record *Record
}

// GetInput contains parameters for loading an item
type GetInput struct {
	ID string
}

// GetOutput contains the loaded record
type GetOutput struct {
	Record *Record
}

// UpdateInput contains the new state of an existing item
type UpdateInput struct {
	Item *equipment.Snapshot
}

// UpdateOutput contains the updated record
type UpdateOutput struct {
	Record *Record
}

// DeleteInput contains parameters for deleting an item
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

// ListByOwnerInput contains parameters for listing an owner's items
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput contains the owner's records ordered by item id
type ListByOwnerOutput struct {
	Records []*Record
}

// Repository defines the interface for item storage operations
type Repository interface {
	// Create stores a new item; the item id must not exist yet
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads an item by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the state of an existing item, keeping its owner
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an item and its owner index entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns every item of an owner
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}
