package repositories

import (
	"context"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
)

// RoomFilter narrows room listings. Location matches as a case-insensitive
// substring, PropertyType matches exactly. Zero values mean "no constraint".
type RoomFilter struct {
	Location     string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Limit        int
	Offset       int
}

// RoomPatch carries the mutable room fields for a partial update.
// Nil fields are left untouched.
type RoomPatch struct {
	Title            *string
	Location         *string
	Price            *float64
	PropertyType     *string
	TenantPreference *entities.TenantPreference
	ContactNumber    *string
	ImageURL         *string
}

// RoomRepository defines the interface for room persistence.
// Implementations surface only NOT_FOUND and INTERNAL errors; business
// validation lives in the service layer.
type RoomRepository interface {
	// Create inserts a new room
	Create(ctx context.Context, room *entities.Room) error

	// GetByID retrieves a room by ID
	GetByID(ctx context.Context, id string) (*entities.Room, error)

	// List retrieves rooms matching the filter, newest first
	List(ctx context.Context, filter RoomFilter) ([]*entities.Room, error)

	// ListByOwner retrieves all rooms owned by ownerID, newest first
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Room, error)

	// Update persists the given room fields
	Update(ctx context.Context, room *entities.Room) error

	// Delete removes the room and every favorite referencing it atomically
	Delete(ctx context.Context, id string) error
}
