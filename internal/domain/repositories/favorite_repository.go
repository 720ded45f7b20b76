package repositories

import (
	"context"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
)

// FavoriteRepository defines the interface for favorite persistence.
// The backing store enforces uniqueness of the (user_id, room_id) pair;
// Insert surfaces a CONFLICT error when a concurrent writer got there first,
// Delete surfaces NOT_FOUND when the row was already gone. The service layer
// absorbs both into the correct toggle outcome.
type FavoriteRepository interface {
	// Insert creates the (user, room) association
	Insert(ctx context.Context, favorite *entities.Favorite) error

	// Delete removes the (user, room) association
	Delete(ctx context.Context, userID, roomID string) error

	// Exists reports whether the (user, room) association is present
	Exists(ctx context.Context, userID, roomID string) (bool, error)

	// ListByUser retrieves all favorites of a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error)

	// DeleteByRoom removes every favorite referencing the room
	DeleteByRoom(ctx context.Context, roomID string) error
}
