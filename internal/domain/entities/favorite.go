package entities

import "time"

// Favorite is a saved-interest association between a user and a room.
// Identity is the (UserID, RoomID) pair; at most one row exists per pair.
type Favorite struct {
	UserID    string    `json:"user_id" db:"user_id"`
	RoomID    string    `json:"room_id" db:"room_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewFavorite creates a favorite for the (user, room) pair stamped with the
// current time.
func NewFavorite(userID, roomID string) *Favorite {
	return &Favorite{
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: time.Now().UTC(),
	}
}

// ToggleResult reports the favorite membership after a toggle.
type ToggleResult struct {
	Favorited bool `json:"favorited"`
}
