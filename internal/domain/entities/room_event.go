package entities

import (
	"time"

	"github.com/google/uuid"
)

// RoomEventType represents the type of room event
type RoomEventType string

const (
	RoomEventTypeCreated RoomEventType = "room_created"
	RoomEventTypeUpdated RoomEventType = "room_updated"
	RoomEventTypeDeleted RoomEventType = "room_deleted"
)

// RoomEvent represents a mutation event for a room listing, published so
// downstream consumers (cache invalidation, live clients) can react.
type RoomEvent struct {
	ID            string                 `json:"id"`
	RoomID        string                 `json:"room_id"`
	OwnerID       string                 `json:"owner_id"`
	EventType     RoomEventType          `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
}

// NewRoomEvent creates a new room event
func NewRoomEvent(roomID, ownerID string, eventType RoomEventType, changedFields map[string]interface{}) *RoomEvent {
	return &RoomEvent{
		ID:            uuid.New().String(),
		RoomID:        roomID,
		OwnerID:       ownerID,
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		ChangedFields: changedFields,
	}
}
