package providers

import (
	"context"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to room events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RoomEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RoomEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelRoomUpdates is the channel carrying every room mutation
	EventChannelRoomUpdates = "rooms:updates"

	// EventChannelRoomPrefix is the prefix for room-specific channels
	EventChannelRoomPrefix = "rooms:"
)

// GetRoomChannel returns the channel name for a specific room
func GetRoomChannel(roomID string) string {
	return EventChannelRoomPrefix + roomID
}
