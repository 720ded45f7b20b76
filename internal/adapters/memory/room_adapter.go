package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// RoomAdapter is an in-memory room repository for local development and
// tests. It honors the same contract as the Postgres adapter, including the
// cascading delete of favorites.
type RoomAdapter struct {
	mu        sync.RWMutex
	rooms     map[string]entities.Room
	favorites *FavoriteAdapter
}

var _ repositories.RoomRepository = (*RoomAdapter)(nil)

// NewRoomAdapter creates an in-memory room adapter. When favorites is
// non-nil, deleting a room also removes its favorite rows.
func NewRoomAdapter(favorites *FavoriteAdapter) *RoomAdapter {
	return &RoomAdapter{
		rooms:     make(map[string]entities.Room),
		favorites: favorites,
	}
}

// Create inserts a new room
func (a *RoomAdapter) Create(ctx context.Context, room *entities.Room) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.rooms[room.ID] = *room
	return nil
}

// GetByID retrieves a room by ID
func (a *RoomAdapter) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	room, ok := a.rooms[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", id))
	}
	return &room, nil
}

// List retrieves rooms matching the filter, newest first
func (a *RoomAdapter) List(ctx context.Context, filter repositories.RoomFilter) ([]*entities.Room, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := []*entities.Room{}
	for id := range a.rooms {
		room := a.rooms[id]
		if !matchesFilter(&room, filter) {
			continue
		}
		matched = append(matched, &room)
	}

	sortNewestFirst(matched)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*entities.Room{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// ListByOwner retrieves all rooms owned by ownerID, newest first
func (a *RoomAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Room, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := []*entities.Room{}
	for id := range a.rooms {
		room := a.rooms[id]
		if room.OwnerID == ownerID {
			matched = append(matched, &room)
		}
	}

	sortNewestFirst(matched)
	return matched, nil
}

// Update persists the given room fields
func (a *RoomAdapter) Update(ctx context.Context, room *entities.Room) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.rooms[room.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", room.ID))
	}

	room.UpdatedAt = time.Now().UTC()
	a.rooms[room.ID] = *room
	return nil
}

// Delete removes the room and cascades to its favorites
func (a *RoomAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	if _, ok := a.rooms[id]; !ok {
		a.mu.Unlock()
		return apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", id))
	}
	delete(a.rooms, id)
	a.mu.Unlock()

	if a.favorites != nil {
		return a.favorites.DeleteByRoom(ctx, id)
	}
	return nil
}

func matchesFilter(room *entities.Room, filter repositories.RoomFilter) bool {
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(room.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.PropertyType != "" && room.PropertyType != filter.PropertyType {
		return false
	}
	if filter.MinPrice != nil && room.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && room.Price > *filter.MaxPrice {
		return false
	}
	return true
}

func sortNewestFirst(rooms []*entities.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})
}
