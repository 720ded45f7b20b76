package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

type pairKey struct {
	userID string
	roomID string
}

// FavoriteAdapter is an in-memory favorite repository. The map keyed by the
// (user, room) pair plays the role of the database uniqueness constraint:
// Insert on a present key is a CONFLICT, Delete on an absent key NOT_FOUND,
// both decided under a single lock.
type FavoriteAdapter struct {
	mu    sync.Mutex
	pairs map[pairKey]entities.Favorite
}

var _ repositories.FavoriteRepository = (*FavoriteAdapter)(nil)

// NewFavoriteAdapter creates an in-memory favorite adapter
func NewFavoriteAdapter() *FavoriteAdapter {
	return &FavoriteAdapter{
		pairs: make(map[pairKey]entities.Favorite),
	}
}

// Insert creates the (user, room) association
func (a *FavoriteAdapter) Insert(ctx context.Context, favorite *entities.Favorite) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := pairKey{userID: favorite.UserID, roomID: favorite.RoomID}
	if _, ok := a.pairs[key]; ok {
		return apperrors.NewConflictError(
			fmt.Sprintf("favorite (%s, %s) already exists", favorite.UserID, favorite.RoomID))
	}

	a.pairs[key] = *favorite
	return nil
}

// Delete removes the (user, room) association
func (a *FavoriteAdapter) Delete(ctx context.Context, userID, roomID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := pairKey{userID: userID, roomID: roomID}
	if _, ok := a.pairs[key]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("favorite (%s, %s) not found", userID, roomID))
	}

	delete(a.pairs, key)
	return nil
}

// Exists reports whether the (user, room) association is present
func (a *FavoriteAdapter) Exists(ctx context.Context, userID, roomID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.pairs[pairKey{userID: userID, roomID: roomID}]
	return ok, nil
}

// ListByUser retrieves all favorites of a user, newest first
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	favorites := []*entities.Favorite{}
	for key := range a.pairs {
		if key.userID != userID {
			continue
		}
		favorite := a.pairs[key]
		favorites = append(favorites, &favorite)
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})

	return favorites, nil
}

// DeleteByRoom removes every favorite referencing the room
func (a *FavoriteAdapter) DeleteByRoom(ctx context.Context, roomID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key := range a.pairs {
		if key.roomID == roomID {
			delete(a.pairs, key)
		}
	}
	return nil
}

// Count reports the number of favorite rows for a (user, room) pair.
// Test helper for asserting the uniqueness invariant.
func (a *FavoriteAdapter) Count(userID, roomID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.pairs[pairKey{userID: userID, roomID: roomID}]; ok {
		return 1
	}
	return 0
}
