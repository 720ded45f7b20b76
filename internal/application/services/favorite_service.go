package services

import (
	"context"
	"strings"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/observability"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// FavoriteService implements the favorite toggle and retrieval rules. The
// uniqueness constraint in the favorite repository is the source of truth for
// concurrent toggles; this service only interprets its outcomes.
type FavoriteService struct {
	favorites repositories.FavoriteRepository
	rooms     repositories.RoomRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favorites repositories.FavoriteRepository, rooms repositories.RoomRepository) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		rooms:     rooms,
	}
}

// ToggleFavorite flips the favorite state of (userID, roomID) and returns the
// resulting state. Two concurrent toggles of the same pair both succeed: the
// loser of an insert race observes CONFLICT and reports favorited=true, the
// loser of a delete race observes NOT_FOUND and reports favorited=false.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID, roomID string) (*entities.ToggleResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(roomID) == "" {
		return nil, apperrors.NewValidationError("room_id is required")
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	exists, err := s.favorites.Exists(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.favorites.Delete(ctx, userID, roomID); err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				// Another request removed the row first; the end state matches.
				return &entities.ToggleResult{Favorited: false}, nil
			}
			return nil, err
		}
		return &entities.ToggleResult{Favorited: false}, nil
	}

	favorite := entities.NewFavorite(userID, roomID)
	if err := s.favorites.Insert(ctx, favorite); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			// Another request inserted the row first; the end state matches.
			return &entities.ToggleResult{Favorited: true}, nil
		}
		return nil, err
	}
	return &entities.ToggleResult{Favorited: true}, nil
}

// ListFavorites returns the rooms the user has favorited, most recently
// favorited first. Favorites whose room has vanished are skipped rather than
// failing the whole listing.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]*entities.Room, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms := []*entities.Room{}
	for _, favorite := range favorites {
		room, err := s.rooms.GetByID(ctx, favorite.RoomID)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				observability.LoggerFromContext(ctx).Debug().
					Str("user_id", userID).Str("room_id", favorite.RoomID).
					Msg("Skipping favorite for missing room")
				continue
			}
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

// IsFavorited reports whether the user has favorited the room
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, roomID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, apperrors.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(roomID) == "" {
		return false, apperrors.NewValidationError("room_id is required")
	}
	return s.favorites.Exists(ctx, userID, roomID)
}
