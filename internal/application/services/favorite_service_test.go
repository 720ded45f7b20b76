package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Insert(ctx context.Context, favorite *entities.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, roomID string) error {
	args := m.Called(ctx, userID, roomID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, roomID string) (bool, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

// Tests

func TestFavoriteService_ToggleFavorite(t *testing.T) {
	t.Run("first toggle favorites the room", func(t *testing.T) {
		// Arrange
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		favorites.On("Exists", mock.Anything, "user-1", "room-1").Return(false, nil)
		favorites.On("Insert", mock.Anything, mock.MatchedBy(func(f *entities.Favorite) bool {
			return f.UserID == "user-1" && f.RoomID == "room-1" && !f.CreatedAt.IsZero()
		})).Return(nil)

		// Act
		result, err := service.ToggleFavorite(context.Background(), "user-1", "room-1")

		// Assert
		assert.NoError(t, err)
		assert.True(t, result.Favorited)
		favorites.AssertExpectations(t)
	})

	t.Run("second toggle unfavorites the room", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		favorites.On("Exists", mock.Anything, "user-1", "room-1").Return(true, nil)
		favorites.On("Delete", mock.Anything, "user-1", "room-1").Return(nil)

		result, err := service.ToggleFavorite(context.Background(), "user-1", "room-1")

		assert.NoError(t, err)
		assert.False(t, result.Favorited)
		favorites.AssertExpectations(t)
	})

	t.Run("lost insert race still reports favorited", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		favorites.On("Exists", mock.Anything, "user-1", "room-1").Return(false, nil)
		favorites.On("Insert", mock.Anything, mock.Anything).
			Return(apperrors.NewConflictError("favorite (user-1, room-1) already exists"))

		result, err := service.ToggleFavorite(context.Background(), "user-1", "room-1")

		assert.NoError(t, err)
		assert.True(t, result.Favorited)
	})

	t.Run("lost delete race still reports unfavorited", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		favorites.On("Exists", mock.Anything, "user-1", "room-1").Return(true, nil)
		favorites.On("Delete", mock.Anything, "user-1", "room-1").
			Return(apperrors.NewNotFoundError("favorite (user-1, room-1) not found"))

		result, err := service.ToggleFavorite(context.Background(), "user-1", "room-1")

		assert.NoError(t, err)
		assert.False(t, result.Favorited)
	})

	t.Run("rejects missing room", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperrors.NewNotFoundError("room with id ghost not found"))

		result, err := service.ToggleFavorite(context.Background(), "user-1", "ghost")

		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		favorites.AssertNotCalled(t, "Insert")
		favorites.AssertNotCalled(t, "Delete")
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		_, err := service.ToggleFavorite(context.Background(), "", "room-1")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = service.ToggleFavorite(context.Background(), "user-1", "  ")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		rooms.AssertNotCalled(t, "GetByID")
	})

	t.Run("propagates storage error", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		favorites.On("Exists", mock.Anything, "user-1", "room-1").
			Return(false, apperrors.NewInternalError("query failed", errors.New("connection reset")))

		result, err := service.ToggleFavorite(context.Background(), "user-1", "room-1")

		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	t.Run("returns favorited rooms newest first", func(t *testing.T) {
		// Arrange
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		now := time.Now()
		favorites.On("ListByUser", mock.Anything, "user-1").Return([]*entities.Favorite{
			{UserID: "user-1", RoomID: "room-2", CreatedAt: now},
			{UserID: "user-1", RoomID: "room-1", CreatedAt: now.Add(-time.Minute)},
		}, nil)
		rooms.On("GetByID", mock.Anything, "room-2").Return(ownedRoom("room-2", "owner-2"), nil)
		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)

		// Act
		result, err := service.ListFavorites(context.Background(), "user-1")

		// Assert
		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "room-2", result[0].ID)
		assert.Equal(t, "room-1", result[1].ID)
	})

	t.Run("skips favorites whose room vanished", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		favorites.On("ListByUser", mock.Anything, "user-1").Return([]*entities.Favorite{
			{UserID: "user-1", RoomID: "gone"},
			{UserID: "user-1", RoomID: "room-1"},
		}, nil)
		rooms.On("GetByID", mock.Anything, "gone").
			Return(nil, apperrors.NewNotFoundError("room with id gone not found"))
		rooms.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)

		result, err := service.ListFavorites(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "room-1", result[0].ID)
	})

	t.Run("returns empty list for user without favorites", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		favorites.On("ListByUser", mock.Anything, "user-1").Return([]*entities.Favorite{}, nil)

		result, err := service.ListFavorites(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		rooms := new(MockRoomRepository)
		service := services.NewFavoriteService(favorites, rooms)

		result, err := service.ListFavorites(context.Background(), "")

		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		favorites.AssertNotCalled(t, "ListByUser")
	})
}
