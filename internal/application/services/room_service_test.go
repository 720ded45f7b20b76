package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *entities.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, filter repositories.RoomFilter) ([]*entities.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Room, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *entities.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ownedRoom(id, ownerID string) *entities.Room {
	return &entities.Room{
		ID:               id,
		OwnerID:          ownerID,
		Title:            "Sunny room near campus",
		Location:         "Koramangala, Bangalore",
		Price:            8500,
		PropertyType:     "1BHK",
		TenantPreference: entities.TenantPreferenceBachelor,
		ContactNumber:    "+91-9876543210",
		CreatedAt:        time.Now().Add(-time.Hour),
		UpdatedAt:        time.Now().Add(-time.Hour),
	}
}

// Tests

func TestRoomService_CreateRoom(t *testing.T) {
	validInput := func() *services.CreateRoomInput {
		return &services.CreateRoomInput{
			Title:         "Sunny room near campus",
			Location:      "Koramangala, Bangalore",
			Price:         8500,
			PropertyType:  "1BHK",
			ContactNumber: "+91-9876543210",
		}
	}

	t.Run("successfully creates room", func(t *testing.T) {
		// Arrange
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Room) bool {
			return r.ID != "" && r.OwnerID == "owner-1" &&
				r.TenantPreference == entities.TenantPreferenceAny
		})).Return(nil)

		// Act
		room, err := service.CreateRoom(context.Background(), "owner-1", validInput())

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, room.ID)
		assert.Equal(t, "owner-1", room.OwnerID)
		assert.Equal(t, entities.TenantPreferenceAny, room.TenantPreference)
		assert.False(t, room.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		room, err := service.CreateRoom(context.Background(), "  ", validInput())

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("names every offending field", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		input := validInput()
		input.Title = ""
		input.ContactNumber = "   "
		input.Price = 0

		room, err := service.CreateRoom(context.Background(), "owner-1", input)

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "contact_number")
		assert.Contains(t, err.Error(), "price must be greater than zero")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown tenant preference", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		input := validInput()
		input.TenantPreference = "Robots"

		room, err := service.CreateRoom(context.Background(), "owner-1", input)

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "tenant_preference")
	})

	t.Run("keeps explicit tenant preference", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		input := validInput()
		input.TenantPreference = "Family"

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		room, err := service.CreateRoom(context.Background(), "owner-1", input)

		assert.NoError(t, err)
		assert.Equal(t, entities.TenantPreferenceFamily, room.TenantPreference)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewInternalError("insert failed", errors.New("connection reset")))

		room, err := service.CreateRoom(context.Background(), "owner-1", validInput())

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	t.Run("owner updates patched fields only", func(t *testing.T) {
		// Arrange
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		existing := ownedRoom("room-1", "owner-1")
		repo.On("GetByID", mock.Anything, "room-1").Return(existing, nil)

		newPrice := 9000.0
		repo.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.Room) bool {
			return r.ID == "room-1" && r.Price == newPrice &&
				r.Title == "Sunny room near campus" && r.OwnerID == "owner-1"
		})).Return(nil)

		// Act
		room, err := service.UpdateRoom(context.Background(), "room-1", "owner-1",
			&repositories.RoomPatch{Price: &newPrice})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, newPrice, room.Price)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)

		newPrice := 9000.0
		room, err := service.UpdateRoom(context.Background(), "room-1", "intruder",
			&repositories.RoomPatch{Price: &newPrice})

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects patch that breaks validation", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)

		badPrice := -5.0
		room, err := service.UpdateRoom(context.Background(), "room-1", "owner-1",
			&repositories.RoomPatch{Price: &badPrice})

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("returns not found for missing room", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperrors.NewNotFoundError("room with id ghost not found"))

		newPrice := 9000.0
		room, err := service.UpdateRoom(context.Background(), "ghost", "owner-1",
			&repositories.RoomPatch{Price: &newPrice})

		assert.Nil(t, room)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestRoomService_DeleteRoom(t *testing.T) {
	t.Run("owner deletes room", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)
		repo.On("Delete", mock.Anything, "room-1").Return(nil)

		err := service.DeleteRoom(context.Background(), "room-1", "owner-1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-owner without deleting", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "room-1").Return(ownedRoom("room-1", "owner-1"), nil)

		err := service.DeleteRoom(context.Background(), "room-1", "intruder")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("returns not found for missing room", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		repo.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperrors.NewNotFoundError("room with id ghost not found"))

		err := service.DeleteRoom(context.Background(), "ghost", "owner-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestRoomService_ListRooms(t *testing.T) {
	t.Run("passes filter through to repository", func(t *testing.T) {
		repo := new(MockRoomRepository)
		service := services.NewRoomService(repo)

		minPrice := 5000.0
		filter := repositories.RoomFilter{Location: "Bangalore", MinPrice: &minPrice}
		expected := []*entities.Room{ownedRoom("room-1", "owner-1")}
		repo.On("List", mock.Anything, filter).Return(expected, nil)

		rooms, err := service.ListRooms(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, expected, rooms)
		repo.AssertExpectations(t)
	})
}
