package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/providers"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/observability"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// CreateRoomInput carries the caller-supplied fields for a new room listing.
type CreateRoomInput struct {
	Title            string  `json:"title"`
	Location         string  `json:"location"`
	Price            float64 `json:"price"`
	PropertyType     string  `json:"property_type"`
	TenantPreference string  `json:"tenant_preference"`
	ContactNumber    string  `json:"contact_number"`
	ImageURL         string  `json:"image_url"`
}

// RoomService owns room lifecycle rules: field validation, ownership
// enforcement and filtering policy. Persistence is delegated to the injected
// repository.
type RoomService struct {
	repo     repositories.RoomRepository
	eventBus providers.EventBus
}

// NewRoomService creates a new room service
func NewRoomService(repo repositories.RoomRepository) *RoomService {
	return &RoomService{repo: repo}
}

// SetEventBus enables mutation event publishing
func (s *RoomService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// CreateRoom validates the input and persists a new room owned by ownerID.
func (s *RoomService) CreateRoom(ctx context.Context, ownerID string, input *CreateRoomInput) (*entities.Room, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.NewValidationError("owner_id is required")
	}

	preference := entities.TenantPreference(strings.TrimSpace(input.TenantPreference))
	if preference == "" {
		preference = entities.TenantPreferenceAny
	}

	if err := validateRoomFields(input.Title, input.Location, input.ContactNumber, input.PropertyType, input.Price, preference); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	room := &entities.Room{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		Title:            strings.TrimSpace(input.Title),
		Location:         strings.TrimSpace(input.Location),
		Price:            input.Price,
		PropertyType:     strings.TrimSpace(input.PropertyType),
		TenantPreference: preference,
		ContactNumber:    strings.TrimSpace(input.ContactNumber),
		ImageURL:         strings.TrimSpace(input.ImageURL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewRoomEvent(room.ID, room.OwnerID, entities.RoomEventTypeCreated, nil))
	return room, nil
}

// ListRooms retrieves rooms matching the filter, newest first.
// An empty filter returns every room.
func (s *RoomService) ListRooms(ctx context.Context, filter repositories.RoomFilter) ([]*entities.Room, error) {
	return s.repo.List(ctx, filter)
}

// GetRoom retrieves a single room by ID
func (s *RoomService) GetRoom(ctx context.Context, id string) (*entities.Room, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByOwner retrieves all rooms published by ownerID, newest first
func (s *RoomService) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Room, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateRoom applies the non-nil patch fields to the room after enforcing
// ownership. ID, owner and creation time are never mutable through this path.
func (s *RoomService) UpdateRoom(ctx context.Context, id, requesterID string, patch *repositories.RoomPatch) (*entities.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.OwnerID != requesterID {
		return nil, apperrors.NewForbiddenError("only the room owner may update this room")
	}

	changed := applyPatch(room, patch)

	if err := validateRoomFields(room.Title, room.Location, room.ContactNumber, room.PropertyType, room.Price, room.TenantPreference); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewRoomEvent(room.ID, room.OwnerID, entities.RoomEventTypeUpdated, changed))
	return room, nil
}

// DeleteRoom permanently removes the room and every favorite referencing it,
// after enforcing ownership.
func (s *RoomService) DeleteRoom(ctx context.Context, id, requesterID string) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if room.OwnerID != requesterID {
		return apperrors.NewForbiddenError("only the room owner may delete this room")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.NewRoomEvent(room.ID, room.OwnerID, entities.RoomEventTypeDeleted, nil))
	return nil
}

func (s *RoomService) publish(ctx context.Context, event *entities.RoomEvent) {
	if s.eventBus == nil {
		return
	}
	// Event delivery is best effort; a publish failure never fails the mutation.
	if err := s.eventBus.Publish(ctx, providers.EventChannelRoomUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("room_id", event.RoomID).Str("event_type", string(event.EventType)).
			Msg("Failed to publish room event")
	}
}

func applyPatch(room *entities.Room, patch *repositories.RoomPatch) map[string]interface{} {
	changed := map[string]interface{}{}

	if patch.Title != nil {
		room.Title = strings.TrimSpace(*patch.Title)
		changed["title"] = room.Title
	}
	if patch.Location != nil {
		room.Location = strings.TrimSpace(*patch.Location)
		changed["location"] = room.Location
	}
	if patch.Price != nil {
		room.Price = *patch.Price
		changed["price"] = room.Price
	}
	if patch.PropertyType != nil {
		room.PropertyType = strings.TrimSpace(*patch.PropertyType)
		changed["property_type"] = room.PropertyType
	}
	if patch.TenantPreference != nil {
		room.TenantPreference = *patch.TenantPreference
		changed["tenant_preference"] = room.TenantPreference
	}
	if patch.ContactNumber != nil {
		room.ContactNumber = strings.TrimSpace(*patch.ContactNumber)
		changed["contact_number"] = room.ContactNumber
	}
	if patch.ImageURL != nil {
		room.ImageURL = strings.TrimSpace(*patch.ImageURL)
		changed["image_url"] = room.ImageURL
	}

	return changed
}

func validateRoomFields(title, location, contactNumber, propertyType string, price float64, preference entities.TenantPreference) error {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(contactNumber) == "" {
		missing = append(missing, "contact_number")
	}
	if strings.TrimSpace(propertyType) == "" {
		missing = append(missing, "property_type")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing required fields: "+strings.Join(missing, ", "))
	}
	if price <= 0 {
		problems = append(problems, "price must be greater than zero")
	}
	if !entities.ValidTenantPreference(preference) {
		problems = append(problems, fmt.Sprintf("tenant_preference %q is not recognized", preference))
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
