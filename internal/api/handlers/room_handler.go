package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// RoomHandler handles room-related HTTP requests
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

type createRoomRequest struct {
	OwnerID string `json:"owner_id"`
	services.CreateRoomInput
}

type updateRoomRequest struct {
	RequesterID      *string  `json:"requester_id"`
	Title            *string  `json:"title"`
	Location         *string  `json:"location"`
	Price            *float64 `json:"price"`
	PropertyType     *string  `json:"property_type"`
	TenantPreference *string  `json:"tenant_preference"`
	ContactNumber    *string  `json:"contact_number"`
	ImageURL         *string  `json:"image_url"`
}

type deleteRoomRequest struct {
	RequesterID string `json:"requester_id"`
}

// CreateRoom handles POST /api/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID := requesterID(r, req.OwnerID)
	room, err := h.roomService.CreateRoom(r.Context(), ownerID, &req.CreateRoomInput)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRoomFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rooms, err := h.roomService.ListRooms(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		respondWithError(w, http.StatusBadRequest, "room ID is required")
		return
	}

	room, err := h.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, room)
}

// ListMyRooms handles GET /api/rooms/my-rooms/{userId}
func (h *RoomHandler) ListMyRooms(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	rooms, err := h.roomService.ListByOwner(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rooms)
}

// UpdateRoom handles PUT /api/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		respondWithError(w, http.StatusBadRequest, "room ID is required")
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := &repositories.RoomPatch{
		Title:         req.Title,
		Location:      req.Location,
		Price:         req.Price,
		PropertyType:  req.PropertyType,
		ContactNumber: req.ContactNumber,
		ImageURL:      req.ImageURL,
	}
	if req.TenantPreference != nil {
		preference := entities.TenantPreference(*req.TenantPreference)
		patch.TenantPreference = &preference
	}

	var bodyRequester string
	if req.RequesterID != nil {
		bodyRequester = *req.RequesterID
	}

	room, err := h.roomService.UpdateRoom(r.Context(), roomID, requesterID(r, bodyRequester), patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		respondWithError(w, http.StatusBadRequest, "room ID is required")
		return
	}

	var req deleteRoomRequest
	// A body is optional on DELETE; the requester may arrive via header.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.roomService.DeleteRoom(r.Context(), roomID, requesterID(r, req.RequesterID)); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseRoomFilter(r *http.Request) (repositories.RoomFilter, error) {
	query := r.URL.Query()
	filter := repositories.RoomFilter{
		Location:     query.Get("location"),
		PropertyType: query.Get("type"),
	}
	// Accept the longer spelling as an alias.
	if filter.PropertyType == "" {
		filter.PropertyType = query.Get("property_type")
	}

	if raw := query.Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("min_price must be a number")
		}
		filter.MinPrice = &value
	}
	if raw := query.Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("max_price must be a number")
		}
		filter.MaxPrice = &value
	}
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return filter, apperrors.NewValidationError("limit must be a non-negative integer")
		}
		filter.Limit = value
	}
	if raw := query.Get("offset"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return filter, apperrors.NewValidationError("offset must be a non-negative integer")
		}
		filter.Offset = value
	}

	return filter, nil
}

// requesterID resolves the acting user from the X-User-ID header, falling
// back to the identifier carried in the request body.
func requesterID(r *http.Request, bodyValue string) string {
	if header := strings.TrimSpace(r.Header.Get("X-User-ID")); header != "" {
		return header
	}
	return strings.TrimSpace(bodyValue)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeForbidden:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
