package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/observability"
)

// FavoriteHandler handles favorite-related HTTP requests
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
	metrics         *observability.Metrics
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService *services.FavoriteService, metrics *observability.Metrics) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		metrics:         metrics,
	}
}

type toggleFavoriteRequest struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
}

// ToggleFavorite handles POST /api/favorites/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.favoriteService.ToggleFavorite(r.Context(), requesterID(r, req.UserID), req.RoomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	observability.RecordToggle(r.Context(), h.metrics, result.Favorited)
	respondWithJSON(w, http.StatusOK, result)
}

// ListFavorites handles GET /api/favorites/{userId}
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	rooms, err := h.favoriteService.ListFavorites(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rooms)
}

// CheckFavorite handles GET /api/favorites/{userId}/{roomId}
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	roomID := r.PathValue("roomId")
	if userID == "" || roomID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and room ID are required")
		return
	}

	favorited, err := h.favoriteService.IsFavorited(r.Context(), userID, roomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entities.ToggleResult{Favorited: favorited})
}
