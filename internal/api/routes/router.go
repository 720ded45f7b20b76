package routes

import (
	"net/http"

	"github.com/roomnest/roomrental/backend/internal/api/handlers"
	"github.com/roomnest/roomrental/backend/internal/api/middleware"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	roomHandler     *handlers.RoomHandler
	favoriteHandler *handlers.FavoriteHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	roomHandler *handlers.RoomHandler,
	favoriteHandler *handlers.FavoriteHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		roomHandler:     roomHandler,
		favoriteHandler: favoriteHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Room endpoints
	r.mux.HandleFunc("GET /api/rooms", r.roomHandler.ListRooms)
	r.mux.HandleFunc("POST /api/rooms", r.roomHandler.CreateRoom)
	r.mux.HandleFunc("GET /api/rooms/my-rooms/{userId}", r.roomHandler.ListMyRooms)
	r.mux.HandleFunc("GET /api/rooms/{id}", r.roomHandler.GetRoom)
	r.mux.HandleFunc("PUT /api/rooms/{id}", r.roomHandler.UpdateRoom)
	r.mux.HandleFunc("DELETE /api/rooms/{id}", r.roomHandler.DeleteRoom)

	// Favorite endpoints
	r.mux.HandleFunc("GET /api/favorites/{userId}", r.favoriteHandler.ListFavorites)
	r.mux.HandleFunc("GET /api/favorites/{userId}/{roomId}", r.favoriteHandler.CheckFavorite)
	r.mux.HandleFunc("POST /api/favorites/toggle", r.favoriteHandler.ToggleFavorite)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
