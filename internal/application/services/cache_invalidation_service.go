package services

import (
	"context"
	"fmt"
	"time"

	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

// CacheInvalidationService handles cache invalidation based on room events
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for room events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelRoomUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to room updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.RoomEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent invalidates the cached responses a single room event makes stale.
// Room listings change on every mutation, so the room list caches go too.
func (s *CacheInvalidationService) handleEvent(event *entities.RoomEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().Str("event_id", event.ID).Str("room_id", event.RoomID).
		Str("event_type", string(event.EventType)).
		Msg("Processing cache invalidation for room event")

	if err := s.InvalidateRoomCache(ctx, event.RoomID); err != nil {
		log.Warn().Err(err).Str("room_id", event.RoomID).Msg("Failed to invalidate room cache")
	}
}

// InvalidateRoomCache invalidates the cached responses that include the room:
// the room detail, every room listing and the per-owner listings.
func (s *CacheInvalidationService) InvalidateRoomCache(ctx context.Context, roomID string) error {
	patterns := []string{
		fmt.Sprintf("http:cache:*rooms/%s*", roomID),
		"http:cache:/api/rooms:*",
		"http:cache:*my-rooms*",
	}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}

	log.Debug().Str("room_id", roomID).Msg("Invalidated room caches")
	return nil
}
