//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/roomnest/roomrental/backend/internal/adapters/database"
	"github.com/roomnest/roomrental/backend/internal/adapters/events"
	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForRoomEvent(t *testing.T, events <-chan *entities.RoomEvent) *entities.RoomEvent {
	t.Helper()

	select {
	case event := <-events:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for room event")
		return nil
	}
}

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	channel := providers.EventChannelRoomUpdates
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewRoomEvent("room-redis-1", "owner-redis-1",
		entities.RoomEventTypeUpdated, map[string]interface{}{"price": 9999.0})

	err = eventBus.Publish(context.Background(), channel, event)
	require.NoError(t, err)

	received1 := waitForRoomEvent(t, sub1)
	received2 := waitForRoomEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
}

func TestRoomLifecycle_PostgresAndEvents(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" || os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST or TEST_REDIS_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()
	cleanupRoomData(t, dbClient)

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	roomRepo := database.NewRoomAdapter(dbClient)
	favoriteRepo := database.NewFavoriteAdapter(dbClient)

	roomService := services.NewRoomService(roomRepo)
	roomService.SetEventBus(eventBus)
	favoriteService := services.NewFavoriteService(favoriteRepo, roomRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := eventBus.Subscribe(ctx, providers.EventChannelRoomUpdates)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	// Create
	room, err := roomService.CreateRoom(ctx, "it-owner-1", &services.CreateRoomInput{
		Title:         "Integration test room",
		Location:      "Indiranagar, Bangalore",
		Price:         11000,
		PropertyType:  "1BHK",
		ContactNumber: "+91-9000000001",
	})
	require.NoError(t, err)

	created := waitForRoomEvent(t, eventChan)
	assert.Equal(t, entities.RoomEventTypeCreated, created.EventType)
	assert.Equal(t, room.ID, created.RoomID)

	// Favorite it from two users
	result, err := favoriteService.ToggleFavorite(ctx, "it-user-1", room.ID)
	require.NoError(t, err)
	assert.True(t, result.Favorited)

	result, err = favoriteService.ToggleFavorite(ctx, "it-user-2", room.ID)
	require.NoError(t, err)
	assert.True(t, result.Favorited)

	favorites, err := favoriteService.ListFavorites(ctx, "it-user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, room.ID, favorites[0].ID)

	// Delete cascades favorites
	require.NoError(t, roomService.DeleteRoom(ctx, room.ID, "it-owner-1"))

	deleted := waitForRoomEvent(t, eventChan)
	assert.Equal(t, entities.RoomEventTypeDeleted, deleted.EventType)

	favorites, err = favoriteService.ListFavorites(ctx, "it-user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	exists, err := favoriteRepo.Exists(ctx, "it-user-2", room.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	cleanupRoomData(t, dbClient)
}
