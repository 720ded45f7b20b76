package main

import (
	"context"
	"os"

	"github.com/roomnest/roomrental/backend/internal/adapters/database"
	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/postgres"
	"github.com/roomnest/roomrental/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				favorites,
				rooms
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	roomRepo := database.NewRoomAdapter(pgClient)
	favoriteRepo := database.NewFavoriteAdapter(pgClient)
	roomService := services.NewRoomService(roomRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, roomRepo)

	// 1. Seed rooms
	listings := []struct {
		owner string
		input services.CreateRoomInput
	}{
		{"seed-owner-1", services.CreateRoomInput{
			Title: "Sunny 1BHK near Indiranagar metro", Location: "Indiranagar, Bangalore",
			Price: 14500, PropertyType: "1BHK", TenantPreference: "Working",
			ContactNumber: "+91-9812345670",
		}},
		{"seed-owner-1", services.CreateRoomInput{
			Title: "Single room in shared flat", Location: "Koramangala, Bangalore",
			Price: 8000, PropertyType: "Single Room", TenantPreference: "Bachelor",
			ContactNumber: "+91-9812345670",
		}},
		{"seed-owner-2", services.CreateRoomInput{
			Title: "Spacious 2BHK with balcony", Location: "HSR Layout, Bangalore",
			Price: 24000, PropertyType: "2BHK", TenantPreference: "Family",
			ContactNumber: "+91-9900112233",
		}},
		{"seed-owner-2", services.CreateRoomInput{
			Title: "PG room for girls, food included", Location: "BTM Layout, Bangalore",
			Price: 9500, PropertyType: "PG", TenantPreference: "Girls",
			ContactNumber: "+91-9900112233",
		}},
		{"seed-owner-3", services.CreateRoomInput{
			Title: "Studio apartment near tech park", Location: "Whitefield, Bangalore",
			Price: 17000, PropertyType: "Studio",
			ContactNumber: "+91-9977665544",
		}},
	}

	rooms := make([]*entities.Room, 0, len(listings))
	for _, listing := range listings {
		room, err := roomService.CreateRoom(ctx, listing.owner, &listing.input)
		if err != nil {
			log.Error().Err(err).Str("title", listing.input.Title).Msg("Failed to create room")
			continue
		}
		rooms = append(rooms, room)
	}
	log.Info().Int("count", len(rooms)).Msg("Seeded rooms")

	// 2. Seed a few favorites
	if len(rooms) >= 3 {
		favoritePairs := []struct {
			userID string
			roomID string
		}{
			{"seed-user-1", rooms[0].ID},
			{"seed-user-1", rooms[2].ID},
			{"seed-user-2", rooms[0].ID},
		}

		for _, pair := range favoritePairs {
			if _, err := favoriteService.ToggleFavorite(ctx, pair.userID, pair.roomID); err != nil {
				log.Error().Err(err).Str("user_id", pair.userID).Str("room_id", pair.roomID).
					Msg("Failed to favorite room")
			}
		}
		log.Info().Int("count", len(favoritePairs)).Msg("Seeded favorites")
	}

	log.Info().Msg("Seeding complete")
}
