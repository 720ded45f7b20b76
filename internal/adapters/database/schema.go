package database

import (
	"context"

	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// EnsureSchema creates the rooms and favorites tables when they do not exist.
// The UNIQUE pair constraint and the FK cascade are declared here so the data
// layer enforces the invariants even if application-level checks race.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rooms (
		id                UUID PRIMARY KEY,
		owner_id          TEXT NOT NULL,
		title             TEXT NOT NULL,
		location          TEXT NOT NULL,
		price             NUMERIC(12, 2) NOT NULL CHECK (price > 0),
		property_type     TEXT NOT NULL,
		tenant_preference TEXT NOT NULL DEFAULT 'Any',
		contact_number    TEXT NOT NULL,
		image_url         TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_rooms_created_at ON rooms (created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_rooms_owner_id ON rooms (owner_id);
	CREATE INDEX IF NOT EXISTS idx_rooms_property_type ON rooms (property_type);

	CREATE TABLE IF NOT EXISTS favorites (
		user_id    TEXT NOT NULL,
		room_id    UUID NOT NULL REFERENCES rooms (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT favorites_user_room_unique UNIQUE (user_id, room_id)
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites (user_id);
	CREATE INDEX IF NOT EXISTS idx_favorites_room_id ON favorites (room_id);
	`

	if _, err := client.DB().ExecContext(ctx, schema); err != nil {
		return apperrors.NewInternalError("failed to ensure schema", err)
	}

	return nil
}
