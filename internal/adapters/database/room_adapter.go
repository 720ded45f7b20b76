package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// RoomAdapter implements room persistence in Postgres.
type RoomAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.RoomRepository = (*RoomAdapter)(nil)

// NewRoomAdapter creates a new room adapter
func NewRoomAdapter(client *postgres.Client) *RoomAdapter {
	return &RoomAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

const roomColumns = "id, owner_id, title, location, price, property_type, tenant_preference, contact_number, image_url, created_at, updated_at"

// Create inserts a new room
func (a *RoomAdapter) Create(ctx context.Context, room *entities.Room) error {
	record := goqu.Record{
		"id":                room.ID,
		"owner_id":          room.OwnerID,
		"title":             room.Title,
		"location":          room.Location,
		"price":             room.Price,
		"property_type":     room.PropertyType,
		"tenant_preference": string(room.TenantPreference),
		"contact_number":    room.ContactNumber,
		"image_url":         sql.NullString{String: room.ImageURL, Valid: room.ImageURL != ""},
		"created_at":        room.CreatedAt,
		"updated_at":        room.UpdatedAt,
	}

	query, args, err := a.db.Insert("rooms").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build room insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create room", err)
	}

	return nil
}

// GetByID retrieves a room by ID
func (a *RoomAdapter) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	query, args, err := a.db.Select(goqu.L(roomColumns)).From("rooms").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build room query", err)
	}

	room, err := scanRoom(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get room", err)
	}

	return room, nil
}

// List retrieves rooms matching the filter, newest first
func (a *RoomAdapter) List(ctx context.Context, filter repositories.RoomFilter) ([]*entities.Room, error) {
	ds := a.db.Select(goqu.L(roomColumns)).From("rooms")

	if filter.Location != "" {
		ds = ds.Where(goqu.I("location").ILike("%" + filter.Location + "%"))
	}
	if filter.PropertyType != "" {
		ds = ds.Where(goqu.Ex{"property_type": filter.PropertyType})
	}
	if filter.MinPrice != nil {
		ds = ds.Where(goqu.I("price").Gte(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		ds = ds.Where(goqu.I("price").Lte(*filter.MaxPrice))
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build room list query", err)
	}

	return a.queryRooms(ctx, query, args...)
}

// ListByOwner retrieves all rooms owned by ownerID, newest first
func (a *RoomAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Room, error) {
	query, args, err := a.db.Select(goqu.L(roomColumns)).From("rooms").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build owner room query", err)
	}

	return a.queryRooms(ctx, query, args...)
}

// Update persists the mutable fields of a room
func (a *RoomAdapter) Update(ctx context.Context, room *entities.Room) error {
	room.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"title":             room.Title,
		"location":          room.Location,
		"price":             room.Price,
		"property_type":     room.PropertyType,
		"tenant_preference": string(room.TenantPreference),
		"contact_number":    room.ContactNumber,
		"image_url":         sql.NullString{String: room.ImageURL, Valid: room.ImageURL != ""},
		"updated_at":        room.UpdatedAt,
	}

	query, args, err := a.db.Update("rooms").
		Set(record).
		Where(goqu.Ex{"id": room.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build room update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update room", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", room.ID))
	}

	return nil
}

// Delete removes the room and every favorite referencing it in one
// transaction, so no orphaned favorite can survive a deleted room.
func (a *RoomAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE room_id = $1", id); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to delete room favorites", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to delete room", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		tx.Rollback()
		return apperrors.NewNotFoundError(fmt.Sprintf("room with id %s not found", id))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit room delete", err)
	}

	return nil
}

func (a *RoomAdapter) queryRooms(ctx context.Context, query string, args ...interface{}) ([]*entities.Room, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query rooms", err)
	}
	defer rows.Close()

	rooms := []*entities.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan room", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating rooms", err)
	}

	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*entities.Room, error) {
	room := &entities.Room{}
	var imageURL sql.NullString
	var tenantPreference string

	err := row.Scan(
		&room.ID,
		&room.OwnerID,
		&room.Title,
		&room.Location,
		&room.Price,
		&room.PropertyType,
		&tenantPreference,
		&room.ContactNumber,
		&imageURL,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.TenantPreference = entities.TenantPreference(tenantPreference)
	room.ImageURL = imageURL.String
	return room, nil
}
