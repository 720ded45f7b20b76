package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/roomnest/roomrental/backend/internal/domain/entities"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/roomnest/roomrental/backend/pkg/errors"
)

// pqUniqueViolation is the Postgres error code for a unique constraint violation.
const pqUniqueViolation = "23505"

// FavoriteAdapter implements favorite persistence in Postgres. The
// UNIQUE (user_id, room_id) constraint on the favorites table is the source
// of truth for pair membership under concurrent writers.
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.FavoriteRepository = (*FavoriteAdapter)(nil)

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) *FavoriteAdapter {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert creates the (user, room) association. A concurrent insert that lost
// the race surfaces as a CONFLICT error, never as a storage failure.
func (a *FavoriteAdapter) Insert(ctx context.Context, favorite *entities.Favorite) error {
	record := goqu.Record{
		"user_id":    favorite.UserID,
		"room_id":    favorite.RoomID,
		"created_at": favorite.CreatedAt,
	}

	query, args, err := a.db.Insert("favorites").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return apperrors.NewConflictError(
				fmt.Sprintf("favorite (%s, %s) already exists", favorite.UserID, favorite.RoomID))
		}
		return apperrors.NewInternalError("failed to insert favorite", err)
	}

	return nil
}

// Delete removes the (user, room) association. A delete that found no row,
// because a concurrent caller removed it first, surfaces as NOT_FOUND.
func (a *FavoriteAdapter) Delete(ctx context.Context, userID, roomID string) error {
	query, args, err := a.db.Delete("favorites").
		Where(goqu.Ex{"user_id": userID, "room_id": roomID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete favorite", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("favorite (%s, %s) not found", userID, roomID))
	}

	return nil
}

// Exists reports whether the (user, room) association is present
func (a *FavoriteAdapter) Exists(ctx context.Context, userID, roomID string) (bool, error) {
	query, args, err := a.db.Select(goqu.L("1")).From("favorites").
		Where(goqu.Ex{"user_id": userID, "room_id": roomID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build favorite exists query", err)
	}

	var one int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to check favorite existence", err)
	}

	return true, nil
}

// ListByUser retrieves all favorites of a user, newest first
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	query, args, err := a.db.Select("user_id", "room_id", "created_at").From("favorites").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favorite list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	favorites := []*entities.Favorite{}
	for rows.Next() {
		favorite := &entities.Favorite{}
		if err := rows.Scan(&favorite.UserID, &favorite.RoomID, &favorite.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan favorite", err)
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating favorites", err)
	}

	return favorites, nil
}

// DeleteByRoom removes every favorite referencing the room
func (a *FavoriteAdapter) DeleteByRoom(ctx context.Context, roomID string) error {
	query, args, err := a.db.Delete("favorites").
		Where(goqu.Ex{"room_id": roomID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite cleanup query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete room favorites", err)
	}

	return nil
}
