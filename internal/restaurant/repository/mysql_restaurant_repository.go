// Package repository provides data persistence implementations for restaurant entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/database"
	apperrors "github.com/tableside/tableside/internal/errors"
	"github.com/tableside/tableside/internal/restaurant/domain"
)

// MySQLRestaurantRepository handles restaurant persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLRestaurantRepository struct {
	db *sql.DB
}

// NewMySQLRestaurantRepository creates a new MySQLRestaurantRepository.
func NewMySQLRestaurantRepository(db *sql.DB) *MySQLRestaurantRepository {
	return &MySQLRestaurantRepository{
		db: db,
	}
}

// Create inserts a new restaurant.
func (r *MySQLRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO restaurants (id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	uuidBytes, err := restaurant.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, restaurant.Name, restaurant.Description)
	if err != nil {
		return apperrors.Wrap(err, "failed to create restaurant")
	}
	return nil
}

// GetByID retrieves a restaurant by ID.
func (r *MySQLRestaurantRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Restaurant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM restaurants WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	restaurant, err := scanMySQLRestaurant(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get restaurant by id")
	}

	return restaurant, nil
}

// List retrieves restaurants ordered by creation time with pagination.
func (r *MySQLRestaurantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Restaurant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM restaurants ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list restaurants")
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		restaurant, err := scanMySQLRestaurant(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan restaurant row")
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate restaurant rows")
	}

	return restaurants, nil
}

// Update modifies an existing restaurant.
func (r *MySQLRestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE restaurants
			  SET name = ?,
			  	  description = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := restaurant.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, restaurant.Name, restaurant.Description, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update restaurant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrRestaurantNotFound
	}

	return nil
}

// Delete removes a restaurant by ID. Menu items cascade at the schema level.
func (r *MySQLRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM restaurants WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete restaurant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrRestaurantNotFound
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLRestaurant scans a restaurant row, converting the BINARY(16) id
// column back into a uuid.UUID.
func scanMySQLRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var uuidBytes []byte

	err := row.Scan(
		&uuidBytes,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(uuidBytes)
	if err != nil {
		return nil, err
	}
	restaurant.ID = id

	return &restaurant, nil
}
