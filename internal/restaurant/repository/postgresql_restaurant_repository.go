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

// PostgreSQLRestaurantRepository handles restaurant persistence for PostgreSQL.
type PostgreSQLRestaurantRepository struct {
	db *sql.DB
}

// NewPostgreSQLRestaurantRepository creates a new PostgreSQLRestaurantRepository.
func NewPostgreSQLRestaurantRepository(db *sql.DB) *PostgreSQLRestaurantRepository {
	return &PostgreSQLRestaurantRepository{
		db: db,
	}
}

// Create inserts a new restaurant.
func (r *PostgreSQLRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO restaurants (id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, restaurant.ID, restaurant.Name, restaurant.Description)
	if err != nil {
		return apperrors.Wrap(err, "failed to create restaurant")
	}
	return nil
}

// GetByID retrieves a restaurant by ID.
func (r *PostgreSQLRestaurantRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM restaurants WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get restaurant by id")
	}

	return &restaurant, nil
}

// List retrieves restaurants ordered by creation time with pagination.
func (r *PostgreSQLRestaurantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Restaurant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM restaurants ORDER BY created_at LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list restaurants")
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		var restaurant domain.Restaurant
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Description,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan restaurant row")
		}
		restaurants = append(restaurants, &restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate restaurant rows")
	}

	return restaurants, nil
}

// Update modifies an existing restaurant.
func (r *PostgreSQLRestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE restaurants
			  SET name = $1,
			  	  description = $2,
				  updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, restaurant.Name, restaurant.Description, restaurant.ID)
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
func (r *PostgreSQLRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM restaurants WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
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
