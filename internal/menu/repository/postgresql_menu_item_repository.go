// Package repository provides data persistence implementations for menu items.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/database"
	apperrors "github.com/tableside/tableside/internal/errors"
	"github.com/tableside/tableside/internal/menu/domain"
)

// PostgreSQLMenuItemRepository handles menu item persistence for PostgreSQL.
type PostgreSQLMenuItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLMenuItemRepository creates a new PostgreSQLMenuItemRepository.
func NewPostgreSQLMenuItemRepository(db *sql.DB) *PostgreSQLMenuItemRepository {
	return &PostgreSQLMenuItemRepository{
		db: db,
	}
}

// Create inserts a new menu item.
func (r *PostgreSQLMenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO menu_items (id, restaurant_id, name, price_cents, category, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.PriceCents,
		item.Category,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create menu item")
	}
	return nil
}

// GetByID retrieves a menu item scoped to a restaurant.
func (r *PostgreSQLMenuItemRepository) GetByID(
	ctx context.Context,
	restaurantID, id uuid.UUID,
) (*domain.MenuItem, error) {
	var item domain.MenuItem
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, restaurant_id, name, price_cents, category, created_at, updated_at
			  FROM menu_items WHERE id = $1 AND restaurant_id = $2`

	err := querier.QueryRowContext(ctx, query, id, restaurantID).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.PriceCents,
		&item.Category,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get menu item by id")
	}

	return &item, nil
}

// ListByRestaurant retrieves a restaurant's menu items ordered by category
// and name.
func (r *PostgreSQLMenuItemRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID uuid.UUID,
	offset, limit int,
) ([]*domain.MenuItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, restaurant_id, name, price_cents, category, created_at, updated_at
			  FROM menu_items WHERE restaurant_id = $1
			  ORDER BY category, name LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list menu items")
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.PriceCents,
			&item.Category,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan menu item row")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate menu item rows")
	}

	return items, nil
}

// Update modifies a menu item. The restaurant scope is part of the match so
// an id under another restaurant reports not found.
func (r *PostgreSQLMenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE menu_items
			  SET name = $1,
			  	  price_cents = $2,
				  category = $3,
				  updated_at = NOW()
			  WHERE id = $4 AND restaurant_id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		item.Name,
		item.PriceCents,
		item.Category,
		item.ID,
		item.RestaurantID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update menu item")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}

	return nil
}

// Delete removes a menu item scoped to a restaurant.
func (r *PostgreSQLMenuItemRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`

	result, err := querier.ExecContext(ctx, query, id, restaurantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete menu item")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}

	return nil
}
