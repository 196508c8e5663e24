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

// MySQLMenuItemRepository handles menu item persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLMenuItemRepository struct {
	db *sql.DB
}

// NewMySQLMenuItemRepository creates a new MySQLMenuItemRepository.
func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{
		db: db,
	}
}

// Create inserts a new menu item.
func (r *MySQLMenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO menu_items (id, restaurant_id, name, price_cents, category, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	idBytes, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	restaurantIDBytes, err := item.RestaurantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		restaurantIDBytes,
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
func (r *MySQLMenuItemRepository) GetByID(
	ctx context.Context,
	restaurantID, id uuid.UUID,
) (*domain.MenuItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, restaurant_id, name, price_cents, category, created_at, updated_at
			  FROM menu_items WHERE id = ? AND restaurant_id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	restaurantIDBytes, err := restaurantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	item, err := scanMySQLMenuItem(querier.QueryRowContext(ctx, query, idBytes, restaurantIDBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get menu item by id")
	}

	return item, nil
}

// ListByRestaurant retrieves a restaurant's menu items ordered by category
// and name.
func (r *MySQLMenuItemRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID uuid.UUID,
	offset, limit int,
) ([]*domain.MenuItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, restaurant_id, name, price_cents, category, created_at, updated_at
			  FROM menu_items WHERE restaurant_id = ?
			  ORDER BY category, name LIMIT ? OFFSET ?`

	restaurantIDBytes, err := restaurantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, restaurantIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list menu items")
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanMySQLMenuItem(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan menu item row")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate menu item rows")
	}

	return items, nil
}

// Update modifies a menu item. The restaurant scope is part of the match so
// an id under another restaurant reports not found.
func (r *MySQLMenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE menu_items
			  SET name = ?,
			  	  price_cents = ?,
				  category = ?,
				  updated_at = NOW()
			  WHERE id = ? AND restaurant_id = ?`

	idBytes, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	restaurantIDBytes, err := item.RestaurantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		item.Name,
		item.PriceCents,
		item.Category,
		idBytes,
		restaurantIDBytes,
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
func (r *MySQLMenuItemRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM menu_items WHERE id = ? AND restaurant_id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	restaurantIDBytes, err := restaurantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes, restaurantIDBytes)
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

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLMenuItem scans a menu item row, converting the BINARY(16) id
// columns back into uuid.UUIDs.
func scanMySQLMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var idBytes, restaurantIDBytes []byte

	err := row.Scan(
		&idBytes,
		&restaurantIDBytes,
		&item.Name,
		&item.PriceCents,
		&item.Category,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, err
	}
	item.ID = id

	restaurantID, err := uuid.FromBytes(restaurantIDBytes)
	if err != nil {
		return nil, err
	}
	item.RestaurantID = restaurantID

	return &item, nil
}
