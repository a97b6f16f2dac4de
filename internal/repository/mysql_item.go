package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keremsimsek1907/nova-app/internal/model"
)

// MySQLItemRepository handles item persistence in MySQL.
type MySQLItemRepository struct {
	db *sql.DB
}

var _ ItemRepository = (*MySQLItemRepository)(nil)

// NewMySQLItemRepository creates a new MySQLItemRepository.
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

// Create inserts a new item owned by item.OwnerID.
func (r *MySQLItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `INSERT INTO items (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	if _, err := r.db.ExecContext(ctx, query, id, item.OwnerID, item.Name, createdAt); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	item.ID = id
	item.CreatedAt = createdAt
	return nil
}

// ListByOwner retrieves all items of an owner, most recently created first.
// The auto-increment seq column orders rows created within the same microsecond.
func (r *MySQLItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	query := `SELECT id, owner_id, name, created_at
		FROM items WHERE owner_id = ? ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// DeleteByOwner removes an item only when both id and owner match.
func (r *MySQLItemRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (bool, error) {
	query := `DELETE FROM items WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
