package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"einkauf/internal/items/models"
	"einkauf/pkg/platform/sentinel"
)

// Postgres persists items via pgx. The sort_order column name avoids the
// reserved word; the model still calls it Order.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const itemColumns = "id, name, bought, quantity, sort_order, created_at"

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	err := row.Scan(&item.ID, &item.Name, &item.Bought, &item.Quantity, &item.Order, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Item, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+itemColumns+" FROM shopping_items ORDER BY sort_order ASC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *Postgres) FindByNameKey(ctx context.Context, key string) (*models.Item, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM shopping_items WHERE name_key = $1 LIMIT 1", key)
	return scanItem(row)
}

func (s *Postgres) Create(ctx context.Context, item models.Item) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO shopping_items (id, name, name_key, bought, quantity, sort_order, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Name, models.NameKey(item.Name), item.Bought, item.Quantity, item.Order, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Update builds a single UPDATE from the non-nil fields so the partial write
// is one atomic statement, mirroring a document store's findAndModify.
func (s *Postgres) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*models.Item, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		add("name", *fields.Name)
		add("name_key", models.NameKey(*fields.Name))
	}
	if fields.Bought != nil {
		add("bought", *fields.Bought)
	}
	if fields.Quantity != nil {
		add("quantity", *fields.Quantity)
	}
	if fields.Order != nil {
		add("sort_order", *fields.Order)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("update item: no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE shopping_items SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), itemColumns)

	return scanItem(s.pool.QueryRow(ctx, query, args...))
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM shopping_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
