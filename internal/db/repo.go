package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Collection is a table-parameterized repository exposing the five generic
// operations (list/get/create/update/delete). Query construction stays behind
// this type; callers never build SQL themselves.
type Collection[T any] struct {
	db      *DB
	table   string
	orderBy string
}

// NewCollection creates a repository for table. Rows are scanned into T by
// column name via db struct tags.
func NewCollection[T any](db *DB, table string) *Collection[T] {
	return &Collection[T]{db: db, table: table, orderBy: "created_at DESC"}
}

// List retrieves rows matching the optional WHERE clause (without the WHERE
// keyword), ordered by creation time descending.
func (c *Collection[T]) List(ctx context.Context, where string, args ...any) ([]T, error) {
	query := fmt.Sprintf("SELECT * FROM %s", c.table)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + c.orderBy

	rows, err := c.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.table, err)
	}
	return items, nil
}

// Get retrieves a single row by ID. Returns nil, nil when the row does not
// exist.
func (c *Collection[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", c.table)
	rows, err := c.db.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", c.table, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", c.table, err)
	}
	return &item, nil
}

// Create inserts a row from the column→value mapping and returns the stored
// row.
func (c *Collection[T]) Create(ctx context.Context, values map[string]any) (*T, error) {
	cols := sortedKeys(values)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		c.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
	rows, err := c.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c.table, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c.table, err)
	}
	return &item, nil
}

// Update applies the column→value mapping to the row with the given ID and
// returns the updated row. Returns nil, nil when the row does not exist.
func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*T, error) {
	if len(values) == 0 {
		return c.Get(ctx, id)
	}

	cols := sortedKeys(values)
	assignments := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, values[col])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		c.table, strings.Join(assignments, ", "), len(cols)+1,
	)
	rows, err := c.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.table, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s: %w", c.table, err)
	}
	return &item, nil
}

// Delete removes the row with the given ID. Returns an error when the row
// does not exist.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table)
	result, err := c.db.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.table, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %s", c.table, id)
	}
	return nil
}

// sortedKeys returns map keys in a stable order so generated SQL is
// deterministic.
func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
