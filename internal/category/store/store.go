package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, name, description, type, created_at, updated_at, deleted_at`

func scanCategory(sc scanner) (*category.Category, error) {
	var (
		c       category.Category
		typeStr string
	)

	if err := sc.Scan(&c.ID, &c.Name, &c.Description, &typeStr, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}

	c.Type = category.Type(typeStr)

	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, description, type, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Type).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

func (s *Store) getOne(ctx context.Context, where string, arg any) (*category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE deleted_at IS NULL AND ` + where + ` LIMIT 1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.getOne(ctx, "id = $1", id)
}

func (s *Store) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return s.getOne(ctx, "LOWER(name) = LOWER($1)", name)
}

func (s *Store) List(ctx context.Context, typ *category.Type) ([]*category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE deleted_at IS NULL`

	var args []any

	if typ != nil {
		query += " AND type = $1"

		args = append(args, *typ)
	}

	query += " ORDER BY LOWER(name) ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func (s *Store) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, type = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Type, c.ID).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE categories SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}

func (s *Store) CountEntries(ctx context.Context, id uuid.UUID) (int, error) {
	var n int

	query := `SELECT COUNT(*) FROM entries WHERE category_id = $1 AND deleted_at IS NULL`
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting category entries: %w", err)
	}

	return n, nil
}
