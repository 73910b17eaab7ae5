package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/contact"
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

const selectColumns = `id, name, email, phone, document, type, created_at, updated_at, deleted_at`

func scanContact(sc scanner) (*contact.Contact, error) {
	var (
		c       contact.Contact
		typeStr string
	)

	if err := sc.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document, &typeStr, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}

	c.Type = contact.Type(typeStr)

	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (name, email, phone, document, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Document, c.Type).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}

	return nil
}

func (s *Store) getOne(ctx context.Context, where string, arg any) (*contact.Contact, error) {
	query := `SELECT ` + selectColumns + ` FROM contacts WHERE deleted_at IS NULL AND ` + where + ` LIMIT 1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return c, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	return s.getOne(ctx, "id = $1", id)
}

func (s *Store) FindByName(ctx context.Context, name string) (*contact.Contact, error) {
	return s.getOne(ctx, "LOWER(name) = LOWER($1)", name)
}

func (s *Store) List(ctx context.Context, filter contact.ListFilter) ([]*contact.Contact, error) {
	query := `SELECT ` + selectColumns + ` FROM contacts WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%' OR document ILIKE '%%' || $%d || '%%')", argIdx, argIdx, argIdx)

		args = append(args, filter.Search)
	}

	query += " ORDER BY LOWER(name) ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return contacts, nil
}

func (s *Store) Update(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, document = $4, type = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Document, c.Type, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.ErrNotFound
		}

		return fmt.Errorf("updating contact: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE contacts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}

func (s *Store) CountEntries(ctx context.Context, id uuid.UUID) (int, error) {
	var n int

	query := `SELECT COUNT(*) FROM entries WHERE contact_id = $1 AND deleted_at IS NULL`
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting contact entries: %w", err)
	}

	return n, nil
}
