package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/contas/internal/matching"
)

const foreignKeyViolation = "23503"

// findMatchQuery compares patterns as literal substrings; a rule such as "50%" must not
// act as a wildcard.
const findMatchQuery = `
	SELECT m.category_id
	FROM description_mappings m
	JOIN categories c ON c.id = m.category_id AND c.deleted_at IS NULL
	WHERE strpos(LOWER($1), LOWER(m.pattern)) > 0
	ORDER BY LENGTH(m.pattern) DESC, m.created_at DESC
	LIMIT 1
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, description string) (uuid.UUID, error) {
	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, findMatchQuery, description).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("finding match: %w", err)
	}

	return categoryID, nil
}

func (s *Store) SaveRule(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO description_mappings (pattern, category_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT ((LOWER(pattern))) DO UPDATE
		SET category_id = EXCLUDED.category_id, created_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, categoryID); err != nil {
		return fmt.Errorf("saving matching rule: %w", translate(err))
	}

	return nil
}

// translate reports a rule pointing at a missing category as an invalid rule.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: unknown category", matching.ErrInvalidRule)
	}

	return err
}
