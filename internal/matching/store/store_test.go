package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/contas/internal/matching"
)

func TestTranslate(t *testing.T) {
	type testCase struct {
		name    string
		err     error
		wantErr error
	}

	boom := errors.New("connection reset")

	tests := []testCase{
		{
			name:    "UnknownCategory",
			err:     &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "description_mappings_category_id_fkey"},
			wantErr: matching.ErrInvalidRule,
		},
		{
			name:    "WrappedUnknownCategory",
			err:     fmt.Errorf("exec: %w", &pgconn.PgError{Code: foreignKeyViolation}),
			wantErr: matching.ErrInvalidRule,
		},
		{
			name:    "OtherConstraint",
			err:     &pgconn.PgError{Code: "23505"},
			wantErr: nil,
		},
		{
			name:    "NotAPostgresError",
			err:     boom,
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)

			if tt.wantErr == nil {
				assert.NotErrorIs(t, got, matching.ErrInvalidRule)
				return
			}

			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestFindMatchQuery_LiteralPatterns(t *testing.T) {
	assert.NotContains(t, findMatchQuery, "LIKE")
	assert.Contains(t, findMatchQuery, "strpos(LOWER($1), LOWER(m.pattern)) > 0")
}
