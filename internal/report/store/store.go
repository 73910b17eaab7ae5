package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) OpenBalances(ctx context.Context) ([]report.Balance, error) {
	query := `
		SELECT e.type, e.due_date, e.amount - COALESCE(p.paid_total, 0)
		FROM entries e
		LEFT JOIN (
			SELECT entry_id, SUM(amount) AS paid_total FROM payments GROUP BY entry_id
		) p ON p.entry_id = e.id
		WHERE e.deleted_at IS NULL AND e.status IN ($1, $2)
	`

	rows, err := s.db.QueryContext(ctx, query, entry.StatusOpen, entry.StatusPartial)
	if err != nil {
		return nil, fmt.Errorf("querying open balances: %w", err)
	}
	defer rows.Close()

	var balances []report.Balance

	for rows.Next() {
		var (
			b       report.Balance
			typeStr string
		)

		if err := rows.Scan(&typeStr, &b.DueDate, &b.Remaining); err != nil {
			return nil, fmt.Errorf("scanning open balance: %w", err)
		}

		b.Type = entry.Type(typeStr)
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating open balances: %w", err)
	}

	return balances, nil
}

func (s *Store) PaymentFlows(ctx context.Context, from, to time.Time) ([]report.Flow, error) {
	query := `
		SELECT p.paid_at, e.type, SUM(p.amount)
		FROM payments p
		JOIN entries e ON e.id = p.entry_id
		WHERE e.deleted_at IS NULL AND p.paid_at BETWEEN $1 AND $2
		GROUP BY p.paid_at, e.type
		ORDER BY p.paid_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying payment flows: %w", err)
	}
	defer rows.Close()

	var flows []report.Flow

	for rows.Next() {
		var (
			f       report.Flow
			typeStr string
		)

		if err := rows.Scan(&f.Date, &typeStr, &f.Amount); err != nil {
			return nil, fmt.Errorf("scanning payment flow: %w", err)
		}

		f.Type = entry.Type(typeStr)
		flows = append(flows, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment flows: %w", err)
	}

	return flows, nil
}
