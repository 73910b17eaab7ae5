package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

type Store struct {
	db   *sql.DB
	tmap *pgtype.Map
}

func New(db *sql.DB) *Store {
	return &Store{db: db, tmap: pgtype.NewMap()}
}

const foreignKeyViolation = "23503"

// translate maps constraint violations on entry writes to request errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: unknown contact or category", entry.ErrInvalidRequest)
	}

	return err
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: entryColumns followed by paid_total.
const entryColumns = `
	e.id, e.type, e.contact_id, e.category_id, e.description, e.issue_date, e.due_date,
	e.amount, e.currency, e.status, e.tags, e.notes, e.created_at, e.updated_at, e.deleted_at
`

const paidTotalJoin = `
	LEFT JOIN LATERAL (
		SELECT COALESCE(SUM(amount), 0) AS paid_total FROM payments WHERE entry_id = e.id
	) p ON TRUE
`

func (s *Store) scanEntry(sc scanner) (*entry.Entry, error) {
	var (
		e                  entry.Entry
		typeStr, statusStr string
		notes              sql.NullString
	)

	if err := sc.Scan(
		&e.ID, &typeStr, &e.ContactID, &e.CategoryID, &e.Description, &e.IssueDate, &e.DueDate,
		&e.Amount, &e.Currency, &statusStr, s.tmap.SQLScanner(&e.Tags), &notes,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.PaidTotal,
	); err != nil {
		return nil, err
	}

	e.Type = entry.Type(typeStr)
	e.Status = entry.Status(statusStr)

	if notes.Valid {
		e.Notes = &notes.String
	}

	if e.Tags == nil {
		e.Tags = []string{}
	}

	return &e, nil
}

func scanPayment(sc scanner) (*entry.Payment, error) {
	var (
		p         entry.Payment
		methodStr string
		note      sql.NullString
	)

	if err := sc.Scan(&p.ID, &p.EntryID, &p.Amount, &p.PaidAt, &methodStr, &note, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Method = entry.Method(methodStr)

	if note.Valid {
		p.Note = &note.String
	}

	return &p, nil
}

const insertEntryQuery = `
	INSERT INTO entries (type, contact_id, category_id, description, issue_date, due_date, amount, currency, status, tags, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertEntry(ctx context.Context, q queryer, e *entry.Entry) error {
	err := q.QueryRowContext(ctx, insertEntryQuery,
		e.Type,
		e.ContactID,
		e.CategoryID,
		e.Description,
		e.IssueDate,
		e.DueDate,
		e.Amount,
		e.Currency,
		e.Status,
		e.Tags,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", translate(err))
	}

	return nil
}

func (s *Store) CreateEntry(ctx context.Context, e *entry.Entry) error {
	return insertEntry(ctx, s.db, e)
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + `, p.paid_total
		FROM entries e` + paidTotalJoin + `
		WHERE e.id = $1 AND e.deleted_at IS NULL`

	e, err := s.scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func buildWhere(filter entry.ListFilter) (string, []any) {
	where := " WHERE e.deleted_at IS NULL"

	var args []any

	argIdx := 1

	if filter.Type != nil {
		where += fmt.Sprintf(" AND e.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil {
		where += fmt.Sprintf(" AND e.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.DueFrom != nil {
		where += fmt.Sprintf(" AND e.due_date >= $%d", argIdx)

		args = append(args, *filter.DueFrom)
		argIdx++
	}

	if filter.DueTo != nil {
		where += fmt.Sprintf(" AND e.due_date <= $%d", argIdx)

		args = append(args, *filter.DueTo)
		argIdx++
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		where += fmt.Sprintf(" AND (e.description ILIKE '%%' || $%d || '%%' OR e.notes ILIKE '%%' || $%d || '%%')", argIdx, argIdx)

		args = append(args, search)
	}

	return where, args
}

func (s *Store) ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting entries: %w", err)
	}

	query := `SELECT ` + entryColumns + `, p.paid_total
		FROM entries e` + paidTotalJoin + where + `
		ORDER BY e.due_date ASC, e.created_at ASC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, (max(filter.Page, 1)-1)*filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, total, nil
}

const selectPaymentsQuery = `
	SELECT id, entry_id, amount, paid_at, method, note, created_at
	FROM payments
	WHERE entry_id = $1
	ORDER BY paid_at ASC, created_at ASC
`

func listPayments(ctx context.Context, q queryer, entryID uuid.UUID) ([]*entry.Payment, error) {
	rows, err := q.QueryContext(ctx, selectPaymentsQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*entry.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) ListPayments(ctx context.Context, entryID uuid.UUID) ([]*entry.Payment, error) {
	return listPayments(ctx, s.db, entryID)
}

type ledgerTx struct {
	store *Store
	tx    *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (entry.LedgerTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{store: s, tx: tx}, nil
}

func (ltx *ledgerTx) Commit() error   { return ltx.tx.Commit() }
func (ltx *ledgerTx) Rollback() error { return ltx.tx.Rollback() }

// LockEntry reads the entry with a row lock held until the transaction ends. The paid
// total is left at zero: callers read payments within the same transaction.
func (ltx *ledgerTx) LockEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + `, 0::numeric
		FROM entries e
		WHERE e.id = $1 AND e.deleted_at IS NULL
		FOR UPDATE`

	e, err := ltx.store.scanEntry(ltx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("locking entry: %w", err)
	}

	return e, nil
}

func (ltx *ledgerTx) ListPayments(ctx context.Context, entryID uuid.UUID) ([]*entry.Payment, error) {
	return listPayments(ctx, ltx.tx, entryID)
}

func (ltx *ledgerTx) CreatePayment(ctx context.Context, p *entry.Payment) error {
	query := `
		INSERT INTO payments (entry_id, amount, paid_at, method, note, created_at)
		VALUES ($1, $2, $3, $4, $5, clock_timestamp())
		RETURNING id, created_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		p.EntryID,
		p.Amount,
		p.PaidAt,
		p.Method,
		p.Note,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (ltx *ledgerTx) CreateEntries(ctx context.Context, entries []*entry.Entry) error {
	for _, e := range entries {
		if err := insertEntry(ctx, ltx.tx, e); err != nil {
			return err
		}
	}

	return nil
}

func (ltx *ledgerTx) UpdateEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET type = $1, contact_id = $2, category_id = $3, description = $4, issue_date = $5,
			due_date = $6, amount = $7, status = $8, tags = $9, notes = $10, updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		e.Type,
		e.ContactID,
		e.CategoryID,
		e.Description,
		e.IssueDate,
		e.DueDate,
		e.Amount,
		e.Status,
		e.Tags,
		e.Notes,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.ErrNotFound
		}

		return fmt.Errorf("updating entry: %w", translate(err))
	}

	return nil
}

func (ltx *ledgerTx) UpdateStatus(ctx context.Context, id uuid.UUID, status entry.Status) error {
	query := `
		UPDATE entries
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	if _, err := ltx.tx.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (ltx *ledgerTx) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE entries
		SET deleted_at = NOW()
		WHERE id = $1
	`

	if _, err := ltx.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}
