package entry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, int, error)
	ListPayments(ctx context.Context, entryID uuid.UUID) ([]*Payment, error)

	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is a database transaction over entries and payments. LockEntry holds a row
// lock on the entry until Commit or Rollback, serializing concurrent writers.
type LedgerTx interface {
	LockEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListPayments(ctx context.Context, entryID uuid.UUID) ([]*Payment, error)
	CreatePayment(ctx context.Context, p *Payment) error
	CreateEntries(ctx context.Context, entries []*Entry) error
	UpdateEntry(ctx context.Context, e *Entry) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

// Notifier receives events after the change they describe has been committed.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service struct {
	repo      Repository
	notifiers []Notifier
	now       func() time.Time
}

func NewService(repo Repository, notifiers ...Notifier) *Service {
	return &Service{repo: repo, notifiers: notifiers, now: time.Now}
}

type CreateParams struct {
	Type        Type
	ContactID   uuid.UUID
	CategoryID  uuid.UUID
	Description string
	IssueDate   time.Time
	DueDate     time.Time
	Amount      decimal.Decimal
	Currency    string
	Tags        []string
	Notes       *string
}

type UpdateParams struct {
	Type        *Type
	ContactID   *uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	IssueDate   *time.Time
	DueDate     *time.Time
	Amount      *decimal.Decimal
	Tags        *[]string
	Notes       *string
}

type PaymentParams struct {
	Amount decimal.Decimal
	PaidAt time.Time
	Method Method
	Note   *string
}

type ListFilter struct {
	Type    *Type
	Status  *Status
	DueFrom *time.Time
	DueTo   *time.Time
	Search  string
	Page    int
	Limit   int // Zero disables paging
}

type Page struct {
	Entries    []*Entry
	Total      int
	Page       int
	TotalPages int
}

func (p CreateParams) validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown entry type %q", ErrInvalidRequest, p.Type)
	}

	if p.ContactID == uuid.Nil || p.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: contact and category are required", ErrInvalidRequest)
	}

	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}

	if p.IssueDate.IsZero() || p.DueDate.IsZero() {
		return fmt.Errorf("%w: issue and due dates are required", ErrInvalidRequest)
	}

	if p.Currency != "" && p.Currency != Currency {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalidRequest, p.Currency)
	}

	if !ValidAmount(p.Amount) {
		return &InvalidAmountError{Amount: p.Amount}
	}

	return nil
}

func (p CreateParams) toEntry() *Entry {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Entry{
		Type:        p.Type,
		ContactID:   p.ContactID,
		CategoryID:  p.CategoryID,
		Description: strings.TrimSpace(p.Description),
		IssueDate:   DateOnly(p.IssueDate),
		DueDate:     DateOnly(p.DueDate),
		Amount:      p.Amount.Round(MoneyPlaces),
		Currency:    Currency,
		Status:      StatusOpen,
		Tags:        tags,
		Notes:       p.Notes,
		PaidTotal:   decimal.Zero,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	e := params.toEntry()
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	s.notify(ctx, newEvent(EventEntryCreated, e, s.now()))

	return e, nil
}

// CreateBatch creates all entries in a single transaction or none of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	entries := make([]*Entry, len(params))
	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		entries[i] = p.toEntry()
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("create entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	at := s.now()
	for _, e := range entries {
		s.notify(ctx, newEvent(EventEntryCreated, e, at))
	}

	return entries, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}

	filter.Limit = min(filter.Limit, MaxPageSize)

	entries, total, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Entries:    entries,
		Total:      total,
		Page:       filter.Page,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

// ListAll returns every entry matching the filter, ignoring paging.
func (s *Service) ListAll(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	filter.Page, filter.Limit = 0, 0

	entries, _, err := s.repo.ListEntries(ctx, filter)

	return entries, err
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Entry, error) {
	if params.Type != nil && !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidRequest, *params.Type)
	}

	if params.Amount != nil && !ValidAmount(*params.Amount) {
		return nil, &InvalidAmountError{Amount: *params.Amount}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	e, err := tx.LockEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := tx.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	applyUpdate(e, params)

	if params.Amount != nil {
		paid := sumPayments(payments)
		if e.Amount.LessThan(paid) {
			return nil, &InvalidAmountError{Amount: e.Amount, Min: paid}
		}
	}

	rec, err := Reconcile(e.Amount, e.Status, payments)
	if err != nil {
		return nil, err
	}

	e.Status = rec.Status
	e.PaidTotal = rec.PaidTotal

	if err := tx.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	s.notify(ctx, newEvent(EventEntryUpdated, e, s.now()))

	return e, nil
}

func applyUpdate(e *Entry, p UpdateParams) {
	if p.Type != nil {
		e.Type = *p.Type
	}

	if p.ContactID != nil {
		e.ContactID = *p.ContactID
	}

	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}

	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}

	if p.IssueDate != nil {
		e.IssueDate = DateOnly(*p.IssueDate)
	}

	if p.DueDate != nil {
		e.DueDate = DateOnly(*p.DueDate)
	}

	if p.Amount != nil {
		e.Amount = p.Amount.Round(MoneyPlaces)
	}

	if p.Tags != nil {
		e.Tags = *p.Tags
	}

	if p.Notes != nil {
		e.Notes = p.Notes
	}
}

// Cancel moves an entry to canceled. Cancellation is one-way and keeps the payment
// history; a fully paid entry cannot be canceled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Entry, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel: %w", err)
	}
	defer tx.Rollback()

	e, err := tx.LockEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := tx.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	rec, err := Reconcile(e.Amount, e.Status, payments)
	if err != nil {
		return nil, err
	}

	e.PaidTotal = rec.PaidTotal

	switch rec.Status {
	case StatusCanceled:
		return e, nil
	case StatusPaid:
		return nil, &TerminalEntryError{Status: StatusPaid}
	}

	if err := tx.UpdateStatus(ctx, id, StatusCanceled); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel: %w", err)
	}

	e.Status = StatusCanceled
	s.notify(ctx, newEvent(EventEntryCanceled, e, s.now()))

	return e, nil
}

// Delete soft-deletes an entry. Entries with recorded payments cannot be deleted;
// cancel them instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	e, err := tx.LockEntry(ctx, id)
	if err != nil {
		return err
	}

	payments, err := tx.ListPayments(ctx, id)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	if len(payments) > 0 {
		return ErrHasPayments
	}

	if err := tx.DeleteEntry(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	s.notify(ctx, newEvent(EventEntryDeleted, e, s.now()))

	return nil
}

// Payments returns the payment history of an entry in chronological order.
func (s *Service) Payments(ctx context.Context, entryID uuid.UUID) ([]*Payment, error) {
	if _, err := s.repo.GetEntry(ctx, entryID); err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPayments(ctx, entryID)
	if err != nil {
		return nil, err
	}

	SortPayments(payments)

	return payments, nil
}

// Balance reconciles an entry against its committed payments.
func (s *Service) Balance(ctx context.Context, entryID uuid.UUID) (*Entry, Reconciliation, error) {
	e, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, Reconciliation{}, err
	}

	payments, err := s.repo.ListPayments(ctx, entryID)
	if err != nil {
		return nil, Reconciliation{}, err
	}

	rec, err := Reconcile(e.Amount, e.Status, payments)
	if err != nil {
		return nil, Reconciliation{}, err
	}

	return e, rec, nil
}

// RecordPayment accepts a payment against the committed state of the entry and persists
// it together with the reconciled status in one transaction.
func (s *Service) RecordPayment(ctx context.Context, entryID uuid.UUID, params PaymentParams) (*Payment, Reconciliation, error) {
	if !params.Method.Valid() {
		return nil, Reconciliation{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, params.Method)
	}

	if params.PaidAt.IsZero() {
		return nil, Reconciliation{}, fmt.Errorf("%w: payment date is required", ErrInvalidRequest)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, Reconciliation{}, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	e, err := tx.LockEntry(ctx, entryID)
	if err != nil {
		return nil, Reconciliation{}, err
	}

	payments, err := tx.ListPayments(ctx, entryID)
	if err != nil {
		return nil, Reconciliation{}, fmt.Errorf("list payments: %w", err)
	}

	rec, err := Accept(e.Amount, e.Status, payments, params.Amount)
	if err != nil {
		return nil, Reconciliation{}, err
	}

	p := &Payment{
		EntryID: entryID,
		Amount:  params.Amount.Round(MoneyPlaces),
		PaidAt:  DateOnly(params.PaidAt),
		Method:  params.Method,
		Note:    params.Note,
	}
	if err := tx.CreatePayment(ctx, p); err != nil {
		return nil, Reconciliation{}, err
	}

	if rec.Status != e.Status {
		if err := tx.UpdateStatus(ctx, entryID, rec.Status); err != nil {
			return nil, Reconciliation{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, Reconciliation{}, fmt.Errorf("commit payment: %w", err)
	}

	e.Status = rec.Status
	e.PaidTotal = rec.PaidTotal

	ev := newEvent(EventPaymentRecorded, e, s.now())
	ev.PaymentID = &p.ID
	s.notify(ctx, ev)

	return p, rec, nil
}

func (s *Service) notify(ctx context.Context, ev Event) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, ev); err != nil {
			slog.WarnContext(ctx, "failed to deliver event", "kind", ev.Kind, "entry_id", ev.EntryID, "error", err)
		}
	}
}

func sumPayments(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	return total
}
