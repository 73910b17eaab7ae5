package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes money owed by us from money owed to us.
type Type string

const (
	TypePayable    Type = "payable"
	TypeReceivable Type = "receivable"
)

func (t Type) Valid() bool {
	return t == TypePayable || t == TypeReceivable
}

// Status is the persisted lifecycle state of an entry. Apart from StatusCanceled it is
// always the result of reconciling the entry amount against its payments.
type Status string

const (
	StatusOpen     Status = "open"
	StatusPartial  Status = "partial"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPartial, StatusPaid, StatusCanceled:
		return true
	}

	return false
}

// Terminal reports whether the status no longer accepts payments.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCanceled
}

// Method is how a payment was settled.
type Method string

const (
	MethodPix      Method = "pix"
	MethodBoleto   Method = "boleto"
	MethodCard     Method = "cartao"
	MethodTransfer Method = "transf"
)

func (m Method) Valid() bool {
	switch m {
	case MethodPix, MethodBoleto, MethodCard, MethodTransfer:
		return true
	}

	return false
}

// Currency is the only supported currency code.
const Currency = "BRL"

// Entry is a payable or receivable obligation.
type Entry struct {
	ID          uuid.UUID
	Type        Type
	ContactID   uuid.UUID
	CategoryID  uuid.UUID
	Description string
	IssueDate   time.Time
	DueDate     time.Time
	Amount      decimal.Decimal
	Currency    string
	Status      Status
	Tags        []string
	Notes       *string
	PaidTotal   decimal.Decimal // Aggregated from payments on read
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Remaining is the unpaid part of the entry, floored at zero.
func (e *Entry) Remaining() decimal.Decimal {
	r := e.Amount.Sub(e.PaidTotal)
	if r.IsNegative() {
		return decimal.Zero
	}

	return r
}

// Payment is a settlement recorded against an entry.
type Payment struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
	Method    Method
	Note      *string
	CreatedAt time.Time
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
