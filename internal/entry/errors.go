package entry

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("entry not found")
	ErrHasPayments    = errors.New("entry has recorded payments")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrOverpayment    = errors.New("payment exceeds remaining balance")
	ErrTerminalEntry  = errors.New("entry does not accept payments")
	ErrConsistency    = errors.New("paid total exceeds entry amount")
	ErrInvalidRequest = errors.New("invalid request")
)

// InvalidAmountError rejects a non-positive amount, an amount with fractions of a cent,
// or an entry amount that would fall below what has already been paid.
type InvalidAmountError struct {
	Amount decimal.Decimal
	Min    decimal.Decimal // Smallest accepted value, exclusive when zero
}

func (e *InvalidAmountError) Error() string {
	if e.Min.IsPositive() {
		return fmt.Sprintf("invalid amount %s: must be at least %s", e.Amount.StringFixed(2), e.Min.StringFixed(2))
	}

	if !e.Amount.Equal(e.Amount.Round(MoneyPlaces)) {
		return fmt.Sprintf("invalid amount %s: at most %d decimal places", e.Amount.String(), MoneyPlaces)
	}

	return fmt.Sprintf("invalid amount %s: must be positive", e.Amount.StringFixed(MoneyPlaces))
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

// OverpaymentError rejects a payment larger than the current remaining balance.
type OverpaymentError struct {
	Amount    decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining balance of %s",
		e.Amount.StringFixed(2), e.Remaining.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error { return ErrOverpayment }

// TerminalEntryError rejects a payment against a paid or canceled entry.
type TerminalEntryError struct {
	Status Status
}

func (e *TerminalEntryError) Error() string {
	return fmt.Sprintf("entry is %s and does not accept payments", e.Status)
}

func (e *TerminalEntryError) Unwrap() error { return ErrTerminalEntry }

// ConsistencyError signals stored payments that already exceed the entry amount.
// It never occurs under correct operation and is not corrected automatically.
type ConsistencyError struct {
	Amount    decimal.Decimal
	PaidTotal decimal.Decimal
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("data integrity: paid total %s exceeds entry amount %s",
		e.PaidTotal.StringFixed(2), e.Amount.StringFixed(2))
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }
