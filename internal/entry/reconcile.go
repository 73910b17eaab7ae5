package entry

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places amounts are stored with.
const MoneyPlaces = 2

// ValidAmount reports whether d is positive and a whole number of cents. Anything finer
// would be rounded by the database and no longer match what was reconciled.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyPlaces))
}

// Reconciliation is the derived payment state of an entry.
type Reconciliation struct {
	PaidTotal decimal.Decimal
	Remaining decimal.Decimal
	Status    Status
}

// Reconcile derives the paid total, remaining balance and canonical status of an entry
// from its amount and recorded payments. A canceled entry keeps reporting canceled
// whatever it has been paid.
func Reconcile(amount decimal.Decimal, status Status, payments []*Payment) (Reconciliation, error) {
	if !amount.IsPositive() {
		return Reconciliation{}, &InvalidAmountError{Amount: amount}
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	remaining := amount.Sub(paid)
	if remaining.IsNegative() {
		return Reconciliation{}, &ConsistencyError{Amount: amount, PaidTotal: paid}
	}

	rec := Reconciliation{PaidTotal: paid, Remaining: remaining}

	switch {
	case status == StatusCanceled:
		rec.Status = StatusCanceled
	case remaining.IsZero():
		rec.Status = StatusPaid
	case paid.IsPositive():
		rec.Status = StatusPartial
	default:
		rec.Status = StatusOpen
	}

	return rec, nil
}

// Accept checks a candidate payment against the committed payment set and returns the
// reconciliation that results from recording it. The payments must be read from
// authoritative state in the same transaction that persists the candidate.
func Accept(amount decimal.Decimal, status Status, payments []*Payment, candidate decimal.Decimal) (Reconciliation, error) {
	current, err := Reconcile(amount, status, payments)
	if err != nil {
		return Reconciliation{}, err
	}

	if current.Status.Terminal() {
		return Reconciliation{}, &TerminalEntryError{Status: current.Status}
	}

	if !ValidAmount(candidate) {
		return Reconciliation{}, &InvalidAmountError{Amount: candidate}
	}

	if candidate.GreaterThan(current.Remaining) {
		return Reconciliation{}, &OverpaymentError{Amount: candidate, Remaining: current.Remaining}
	}

	paid := current.PaidTotal.Add(candidate)
	next := Reconciliation{PaidTotal: paid, Remaining: amount.Sub(paid), Status: StatusPartial}

	if next.Remaining.IsZero() {
		next.Status = StatusPaid
	}

	return next, nil
}

// SortPayments orders payments chronologically by paid date, breaking ties by
// creation order. The sort is stable so equal timestamps keep their input order.
func SortPayments(payments []*Payment) {
	slices.SortStableFunc(payments, func(a, b *Payment) int {
		if c := a.PaidAt.Compare(b.PaidAt); c != 0 {
			return c
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
