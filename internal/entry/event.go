package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventEntryCreated    EventKind = "entry.created"
	EventEntryUpdated    EventKind = "entry.updated"
	EventEntryCanceled   EventKind = "entry.canceled"
	EventEntryDeleted    EventKind = "entry.deleted"
	EventPaymentRecorded EventKind = "payment.recorded"
)

// Event describes a committed change to an entry or its payments.
type Event struct {
	Kind       EventKind
	EntryID    uuid.UUID
	PaymentID  *uuid.UUID
	Type       Type
	Status     Status
	Amount     decimal.Decimal
	PaidTotal  decimal.Decimal
	OccurredAt time.Time
}

func newEvent(kind EventKind, e *Entry, at time.Time) Event {
	return Event{
		Kind:       kind,
		EntryID:    e.ID,
		Type:       e.Type,
		Status:     e.Status,
		Amount:     e.Amount,
		PaidTotal:  e.PaidTotal,
		OccurredAt: at,
	}
}
