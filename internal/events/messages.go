package events

import (
	"encoding/json"
	"time"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

// Message is the wire form of a committed entry or payment change. Amounts are fixed
// two-decimal strings.
type Message struct {
	Kind       string    `json:"kind"`
	EntryID    string    `json:"entryId"`
	PaymentID  *string   `json:"paymentId,omitempty"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Amount     string    `json:"amount"`
	PaidTotal  string    `json:"paidTotal"`
	Remaining  string    `json:"remaining"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewMessage(ev entry.Event) Message {
	e := entry.Entry{Amount: ev.Amount, PaidTotal: ev.PaidTotal}

	msg := Message{
		Kind:       string(ev.Kind),
		EntryID:    ev.EntryID.String(),
		Type:       string(ev.Type),
		Status:     string(ev.Status),
		Amount:     ev.Amount.StringFixed(2),
		PaidTotal:  ev.PaidTotal.StringFixed(2),
		Remaining:  e.Remaining().StringFixed(2),
		OccurredAt: ev.OccurredAt.UTC(),
	}

	if ev.PaymentID != nil {
		msg.PaymentID = new(ev.PaymentID.String())
	}

	return msg
}

func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
