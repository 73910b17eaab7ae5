package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
)

type entryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        entry.Type      `json:"type"`
	ContactID   uuid.UUID       `json:"contactId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Description string          `json:"description"`
	IssueDate   api.Date        `json:"issueDate"`
	DueDate     api.Date        `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      entry.Status    `json:"status"`
	Tags        []string        `json:"tags"`
	Notes       *string         `json:"notes,omitempty"`
	PaidTotal   decimal.Decimal `json:"paidTotal"`
	Remaining   decimal.Decimal `json:"remaining"`
	Urgency     entry.Urgency   `json:"urgency"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type pageResponse struct {
	Entries    []entryResponse `json:"entries"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

type paymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	EntryID   uuid.UUID       `json:"entryId"`
	PaidAt    api.Date        `json:"paidAt"`
	Amount    decimal.Decimal `json:"amount"`
	Method    entry.Method    `json:"method"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type balanceResponse struct {
	EntryID   uuid.UUID       `json:"entryId"`
	Amount    decimal.Decimal `json:"amount"`
	PaidTotal decimal.Decimal `json:"paidTotal"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    entry.Status    `json:"status"`
}

type recordPaymentResponse struct {
	Payment   paymentResponse `json:"payment"`
	PaidTotal decimal.Decimal `json:"paidTotal"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    entry.Status    `json:"status"`
}

func toResponse(e *entry.Entry, today time.Time) entryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	return entryResponse{
		ID:          e.ID,
		Type:        e.Type,
		ContactID:   e.ContactID,
		CategoryID:  e.CategoryID,
		Description: e.Description,
		IssueDate:   api.NewDate(e.IssueDate),
		DueDate:     api.NewDate(e.DueDate),
		Amount:      e.Amount,
		Currency:    e.Currency,
		Status:      e.Status,
		Tags:        tags,
		Notes:       e.Notes,
		PaidTotal:   e.PaidTotal,
		Remaining:   e.Remaining(),
		Urgency:     entry.Classify(e.Status, e.DueDate, today),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toPageResponse(p *entry.Page, today time.Time) pageResponse {
	resp := pageResponse{
		Entries:    make([]entryResponse, len(p.Entries)),
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}

	for i, e := range p.Entries {
		resp.Entries[i] = toResponse(e, today)
	}

	return resp
}

func toPaymentResponse(p *entry.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		EntryID:   p.EntryID,
		PaidAt:    api.NewDate(p.PaidAt),
		Amount:    p.Amount,
		Method:    p.Method,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

func toPaymentResponseList(payments []*entry.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}
