package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/contact"
)

type contactResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Document  string       `json:"document,omitempty"`
	Type      contact.Type `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func toResponse(c *contact.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResponseList(contacts []*contact.Contact) []contactResponse {
	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toResponse(c)
	}

	return resp
}
