package category

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/category"
)

type categoryResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Type        category.Type `json:"type"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
	}
}

func toResponseList(categories []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	return resp
}
