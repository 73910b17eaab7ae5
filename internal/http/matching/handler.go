package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "description query parameter is required"})
		return
	}

	id, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := suggestResponse{Description: desc}
	if id != uuid.Nil {
		resp.CategoryID = &id
	}

	api.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern    string    `json:"pattern" validate:"required,max=200"`
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !api.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.CategoryID); err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
