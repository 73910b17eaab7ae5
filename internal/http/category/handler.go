package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contas/internal/category"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCategoryRequest struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Description string        `json:"description" validate:"max=500"`
	Type        category.Type `json:"type" validate:"required,oneof=income expense"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !api.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var typ *category.Type

	if s := r.URL.Query().Get("type"); s != "" {
		t := category.Type(s)
		if !t.Valid() {
			api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid type"})
			return
		}

		typ = &t
	}

	categories, err := h.svc.List(r.Context(), typ)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(categories))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(c))
}

type updateCategoryRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	Type        *category.Type `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !api.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, category.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
