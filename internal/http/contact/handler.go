package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contas/internal/contact"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
)

type Handler struct {
	svc *contact.Service
}

func NewHandler(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createContactRequest struct {
	Name     string       `json:"name" validate:"required,max=200"`
	Email    string       `json:"email" validate:"omitempty,email"`
	Phone    string       `json:"phone" validate:"max=40"`
	Document string       `json:"document" validate:"max=40"`
	Type     contact.Type `json:"type" validate:"required,oneof=customer supplier"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !api.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), contact.CreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Type:     req.Type,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := contact.ListFilter{Search: r.URL.Query().Get("search")}

	if s := r.URL.Query().Get("type"); s != "" {
		t := contact.Type(s)
		if !t.Valid() {
			api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid type"})
			return
		}

		filter.Type = &t
	}

	contacts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(contacts))
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

type updateContactRequest struct {
	Name     *string       `json:"name,omitempty" validate:"omitempty,max=200"`
	Email    *string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string       `json:"phone,omitempty" validate:"omitempty,max=40"`
	Document *string       `json:"document,omitempty" validate:"omitempty,max=40"`
	Type     *contact.Type `json:"type,omitempty" validate:"omitempty,oneof=customer supplier"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	var req updateContactRequest
	if !api.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, contact.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Type:     req.Type,
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
