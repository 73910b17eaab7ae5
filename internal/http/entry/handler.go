package entry

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
)

type Handler struct {
	svc *entry.Service
	now func() time.Time
}

func NewHandler(svc *entry.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/cancel", h.cancel)
	r.Get("/{id}/balance", h.balance)
	r.Get("/{id}/payments", h.payments)
	r.Post("/{id}/payments", h.recordPayment)
}

type createEntryRequest struct {
	Type        entry.Type      `json:"type" validate:"required,oneof=payable receivable"`
	ContactID   uuid.UUID       `json:"contactId" validate:"required"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
	Description string          `json:"description" validate:"required,max=500"`
	IssueDate   api.Date        `json:"issueDate"`
	DueDate     api.Date        `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,eq=BRL"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,max=50"`
	Notes       *string         `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if !api.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Create(r.Context(), entry.CreateParams{
		Type:        req.Type,
		ContactID:   req.ContactID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		IssueDate:   req.IssueDate.Time,
		DueDate:     req.DueDate.Time,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Tags:        req.Tags,
		Notes:       req.Notes,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(e, h.now()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toPageResponse(page, h.now()))
}

// parseListFilter reads the entry list query. Empty values are treated as absent.
func parseListFilter(r *http.Request) (entry.ListFilter, error) {
	q := r.URL.Query()
	filter := entry.ListFilter{Search: q.Get("search")}

	if s := q.Get("type"); s != "" {
		t := entry.Type(s)
		if !t.Valid() {
			return filter, fmt.Errorf("invalid type %q", s)
		}

		filter.Type = &t
	}

	if s := q.Get("status"); s != "" {
		st := entry.Status(s)
		if !st.Valid() {
			return filter, fmt.Errorf("invalid status %q", s)
		}

		filter.Status = &st
	}

	if s := q.Get("date_from"); s != "" {
		t, err := api.ParseDate(s)
		if err != nil {
			return filter, err
		}

		filter.DueFrom = &t
	}

	if s := q.Get("date_to"); s != "" {
		t, err := api.ParseDate(s)
		if err != nil {
			return filter, err
		}

		filter.DueTo = &t
	}

	var err error

	if filter.Page, err = intParam(q.Get("page")); err != nil {
		return filter, fmt.Errorf("invalid page: %w", err)
	}

	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		return filter, fmt.Errorf("invalid limit: %w", err)
	}

	return filter, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(e, h.now()))
}

type updateEntryRequest struct {
	Type        *entry.Type      `json:"type,omitempty" validate:"omitempty,oneof=payable receivable"`
	ContactID   *uuid.UUID       `json:"contactId,omitempty"`
	CategoryID  *uuid.UUID       `json:"categoryId,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	IssueDate   *api.Date        `json:"issueDate,omitempty"`
	DueDate     *api.Date        `json:"dueDate,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	var req updateEntryRequest
	if !api.Decode(w, r, &req) {
		return
	}

	params := entry.UpdateParams{
		Type:        req.Type,
		ContactID:   req.ContactID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}

	if req.IssueDate != nil {
		params.IssueDate = &req.IssueDate.Time
	}

	if req.DueDate != nil {
		params.DueDate = &req.DueDate.Time
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(e, h.now()))
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

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		h.conflict(w, r, id, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(e, h.now()))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	e, rec, err := h.svc.Balance(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, balanceResponse{
		EntryID:   e.ID,
		Amount:    e.Amount,
		PaidTotal: rec.PaidTotal,
		Remaining: rec.Remaining,
		Status:    rec.Status,
	})
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	payments, err := h.svc.Payments(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toPaymentResponseList(payments))
}

type recordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt api.Date        `json:"paidAt"`
	Method entry.Method    `json:"method" validate:"required,oneof=pix boleto cartao transf"`
	Note   *string         `json:"note"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IDParam(w, r)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if !api.Decode(w, r, &req) {
		return
	}

	p, rec, err := h.svc.RecordPayment(r.Context(), id, entry.PaymentParams{
		Amount: req.Amount,
		PaidAt: req.PaidAt.Time,
		Method: req.Method,
		Note:   req.Note,
	})
	if err != nil {
		h.conflict(w, r, id, err)
		return
	}

	api.JSON(w, http.StatusCreated, recordPaymentResponse{
		Payment:   toPaymentResponse(p),
		PaidTotal: rec.PaidTotal,
		Remaining: rec.Remaining,
		Status:    rec.Status,
	})
}

// conflict writes err, attaching the entry's authoritative remaining balance when the
// entry rejected the change because of its state.
func (h *Handler) conflict(w http.ResponseWriter, r *http.Request, id uuid.UUID, err error) {
	if !errors.Is(err, entry.ErrTerminalEntry) {
		api.Error(w, r, err)
		return
	}

	_, rec, balErr := h.svc.Balance(r.Context(), id)
	if balErr != nil {
		api.Error(w, r, err)
		return
	}

	api.ErrorWithRemaining(w, r, err, &rec.Remaining)
}
