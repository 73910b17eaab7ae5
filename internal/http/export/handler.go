package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/export"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.download)
}

type exportRequest struct {
	Type     *entry.Type   `json:"type,omitempty" validate:"omitempty,oneof=payable receivable"`
	Status   *entry.Status `json:"status,omitempty" validate:"omitempty,oneof=open partial paid canceled"`
	DateFrom *api.Date     `json:"dateFrom,omitempty"`
	DateTo   *api.Date     `json:"dateTo,omitempty"`
	Search   string        `json:"search,omitempty"`
}

func (req exportRequest) filter() entry.ListFilter {
	filter := entry.ListFilter{
		Type:   req.Type,
		Status: req.Status,
		Search: req.Search,
	}

	if req.DateFrom != nil {
		filter.DueFrom = &req.DateFrom.Time
	}

	if req.DateTo != nil {
		filter.DueTo = &req.DateTo.Time
	}

	return filter
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !api.Decode(w, r, &req) {
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), req.filter(), &buf)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Entry-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
