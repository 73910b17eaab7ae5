package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/aging", h.aging)
	r.Get("/cashflow", h.cashflow)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context(), h.now())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toSummaryResponse(s))
}

func (h *Handler) aging(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Aging(r.Context(), h.now())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toAgingResponse(a))
}

func (h *Handler) cashflow(w http.ResponseWriter, r *http.Request) {
	var days int

	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid days"})
			return
		}

		if n == 0 {
			api.Error(w, r, report.ErrInvalidDays)
			return
		}

		days = n
	}

	points, err := h.svc.Cashflow(r.Context(), h.now(), days)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toCashflowResponse(points))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), h.now())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, dashboardResponse{
		Summary:  toSummaryResponse(d.Summary),
		Aging:    toAgingResponse(d.Aging),
		Cashflow: toCashflowResponse(d.Cashflow),
	})
}
