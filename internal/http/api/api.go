package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/category"
	"github.com/MrJamesThe3rd/contas/internal/contact"
	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/importer"
	"github.com/MrJamesThe3rd/contas/internal/importer/sheet"
	"github.com/MrJamesThe3rd/contas/internal/matching"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ErrorResponse is the body of every failed request. Remaining is set when a payment or
// lifecycle change was rejected against the entry's current balance.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	Remaining *decimal.Decimal  `json:"remaining,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v and runs its validate tags. Errors are already
// written to w when ok is false.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}

	if err := validate.Struct(v); err != nil {
		Error(w, r, err)
		return false
	}

	return true
}

// IDParam parses the {id} route parameter, writing 400 when it is not a UUID.
func IDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}

	return id, true
}

// Status maps a domain error to its HTTP status code.
func Status(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &verrs),
		errors.Is(err, entry.ErrInvalidRequest),
		errors.Is(err, entry.ErrInvalidAmount),
		errors.Is(err, contact.ErrInvalidRequest),
		errors.Is(err, category.ErrInvalidRequest),
		errors.Is(err, matching.ErrInvalidRule),
		errors.Is(err, report.ErrInvalidDays),
		errors.Is(err, importer.ErrRejected),
		errors.Is(err, sheet.ErrNoProfile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sheet.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, entry.ErrNotFound),
		errors.Is(err, contact.ErrNotFound),
		errors.Is(err, category.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entry.ErrOverpayment),
		errors.Is(err, entry.ErrTerminalEntry),
		errors.Is(err, entry.ErrHasPayments),
		errors.Is(err, contact.ErrInUse),
		errors.Is(err, category.ErrInUse):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Error writes err with the status Status picks. Server errors are logged and their
// detail is not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ErrorWithRemaining(w, r, err, nil)
}

func ErrorWithRemaining(w http.ResponseWriter, r *http.Request, err error, remaining *decimal.Decimal) {
	status := Status(err)
	resp := ErrorResponse{Error: err.Error(), Remaining: remaining}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Error = "validation failed"
		resp.Fields = fieldErrors(verrs)
	}

	var over *entry.OverpaymentError
	if errors.As(err, &over) && resp.Remaining == nil {
		resp.Remaining = &over.Remaining
	}

	if status == http.StatusInternalServerError {
		if errors.Is(err, entry.ErrConsistency) {
			slog.ErrorContext(r.Context(), "ledger consistency violation", "path", r.URL.Path, "error", err)
		} else {
			slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}

		resp = ErrorResponse{Error: "internal error"}
	}

	JSON(w, status, resp)
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))

	for _, fe := range verrs {
		name := fe.Field()

		if fe.Param() != "" {
			fields[name] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		} else {
			fields[name] = fe.Tag()
		}
	}

	return fields
}
