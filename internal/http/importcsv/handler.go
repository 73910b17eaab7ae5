package importcsv

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/importer"
	"github.com/MrJamesThe3rd/contas/internal/importer/sheet"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type entryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        entry.Type      `json:"type"`
	ContactID   uuid.UUID       `json:"contactId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Description string          `json:"description"`
	DueDate     api.Date        `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Status      entry.Status    `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type rowErrorResponse struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type importSuccessResponse struct {
	Imported    int             `json:"imported"`
	NewContacts int             `json:"newContacts"`
	Profile     string          `json:"profile"`
	Charset     string          `json:"charset"`
	Entries     []entryResponse `json:"entries"`
}

type importRejectedResponse struct {
	Error   string             `json:"error"`
	Profile string             `json:"profile"`
	Rows    []rowErrorResponse `json:"rows"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "failed to parse form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "file field is required"})
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), file)
	if errors.Is(err, importer.ErrRejected) {
		api.JSON(w, http.StatusUnprocessableEntity, importRejectedResponse{
			Error:   err.Error(),
			Profile: result.Profile,
			Rows:    toRowErrors(result.Errors),
		})

		return
	}

	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported:    len(result.Entries),
		NewContacts: result.NewContacts,
		Profile:     result.Profile,
		Charset:     result.Charset,
		Entries:     toEntryResponses(result.Entries),
	})
}

func toRowErrors(errs []sheet.RowError) []rowErrorResponse {
	resp := make([]rowErrorResponse, len(errs))
	for i, e := range errs {
		resp[i] = rowErrorResponse{Line: e.Line, Message: e.Message}
	}

	return resp
}

func toEntryResponses(entries []*entry.Entry) []entryResponse {
	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryResponse{
			ID:          e.ID,
			Type:        e.Type,
			ContactID:   e.ContactID,
			CategoryID:  e.CategoryID,
			Description: e.Description,
			DueDate:     api.NewDate(e.DueDate),
			Amount:      e.Amount,
			Status:      e.Status,
			CreatedAt:   e.CreatedAt,
		})
	}

	return resp
}
