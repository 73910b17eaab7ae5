package export_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/export"
	exporthttp "github.com/MrJamesThe3rd/contas/internal/http/export"
)

func serve(repo *entry.MockRepository, body string) *httptest.ResponseRecorder {
	svc := export.NewService(entry.NewService(repo))

	r := chi.NewRouter()
	r.Route("/export", exporthttp.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/", strings.NewReader(body)))

	return rec
}

func TestHandler_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := entry.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f entry.ListFilter) ([]*entry.Entry, int, error) {
			assert.Equal(t, entry.TypeReceivable, *f.Type)
			assert.Zero(t, f.Limit)

			return []*entry.Entry{{
				ID:          id,
				Type:        entry.TypeReceivable,
				Description: "Consultoria maio",
				Amount:      decimal.RequireFromString("900"),
				Status:      entry.StatusOpen,
			}}, 1, nil
		})
	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&entry.Entry{ID: id}, nil)
	repo.EXPECT().ListPayments(gomock.Any(), id).Return(nil, nil)

	rec := serve(repo, `{"type":"receivable","dateFrom":"2024-05-01"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "1", rec.Header().Get("X-Entry-Count"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)

	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Lançamentos")
}

func TestHandler_DownloadInvalidFilter(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := serve(entry.NewMockRepository(ctrl), `{"status":"late"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
