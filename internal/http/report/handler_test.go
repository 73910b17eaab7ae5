package report_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	reporthttp "github.com/MrJamesThe3rd/contas/internal/http/report"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

func serve(repo *report.MockRepository, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/reports", reporthttp.NewHandler(report.NewService(repo, nil)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Cashflow(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		setupMock  func(m *report.MockRepository)
		wantStatus int
		wantPoints int
	}

	tests := []testCase{
		{
			name:   "DefaultWindow",
			target: "/reports/cashflow",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().PaymentFlows(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantPoints: report.DefaultCashflowDays,
		},
		{
			name:   "CustomWindow",
			target: "/reports/cashflow?days=7",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().PaymentFlows(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantPoints: 7,
		},
		{
			name:       "ZeroDays",
			target:     "/reports/cashflow?days=0",
			setupMock:  func(m *report.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "TooManyDays",
			target:     "/reports/cashflow?days=400",
			setupMock:  func(m *report.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "NotANumber",
			target:     "/reports/cashflow?days=week",
			setupMock:  func(m *report.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := serve(repo, tt.target)

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var points []map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
				assert.Len(t, points, tt.wantPoints)
				assert.Contains(t, points[0], "balance")
			}
		})
	}
}

func TestHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)

	repo.EXPECT().OpenBalances(gomock.Any()).Return(nil, nil)

	rec := serve(repo, "/reports/summary")

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	for _, key := range []string{"totalOpen", "totalOverdue", "totalNext7Days", "totalNext30Days", "totalReceivables", "totalPayables"} {
		assert.Contains(t, got, key)
	}
}

func TestHandler_DashboardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)

	repo.EXPECT().OpenBalances(gomock.Any()).Return(nil, errors.New("db down")).AnyTimes()
	repo.EXPECT().PaymentFlows(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	rec := serve(repo, "/reports/dashboard")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
