package api_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contas/internal/contact"
	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/importer"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

func TestStatus(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "EntryNotFound", err: entry.ErrNotFound, want: http.StatusNotFound},
		{name: "WrappedContactNotFound", err: fmt.Errorf("loading: %w", contact.ErrNotFound), want: http.StatusNotFound},
		{name: "InvalidAmount", err: &entry.InvalidAmountError{Amount: decimal.Zero}, want: http.StatusUnprocessableEntity},
		{name: "Overpayment", err: &entry.OverpaymentError{}, want: http.StatusConflict},
		{name: "Terminal", err: &entry.TerminalEntryError{Status: entry.StatusPaid}, want: http.StatusConflict},
		{name: "HasPayments", err: entry.ErrHasPayments, want: http.StatusConflict},
		{name: "ContactInUse", err: contact.ErrInUse, want: http.StatusConflict},
		{name: "InvalidDays", err: report.ErrInvalidDays, want: http.StatusUnprocessableEntity},
		{name: "ImportRejected", err: fmt.Errorf("%w: 2 invalid rows", importer.ErrRejected), want: http.StatusUnprocessableEntity},
		{name: "Consistency", err: &entry.ConsistencyError{}, want: http.StatusInternalServerError},
		{name: "Unknown", err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.Status(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)

	api.Error(rec, req, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestError_OverpaymentCarriesRemaining(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/x/payments", nil)

	api.Error(rec, req, &entry.OverpaymentError{
		Amount:    decimal.RequireFromString("80"),
		Remaining: decimal.RequireFromString("30.5"),
	})

	require.Equal(t, http.StatusConflict, rec.Code)

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Remaining)
	assert.True(t, decimal.RequireFromString("30.5").Equal(*body.Remaining))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}

	tests := []testCase{
		{name: "DateOnly", input: `"2024-03-05"`, want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339Truncated", input: `"2024-03-05T23:30:00Z"`, want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "OffsetMovesToUTCDay", input: `"2024-03-05T22:30:00-03:00"`, want: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
		{name: "BrazilianFormat", input: `"05/03/2024"`, wantErr: true},
		{name: "Number", input: `20240305`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d api.Date

			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(api.NewDate(time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC)))

	require.NoError(t, err)
	assert.JSONEq(t, `"2024-12-31"`, string(got))
}
