package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueParse(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)

	raw, err := tokens.Issue("financeiro")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "financeiro", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestTokens_Parse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	issued := NewTokens("s3cret", time.Hour)
	issued.now = func() time.Time { return now }

	raw, err := issued.Issue("financeiro")
	require.NoError(t, err)

	type testCase struct {
		name    string
		secret  string
		at      time.Time
		token   string
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", secret: "s3cret", at: now.Add(30 * time.Minute), token: raw},
		{name: "Expired", secret: "s3cret", at: now.Add(2 * time.Hour), token: raw, wantErr: true},
		{name: "WrongSecret", secret: "other", at: now, token: raw, wantErr: true},
		{name: "Garbage", secret: "s3cret", at: now, token: "not.a.token", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokens(tt.secret, time.Hour)
			tokens.now = func() time.Time { return tt.at }

			_, err := tokens.Parse(tt.token)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)

	raw, err := tokens.Issue("financeiro")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, ok := Subject(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "financeiro", sub)
		w.WriteHeader(http.StatusNoContent)
	})

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + raw, wantStatus: http.StatusNoContent},
		{name: "LowercaseScheme", header: "bearer " + raw, wantStatus: http.StatusNoContent},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic " + raw, wantStatus: http.StatusUnauthorized},
		{name: "Tampered", header: "Bearer " + raw + "x", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			tokens.Middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
