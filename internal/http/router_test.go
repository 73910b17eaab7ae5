package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/contas/internal/auth"
	router "github.com/MrJamesThe3rd/contas/internal/http"
	"github.com/MrJamesThe3rd/contas/internal/http/category"
	"github.com/MrJamesThe3rd/contas/internal/http/contact"
	"github.com/MrJamesThe3rd/contas/internal/http/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/export"
	"github.com/MrJamesThe3rd/contas/internal/http/importcsv"
	"github.com/MrJamesThe3rd/contas/internal/http/matching"
	"github.com/MrJamesThe3rd/contas/internal/http/report"
)

func newRouter(opts router.Options) http.Handler {
	return router.New(router.Handlers{
		Entries:    entry.NewHandler(nil),
		Contacts:   contact.NewHandler(nil),
		Categories: category.NewHandler(nil),
		Reports:    report.NewHandler(nil),
		Import:     importcsv.NewHandler(nil),
		Export:     export.NewHandler(nil),
		Matching:   matching.NewHandler(nil),
	}, opts)
}

func TestRouter(t *testing.T) {
	tokens := auth.NewTokens("s3cret", time.Hour)
	h := newRouter(router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Auth:           tokens.Middleware,
	})

	type testCase struct {
		name       string
		method     string
		target     string
		headers    map[string]string
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "HealthIsPublic",
			method:     http.MethodGet,
			target:     "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "APIRequiresToken",
			method:     http.MethodGet,
			target:     "/api/v1/entries",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "InvalidIDWithToken",
			method: http.MethodGet,
			target: "/api/v1/entries/not-a-uuid",
			headers: map[string]string{
				"Authorization": "Bearer " + mustIssue(t, tokens),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Preflight",
			method: http.MethodOptions,
			target: "/api/v1/entries",
			headers: map[string]string{
				"Origin":                        "http://localhost:3000",
				"Access-Control-Request-Method": http.MethodPost,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "UnknownRoute",
			method:     http.MethodGet,
			target:     "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func mustIssue(t *testing.T, tokens *auth.Tokens) string {
	t.Helper()

	raw, err := tokens.Issue("test")
	if err != nil {
		t.Fatal(err)
	}

	return raw
}
