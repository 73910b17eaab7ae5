package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/http/category"
	"github.com/MrJamesThe3rd/contas/internal/http/contact"
	"github.com/MrJamesThe3rd/contas/internal/http/entry"
	"github.com/MrJamesThe3rd/contas/internal/http/export"
	"github.com/MrJamesThe3rd/contas/internal/http/importcsv"
	"github.com/MrJamesThe3rd/contas/internal/http/matching"
	"github.com/MrJamesThe3rd/contas/internal/http/report"
)

type Handlers struct {
	Entries    *entry.Handler
	Contacts   *contact.Handler
	Categories *category.Handler
	Reports    *report.Handler
	Import     *importcsv.Handler
	Export     *export.Handler
	Matching   *matching.Handler
}

type Options struct {
	AllowedOrigins []string
	// Auth guards /api/v1 when set.
	Auth func(http.Handler) http.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Entry-Count"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Entries.Routes(r)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Contacts.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Route("/import", h.Import.Routes)

		r.Route("/matching", func(r chi.Router) {
			h.Matching.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Export.Routes(r)
		})
	})

	return router
}
