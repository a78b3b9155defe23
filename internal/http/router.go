package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spendly/internal/http/account"
	"github.com/MrJamesThe3rd/spendly/internal/http/category"
	"github.com/MrJamesThe3rd/spendly/internal/http/export"
	"github.com/MrJamesThe3rd/spendly/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendly/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Categories   *category.Handler
	Accounts     *account.Handler
	Export       *export.Handler
}

// New builds the API router. authenticate runs in front of every /api/v1
// route; allowedOrigins configures CORS for a browser front-end.
func New(h Handlers, authenticate func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if authenticate != nil {
			r.Use(authenticate)
		}

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Accounts.Routes(r)
		})

		r.Route("/export", h.Export.Routes)
	})

	return router
}
