package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/libry/internal/auth"
	"github.com/MrJamesThe3rd/libry/internal/http/book"
	"github.com/MrJamesThe3rd/libry/internal/http/importer"
	"github.com/MrJamesThe3rd/libry/internal/http/lending"
	"github.com/MrJamesThe3rd/libry/internal/http/member"
)

type Options struct {
	AllowedOrigins []string
	// Tokens enables bearer authentication on the API when set.
	Tokens *auth.Tokens
}

func New(
	opts Options,
	booksV1 *book.Handler,
	membersV1 *member.Handler,
	lendingV1 *lending.Handler,
	importV1 *importer.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Tokens != nil {
			r.Use(RequireToken(opts.Tokens))
		}

		r.Route("/books", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			booksV1.Routes(r)
		})

		r.Route("/members", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			membersV1.Routes(r)
		})

		r.Route("/lending", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			lendingV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
