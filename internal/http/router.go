package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/danielrv/finmov/internal/http/auth"
	authmw "github.com/danielrv/finmov/internal/http/middleware"
	movementHandler "github.com/danielrv/finmov/internal/http/movement"
)

func New(
	movementsV1 *movementHandler.Handler,
	authV1 *authHandler.Handler,
	verifier authmw.TokenVerifier,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Route("/movements", func(r chi.Router) {
			r.Use(authmw.RequireAuth(verifier))
			r.Use(middleware.AllowContentType("application/json"))
			movementsV1.Routes(r)
		})
	})

	return router
}
