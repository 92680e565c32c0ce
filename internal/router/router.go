package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/flight-events/internal/handlers"
	"github.com/GregMSThompson/flight-events/internal/middleware"
)

// NewRouter mounts the API. Reads accept anonymous callers, who get
// read-only matrices; writes need a Firebase ID token.
func NewRouter(deps *handlers.Deps, auth *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	fh := handlers.NewFlightHandlers(deps)
	eth := handlers.NewEventTimeHandlers(deps)
	ech := handlers.NewEventCodeHandlers(deps)
	ah := handlers.NewAerodromeHandlers(deps)
	nh := handlers.NewNotificationHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/flights", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth)
			fh.ReadRoutes(r)
			eth.ReadRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.FirebaseAuth)
			fh.WriteRoutes(r)
			eth.WriteRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth)
		ech.ReadRoutes(r)
		ah.ReadRoutes(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		ech.WriteRoutes(r)
		ah.WriteRoutes(r)
		r.Mount("/notifications", nh.NotificationRoutes())
	})

	return r
}
