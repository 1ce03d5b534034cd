package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventactivities/internal/delivery/http/controllers"
	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/delivery/http/middleware"
	"eventactivities/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events       *controllers.EventController
	Activities   *controllers.ActivityController
	Registries   *controllers.RegistryController
	Certificates *controllers.CertificateController
	Exports      *controllers.ExportController
}

// HealthCheck reports whether a backing dependency is reachable. It may be nil.
type HealthCheck func(ctx context.Context) error

// NewRouter initializes the HTTP router with all application routes.
// Every API route requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, health HealthCheck, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Events.UpdateEvent))

	// Activities
	mux.HandleFunc("GET /events/{eventID}/activities", auth(c.Activities.ListActivities))
	mux.HandleFunc("POST /events/{eventID}/activities", auth(c.Activities.CreateActivity))
	mux.HandleFunc("GET /activities/{activityID}", auth(c.Activities.GetActivity))
	mux.HandleFunc("PUT /activities/{activityID}", auth(c.Activities.UpdateActivity))
	mux.HandleFunc("DELETE /activities/{activityID}", auth(c.Activities.DeleteActivity))
	mux.HandleFunc("PATCH /activities/{activityID}/certificate-ready", auth(c.Activities.SetActivityReady))

	// Registries
	mux.HandleFunc("POST /activities/{activityID}/registries", auth(c.Registries.Register))
	mux.HandleFunc("DELETE /activities/{activityID}/registries", auth(c.Registries.Unregister))
	mux.HandleFunc("PUT /activities/{activityID}/registries/rating", auth(c.Registries.Rate))
	mux.HandleFunc("POST /activities/{activityID}/registries/{userID}", auth(c.Registries.RegisterUser))
	mux.HandleFunc("PATCH /registries/{registryID}/presences/{scheduleID}", auth(c.Registries.SetPresence))
	mux.HandleFunc("PATCH /registries/{registryID}/certificate-ready", auth(c.Registries.SetRegistryReady))
	mux.HandleFunc("GET /me/registries", auth(c.Registries.ListMyRegistries))

	// Certificates
	mux.HandleFunc("GET /events/{eventID}/certificates/readiness", auth(c.Certificates.GetReadiness))
	mux.HandleFunc("POST /events/{eventID}/certificates/emissions", auth(c.Certificates.EmitCertificates))

	// Exports
	mux.HandleFunc("GET /me/agenda.ics", auth(c.Exports.MyAgenda))
	mux.HandleFunc("GET /activities/{activityID}/presences.xlsx", auth(c.Exports.PresenceSheet))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "err", err)
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, "unavailable", "dependency unavailable")
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
