package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventvenues/internal/delivery/http/controllers"
	"eventvenues/internal/delivery/http/middleware"
	"eventvenues/internal/domain"
)

// Controllers groups the HTTP handlers mounted by NewRouter.
type Controllers struct {
	Events    *controllers.EventController
	Venues    *controllers.VenueController
	Attendees *controllers.AttendeeController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Events.DeleteEvent))

	// Venues
	mux.HandleFunc("GET /organizations/{organizationID}/venues/available", auth(c.Venues.ListAvailableVenues))
	mux.HandleFunc("GET /organizations/{organizationID}/venues/{venueID}/conflicts", auth(c.Venues.CheckVenue))

	// Attendees
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(c.Attendees.InviteAttendee))
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Attendees.RegisterAttendee))
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(c.Attendees.ListEventAttendees))
	mux.HandleFunc("POST /events/{eventID}/attendees", auth(c.Attendees.AddEventAttendee))
	mux.HandleFunc("DELETE /events/{eventID}/attendees/{userID}", auth(c.Attendees.RemoveEventAttendee))
	mux.HandleFunc("POST /events/{eventID}/check-ins", auth(c.Attendees.CheckIn))
	mux.HandleFunc("POST /events/{eventID}/check-outs", auth(c.Attendees.CheckOut))

	// Health, metrics and docs
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
