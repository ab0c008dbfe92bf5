package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventvenues/internal/delivery/http/helpers"
	"eventvenues/internal/domain"
)

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// VenueCheckResult is the data of GET /organizations/{organizationID}/venues/{venueID}/conflicts.
type VenueCheckResult struct {
	Available bool                       `json:"available"`
	Conflicts []*domain.ConflictingEvent `json:"conflicts"`
}

// VenueCheckSuccessResponse is the success response envelope for the venue check (200).
type VenueCheckSuccessResponse struct {
	Data  VenueCheckResult  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckVenue godoc
// @Summary Check whether a venue is free
// @Description Returns the non-deleted events of the organization that hold the venue during the window. Dates are inclusive; times are half-open and repeat on every day of the range. all_day=true conflicts with anything on an overlapping date.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param organizationID path string true "Organization ID"
// @Param venueID path string true "Venue ID"
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Param all_day query bool false "Whole days"
// @Param start_time query string false "Start time (HH:MM)"
// @Param end_time query string false "End time (HH:MM)"
// @Param exclude_event_id query string false "Ignore this event's own booking"
// @Success 200 {object} controllers.VenueCheckSuccessResponse "data.conflicts is empty when the venue is free"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{organizationID}/venues/{venueID}/conflicts [get]
func (c *VenueController) CheckVenue(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "organizationID")
	if !ok {
		return
	}
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}
	slot, errs := slotFromQuery(r)
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInputValidation, strings.Join(errs, "; "))
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	conflicts, err := c.Service.CheckVenue(r.Context(), userID, domain.VenueQuery{
		OrganizationID: orgID,
		VenueID:        venueID,
		Slot:           slot,
		ExcludeEventID: domain.NormalizeID(r.URL.Query().Get("exclude_event_id")),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if conflicts == nil {
		conflicts = []*domain.ConflictingEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, VenueCheckResult{Available: len(conflicts) == 0, Conflicts: conflicts})
}

// ListVenuesSuccessResponse is the success response envelope for the available venues list (200).
type ListVenuesSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAvailableVenues godoc
// @Summary List venues free for a window
// @Description Returns the organization's venues that no non-deleted event holds during the window.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param organizationID path string true "Organization ID"
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Param all_day query bool false "Whole days"
// @Param start_time query string false "Start time (HH:MM)"
// @Param end_time query string false "End time (HH:MM)"
// @Success 200 {object} controllers.ListVenuesSuccessResponse "data is an array of venues"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{organizationID}/venues/available [get]
func (c *VenueController) ListAvailableVenues(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "organizationID")
	if !ok {
		return
	}
	slot, errs := slotFromQuery(r)
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInputValidation, strings.Join(errs, "; "))
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	venues, err := c.Service.ListAvailableVenues(r.Context(), userID, orgID, slot)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}
