package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventvenues/internal/delivery/http/helpers"
	"eventvenues/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	OrganizationID string  `json:"organization_id"`
	VenueID        *string `json:"venue_id,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	SlotRequest

	slot domain.Slot
}

// Validate implements helpers.Validator. Length and ordering rules are enforced by the service.
func (c *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.OrganizationID) == "" {
		errs = append(errs, "organization_id is required")
	}
	slot, slotErrs := c.SlotRequest.parse()
	c.slot = slot
	return append(errs, slotErrs...)
}

func (c *CreateEventRequest) input() domain.CreateEventInput {
	return domain.CreateEventInput{
		OrganizationID: c.OrganizationID,
		VenueID:        c.VenueID,
		Title:          c.Title,
		Description:    c.Description,
		Location:       c.Location,
		StartDate:      c.slot.StartDate,
		EndDate:        c.slot.EndDate,
		AllDay:         c.slot.AllDay,
		StartTime:      c.slot.StartTime,
		EndTime:        c.slot.EndTime,
	}
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event in an organization. The caller must be the organization creator, a member, an organization admin or a super-admin. When venue_id is set the venue must be free for the whole window; otherwise 409 lists the conflicting event ids in error.details. The caller becomes the event's creator, admin and first registered attendee.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, req.input())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event. Reads are served from the event cache when possible and may lag recent updates by up to the cache TTL.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := callerID(w, r); !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
// An empty venue_id releases the venue.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	VenueID     *string `json:"venue_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	AllDay      *bool   `json:"all_day,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`

	patch domain.EventPatch
}

// Validate implements helpers.Validator and builds the patch.
func (u *UpdateEventRequest) Validate() []string {
	var errs []string
	p := domain.EventPatch{
		Title:       u.Title,
		Description: u.Description,
		Location:    u.Location,
		VenueID:     u.VenueID,
		AllDay:      u.AllDay,
	}
	if u.StartDate != nil {
		d, err := domain.ParseDate(*u.StartDate)
		if err != nil {
			errs = append(errs, "start_date: "+err.Error())
		}
		p.StartDate = &d
	}
	if u.EndDate != nil {
		d, err := domain.ParseDate(*u.EndDate)
		if err != nil {
			errs = append(errs, "end_date: "+err.Error())
		}
		p.EndDate = &d
	}
	var err error
	if p.StartTime, err = parseClock(u.StartTime); err != nil {
		errs = append(errs, "start_time: "+err.Error())
	}
	if p.EndTime, err = parseClock(u.EndTime); err != nil {
		errs = append(errs, "end_time: "+err.Error())
	}
	u.patch = p
	return errs
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. Allowed for event admins, organization admins and super-admins. Changing the venue or window re-checks the venue, ignoring the event's own booking. The cached copy is not refreshed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), userID, eventID, req.patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Soft-deletes an event by setting its status to DELETED, which frees its venue.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the deleted event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.DeleteEvent(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
