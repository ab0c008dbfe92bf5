package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventvenues/internal/delivery/http/helpers"
	"eventvenues/internal/domain"
)

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// AttendeeRequest is the request body for invitation, add and check-out endpoints.
type AttendeeRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements helpers.Validator.
func (a *AttendeeRequest) Validate() []string {
	if strings.TrimSpace(a.UserID) == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
// An empty user_id registers the caller.
type RegisterRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// CheckInRequest is the request body for POST /events/{eventID}/check-ins.
type CheckInRequest struct {
	UserID      string  `json:"user_id"`
	AllotedSeat *string `json:"alloted_seat,omitempty"`
	AllotedRoom *string `json:"alloted_room,omitempty"`
}

// Validate implements helpers.Validator.
func (c *CheckInRequest) Validate() []string {
	if strings.TrimSpace(c.UserID) == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// AttendeeSuccessResponse is the success response envelope for endpoints returning one attendee row.
type AttendeeSuccessResponse struct {
	Data  *domain.EventAttendee `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// InviteAttendee godoc
// @Summary Invite a user to an event
// @Description Creates an invited attendee row for the user and sends a best-effort invitation email. Allowed for event admins, organization admins and super-admins.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AttendeeRequest true "User to invite"
// @Success 201 {object} controllers.AttendeeSuccessResponse "data contains the attendee row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already invited or registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *AttendeeController) InviteAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	attendee, err := c.Service.InviteAttendee(r.Context(), userID, eventID, req.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// RegisterAttendee godoc
// @Summary Register a user for an event
// @Description Registers the user, turning an existing invitation into a registration on the same row. Registering twice returns already_registered.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body RegisterRequest false "User to register (defaults to the caller)"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the attendee row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_registered"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req RegisterRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	target := req.UserID
	if strings.TrimSpace(target) == "" {
		target = userID
	}
	attendee, err := c.Service.RegisterAttendee(r.Context(), userID, eventID, target)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// AddEventAttendee godoc
// @Summary Add a registered attendee
// @Description Adds an organization member straight into the registered state. Allowed for event admins, organization admins and super-admins.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AttendeeRequest true "User to add"
// @Success 201 {object} controllers.AttendeeSuccessResponse "data contains the attendee row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) AddEventAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	attendee, err := c.Service.AddEventAttendee(r.Context(), userID, eventID, req.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// RemoveEventAttendee godoc
// @Summary Remove an attendee
// @Description Deletes the attendee row of the user for the event.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the removed row"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees/{userID} [delete]
func (c *AttendeeController) RemoveEventAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	targetID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	attendee, err := c.Service.RemoveEventAttendee(r.Context(), userID, eventID, targetID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// CheckInSuccessResponse is the success response envelope for POST /events/{eventID}/check-ins (201).
type CheckInSuccessResponse struct {
	Data  *domain.CheckIn   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckIn godoc
// @Summary Check a user in
// @Description Records the user's arrival. A user with no attendee row is registered as a walk-in. Only event admins and super-admins may check users in.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CheckInRequest true "User and optional seat/room"
// @Success 201 {object} controllers.CheckInSuccessResponse "data contains the check-in record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already checked in)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/check-ins [post]
func (c *AttendeeController) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	checkIn, err := c.Service.CheckIn(r.Context(), userID, domain.CheckInInput{
		EventID:     eventID,
		UserID:      req.UserID,
		AllotedSeat: req.AllotedSeat,
		AllotedRoom: req.AllotedRoom,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, checkIn)
}

// CheckOutSuccessResponse is the success response envelope for POST /events/{eventID}/check-outs (201).
type CheckOutSuccessResponse struct {
	Data  *domain.CheckOut  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckOut godoc
// @Summary Check a user out
// @Description Records the user's departure. Requires a prior check-in; a user can be checked out once. Only event admins and super-admins may check users out.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AttendeeRequest true "User to check out"
// @Success 201 {object} controllers.CheckOutSuccessResponse "data contains the check-out record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or input_validation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/check-outs [post]
func (c *AttendeeController) CheckOut(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	checkOut, err := c.Service.CheckOut(r.Context(), userID, eventID, req.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, checkOut)
}

// ListEventAttendeesResponse is the data of GET /events/{eventID}/attendees.
type ListEventAttendeesResponse struct {
	Items      []*domain.EventAttendee `json:"items"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// ListEventAttendeesSuccessResponse is the success response envelope for GET /events/{eventID}/attendees (200).
type ListEventAttendeesSuccessResponse struct {
	Data  ListEventAttendeesResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListEventAttendees godoc
// @Summary List an event's attendees
// @Description Returns a page of attendee rows. Allowed for event admins, organization admins and super-admins.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query string false "Page size (default 20, max 100) or \"all\" for every row"
// @Success 200 {object} controllers.ListEventAttendeesSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.ListEventAttendees(r.Context(), userID, eventID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if items == nil {
		items = []*domain.EventAttendee{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventAttendeesResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}
