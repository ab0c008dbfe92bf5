package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventvenues/internal/delivery/http/helpers"
	"eventvenues/internal/delivery/http/middleware"
	"eventvenues/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event *domain.Event
	err   error

	lastCallerID string
	lastEventID  string
	lastInput    domain.CreateEventInput
	lastPatch    domain.EventPatch
}

func (f *fakeEventService) CreateEvent(_ context.Context, callerID string, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastCallerID, f.lastInput = callerID, in
	return f.event, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.lastEventID = eventID
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, callerID, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastCallerID, f.lastEventID, f.lastPatch = callerID, eventID, patch
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, callerID, eventID string) (*domain.Event, error) {
	f.lastCallerID, f.lastEventID = callerID, eventID
	return f.event, f.err
}

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	conflicts []*domain.ConflictingEvent
	venues    []*domain.Venue
	err       error

	lastCallerID string
	lastQuery    domain.VenueQuery
	lastOrgID    string
	lastSlot     domain.Slot
}

func (f *fakeVenueService) CheckVenue(_ context.Context, callerID string, q domain.VenueQuery) ([]*domain.ConflictingEvent, error) {
	f.lastCallerID, f.lastQuery = callerID, q
	return f.conflicts, f.err
}

func (f *fakeVenueService) ListAvailableVenues(_ context.Context, callerID, organizationID string, slot domain.Slot) ([]*domain.Venue, error) {
	f.lastCallerID, f.lastOrgID, f.lastSlot = callerID, organizationID, slot
	return f.venues, f.err
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	attendee  *domain.EventAttendee
	attendees []*domain.EventAttendee
	total     int
	checkIn   *domain.CheckIn
	checkOut  *domain.CheckOut
	err       error

	lastOp       string
	lastCallerID string
	lastEventID  string
	lastUserID   string
	lastCheckIn  domain.CheckInInput
	lastPage     domain.PaginationParams
}

func (f *fakeAttendeeService) record(op, callerID, eventID, userID string) {
	f.lastOp, f.lastCallerID, f.lastEventID, f.lastUserID = op, callerID, eventID, userID
}

func (f *fakeAttendeeService) InviteAttendee(_ context.Context, callerID, eventID, userID string) (*domain.EventAttendee, error) {
	f.record("invite", callerID, eventID, userID)
	return f.attendee, f.err
}

func (f *fakeAttendeeService) RegisterAttendee(_ context.Context, callerID, eventID, userID string) (*domain.EventAttendee, error) {
	f.record("register", callerID, eventID, userID)
	return f.attendee, f.err
}

func (f *fakeAttendeeService) AddEventAttendee(_ context.Context, callerID, eventID, userID string) (*domain.EventAttendee, error) {
	f.record("add", callerID, eventID, userID)
	return f.attendee, f.err
}

func (f *fakeAttendeeService) RemoveEventAttendee(_ context.Context, callerID, eventID, userID string) (*domain.EventAttendee, error) {
	f.record("remove", callerID, eventID, userID)
	return f.attendee, f.err
}

func (f *fakeAttendeeService) CheckIn(_ context.Context, callerID string, in domain.CheckInInput) (*domain.CheckIn, error) {
	f.record("check_in", callerID, in.EventID, in.UserID)
	f.lastCheckIn = in
	return f.checkIn, f.err
}

func (f *fakeAttendeeService) CheckOut(_ context.Context, callerID, eventID, userID string) (*domain.CheckOut, error) {
	f.record("check_out", callerID, eventID, userID)
	return f.checkOut, f.err
}

func (f *fakeAttendeeService) ListEventAttendees(_ context.Context, callerID, eventID string, page domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	f.record("list", callerID, eventID, "")
	f.lastPage = page
	return f.attendees, f.total, f.err
}

// serve routes a request through a mux so path values resolve, with an
// optional JSON body and authenticated caller.
func serve(t *testing.T, pattern string, handler http.HandlerFunc, method, target string, body any, caller string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if caller != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), caller))
	}
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
