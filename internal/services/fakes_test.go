package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"eventvenues/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	listErr   error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		out := *e
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByVenueAndDates(ctx context.Context, organizationID, venueID string, r domain.DateRange) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.IsDeleted() || e.OrganizationID != organizationID || e.VenueRef() != venueID {
			continue
		}
		if e.Slot().Dates().Overlaps(r) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListBookedByOrganization(ctx context.Context, organizationID string, r domain.DateRange) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.IsDeleted() || e.OrganizationID != organizationID || e.VenueID == nil {
			continue
		}
		if e.Slot().Dates().Overlaps(r) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

type fakeVenueRepo struct {
	byID map[string]*domain.Venue
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) ListByOrganizationID(ctx context.Context, organizationID string) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, id := range []string{"venue-1", "venue-2", "venue-3", "venue-other"} {
		if v, ok := f.byID[id]; ok && v.OrganizationID == organizationID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID      map[string]*domain.User
	appended  map[string][]string // "userID/list" -> event ids
	appendErr error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) AppendEventRef(ctx context.Context, userID string, list domain.UserEventList, eventID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if f.appended == nil {
		f.appended = make(map[string][]string)
	}
	key := userID + "/" + string(list)
	if !domain.ContainsID(f.appended[key], eventID) {
		f.appended[key] = append(f.appended[key], eventID)
	}
	return nil
}

type fakeOrgRepo struct {
	byID map[string]*domain.Organization
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

type fakeProfileRepo struct {
	byUserID map[string]*domain.AppProfile
	err      error
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.AppProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byUserID[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

// fakeAttendeeRepo keeps one row per (event, user) pair, like the unique index in postgres.
type fakeAttendeeRepo struct {
	rows      map[string]*domain.EventAttendee // key: eventID/userID
	checkIns  []*domain.CheckIn
	checkOuts []*domain.CheckOut
	nextID    int
	createErr error
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{rows: make(map[string]*domain.EventAttendee), nextID: 1}
}

func pairKey(eventID, userID string) string { return eventID + "/" + userID }

func (f *fakeAttendeeRepo) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, f.nextID)
	f.nextID++
	return id
}

func (f *fakeAttendeeRepo) Create(ctx context.Context, a *domain.EventAttendee) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[pairKey(a.EventID, a.UserID)]; ok {
		return domain.ErrConflict
	}
	a.ID = f.id("att")
	stored := *a
	f.rows[pairKey(a.EventID, a.UserID)] = &stored
	return nil
}

func (f *fakeAttendeeRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventAttendee, error) {
	if a, ok := f.rows[pairKey(eventID, userID)]; ok {
		out := *a
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) Update(ctx context.Context, a *domain.EventAttendee) error {
	if _, ok := f.rows[pairKey(a.EventID, a.UserID)]; !ok {
		return domain.ErrNotFound
	}
	stored := *a
	f.rows[pairKey(a.EventID, a.UserID)] = &stored
	return nil
}

func (f *fakeAttendeeRepo) Delete(ctx context.Context, id string) error {
	for k, a := range f.rows {
		if a.ID == id {
			delete(f.rows, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID string, page domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	var all []*domain.EventAttendee
	for _, a := range f.rows {
		if a.EventID == eventID {
			all = append(all, a)
		}
	}
	total := len(all)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PageSize
	if page.Unbounded() || end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeAttendeeRepo) CreateCheckIn(ctx context.Context, a *domain.EventAttendee, c *domain.CheckIn) error {
	if a.ID == "" {
		if err := f.Create(ctx, a); err != nil {
			return err
		}
	}
	c.ID = f.id("ci")
	c.EventAttendeeID = a.ID
	a.CheckInID = &c.ID
	f.checkIns = append(f.checkIns, c)
	return f.Update(ctx, a)
}

func (f *fakeAttendeeRepo) CreateCheckOut(ctx context.Context, a *domain.EventAttendee, c *domain.CheckOut) error {
	c.ID = f.id("co")
	c.EventAttendeeID = a.ID
	a.CheckOutID = &c.ID
	f.checkOuts = append(f.checkOuts, c)
	return f.Update(ctx, a)
}

type fakeCache struct {
	entries  map[string]*domain.Event
	findErr  error
	writeErr error
	writes   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Event)}
}

func (f *fakeCache) FindEvents(ctx context.Context, ids []string) ([]*domain.Event, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*domain.Event, len(ids))
	for i, id := range ids {
		if e, ok := f.entries[id]; ok {
			cp := *e
			out[i] = &cp
		}
	}
	return out, nil
}

func (f *fakeCache) CacheEvents(ctx context.Context, events []*domain.Event) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	for _, e := range events {
		cp := *e
		f.entries[e.ID] = &cp
	}
	return nil
}

type fakeEmailService struct {
	sent []*domain.EventInvitationEmailData
	err  error
}

func (f *fakeEmailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(h, m int) *domain.TimeOfDay {
	t := domain.NewTimeOfDay(h, m, 0)
	return &t
}

func strPtr(s string) *string { return &s }

// fixture is a small world: organization org-1 with venues, a creator, a member, an org
// admin, a platform super-admin and an outsider. org-2 owns venue-other.
type fixture struct {
	events    *fakeEventRepo
	venues    *fakeVenueRepo
	users     *fakeUserRepo
	orgs      *fakeOrgRepo
	profiles  *fakeProfileRepo
	attendees *fakeAttendeeRepo
	cache     *fakeCache
	emails    *fakeEmailService
	gate      *Gate
}

func newFixture(events ...*domain.Event) *fixture {
	f := &fixture{
		events: newFakeEventRepo(events...),
		venues: &fakeVenueRepo{byID: map[string]*domain.Venue{
			"venue-1":     {ID: "venue-1", OrganizationID: "org-1", Name: "Main hall"},
			"venue-2":     {ID: "venue-2", OrganizationID: "org-1", Name: "Room B"},
			"venue-other": {ID: "venue-other", OrganizationID: "org-2", Name: "Elsewhere"},
		}},
		users: &fakeUserRepo{byID: map[string]*domain.User{
			"u-creator":   {ID: "u-creator", Email: "creator@example.com"},
			"u-member":    {ID: "u-member", Email: "member@example.com", FirstName: "Mia", JoinedOrganizations: []string{"org-1"}},
			"u-orgadmin":  {ID: "u-orgadmin", Email: "orgadmin@example.com"},
			"u-super":     {ID: "u-super", Email: "super@example.com"},
			"u-outsider":  {ID: "u-outsider", Email: "outsider@example.com"},
			"u-eventadm":  {ID: "u-eventadm", Email: "eventadmin@example.com", JoinedOrganizations: []string{"org-1"}},
			"u-listed":    {ID: "u-listed", Email: "listed@example.com"},
			"u-profadmin": {ID: "u-profadmin", Email: "profadmin@example.com"},
		}},
		orgs: &fakeOrgRepo{byID: map[string]*domain.Organization{
			"org-1": {ID: "org-1", Name: "Org One", CreatorID: "u-creator", Admins: []string{"u-orgadmin"}, Members: []string{"u-listed"}},
			"org-2": {ID: "org-2", Name: "Org Two", CreatorID: "u-outsider"},
		}},
		profiles: &fakeProfileRepo{byUserID: map[string]*domain.AppProfile{
			"u-super":     {UserID: "u-super", IsSuperAdmin: true},
			"u-profadmin": {UserID: "u-profadmin", AdminFor: []string{"org-1"}},
		}},
		attendees: newFakeAttendeeRepo(),
		cache:     newFakeCache(),
		emails:    &fakeEmailService{},
	}
	f.gate = NewGate(f.users, f.orgs, f.profiles)
	return f
}

func (f *fixture) eventService() *eventService {
	return NewEventService(f.events, f.venues, f.attendees, f.users, f.cache, f.gate, discardLogger(), time.Second).(*eventService)
}

func (f *fixture) venueService() *venueService {
	return NewVenueService(f.events, f.venues, f.gate, discardLogger(), time.Second).(*venueService)
}

func (f *fixture) attendeeService(skipMembership bool) *attendeeService {
	return NewAttendeeService(f.attendees, f.events, f.users, f.cache, f.gate, f.emails, discardLogger(), time.Second, skipMembership).(*attendeeService)
}

// bookedEvent is an active org-1 event administered by u-eventadm.
func bookedEvent(id, venueID string, start, end string, startTime, endTime *domain.TimeOfDay) *domain.Event {
	e := &domain.Event{
		ID:             id,
		OrganizationID: "org-1",
		Title:          "Booked " + id,
		StartDate:      date(start),
		EndDate:        date(end),
		StartTime:      startTime,
		EndTime:        endTime,
		AllDay:         startTime == nil && endTime == nil,
		CreatorID:      "u-eventadm",
		Admins:         []string{"u-eventadm"},
		Status:         domain.EventStatusActive,
	}
	if venueID != "" {
		e.VenueID = strPtr(venueID)
	}
	return e
}
