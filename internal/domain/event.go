package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event. Events are never hard-deleted.
type EventStatus string

const (
	EventStatusActive  EventStatus = "ACTIVE"
	EventStatusBlocked EventStatus = "BLOCKED"
	EventStatusDeleted EventStatus = "DELETED"
)

// Event is an organization event, optionally booked on a venue.
// swagger:model Event
type Event struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	VenueID        *string     `json:"venue_id,omitempty"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        time.Time   `json:"end_date"`
	AllDay         bool        `json:"all_day"`
	StartTime      *TimeOfDay  `json:"start_time,omitempty"`
	EndTime        *TimeOfDay  `json:"end_time,omitempty"`
	CreatorID      string      `json:"creator_id"`
	Admins         []string    `json:"admins"`
	Status         EventStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Slot returns the venue window the event occupies.
func (e *Event) Slot() Slot {
	return Slot{
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}

// VenueRef returns the venue id, or "" when the event has no venue.
func (e *Event) VenueRef() string {
	if e.VenueID == nil {
		return ""
	}
	return *e.VenueID
}

// IsDeleted reports whether the event was soft-deleted.
func (e *Event) IsDeleted() bool { return e.Status == EventStatusDeleted }

// NewEvent returns an active Event created by creatorID, who is its only admin.
// ID is typically set by the repository on create.
func NewEvent(creatorID string, in CreateEventInput, createdAt time.Time) *Event {
	e := &Event{
		OrganizationID: NormalizeID(in.OrganizationID),
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		StartDate:      DateOf(in.StartDate),
		EndDate:        DateOf(in.EndDate),
		AllDay:         in.AllDay,
		CreatorID:      NormalizeID(creatorID),
		Admins:         []string{NormalizeID(creatorID)},
		Status:         EventStatusActive,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if in.VenueID != nil && *in.VenueID != "" {
		v := NormalizeID(*in.VenueID)
		e.VenueID = &v
	}
	if !in.AllDay {
		e.StartTime = in.StartTime
		e.EndTime = in.EndTime
	}
	return e
}

// CreateEventInput is the payload for creating an event.
type CreateEventInput struct {
	OrganizationID string
	VenueID        *string
	Title          string
	Description    string
	Location       string
	StartDate      time.Time
	EndDate        time.Time
	AllDay         bool
	StartTime      *TimeOfDay
	EndTime        *TimeOfDay
}

// Slot returns the window the new event would occupy.
func (in CreateEventInput) Slot() Slot {
	return Slot{StartDate: in.StartDate, EndDate: in.EndDate, AllDay: in.AllDay, StartTime: in.StartTime, EndTime: in.EndTime}
}

// EventPatch is a partial update of an event. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	VenueID     *string
	StartDate   *time.Time
	EndDate     *time.Time
	AllDay      *bool
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
}

// TouchesSlot reports whether the patch changes the venue or the booked window.
func (p EventPatch) TouchesSlot() bool {
	return p.VenueID != nil || p.StartDate != nil || p.EndDate != nil ||
		p.AllDay != nil || p.StartTime != nil || p.EndTime != nil
}

// Apply returns a copy of e with the patch applied; e itself is not modified.
// An empty VenueID clears the venue.
func (p EventPatch) Apply(e Event, updatedAt time.Time) Event {
	out := e
	out.Admins = append([]string(nil), e.Admins...)
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.VenueID != nil {
		if *p.VenueID == "" {
			out.VenueID = nil
		} else {
			v := NormalizeID(*p.VenueID)
			out.VenueID = &v
		}
	}
	if p.StartDate != nil {
		out.StartDate = DateOf(*p.StartDate)
	}
	if p.EndDate != nil {
		out.EndDate = DateOf(*p.EndDate)
	}
	if p.AllDay != nil {
		out.AllDay = *p.AllDay
	}
	if p.StartTime != nil {
		t := *p.StartTime
		out.StartTime = &t
	}
	if p.EndTime != nil {
		t := *p.EndTime
		out.EndTime = &t
	}
	if out.AllDay {
		out.StartTime, out.EndTime = nil, nil
	}
	out.UpdatedAt = updatedAt
	return out
}

// VenueQuery asks whether a venue is free for a window.
type VenueQuery struct {
	OrganizationID string
	VenueID        string
	Slot
	// ExcludeEventID skips one event, used when an event is re-checked against its own booking.
	ExcludeEventID string
}

// ConflictingEvent summarizes an event that already holds the venue for an overlapping window.
// swagger:model ConflictingEvent
type ConflictingEvent struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	VenueID   string     `json:"venue_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	AllDay    bool       `json:"all_day"`
	StartTime *TimeOfDay `json:"start_time,omitempty"`
	EndTime   *TimeOfDay `json:"end_time,omitempty"`
}

// NewConflictingEvent summarizes e.
func NewConflictingEvent(e *Event) *ConflictingEvent {
	return &ConflictingEvent{
		ID:        e.ID,
		Title:     e.Title,
		VenueID:   e.VenueRef(),
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListByVenueAndDates returns non-deleted events of the organization on the venue whose
	// date range intersects r.
	ListByVenueAndDates(ctx context.Context, organizationID, venueID string, r DateRange) ([]*Event, error)
	// ListBookedByOrganization returns non-deleted events of the organization that hold a
	// venue and whose date range intersects r.
	ListBookedByOrganization(ctx context.Context, organizationID string, r DateRange) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
}

// EventCache is a key-value read-through cache of event snapshots. It never reads
// through to the repository itself: callers fall back to the store on a miss and
// repopulate with CacheEvents. Entries expire by TTL and are not invalidated on update.
type EventCache interface {
	// FindEvents returns one entry per id, in order; misses are nil.
	FindEvents(ctx context.Context, ids []string) ([]*Event, error)
	CacheEvents(ctx context.Context, events []*Event) error
}

// EventService is the event creation orchestrator and read path.
type EventService interface {
	CreateEvent(ctx context.Context, callerID string, in CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, callerID, eventID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, callerID, eventID string) (*Event, error)
}
