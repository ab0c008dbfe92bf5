package domain

import (
	"context"
	"time"
)

// AttendeeState is the position of a (event, user) pair in the attendee lifecycle.
type AttendeeState string

const (
	AttendeeNone       AttendeeState = "NONE"
	AttendeeInvited    AttendeeState = "INVITED"
	AttendeeRegistered AttendeeState = "REGISTERED"
	AttendeeCheckedIn  AttendeeState = "CHECKED_IN"
	AttendeeCheckedOut AttendeeState = "CHECKED_OUT"
)

// EventAttendee links a user to an event. At most one row exists per (EventID, UserID).
// swagger:model EventAttendee
type EventAttendee struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	IsInvited    bool      `json:"is_invited"`
	IsRegistered bool      `json:"is_registered"`
	IsCheckedIn  bool      `json:"is_checked_in"`
	CheckInID    *string   `json:"check_in_id,omitempty"`
	CheckOutID   *string   `json:"check_out_id,omitempty"`
	AllotedSeat  *string   `json:"alloted_seat,omitempty"`
	AllotedRoom  *string   `json:"alloted_room,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEventAttendee returns an attendee row for the pair. ID is set by the repository on create.
func NewEventAttendee(eventID, userID string, now time.Time) *EventAttendee {
	return &EventAttendee{
		EventID:   NormalizeID(eventID),
		UserID:    NormalizeID(userID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State derives the lifecycle state from the stored flags and links.
func (a *EventAttendee) State() AttendeeState {
	switch {
	case a == nil:
		return AttendeeNone
	case a.CheckOutID != nil:
		return AttendeeCheckedOut
	case a.CheckInID != nil || a.IsCheckedIn:
		return AttendeeCheckedIn
	case a.IsRegistered:
		return AttendeeRegistered
	case a.IsInvited:
		return AttendeeInvited
	}
	return AttendeeNone
}

// HasCheckedIn reports whether a check-in was ever recorded.
func (a *EventAttendee) HasCheckedIn() bool {
	return a.CheckInID != nil || a.IsCheckedIn
}

// AttendeePatch is a partial update of an attendee row. Nil fields are left unchanged.
type AttendeePatch struct {
	IsInvited    *bool
	IsRegistered *bool
	AllotedSeat  *string
	AllotedRoom  *string
}

// Apply returns a copy of a with the patch applied; a itself is not modified.
func (p AttendeePatch) Apply(a EventAttendee, updatedAt time.Time) EventAttendee {
	out := a
	if p.IsInvited != nil {
		out.IsInvited = *p.IsInvited
	}
	if p.IsRegistered != nil {
		out.IsRegistered = *p.IsRegistered
	}
	if p.AllotedSeat != nil {
		out.AllotedSeat = p.AllotedSeat
	}
	if p.AllotedRoom != nil {
		out.AllotedRoom = p.AllotedRoom
	}
	out.UpdatedAt = updatedAt
	return out
}

// CheckIn records an attendee arriving at the event.
// swagger:model CheckIn
type CheckIn struct {
	ID              string    `json:"id"`
	EventAttendeeID string    `json:"event_attendee_id"`
	AllotedSeat     *string   `json:"alloted_seat,omitempty"`
	AllotedRoom     *string   `json:"alloted_room,omitempty"`
	Time            time.Time `json:"time"`
}

// CheckOut records an attendee leaving the event. It requires a prior CheckIn.
// swagger:model CheckOut
type CheckOut struct {
	ID              string    `json:"id"`
	EventAttendeeID string    `json:"event_attendee_id"`
	Time            time.Time `json:"time"`
}

// CheckInInput is the payload for checking a user in.
type CheckInInput struct {
	EventID     string
	UserID      string
	AllotedSeat *string
	AllotedRoom *string
}

// EventAttendeeRepository defines storage for attendee rows and their check-in/out records.
type EventAttendeeRepository interface {
	// Create inserts the row; a duplicate (event, user) pair returns ErrConflict.
	Create(ctx context.Context, a *EventAttendee) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventAttendee, error)
	Update(ctx context.Context, a *EventAttendee) error
	Delete(ctx context.Context, id string) error
	ListByEventID(ctx context.Context, eventID string, page PaginationParams) ([]*EventAttendee, int, error)
	// CreateCheckIn stores c and links it to a in one transaction. When a.ID is empty the
	// attendee row is inserted in the same transaction.
	CreateCheckIn(ctx context.Context, a *EventAttendee, c *CheckIn) error
	// CreateCheckOut stores c and links it to a in one transaction.
	CreateCheckOut(ctx context.Context, a *EventAttendee, c *CheckOut) error
}

// AttendeeService is the attendee lifecycle manager. Every operation takes the caller's id
// explicitly.
type AttendeeService interface {
	InviteAttendee(ctx context.Context, callerID, eventID, userID string) (*EventAttendee, error)
	RegisterAttendee(ctx context.Context, callerID, eventID, userID string) (*EventAttendee, error)
	AddEventAttendee(ctx context.Context, callerID, eventID, userID string) (*EventAttendee, error)
	RemoveEventAttendee(ctx context.Context, callerID, eventID, userID string) (*EventAttendee, error)
	CheckIn(ctx context.Context, callerID string, in CheckInInput) (*CheckIn, error)
	CheckOut(ctx context.Context, callerID, eventID, userID string) (*CheckOut, error)
	ListEventAttendees(ctx context.Context, callerID, eventID string, page PaginationParams) ([]*EventAttendee, int, error)
}
