package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventvenues/internal/domain"
	"eventvenues/internal/monitoring"
)

type attendeeService struct {
	attendeeRepo   domain.EventAttendeeRepository
	userRepo       domain.UserRepository
	gate           *Gate
	reader         *eventReader
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration

	// skipMembershipCheck lets AddEventAttendee accept users outside the organization.
	skipMembershipCheck bool
}

// NewAttendeeService creates the attendee lifecycle manager. emailService may be nil,
// in which case no invitation emails are sent.
func NewAttendeeService(
	attendeeRepo domain.EventAttendeeRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	cache domain.EventCache,
	gate *Gate,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
	skipMembershipCheck bool,
) domain.AttendeeService {
	return &attendeeService{
		attendeeRepo:        attendeeRepo,
		userRepo:            userRepo,
		gate:                gate,
		reader:              newEventReader(eventRepo, cache, logger),
		emailService:        emailService,
		logger:              logger,
		contextTimeout:      timeout,
		skipMembershipCheck: skipMembershipCheck,
	}
}

// attendeeTarget is everything a transition needs once existence and authorization passed.
type attendeeTarget struct {
	caller   *Caller
	event    *domain.Event
	user     *domain.User
	attendee *domain.EventAttendee // nil when the pair has no row
}

// resolve checks caller, event and target user exist, authorizes the caller and loads the
// current attendee row.
func (s *attendeeService) resolve(ctx context.Context, callerID, eventID, userID string, allowOrgAdmin bool) (*attendeeTarget, error) {
	caller, err := s.gate.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	event, err := s.reader.Load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := s.gate.LookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeForEvent(ctx, caller, event, allowOrgAdmin); err != nil {
		return nil, err
	}

	attendee, err := s.attendeeRepo.GetByEventAndUser(ctx, event.ID, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get event attendee: %w", err)
		}
		attendee = nil
	}
	return &attendeeTarget{caller: caller, event: event, user: user, attendee: attendee}, nil
}

func (s *attendeeService) InviteAttendee(ctx context.Context, callerID, eventID, userID string) (a *domain.EventAttendee, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("invite", err) }()

	target, err := s.resolve(ctx, callerID, eventID, userID, true)
	if err != nil {
		return nil, err
	}
	if target.attendee != nil {
		return nil, domain.Conflict("user is already an attendee of this event")
	}

	a = domain.NewEventAttendee(target.event.ID, target.user.ID, time.Now().UTC())
	a.IsInvited = true
	if err := s.create(ctx, a); err != nil {
		return nil, err
	}
	s.sendInvitation(ctx, target.event, target.user)
	return a, nil
}

func (s *attendeeService) RegisterAttendee(ctx context.Context, callerID, eventID, userID string) (a *domain.EventAttendee, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("register", err) }()

	target, err := s.resolve(ctx, callerID, eventID, userID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case target.attendee == nil:
		a = domain.NewEventAttendee(target.event.ID, target.user.ID, now)
		a.IsRegistered = true
		if err := s.create(ctx, a); err != nil {
			return nil, err
		}
	case target.attendee.IsRegistered:
		return nil, domain.AlreadyRegistered("user is already registered for this event")
	default:
		registered := true
		promoted := domain.AttendeePatch{IsRegistered: &registered}.Apply(*target.attendee, now)
		if err := s.attendeeRepo.Update(ctx, &promoted); err != nil {
			return nil, fmt.Errorf("update event attendee: %w", err)
		}
		a = &promoted
	}

	s.appendRegistered(ctx, a)
	return a, nil
}

func (s *attendeeService) AddEventAttendee(ctx context.Context, callerID, eventID, userID string) (a *domain.EventAttendee, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("add", err) }()

	target, err := s.resolve(ctx, callerID, eventID, userID, true)
	if err != nil {
		return nil, err
	}
	if target.attendee != nil {
		return nil, domain.Conflict("user is already an attendee of this event")
	}
	if !s.skipMembershipCheck {
		org, err := s.gate.LookupOrganization(ctx, target.event.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !org.HasMember(target.user) {
			return nil, domain.Unauthorized("user is not a member of the organization")
		}
	}

	a = domain.NewEventAttendee(target.event.ID, target.user.ID, time.Now().UTC())
	a.IsRegistered = true
	if err := s.create(ctx, a); err != nil {
		return nil, err
	}
	s.appendRegistered(ctx, a)
	return a, nil
}

func (s *attendeeService) RemoveEventAttendee(ctx context.Context, callerID, eventID, userID string) (a *domain.EventAttendee, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("remove", err) }()

	target, err := s.resolve(ctx, callerID, eventID, userID, true)
	if err != nil {
		return nil, err
	}
	if target.attendee == nil {
		return nil, domain.Conflict("user is not registered for this event")
	}
	if err := s.attendeeRepo.Delete(ctx, target.attendee.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Conflict("user is not registered for this event")
		}
		return nil, fmt.Errorf("delete event attendee: %w", err)
	}
	return target.attendee, nil
}

func (s *attendeeService) CheckIn(ctx context.Context, callerID string, in domain.CheckInInput) (c *domain.CheckIn, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("check_in", err) }()

	target, err := s.resolve(ctx, callerID, in.EventID, in.UserID, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := target.attendee
	if a == nil {
		// Walk-in: the row and its check-in are stored together.
		a = domain.NewEventAttendee(target.event.ID, target.user.ID, now)
		a.IsRegistered = true
	} else if a.HasCheckedIn() {
		return nil, domain.Conflict("user is already checked in")
	}

	updated := domain.AttendeePatch{AllotedSeat: in.AllotedSeat, AllotedRoom: in.AllotedRoom}.Apply(*a, now)
	updated.IsCheckedIn = true
	c = &domain.CheckIn{
		AllotedSeat: in.AllotedSeat,
		AllotedRoom: in.AllotedRoom,
		Time:        now,
	}
	if err := s.attendeeRepo.CreateCheckIn(ctx, &updated, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			if target.attendee == nil {
				return nil, domain.Conflict("user is already an attendee of this event")
			}
			return nil, domain.Conflict("user is already checked in")
		}
		return nil, fmt.Errorf("create check-in: %w", err)
	}
	return c, nil
}

func (s *attendeeService) CheckOut(ctx context.Context, callerID, eventID, userID string) (c *domain.CheckOut, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	defer func() { monitoring.TrackAttendeeTransition("check_out", err) }()

	target, err := s.resolve(ctx, callerID, eventID, userID, false)
	if err != nil {
		return nil, err
	}

	a := target.attendee
	switch {
	case a == nil:
		return nil, domain.NotFound("attendee not found")
	case a.CheckOutID != nil:
		return nil, domain.Conflict("user is already checked out")
	case !a.HasCheckedIn():
		return nil, domain.Conflict("user has not checked in")
	}

	now := time.Now().UTC()
	updated := *a
	updated.UpdatedAt = now
	c = &domain.CheckOut{Time: now}
	if err := s.attendeeRepo.CreateCheckOut(ctx, &updated, c); err != nil {
		return nil, fmt.Errorf("create check-out: %w", err)
	}
	return c, nil
}

func (s *attendeeService) ListEventAttendees(ctx context.Context, callerID, eventID string, page domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := s.gate.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}
	event, err := s.reader.Load(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.gate.AuthorizeForEvent(ctx, caller, event, true); err != nil {
		return nil, 0, err
	}

	attendees, total, err := s.attendeeRepo.ListByEventID(ctx, event.ID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list event attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.EventAttendee{}
	}
	return attendees, total, nil
}

// create inserts a new row. A unique-index violation means another request created the
// pair first.
func (s *attendeeService) create(ctx context.Context, a *domain.EventAttendee) error {
	if err := s.attendeeRepo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Conflict("user is already an attendee of this event")
		}
		return fmt.Errorf("create event attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) appendRegistered(ctx context.Context, a *domain.EventAttendee) {
	if err := s.userRepo.AppendEventRef(ctx, a.UserID, domain.UserRegisteredEvents, a.EventID); err != nil {
		s.logger.WarnContext(ctx, "append registered event failed", "event_id", a.EventID, "user_id", a.UserID, "err", err)
	}
}

func (s *attendeeService) sendInvitation(ctx context.Context, event *domain.Event, user *domain.User) {
	if s.emailService == nil || user.Email == "" {
		return
	}
	data := &domain.EventInvitationEmailData{
		Email:      user.Email,
		FirstName:  user.FirstName,
		EventID:    event.ID,
		EventTitle: event.Title,
		StartDate:  event.StartDate.Format(domain.DateLayout),
		EndDate:    event.EndDate.Format(domain.DateLayout),
		Location:   event.Location,
	}
	if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "send event invitation failed", "event_id", event.ID, "user_id", user.ID, "err", err)
	}
}
