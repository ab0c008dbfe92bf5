package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventvenues/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	attendeeRepo   domain.EventAttendeeRepository
	userRepo       domain.UserRepository
	gate           *Gate
	reader         *eventReader
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	attendeeRepo domain.EventAttendeeRepository,
	userRepo domain.UserRepository,
	cache domain.EventCache,
	gate *Gate,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		attendeeRepo:   attendeeRepo,
		userRepo:       userRepo,
		gate:           gate,
		reader:         newEventReader(eventRepo, cache, logger),
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, callerID string, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := s.gate.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	org, err := s.gate.LookupOrganization(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanCreateIn(caller, org) {
		return nil, domain.Unauthorized("user is not a member of the organization")
	}
	if err := validateEventText(ctx, in.Title, in.Description, in.Location); err != nil {
		return nil, err
	}
	if err := in.Slot().Validate(); err != nil {
		return nil, err
	}

	in.OrganizationID = org.ID
	event := domain.NewEvent(caller.ID(), in, time.Now().UTC())
	if event.VenueID != nil {
		if err := s.ensureVenueFree(ctx, event); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.seedCreator(ctx, event)
	return event, nil
}

// ensureVenueFree requires the event's venue to belong to its organization and to be
// free for the event's window. The event itself never conflicts with its own booking.
func (s *eventService) ensureVenueFree(ctx context.Context, event *domain.Event) error {
	venue, err := resolveVenue(ctx, s.venueRepo, event.OrganizationID, event.VenueRef())
	if err != nil {
		return err
	}
	conflicts, err := findConflicts(ctx, s.eventRepo, domain.VenueQuery{
		OrganizationID: event.OrganizationID,
		VenueID:        venue.ID,
		Slot:           event.Slot(),
		ExcludeEventID: event.ID,
	})
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return domain.Conflict("venue is already booked", conflictIDs(conflicts)...)
	}
	return nil
}

// seedCreator registers the creator as an attendee, records the event on the creator's
// lists and warms the cache. The event already exists, so failures are only logged.
func (s *eventService) seedCreator(ctx context.Context, event *domain.Event) {
	attendee := domain.NewEventAttendee(event.ID, event.CreatorID, event.CreatedAt)
	attendee.IsRegistered = true
	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		s.logger.WarnContext(ctx, "seed creator attendee failed", "event_id", event.ID, "err", err)
	}
	for _, list := range []domain.UserEventList{domain.UserAdminForEvents, domain.UserCreatedEvents, domain.UserRegisteredEvents} {
		if err := s.userRepo.AppendEventRef(ctx, event.CreatorID, list, event.ID); err != nil {
			s.logger.WarnContext(ctx, "append event to creator failed", "event_id", event.ID, "list", string(list), "err", err)
		}
	}
	s.reader.Warm(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.reader.Load(ctx, eventID)
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, current, err := s.loadForMutation(ctx, callerID, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeForEvent(ctx, caller, current, true); err != nil {
		return nil, err
	}

	updated := patch.Apply(*current, time.Now().UTC())
	if err := validateEventText(ctx, updated.Title, updated.Description, updated.Location); err != nil {
		return nil, err
	}
	if err := updated.Slot().Validate(); err != nil {
		return nil, err
	}
	if patch.TouchesSlot() && updated.VenueID != nil {
		if err := s.ensureVenueFree(ctx, &updated); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("event not found")
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, callerID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, current, err := s.loadForMutation(ctx, callerID, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeForEvent(ctx, caller, current, true); err != nil {
		return nil, err
	}

	deleted := *current
	deleted.Status = domain.EventStatusDeleted
	deleted.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, &deleted); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("event not found")
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return &deleted, nil
}

// loadForMutation resolves the caller and reads the event from the store, bypassing the
// cache so that changes are never built on a stale snapshot.
func (s *eventService) loadForMutation(ctx context.Context, callerID, eventID string) (*Caller, *domain.Event, error) {
	caller, err := s.gate.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}
	id := domain.NormalizeID(eventID)
	if id == "" {
		return nil, nil, domain.NotFound("event not found")
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("event not found")
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	if event.IsDeleted() {
		return nil, nil, domain.NotFound("event not found")
	}
	return caller, event, nil
}
