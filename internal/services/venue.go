package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"eventvenues/internal/domain"
	"eventvenues/internal/monitoring"
)

type venueService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	gate           *Gate
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewVenueService creates the venue conflict checker.
func NewVenueService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	gate *Gate,
	logger *slog.Logger,
	timeout time.Duration,
) domain.VenueService {
	return &venueService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		gate:           gate,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *venueService) CheckVenue(ctx context.Context, callerID string, q domain.VenueQuery) ([]*domain.ConflictingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	org, err := s.authorizeOrganization(ctx, callerID, q.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := q.Slot.Validate(); err != nil {
		return nil, err
	}
	venue, err := resolveVenue(ctx, s.venueRepo, org.ID, q.VenueID)
	if err != nil {
		return nil, err
	}
	q.OrganizationID, q.VenueID = org.ID, venue.ID

	conflicts, err := findConflicts(ctx, s.eventRepo, q)
	if err != nil {
		return nil, err
	}
	monitoring.TrackVenueCheck(len(conflicts))
	return conflicts, nil
}

func (s *venueService) ListAvailableVenues(ctx context.Context, callerID, organizationID string, slot domain.Slot) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	org, err := s.authorizeOrganization(ctx, callerID, organizationID)
	if err != nil {
		return nil, err
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	venues, err := s.venueRepo.ListByOrganizationID(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	booked, err := s.eventRepo.ListBookedByOrganization(ctx, org.ID, slot.Dates())
	if err != nil {
		return nil, fmt.Errorf("list booked events: %w", err)
	}

	busy := make(map[string]struct{})
	for _, ev := range booked {
		if ev.IsDeleted() || ev.VenueID == nil {
			continue
		}
		if slot.Conflicts(ev.Slot()) {
			busy[domain.NormalizeID(*ev.VenueID)] = struct{}{}
		}
	}

	available := make([]*domain.Venue, 0, len(venues))
	for _, v := range venues {
		if _, taken := busy[domain.NormalizeID(v.ID)]; !taken {
			available = append(available, v)
		}
	}
	return available, nil
}

// authorizeOrganization resolves caller and organization, then requires the caller to
// be allowed to book in it.
func (s *venueService) authorizeOrganization(ctx context.Context, callerID, organizationID string) (*domain.Organization, error) {
	caller, err := s.gate.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	org, err := s.gate.LookupOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanCreateIn(caller, org) {
		return nil, domain.Unauthorized("user is not a member of the organization")
	}
	return org, nil
}

// resolveVenue loads the venue and checks it belongs to the organization. A venue of
// another organization is reported exactly like a missing one.
func resolveVenue(ctx context.Context, repo domain.VenueRepository, organizationID, venueID string) (*domain.Venue, error) {
	id := domain.NormalizeID(venueID)
	if id == "" {
		return nil, domain.NotFound("venue does not exist")
	}
	venue, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("venue does not exist")
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if !domain.SameID(venue.OrganizationID, organizationID) {
		return nil, domain.NotFound("venue does not exist")
	}
	return venue, nil
}

// findConflicts loads the venue's events around the window and keeps the colliding ones.
func findConflicts(ctx context.Context, repo domain.EventRepository, q domain.VenueQuery) ([]*domain.ConflictingEvent, error) {
	candidates, err := repo.ListByVenueAndDates(ctx, q.OrganizationID, q.VenueID, q.Slot.Dates())
	if err != nil {
		return nil, fmt.Errorf("list venue events: %w", err)
	}
	return ConflictsAmong(candidates, q), nil
}

// ConflictsAmong returns the events that hold q's venue during q's window, ordered by
// start date. Deleted events, other venues and q.ExcludeEventID are ignored.
func ConflictsAmong(events []*domain.Event, q domain.VenueQuery) []*domain.ConflictingEvent {
	out := make([]*domain.ConflictingEvent, 0)
	for _, ev := range events {
		if ev == nil || ev.IsDeleted() {
			continue
		}
		if !domain.SameID(ev.OrganizationID, q.OrganizationID) || !domain.SameID(ev.VenueRef(), q.VenueID) {
			continue
		}
		if q.ExcludeEventID != "" && domain.SameID(ev.ID, q.ExcludeEventID) {
			continue
		}
		if q.Slot.Conflicts(ev.Slot()) {
			out = append(out, domain.NewConflictingEvent(ev))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func conflictIDs(conflicts []*domain.ConflictingEvent) []string {
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return ids
}
