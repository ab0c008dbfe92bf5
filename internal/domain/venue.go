package domain

import (
	"context"
	"time"
)

// Venue is a bookable place owned by exactly one organization.
// swagger:model Venue
type Venue struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Capacity       int       `json:"capacity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*Venue, error)
	ListByOrganizationID(ctx context.Context, organizationID string) ([]*Venue, error)
}

// VenueService answers booking questions about an organization's venues.
type VenueService interface {
	// CheckVenue returns the events that already hold the venue during the window.
	CheckVenue(ctx context.Context, callerID string, q VenueQuery) ([]*ConflictingEvent, error)
	// ListAvailableVenues returns the organization's venues free during the whole window.
	ListAvailableVenues(ctx context.Context, callerID, organizationID string, slot Slot) ([]*Venue, error)
}
