package services

import (
	"context"
	"errors"
	"fmt"

	"eventvenues/internal/domain"
)

// Caller is the resolved identity behind a request: the user and, when present,
// their platform profile.
type Caller struct {
	User    *domain.User
	Profile *domain.AppProfile
}

// ID returns the caller's canonical user id.
func (c *Caller) ID() string { return domain.NormalizeID(c.User.ID) }

// IsEventAdmin reports whether callerID is listed among the event's admins.
// Ids are compared by canonical value, not by representation.
func IsEventAdmin(event *domain.Event, callerID string) bool {
	return event != nil && domain.ContainsID(event.Admins, callerID)
}

// IsPlatformSuperAdmin reports whether the profile grants platform-wide rights.
func IsPlatformSuperAdmin(profile *domain.AppProfile) bool {
	return profile != nil && profile.IsSuperAdmin
}

// IsOrganizationAdmin reports whether callerID administers the organization, either
// through the organization's admin list or through the caller's profile.
func IsOrganizationAdmin(org *domain.Organization, profile *domain.AppProfile, callerID string) bool {
	if org == nil {
		return false
	}
	if domain.ContainsID(org.Admins, callerID) {
		return true
	}
	return profile != nil && domain.ContainsID(profile.AdminFor, org.ID)
}

// Gate is the event authorization gate shared by every mutation.
type Gate struct {
	userRepo    domain.UserRepository
	orgRepo     domain.OrganizationRepository
	profileRepo domain.AppProfileRepository
}

// NewGate creates a Gate backed by the given lookups.
func NewGate(userRepo domain.UserRepository, orgRepo domain.OrganizationRepository, profileRepo domain.AppProfileRepository) *Gate {
	return &Gate{userRepo: userRepo, orgRepo: orgRepo, profileRepo: profileRepo}
}

// ResolveCaller loads the caller's user and profile. A missing user is NotFound; a
// missing profile just means no platform roles.
func (g *Gate) ResolveCaller(ctx context.Context, callerID string) (*Caller, error) {
	user, err := g.lookupUser(ctx, callerID, "user not found")
	if err != nil {
		return nil, err
	}
	profile, err := g.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get app profile: %w", err)
		}
		profile = nil
	}
	return &Caller{User: user, Profile: profile}, nil
}

// LookupUser loads a user referenced by an operation.
func (g *Gate) LookupUser(ctx context.Context, userID string) (*domain.User, error) {
	return g.lookupUser(ctx, userID, "user not found")
}

func (g *Gate) lookupUser(ctx context.Context, userID, msg string) (*domain.User, error) {
	id := domain.NormalizeID(userID)
	if id == "" {
		return nil, domain.NotFound(msg)
	}
	user, err := g.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msg)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// LookupOrganization loads an organization.
func (g *Gate) LookupOrganization(ctx context.Context, orgID string) (*domain.Organization, error) {
	id := domain.NormalizeID(orgID)
	if id == "" {
		return nil, domain.NotFound("organization not found")
	}
	org, err := g.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("organization not found")
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// CanCreateIn reports whether the caller may create events in the organization: its
// creator, a joined member, one of its admins, or a platform super-admin.
func (g *Gate) CanCreateIn(caller *Caller, org *domain.Organization) bool {
	switch {
	case IsPlatformSuperAdmin(caller.Profile):
		return true
	case domain.SameID(org.CreatorID, caller.ID()):
		return true
	case IsOrganizationAdmin(org, caller.Profile, caller.ID()):
		return true
	}
	return org.HasMember(caller.User)
}

// AuthorizeForEvent allows event admins and platform super-admins. With allowOrgAdmin
// set, admins of the event's organization are accepted too.
func (g *Gate) AuthorizeForEvent(ctx context.Context, caller *Caller, event *domain.Event, allowOrgAdmin bool) error {
	if IsEventAdmin(event, caller.ID()) || IsPlatformSuperAdmin(caller.Profile) {
		return nil
	}
	if allowOrgAdmin {
		org, err := g.orgRepo.GetByID(ctx, event.OrganizationID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get organization: %w", err)
		}
		if err == nil && IsOrganizationAdmin(org, caller.Profile, caller.ID()) {
			return nil
		}
	}
	return domain.Unauthorized("user is not authorized for this event")
}
