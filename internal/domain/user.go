package domain

import (
	"context"
	"time"
)

// User is a platform user. The event lists are denormalized and derivable by re-query.
// swagger:model User
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	JoinedOrganizations []string  `json:"joined_organizations"`
	AdminForEvents      []string  `json:"admin_for_events"`
	CreatedEvents       []string  `json:"created_events"`
	RegisteredEvents    []string  `json:"registered_events"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserEventList names one of the denormalized event lists kept on a user.
type UserEventList string

const (
	UserAdminForEvents   UserEventList = "admin_for_events"
	UserCreatedEvents    UserEventList = "created_events"
	UserRegisteredEvents UserEventList = "registered_events"
)

// Organization is a tenant of the platform.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creator_id"`
	Admins    []string  `json:"admins"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID joined the organization, as seen from either side.
func (o *Organization) HasMember(u *User) bool {
	return ContainsID(o.Members, u.ID) || ContainsID(u.JoinedOrganizations, o.ID)
}

// AppProfile carries platform-level roles of a user.
type AppProfile struct {
	UserID       string   `json:"user_id"`
	IsSuperAdmin bool     `json:"is_super_admin"`
	AdminFor     []string `json:"admin_for"`
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// AppendEventRef adds eventID to the named list unless it is already present.
	AppendEventRef(ctx context.Context, userID string, list UserEventList, eventID string) error
}

// OrganizationRepository defines the interface for organization lookups.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*Organization, error)
}

// AppProfileRepository defines the interface for platform role lookups.
type AppProfileRepository interface {
	// GetByUserID returns ErrNotFound when the user has no profile.
	GetByUserID(ctx context.Context, userID string) (*AppProfile, error)
}
