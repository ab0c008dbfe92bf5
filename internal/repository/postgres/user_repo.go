package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventvenues/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, first_name, last_name, joined_organizations, admin_for_events,
			created_events, registered_events, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	var firstName, lastName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &firstName, &lastName,
		pq.Array(&u.JoinedOrganizations), pq.Array(&u.AdminForEvents),
		pq.Array(&u.CreatedEvents), pq.Array(&u.RegisteredEvents),
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return u, nil
}

// AppendEventRef is idempotent: an id already in the list is left alone.
func (r *userRepository) AppendEventRef(ctx context.Context, userID string, list domain.UserEventList, eventID string) error {
	column, err := eventListColumn(list)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = array_append(COALESCE(%[1]s, '{}'), $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(COALESCE(%[1]s, '{}')))
	`, column)
	_, err = r.DB.ExecContext(ctx, query, userID, eventID)
	return err
}

func eventListColumn(list domain.UserEventList) (string, error) {
	switch list {
	case domain.UserAdminForEvents, domain.UserCreatedEvents, domain.UserRegisteredEvents:
		return string(list), nil
	}
	return "", fmt.Errorf("unknown user event list %q", list)
}
