package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventvenues/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, organization_id, name, description, capacity, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	v, err := scanVenue(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) ListByOrganizationID(ctx context.Context, organizationID string) ([]*domain.Venue, error) {
	query := `
		SELECT id, organization_id, name, description, capacity, created_at, updated_at
		FROM venues
		WHERE organization_id = $1
		ORDER BY name, id
	`
	rows, err := r.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func scanVenue(s rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var description sql.NullString
	var capacity sql.NullInt64
	if err := s.Scan(&v.ID, &v.OrganizationID, &v.Name, &description, &capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Description = description.String
	v.Capacity = int(capacity.Int64)
	return v, nil
}
