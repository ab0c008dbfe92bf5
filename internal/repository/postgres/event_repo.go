package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventvenues/internal/domain"
)

const eventColumns = `id, organization_id, venue_id, title, description, location, start_date, end_date,
		all_day, start_time, end_time, creator_id, admins, status, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organization_id, venue_id, title, description, location, start_date, end_date,
			all_day, start_time, end_time, creator_id, admins, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizationID, nullString(e.VenueID), e.Title, e.Description, e.Location, e.StartDate, e.EndDate,
		e.AllDay, timeArg(e.StartTime), timeArg(e.EndTime), e.CreatorID, pq.Array(e.Admins), string(e.Status),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByVenueAndDates(ctx context.Context, organizationID, venueID string, dr domain.DateRange) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE organization_id = $1 AND venue_id = $2 AND status <> 'DELETED'
			AND start_date <= $4 AND end_date >= $3
		ORDER BY start_date, id
	`
	return r.list(ctx, query, organizationID, venueID, dr.Start, dr.End)
}

func (r *eventRepository) ListBookedByOrganization(ctx context.Context, organizationID string, dr domain.DateRange) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE organization_id = $1 AND venue_id IS NOT NULL AND status <> 'DELETED'
			AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id
	`
	return r.list(ctx, query, organizationID, dr.Start, dr.End)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET venue_id = $2, title = $3, description = $4, location = $5, start_date = $6, end_date = $7,
			all_day = $8, start_time = $9, end_time = $10, admins = $11, status = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, nullString(e.VenueID), e.Title, e.Description, e.Location, e.StartDate, e.EndDate,
		e.AllDay, timeArg(e.StartTime), timeArg(e.EndTime), pq.Array(e.Admins), string(e.Status), e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var venueID, description, location, startTime, endTime sql.NullString
	var status string
	err := s.Scan(
		&e.ID, &e.OrganizationID, &venueID, &e.Title, &description, &location, &e.StartDate, &e.EndDate,
		&e.AllDay, &startTime, &endTime, &e.CreatorID, pq.Array(&e.Admins), &status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.VenueID = stringPtr(venueID)
	e.Description = description.String
	e.Location = location.String
	e.Status = domain.EventStatus(status)
	e.StartDate, e.EndDate = domain.DateOf(e.StartDate), domain.DateOf(e.EndDate)
	if e.StartTime, err = scanTimeOfDay(startTime); err != nil {
		return nil, err
	}
	if e.EndTime, err = scanTimeOfDay(endTime); err != nil {
		return nil, err
	}
	return e, nil
}
