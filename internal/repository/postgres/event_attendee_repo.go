package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventvenues/internal/domain"
)

const attendeeColumns = `id, event_id, user_id, is_invited, is_registered, is_checked_in,
		check_in_id, check_out_id, alloted_seat, alloted_room, created_at, updated_at`

type eventAttendeeRepository struct {
	DB *sql.DB
}

func NewEventAttendeeRepository(db *sql.DB) domain.EventAttendeeRepository {
	return &eventAttendeeRepository{DB: db}
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *eventAttendeeRepository) Create(ctx context.Context, a *domain.EventAttendee) error {
	return insertAttendee(ctx, r.DB, a)
}

func insertAttendee(ctx context.Context, q execer, a *domain.EventAttendee) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id, is_invited, is_registered, is_checked_in,
			alloted_seat, alloted_room, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		a.EventID, a.UserID, a.IsInvited, a.IsRegistered, a.IsCheckedIn,
		nullString(a.AllotedSeat), nullString(a.AllotedRoom), a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *eventAttendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventAttendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM event_attendees WHERE event_id = $1 AND user_id = $2`
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *eventAttendeeRepository) Update(ctx context.Context, a *domain.EventAttendee) error {
	return updateAttendee(ctx, r.DB, a)
}

func updateAttendee(ctx context.Context, q execer, a *domain.EventAttendee) error {
	query := `
		UPDATE event_attendees
		SET is_invited = $2, is_registered = $3, is_checked_in = $4, check_in_id = $5, check_out_id = $6,
			alloted_seat = $7, alloted_room = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := q.ExecContext(ctx, query,
		a.ID, a.IsInvited, a.IsRegistered, a.IsCheckedIn, nullString(a.CheckInID), nullString(a.CheckOutID),
		nullString(a.AllotedSeat), nullString(a.AllotedRoom), a.UpdatedAt,
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

func (r *eventAttendeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_attendees WHERE id = $1`, id)
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

func (r *eventAttendeeRepository) ListByEventID(ctx context.Context, eventID string, page domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + attendeeColumns + `
		FROM event_attendees
		WHERE event_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	// LIMIT NULL returns every row.
	limit := sql.NullInt64{Int64: int64(page.PageSize), Valid: !page.Unbounded()}
	rows, err := r.DB.QueryContext(ctx, query, eventID, limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	attendees := make([]*domain.EventAttendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, 0, err
		}
		attendees = append(attendees, a)
	}
	return attendees, total, rows.Err()
}

func (r *eventAttendeeRepository) CreateCheckIn(ctx context.Context, a *domain.EventAttendee, c *domain.CheckIn) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if a.ID == "" {
			if err := insertAttendee(ctx, tx, a); err != nil {
				return err
			}
		}
		c.EventAttendeeID = a.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO check_ins (event_attendee_id, alloted_seat, alloted_room, time)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.EventAttendeeID, nullString(c.AllotedSeat), nullString(c.AllotedRoom), c.Time).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("insert check-in: %w", err)
		}
		a.CheckInID = &c.ID
		return updateAttendee(ctx, tx, a)
	})
}

func (r *eventAttendeeRepository) CreateCheckOut(ctx context.Context, a *domain.EventAttendee, c *domain.CheckOut) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		c.EventAttendeeID = a.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO check_outs (event_attendee_id, time)
			VALUES ($1, $2)
			RETURNING id
		`, c.EventAttendeeID, c.Time).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("insert check-out: %w", err)
		}
		a.CheckOutID = &c.ID
		return updateAttendee(ctx, tx, a)
	})
}

func (r *eventAttendeeRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanAttendee(s rowScanner) (*domain.EventAttendee, error) {
	a := &domain.EventAttendee{}
	var checkInID, checkOutID, seat, room sql.NullString
	err := s.Scan(
		&a.ID, &a.EventID, &a.UserID, &a.IsInvited, &a.IsRegistered, &a.IsCheckedIn,
		&checkInID, &checkOutID, &seat, &room, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CheckInID = stringPtr(checkInID)
	a.CheckOutID = stringPtr(checkOutID)
	a.AllotedSeat = stringPtr(seat)
	a.AllotedRoom = stringPtr(room)
	return a, nil
}
