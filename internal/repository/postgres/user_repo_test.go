package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventvenues/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "email", "first_name", "last_name", "joined_organizations", "admin_for_events",
		"created_events", "registered_events", "created_at", "updated_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.User
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, first_name, last_name, joined_organizations`).
					WithArgs("u-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("u-1", "a@example.com", "Ada", nil, "{org-1}", nil, "{}", "{ev-1}", now, now))
			},
			want: &domain.User{
				ID:                  "u-1",
				Email:               "a@example.com",
				FirstName:           "Ada",
				JoinedOrganizations: []string{"org-1"},
				CreatedEvents:       []string{},
				RegisteredEvents:    []string{"ev-1"},
				CreatedAt:           now,
				UpdatedAt:           now,
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users`).WithArgs("u-1").WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewUserRepository(db).GetByID(ctx, "u-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_AppendEventRef(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to the named list", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE users\s+SET registered_events = array_append\(COALESCE\(registered_events, '\{\}'\), \$2\)`).
			WithArgs("u-1", "ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewUserRepository(db).AppendEventRef(ctx, "u-1", domain.UserRegisteredEvents, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown list is rejected without a query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		err = NewUserRepository(db).AppendEventRef(ctx, "u-1", domain.UserEventList("password_hash"), "ev-1")
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
