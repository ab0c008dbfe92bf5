package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventvenues/internal/domain"
)

type appProfileRepository struct {
	DB *sql.DB
}

func NewAppProfileRepository(db *sql.DB) domain.AppProfileRepository {
	return &appProfileRepository{DB: db}
}

func (r *appProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.AppProfile, error) {
	query := `
		SELECT user_id, is_super_admin, admin_for
		FROM app_profiles
		WHERE user_id = $1
	`
	p := &domain.AppProfile{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.IsSuperAdmin, pq.Array(&p.AdminFor))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
