package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// MarkerRepository implements the rollover reset marker for PostgreSQL
type MarkerRepository struct {
	db *pgxpool.Pool
}

// NewMarkerRepository creates a new MarkerRepository
func NewMarkerRepository(db *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{db: db}
}

var _ repository.ResetMarker = (*MarkerRepository)(nil)

func (r *MarkerRepository) LastResetDate(ctx context.Context, userID string) (domain.Date, bool, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return domain.Date{}, false, err
	}

	var date pgtype.Date
	err = r.db.QueryRow(ctx, `SELECT last_reset_date FROM reset_markers WHERE user_id = $1`, uid).Scan(&date)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Date{}, false, nil
	}
	if err != nil {
		return domain.Date{}, false, fmt.Errorf("failed to get reset marker: %w", err)
	}
	return fromPGDate(date), true, nil
}

func (r *MarkerRepository) SetLastResetDate(ctx context.Context, userID string, date domain.Date) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reset_markers (user_id, last_reset_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET last_reset_date = EXCLUDED.last_reset_date
	`
	if _, err := r.db.Exec(ctx, query, uid, pgDate(date)); err != nil {
		return fmt.Errorf("failed to set reset marker: %w", err)
	}
	return nil
}
