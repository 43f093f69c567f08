package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// SessionRepository resolves bearer tokens against the sessions table.
// Tokens are stored hashed; the raw token never touches the database.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ repository.Sessions = (*SessionRepository)(nil)

// HashToken derives the storage key for a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *SessionRepository) UserIDForToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionInvalid
	}

	var userID string
	query := `SELECT user_id FROM sessions WHERE token_hash = $1 AND expires_at > NOW()`
	err := r.db.QueryRow(ctx, query, HashToken(token)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrSessionInvalid
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

// CreateSession stores a session for the token. Used by account bootstrap
// and tests; token issuance itself lives outside the reward engine.
func (r *SessionRepository) CreateSession(ctx context.Context, token, userID string, ttlSeconds int) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, NOW() + make_interval(secs => $3))
		ON CONFLICT (token_hash) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.Exec(ctx, query, HashToken(token), uid, ttlSeconds); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}
