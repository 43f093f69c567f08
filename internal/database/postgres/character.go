package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

var _ repository.Character = (*CharacterRepository)(nil)

const characterColumns = `character_id, user_id, name, level, xp, hp, max_hp, gold, gems, scores, streaks, created_at, updated_at`

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var (
		c       domain.Character
		scores  []byte
		streaks []byte
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Level, &c.XP, &c.HP, &c.MaxHP,
		&c.Gold, &c.Gems, &scores, &streaks, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}

	c.Scores = make(map[domain.Attribute]int)
	c.Streaks = make(map[domain.Attribute]int)
	if err := json.Unmarshal(scores, &c.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode attribute scores: %w", err)
	}
	if err := json.Unmarshal(streaks, &c.Streaks); err != nil {
		return nil, fmt.Errorf("failed to decode attribute streaks: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepository) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`
	return scanCharacter(r.db.QueryRow(ctx, query, uid))
}

const upsertCharacterSQL = `
	INSERT INTO characters (character_id, user_id, name, level, xp, hp, max_hp, gold, gems, scores, streaks, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (user_id) DO UPDATE SET
		name = EXCLUDED.name,
		level = EXCLUDED.level,
		xp = EXCLUDED.xp,
		hp = EXCLUDED.hp,
		max_hp = EXCLUDED.max_hp,
		gold = EXCLUDED.gold,
		gems = EXCLUDED.gems,
		scores = EXCLUDED.scores,
		streaks = EXCLUDED.streaks,
		updated_at = EXCLUDED.updated_at
`

func characterArgs(c *domain.Character) ([]any, error) {
	uid, err := parseUserUUID(c.UserID)
	if err != nil {
		return nil, err
	}
	scores, err := json.Marshal(c.Scores)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attribute scores: %w", err)
	}
	streaks, err := json.Marshal(c.Streaks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attribute streaks: %w", err)
	}
	return []any{c.ID, uid, c.Name, c.Level, c.XP, c.HP, c.MaxHP, c.Gold, c.Gems,
		scores, streaks, c.CreatedAt, c.UpdatedAt}, nil
}

func (r *CharacterRepository) SaveCharacter(ctx context.Context, c *domain.Character) error {
	args, err := characterArgs(c)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, upsertCharacterSQL, args...); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (r *CharacterRepository) DeleteCharacter(ctx context.Context, userID string) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM characters WHERE user_id = $1`, uid); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (r *CharacterRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM characters ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return ids, nil
}

// BeginTx starts a transaction that serializes per-user character updates
// via a row lock, preventing lost updates between read and write.
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &characterTx{tx: tx}, nil
}

type characterTx struct {
	tx pgx.Tx
}

func (t *characterTx) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1 FOR UPDATE`
	return scanCharacter(t.tx.QueryRow(ctx, query, uid))
}

func (t *characterTx) SaveCharacter(ctx context.Context, c *domain.Character) error {
	args, err := characterArgs(c)
	if err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, upsertCharacterSQL, args...); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (t *characterTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *characterTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
