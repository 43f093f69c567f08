package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// MonsterRepository implements monster persistence for PostgreSQL
type MonsterRepository struct {
	db *pgxpool.Pool
}

// NewMonsterRepository creates a new MonsterRepository
func NewMonsterRepository(db *pgxpool.Pool) *MonsterRepository {
	return &MonsterRepository{db: db}
}

var _ repository.Monster = (*MonsterRepository)(nil)

// GetActiveMonster returns the most recently spawned monster for the user,
// or nil when none exists.
func (r *MonsterRepository) GetActiveMonster(ctx context.Context, userID string) (*domain.Monster, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT monster_id, user_id, name, hp, max_hp, weakness, reward_gold, reward_xp, defeated, spawn_date, created_at
		FROM monsters
		WHERE user_id = $1
		ORDER BY spawn_date DESC
		LIMIT 1
	`
	var (
		m        domain.Monster
		weakness []byte
		spawn    pgtype.Date
	)
	err = r.db.QueryRow(ctx, query, uid).Scan(&m.ID, &m.UserID, &m.Name, &m.HP, &m.MaxHP,
		&weakness, &m.RewardGold, &m.RewardXP, &m.Defeated, &spawn, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan monster: %w", err)
	}
	m.SpawnDate = fromPGDate(spawn)
	if err := json.Unmarshal(weakness, &m.Weakness); err != nil {
		return nil, fmt.Errorf("failed to decode monster weakness: %w", err)
	}
	return &m, nil
}

func (r *MonsterRepository) SaveMonster(ctx context.Context, m *domain.Monster) error {
	uid, err := parseUserUUID(m.UserID)
	if err != nil {
		return err
	}
	weakness, err := json.Marshal(m.Weakness)
	if err != nil {
		return fmt.Errorf("failed to encode monster weakness: %w", err)
	}

	// One monster per user per day: a same-day respawn replaces the row.
	query := `
		INSERT INTO monsters (monster_id, user_id, name, hp, max_hp, weakness, reward_gold, reward_xp, defeated, spawn_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, spawn_date) DO UPDATE SET
			monster_id = EXCLUDED.monster_id,
			name = EXCLUDED.name,
			hp = EXCLUDED.hp,
			max_hp = EXCLUDED.max_hp,
			weakness = EXCLUDED.weakness,
			reward_gold = EXCLUDED.reward_gold,
			reward_xp = EXCLUDED.reward_xp,
			defeated = EXCLUDED.defeated
	`
	_, err = r.db.Exec(ctx, query, m.ID, uid, m.Name, m.HP, m.MaxHP, weakness,
		m.RewardGold, m.RewardXP, m.Defeated, pgDate(m.SpawnDate), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save monster: %w", err)
	}
	return nil
}
