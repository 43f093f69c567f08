package repository

import (
	"context"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// Monster defines the interface for daily monster persistence. At most one
// monster per user is active at a time; GetActiveMonster returns (nil, nil)
// when none exists.
type Monster interface {
	GetActiveMonster(ctx context.Context, userID string) (*domain.Monster, error)
	SaveMonster(ctx context.Context, monster *domain.Monster) error
}
