package character

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// Service defines the character aggregate business logic. Every mutation
// loads the current state, applies the transition, and persists the full
// aggregate (last write wins).
type Service interface {
	GetCharacter(ctx context.Context, userID string) (*domain.Character, error)
	CreateCharacter(ctx context.Context, userID, name string) (*domain.Character, error)
	// ResetCharacter recreates the character with initial stats. This is
	// the only deletion path.
	ResetCharacter(ctx context.Context, userID string) (*domain.Character, error)

	// Mutate runs fn against the user's character and persists the result.
	// fn receives the rules so transitions stay consistent with the level
	// curve and promotion threshold.
	Mutate(ctx context.Context, userID string, fn func(*Rules, *domain.Character)) (*domain.Character, error)

	// RestoreCharacter writes a previously captured snapshot back verbatim.
	// Used to roll back an optimistic mutation the reward authority rejected.
	RestoreCharacter(ctx context.Context, snapshot *domain.Character) error

	Rules() *Rules
}

type service struct {
	repo  repository.Character
	rules *Rules
	now   func() time.Time
}

// NewService creates a new character service.
func NewService(repo repository.Character, rules *Rules) Service {
	return &service{repo: repo, rules: rules, now: time.Now}
}

func (s *service) Rules() *Rules {
	return s.rules
}

func (s *service) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	c, err := s.repo.GetCharacter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}
	return c, nil
}

func (s *service) CreateCharacter(ctx context.Context, userID, name string) (*domain.Character, error) {
	existing, err := s.repo.GetCharacter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing character: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	c := domain.NewCharacter(uuid.NewString(), userID, name, s.now())
	if err := s.repo.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save character: %w", err)
	}

	logger.FromContext(ctx).Info("Character created", "user_id", userID, "name", name)
	return c, nil
}

func (s *service) ResetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	existing, err := s.repo.GetCharacter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrCharacterNotFound
	}

	fresh := domain.NewCharacter(existing.ID, userID, existing.Name, s.now())
	fresh.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveCharacter(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to save reset character: %w", err)
	}

	logger.FromContext(ctx).Info("Character reset to initial stats", "user_id", userID)
	return fresh, nil
}

func (s *service) RestoreCharacter(ctx context.Context, snapshot *domain.Character) error {
	if err := s.repo.SaveCharacter(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to restore character: %w", err)
	}
	return nil
}

func (s *service) Mutate(ctx context.Context, userID string, fn func(*Rules, *domain.Character)) (*domain.Character, error) {
	c, err := s.repo.GetCharacter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}

	fn(s.rules, c)
	c.UpdatedAt = s.now()

	if err := s.repo.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save character: %w", err)
	}
	return c, nil
}
