package repository

import (
	"context"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// Character defines the interface for character persistence. Save always
// writes the full aggregate state (last write wins).
type Character interface {
	GetCharacter(ctx context.Context, userID string) (*domain.Character, error)
	SaveCharacter(ctx context.Context, character *domain.Character) error
	DeleteCharacter(ctx context.Context, userID string) error

	// ListUserIDs enumerates every user with a character. Used by the
	// nightly rollover sweep.
	ListUserIDs(ctx context.Context) ([]string, error)

	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx serializes read-compute-write cycles on a single character
// row. A server-side implementation must lock the row for the duration of
// the transaction so concurrent grants for the same user cannot lose
// updates.
type CharacterTx interface {
	Tx
	GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error)
	SaveCharacter(ctx context.Context, character *domain.Character) error
}
