package repository

import (
	"context"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// ResetMarker persists the "last processed calendar date" that gates the
// daily rollover reconciler. The ok return distinguishes first run (no
// marker yet) from a stored date.
type ResetMarker interface {
	LastResetDate(ctx context.Context, userID string) (date domain.Date, ok bool, err error)
	SetLastResetDate(ctx context.Context, userID string, date domain.Date) error
}
