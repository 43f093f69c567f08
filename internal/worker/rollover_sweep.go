package worker

import (
	"context"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// DayCloser runs the daily rollover for one user. Implemented by the
// rollover reconciler.
type DayCloser interface {
	EnsureToday(ctx context.Context, userID string) error
}

// RolloverSweepJob walks every user with a character and runs the daily
// rollover for each. Rollover is marker-gated per user, so running the
// sweep more often than once a day is harmless; it exists so miss
// penalties land shortly after midnight instead of waiting for the user's
// next action.
type RolloverSweepJob struct {
	characters repository.Character
	closer     DayCloser
}

// NewRolloverSweepJob creates a sweep job over the given user set.
func NewRolloverSweepJob(characters repository.Character, closer DayCloser) *RolloverSweepJob {
	return &RolloverSweepJob{characters: characters, closer: closer}
}

// Process runs the sweep. A failure for one user is logged and does not
// stop the sweep; only the enumeration itself can fail the job.
func (j *RolloverSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverSweepStarting)

	userIDs, err := j.characters.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate users for rollover sweep: %w", err)
	}

	failures := 0
	for _, userID := range userIDs {
		if err := j.closer.EnsureToday(ctx, userID); err != nil {
			failures++
			log.Error(LogMsgRolloverSweepUserError, "user_id", userID, "error", err)
		}
	}

	log.Info(LogMsgRolloverSweepCompleted, "users", len(userIDs), "failures", failures)
	return nil
}
