package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/storage"
)

type recordingCloser struct {
	users []string
	fail  map[string]error
}

func (c *recordingCloser) EnsureToday(_ context.Context, userID string) error {
	c.users = append(c.users, userID)
	if err, ok := c.fail[userID]; ok {
		return err
	}
	return nil
}

func TestRolloverSweepVisitsEveryUser(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryKV())
	require.NoError(t, store.SaveCharacter(context.Background(), &domain.Character{
		ID: "c1", UserID: "user-1", Name: "Tester",
	}))

	closer := &recordingCloser{}
	job := NewRolloverSweepJob(store, closer)

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, []string{"user-1"}, closer.users)
}

func TestRolloverSweepContinuesPastUserFailure(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryKV())
	require.NoError(t, store.SaveCharacter(context.Background(), &domain.Character{
		ID: "c1", UserID: "user-1", Name: "Tester",
	}))

	closer := &recordingCloser{fail: map[string]error{"user-1": errors.New("boom")}}
	job := NewRolloverSweepJob(store, closer)

	// Per-user failures are logged, not returned.
	require.NoError(t, job.Process(context.Background()))
	assert.Len(t, closer.users, 1)
}

func TestRolloverSweepEmptyUserSet(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryKV())
	closer := &recordingCloser{}
	job := NewRolloverSweepJob(store, closer)

	require.NoError(t, job.Process(context.Background()))
	assert.Empty(t, closer.users)
}
