package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

func TestStoreCharacterRoundTrip(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	got, err := s.GetCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	c := &domain.Character{
		ID: "c1", UserID: "user-1", Name: "Tester", Level: 1, XP: 50,
		Scores:  map[domain.Attribute]int{domain.AttributeDiscipline: 2},
		Streaks: map[domain.Attribute]int{domain.AttributeDiscipline: 1},
	}
	require.NoError(t, s.SaveCharacter(ctx, c))

	got, err = s.GetCharacter(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50, got.XP)
	assert.Equal(t, 2, got.Scores[domain.AttributeDiscipline])

	// Another user never sees the stored character.
	other, err := s.GetCharacter(ctx, "user-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStoreListUserIDs(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	ids, err := s.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.SaveCharacter(ctx, &domain.Character{ID: "c1", UserID: "user-1"}))
	ids, err = s.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, ids)
}

func TestStoreHabitsOrderedAndFiltered(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveHabit(ctx, &domain.Habit{
			ID: fmt.Sprintf("h%d", i), UserID: "user-1", Title: fmt.Sprintf("Habit %d", i), Position: 2 - i,
		}))
	}
	require.NoError(t, s.SaveHabit(ctx, &domain.Habit{ID: "other", UserID: "user-2", Title: "Theirs"}))

	habits, err := s.ListHabits(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, habits, 3)
	assert.Equal(t, "h2", habits[0].ID)
	assert.Equal(t, "h0", habits[2].ID)
}

func TestStoreSaveHabitUpserts(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	h := &domain.Habit{ID: "h1", UserID: "user-1", Title: "Meditate"}
	require.NoError(t, s.SaveHabit(ctx, h))

	h.Streak = 4
	require.NoError(t, s.SaveHabit(ctx, h))

	got, err := s.GetHabit(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Streak)

	habits, err := s.ListHabits(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestStoreDeleteHabit(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, s.SaveHabit(ctx, &domain.Habit{ID: "h1", UserID: "user-1"}))
	require.NoError(t, s.DeleteHabit(ctx, "h1"))

	got, err := s.GetHabit(ctx, "h1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreResetMarker(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	_, exists, err := s.LastResetDate(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, exists)

	today := domain.Today()
	require.NoError(t, s.SetLastResetDate(ctx, "user-1", today))

	got, exists, err := s.LastResetDate(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.True(t, got.Equal(today))
}

func TestStoreCorruptValueStartsFresh(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(versionedKey(keyHabits), []byte("not json")))

	habits, err := s.ListHabits(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestStoreTxPassThrough(t *testing.T) {
	s := NewStore(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, s.SaveCharacter(ctx, &domain.Character{ID: "c1", UserID: "user-1", XP: 10}))

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)

	c, err := tx.GetCharacterForUpdate(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, c)

	c.XP = 25
	require.NoError(t, tx.SaveCharacter(ctx, c))
	require.NoError(t, tx.Commit(ctx))

	got, err := s.GetCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 25, got.XP)
}
