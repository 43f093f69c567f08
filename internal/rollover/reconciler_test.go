package rollover

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/progression"
	"github.com/gevornos/Life-is-RPG/internal/reward"
	"github.com/gevornos/Life-is-RPG/internal/storage"
)

const testUser = "user-1"

func testTable() *reward.Table {
	cfg := &reward.Config{
		XP: map[string]int{
			reward.KeyHabitPositive:    10,
			reward.KeyHabitNegative:    -15,
			reward.KeyDailyBase:        20,
			reward.KeyDailyStreakBonus: 2,
		},
		Penalties: map[string]int{
			reward.KeyDailyMissedXP:        -25,
			reward.KeyDailyMissedAttribute: -1,
		},
		StreakPromotionThreshold: 3,
		LevelProgression: []progression.LevelRequirement{
			{Level: 1, RequiredXPTotal: 0},
			{Level: 2, RequiredXPTotal: 100},
		},
	}
	return reward.NewTable(cfg)
}

type fixture struct {
	store   *storage.Store
	charSvc character.Service
	rec     *Reconciler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryKV())
	table := testTable()
	charSvc := character.NewService(store, character.NewRules(table))
	_, err := charSvc.CreateCharacter(context.Background(), testUser, "Tester")
	require.NoError(t, err)
	return &fixture{store: store, charSvc: charSvc, rec: NewReconciler(store, store, charSvc, table)}
}

func (f *fixture) character(t *testing.T) *domain.Character {
	t.Helper()
	c, err := f.charSvc.GetCharacter(context.Background(), testUser)
	require.NoError(t, err)
	return c
}

func (f *fixture) giveXP(t *testing.T, amount int) {
	t.Helper()
	_, err := f.charSvc.Mutate(context.Background(), testUser, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, amount)
	})
	require.NoError(t, err)
}

func markerFor(t *testing.T, f *fixture, daysAgo int) domain.Date {
	t.Helper()
	date := domain.Today().AddDays(-daysAgo)
	require.NoError(t, f.store.SetLastResetDate(context.Background(), testUser, date))
	return date
}

func TestFirstRunSetsMarkerWithoutPenalties(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 50)

	daily := &domain.Daily{ID: "d1", UserID: testUser, Streak: 5}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	assert.Equal(t, 50, f.character(t).XP, "no penalties on first run")
	date, exists, err := f.store.LastResetDate(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, domain.Today(), date)
}

func TestSameDayRunIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 50)
	markerFor(t, f, 0)

	daily := &domain.Daily{ID: "d1", UserID: testUser, Streak: 5}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	assert.Equal(t, 50, f.character(t).XP)
	stored, err := f.store.GetDaily(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Streak)
}

func TestMissedDailyPenalized(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 100)
	markerFor(t, f, 1)

	// Seed an attribute streak so the punitive reset is observable.
	_, err := f.charSvc.Mutate(context.Background(), testUser, func(r *character.Rules, c *domain.Character) {
		r.IncrementAttributeStreak(c, domain.AttributeStrength)
		r.IncrementAttributeStreak(c, domain.AttributeStrength)
	})
	require.NoError(t, err)

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	daily := &domain.Daily{
		ID: "d1", UserID: testUser, Streak: 4,
		Attributes:    []domain.Attribute{domain.AttributeStrength},
		LastCompleted: &twoDaysAgo,
	}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	c := f.character(t)
	assert.Equal(t, 75, c.XP, "fixed miss penalty applied")
	assert.Equal(t, 0, c.Streaks[domain.AttributeStrength])
	assert.Equal(t, domain.MinAttributeScore, c.Scores[domain.AttributeStrength])

	stored, err := f.store.GetDaily(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Streak)
}

func TestDailyCompletedYesterdayNotPenalized(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 100)
	markerFor(t, f, 1)

	yesterday := time.Now().AddDate(0, 0, -1)
	daily := &domain.Daily{ID: "d1", UserID: testUser, Streak: 4, CompletedToday: true, LastCompleted: &yesterday}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	assert.Equal(t, 100, f.character(t).XP)
	stored, err := f.store.GetDaily(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Streak, "streak survives the rollover")
	assert.False(t, stored.CompletedToday, "completion flag cleared for the new day")
}

func TestZeroStreakDailyNotPenalized(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 100)
	markerFor(t, f, 1)

	daily := &domain.Daily{ID: "d1", UserID: testUser, Streak: 0}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))
	assert.Equal(t, 100, f.character(t).XP)
}

func TestNeglectedHabitPenalizedLikeExplicitFailure(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 100)
	closed := markerFor(t, f, 1)

	touched := &domain.Habit{ID: "h1", UserID: testUser, Streak: 3, LastActionDate: closed}
	neglected := &domain.Habit{
		ID: "h2", UserID: testUser, Streak: 6,
		Attributes:     []domain.Attribute{domain.AttributeDiscipline},
		LastActionDate: closed.AddDays(-2),
	}
	require.NoError(t, f.store.SaveHabit(context.Background(), touched))
	require.NoError(t, f.store.SaveHabit(context.Background(), neglected))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	assert.Equal(t, 85, f.character(t).XP, "only the neglected habit is charged")

	h1, err := f.store.GetHabit(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 3, h1.Streak)

	h2, err := f.store.GetHabit(context.Background(), "h2")
	require.NoError(t, err)
	assert.Equal(t, 0, h2.Streak)
	assert.Equal(t, 1, h2.NegativeStreak)
}

func TestRolloverIdempotentAcrossRepeatedCalls(t *testing.T) {
	f := newFixture(t)
	f.giveXP(t, 100)
	markerFor(t, f, 1)

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	daily := &domain.Daily{ID: "d1", UserID: testUser, Streak: 4, LastCompleted: &twoDaysAgo}
	require.NoError(t, f.store.SaveDaily(context.Background(), daily))

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))
	xpAfterFirst := f.character(t).XP

	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))
	require.NoError(t, f.rec.EnsureToday(context.Background(), testUser))

	assert.Equal(t, xpAfterFirst, f.character(t).XP, "penalties apply at most once per day")
}
