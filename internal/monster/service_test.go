package monster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/progression"
	"github.com/gevornos/Life-is-RPG/internal/reward"
	"github.com/gevornos/Life-is-RPG/internal/storage"
)

const testUser = "user-1"

func testConfig() *Config {
	return &Config{
		Version: 1,
		Templates: []domain.MonsterTemplate{
			{
				Name:  "Procrastination Imp",
				MinHP: 50, MaxHP: 50,
				Weakness: []domain.Attribute{domain.AttributeDiscipline},
				GoldMin:  10, GoldMax: 10,
				XPMin: 30, XPMax: 30,
			},
		},
	}
}

type fixture struct {
	store   *storage.Store
	charSvc character.Service
	svc     *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryKV())
	cfg := &reward.Config{
		StreakPromotionThreshold: 3,
		LevelProgression: []progression.LevelRequirement{
			{Level: 1, RequiredXPTotal: 0},
			{Level: 2, RequiredXPTotal: 100},
		},
	}
	charSvc := character.NewService(store, character.NewRules(reward.NewTable(cfg)))
	_, err := charSvc.CreateCharacter(context.Background(), testUser, "Tester")
	require.NoError(t, err)

	svc := NewService(store, charSvc, testConfig()).(*service)
	// Deterministic rolls: always pick the low end of each range.
	svc.intn = func(n int) int { return 0 }
	return &fixture{store: store, charSvc: charSvc, svc: svc}
}

func (f *fixture) character(t *testing.T) *domain.Character {
	t.Helper()
	c, err := f.charSvc.GetCharacter(context.Background(), testUser)
	require.NoError(t, err)
	return c
}

func TestGetOrSpawnCreatesTodaysMonster(t *testing.T) {
	f := newFixture(t)

	m, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "Procrastination Imp", m.Name)
	assert.Equal(t, 50, m.HP, "level 1 applies no scaling")
	assert.Equal(t, 50, m.MaxHP)
	assert.Equal(t, domain.Today(), m.SpawnDate)
	assert.False(t, m.Defeated)
}

func TestGetOrSpawnReturnsExistingLiveMonster(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	second, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrSpawnReplacesStaleMonster(t *testing.T) {
	f := newFixture(t)

	stale := &domain.Monster{
		ID: "old", UserID: testUser, Name: "Procrastination Imp",
		HP: 20, MaxHP: 50, SpawnDate: domain.Today().AddDays(-1),
	}
	require.NoError(t, f.store.SaveMonster(context.Background(), stale))

	m, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	assert.NotEqual(t, "old", m.ID)
	assert.Equal(t, domain.Today(), m.SpawnDate)
}

func TestSpawnScalesWithPlayerLevel(t *testing.T) {
	f := newFixture(t)
	_, err := f.charSvc.Mutate(context.Background(), testUser, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, 100) // level 2
	})
	require.NoError(t, err)

	m, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, 55, m.HP, "scale = 1 + 0.1*(level-1)")
	assert.Equal(t, 11, m.RewardGold)
	assert.Equal(t, 33, m.RewardXP)
}

func TestDealDamageFloorsAtZeroAndRewardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetOrSpawn(ctx, testUser)
	require.NoError(t, err)

	m, err := f.svc.DealDamage(ctx, testUser, 200)
	require.NoError(t, err)
	assert.Equal(t, 0, m.HP)
	assert.True(t, m.Defeated)

	c := f.character(t)
	assert.Equal(t, 30, c.XP)
	assert.Equal(t, 10, c.Gold)

	// A repeated lethal hit is absorbed by the dead monster as a no-op.
	again, err := f.svc.DealDamage(ctx, testUser, 200)
	require.NoError(t, err)
	assert.Equal(t, m.ID, again.ID, "the dead monster is never replaced by direct damage")
	assert.True(t, again.Defeated)

	c = f.character(t)
	assert.Equal(t, 30, c.XP, "a second lethal call grants no XP")
	assert.Equal(t, 10, c.Gold, "a second lethal call grants no gold")
}

func TestDealDamageRequiresTodaysMonster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.DealDamage(ctx, testUser, 10)
	assert.ErrorIs(t, err, domain.ErrMonsterNotFound, "nothing spawned yet")

	stale := &domain.Monster{
		ID: "old", UserID: testUser, Name: "Procrastination Imp",
		HP: 20, MaxHP: 50, SpawnDate: domain.Today().AddDays(-1),
	}
	require.NoError(t, f.store.SaveMonster(ctx, stale))

	_, err = f.svc.DealDamage(ctx, testUser, 10)
	assert.ErrorIs(t, err, domain.ErrMonsterNotFound, "yesterday's monster is not a target")
}

func TestGetOrSpawnReplacesDefeatedMonster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.GetOrSpawn(ctx, testUser)
	require.NoError(t, err)
	_, err = f.svc.DealDamage(ctx, testUser, 200)
	require.NoError(t, err)

	next, err := f.svc.GetOrSpawn(ctx, testUser)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
	assert.False(t, next.Defeated)
}

func TestDealDamagePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetOrSpawn(ctx, testUser)
	require.NoError(t, err)

	m, err := f.svc.DealDamage(ctx, testUser, 20)
	require.NoError(t, err)
	assert.Equal(t, 30, m.HP)
	assert.False(t, m.Defeated)
	assert.Equal(t, 0, f.character(t).XP)
}

func TestComputeAutoDamage(t *testing.T) {
	scores := map[domain.Attribute]int{
		domain.AttributeStrength:   3,
		domain.AttributeDiscipline: 5,
	}
	m := &domain.Monster{Weakness: []domain.Attribute{domain.AttributeDiscipline}}

	t.Run("no tagged attributes", func(t *testing.T) {
		assert.Equal(t, BaseDamage, ComputeAutoDamage(scores, nil, m))
	})

	t.Run("tagged without weakness", func(t *testing.T) {
		got := ComputeAutoDamage(scores, []domain.Attribute{domain.AttributeStrength}, m)
		assert.Equal(t, 16, got, "10 base + 2*3")
	})

	t.Run("weakness multiplies and floors", func(t *testing.T) {
		got := ComputeAutoDamage(scores, []domain.Attribute{domain.AttributeStrength, domain.AttributeDiscipline}, m)
		// (10 + 6 + 10) * 1.5 = 39
		assert.Equal(t, 39, got)
	})
}

func TestApplyActivityDamage(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.ApplyActivityDamage(context.Background(), testUser, []domain.Attribute{domain.AttributeDiscipline}))

	m, err := f.svc.GetOrSpawn(context.Background(), testUser)
	require.NoError(t, err)
	// (10 + 2*1) * 1.5 = 18 against the imp's discipline weakness.
	assert.Equal(t, 32, m.HP)
}
