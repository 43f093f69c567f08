package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/activity"
	"github.com/gevornos/Life-is-RPG/internal/authority"
	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/progression"
	"github.com/gevornos/Life-is-RPG/internal/reward"
	"github.com/gevornos/Life-is-RPG/internal/storage"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

func testTable() *reward.Table {
	cfg := &reward.Config{
		XP: map[string]int{
			reward.KeyHabitPositive:    10,
			reward.KeyHabitNegative:    -15,
			reward.KeyDailyBase:        20,
			reward.KeyDailyStreakBonus: 2,
			reward.KeyTaskEasy:         20,
			reward.KeyTaskMedium:       50,
			reward.KeyTaskHard:         100,
		},
		Gold: map[string]int{
			reward.KeyHabitPositive:    2,
			reward.KeyDailyBase:        3,
			reward.KeyDailyStreakBonus: 1,
			reward.KeyTaskEasy:         5,
			reward.KeyTaskMedium:       10,
			reward.KeyTaskHard:         20,
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

type env struct {
	store       *storage.Store
	charSvc     character.Service
	activitySvc activity.Service
	authSvc     authority.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	InitValidator()
	store := storage.NewStore(storage.NewMemoryKV())
	table := testTable()
	charSvc := character.NewService(store, character.NewRules(table))
	_, err := charSvc.CreateCharacter(context.Background(), testUserID, "Tester")
	require.NoError(t, err)
	return &env{
		store:       store,
		charSvc:     charSvc,
		activitySvc: activity.NewService(store, charSvc, table),
		authSvc:     authority.NewService(store, store, table),
	}
}

// do runs a handler through a minimal chi router so URL params resolve,
// with the authenticated user injected the way the auth middleware does.
func do(t *testing.T, method, pattern, target string, body interface{}, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req = req.WithContext(ContextWithUserID(req.Context(), testUserID))
	w := httptest.NewRecorder()

	r := chi.NewRouter()
	r.Method(method, pattern, h)
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCreateAndGetCharacter(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/character", "/api/v1/character",
		CreateCharacterRequest{Name: "Aria"}, HandleCreateCharacter(e.charSvc))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, http.MethodGet, "/api/v1/character", "/api/v1/character",
		nil, HandleGetCharacter(e.charSvc))
	require.Equal(t, http.StatusOK, w.Code)

	var c domain.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, testUserID, c.UserID)
	assert.Equal(t, 1, c.Level)
}

func TestHandleCreateCharacterRejectsEmptyName(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/character", "/api/v1/character",
		CreateCharacterRequest{Name: ""}, HandleCreateCharacter(e.charSvc))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "name")
}

func TestCharacterHandlersRequireIdentity(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/character", nil)
	w := httptest.NewRecorder()
	HandleGetCharacter(e.charSvc)(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleAddHabitAndList(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/habits", "/api/v1/habits",
		ActivityRequest{Title: "Meditate", Difficulty: "medium", Attributes: []string{"discipline"}},
		HandleAddHabit(e.activitySvc))
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Habit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testUserID, created.UserID)

	w = do(t, http.MethodGet, "/api/v1/habits", "/api/v1/habits",
		nil, HandleListHabits(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	var habits []domain.Habit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habits))
	require.Len(t, habits, 1)
	assert.Equal(t, "Meditate", habits[0].Title)
}

func TestHandleAddHabitRejectsUnknownDifficulty(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/habits", "/api/v1/habits",
		ActivityRequest{Title: "Meditate", Difficulty: "legendary"},
		HandleAddHabit(e.activitySvc))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCompleteHabitReportsApplied(t *testing.T) {
	e := newEnv(t)
	h := &domain.Habit{UserID: testUserID, Title: "Meditate", Difficulty: domain.DifficultyEasy}
	require.NoError(t, e.activitySvc.AddHabit(context.Background(), h))

	target := fmt.Sprintf("/api/v1/habits/%s/complete", h.ID)
	w := do(t, http.MethodPost, "/api/v1/habits/{id}/complete", target,
		nil, HandleCompleteHabit(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	var resp AppliedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Applied)
}

func TestHandleCompleteHabitUnknownIDIsNoOp(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/habits/{id}/complete",
		"/api/v1/habits/22222222-2222-2222-2222-222222222222/complete",
		nil, HandleCompleteHabit(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	var resp AppliedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Applied)
}

func TestHandleUpdateHabitNotFound(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPut, "/api/v1/habits/{id}",
		"/api/v1/habits/22222222-2222-2222-2222-222222222222",
		ActivityRequest{Title: "Renamed", Difficulty: "easy"},
		HandleUpdateHabit(e.activitySvc))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUncompleteDailyRoundTrip(t *testing.T) {
	e := newEnv(t)
	d := &domain.Daily{UserID: testUserID, Title: "Morning run", Difficulty: domain.DifficultyEasy}
	require.NoError(t, e.activitySvc.AddDaily(context.Background(), d))

	w := do(t, http.MethodPost, "/api/v1/dailies/{id}/complete",
		fmt.Sprintf("/api/v1/dailies/%s/complete", d.ID),
		nil, HandleCompleteDaily(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, http.MethodPost, "/api/v1/dailies/{id}/uncomplete",
		fmt.Sprintf("/api/v1/dailies/%s/uncomplete", d.ID),
		nil, HandleUncompleteDaily(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	var resp AppliedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Applied)

	c, err := e.charSvc.GetCharacter(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.XP)
	assert.Equal(t, 0, c.Gold)
}

func TestHandleReorderTasks(t *testing.T) {
	e := newEnv(t)
	t1 := &domain.Task{UserID: testUserID, Title: "First", Difficulty: domain.DifficultyEasy}
	t2 := &domain.Task{UserID: testUserID, Title: "Second", Difficulty: domain.DifficultyEasy}
	require.NoError(t, e.activitySvc.AddTask(context.Background(), t1))
	require.NoError(t, e.activitySvc.AddTask(context.Background(), t2))

	w := do(t, http.MethodPost, "/api/v1/tasks/reorder", "/api/v1/tasks/reorder",
		ReorderRequest{IDs: []string{t2.ID, t1.ID}}, HandleReorderTasks(e.activitySvc))
	require.Equal(t, http.StatusOK, w.Code)

	tasks, err := e.activitySvc.ListTasks(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Second", tasks[0].Title)
}

func TestHandleGrantRewardValidatesAgainstRecords(t *testing.T) {
	e := newEnv(t)
	h := &domain.Habit{UserID: testUserID, Title: "Meditate", Difficulty: domain.DifficultyHard}
	require.NoError(t, e.activitySvc.AddHabit(context.Background(), h))

	// Client claims easy; the stored record says hard and wins.
	w := do(t, http.MethodPost, "/api/v1/rewards/grant", "/api/v1/rewards/grant",
		GrantRewardRequest{ActionType: "habit", Difficulty: "easy", ItemID: h.ID},
		HandleGrantReward(e.authSvc))
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.RewardResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 20, result.XPGained)
}

func TestHandleGrantRewardForeignItemForbidden(t *testing.T) {
	e := newEnv(t)
	other := &domain.Habit{UserID: "33333333-3333-3333-3333-333333333333", Title: "Theirs", Difficulty: domain.DifficultyEasy}
	require.NoError(t, e.activitySvc.AddHabit(context.Background(), other))

	w := do(t, http.MethodPost, "/api/v1/rewards/grant", "/api/v1/rewards/grant",
		GrantRewardRequest{ActionType: "habit", ItemID: other.ID},
		HandleGrantReward(e.authSvc))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleGrantRewardRejectsBadActionType(t *testing.T) {
	e := newEnv(t)

	w := do(t, http.MethodPost, "/api/v1/rewards/grant", "/api/v1/rewards/grant",
		GrantRewardRequest{ActionType: "quest"}, HandleGrantReward(e.authSvc))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealthz(t *testing.T) {
	w := do(t, http.MethodGet, "/healthz", "/healthz", nil, HandleHealthz())
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}
