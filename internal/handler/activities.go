package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gevornos/Life-is-RPG/internal/activity"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

// ActivityRequest carries the user-editable fields shared by habits,
// dailies and tasks. Completion accounting is never writable through it.
type ActivityRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Notes      string   `json:"notes" validate:"max=2000"`
	Attributes []string `json:"attributes" validate:"dive,attribute"`
	Difficulty string   `json:"difficulty" validate:"required,difficulty"`
	DueDate    string   `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReorderRequest is the full desired ordering for one activity kind.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid4"`
}

func attributesFromRequest(names []string) []domain.Attribute {
	attrs := make([]domain.Attribute, 0, len(names))
	for _, n := range names {
		attrs = append(attrs, domain.Attribute(n))
	}
	return attrs
}

// --- Habits ---

// HandleListHabits returns the caller's habits in display order.
// @Summary List habits
// @Tags habits
// @Produce json
// @Success 200 {array} domain.Habit
// @Router /api/v1/habits [get]
func HandleListHabits(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		habits, err := svc.ListHabits(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List habits", err)
			return
		}
		respondJSON(w, http.StatusOK, habits)
	}
}

// HandleAddHabit creates a habit at the end of the list.
// @Summary Add habit
// @Tags habits
// @Accept json
// @Produce json
// @Success 201 {object} domain.Habit
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/habits [post]
func HandleAddHabit(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add habit"); err != nil {
			return
		}

		habit := &domain.Habit{
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
		}
		if err := svc.AddHabit(r.Context(), habit); err != nil {
			respondServiceError(w, r, "Add habit", err)
			return
		}
		respondJSON(w, http.StatusCreated, habit)
	}
}

// HandleUpdateHabit edits a habit's user-facing fields. Streaks and
// completion dates are preserved.
// @Summary Update habit
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} domain.Habit
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/habits/{id} [put]
func HandleUpdateHabit(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update habit"); err != nil {
			return
		}

		habit := &domain.Habit{
			ID:         chi.URLParam(r, "id"),
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
		}
		if err := svc.UpdateHabit(r.Context(), habit); err != nil {
			respondServiceError(w, r, "Update habit", err)
			return
		}
		respondJSON(w, http.StatusOK, habit)
	}
}

// HandleDeleteHabit removes a habit.
// @Summary Delete habit
// @Tags habits
// @Param id path string true "Habit ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/habits/{id} [delete]
func HandleDeleteHabit(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteHabit(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, "Delete habit", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Habit deleted"})
	}
}

// HandleReorderHabits applies a new display ordering.
// @Summary Reorder habits
// @Tags habits
// @Accept json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/habits/reorder [post]
func HandleReorderHabits(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ReorderRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reorder habits"); err != nil {
			return
		}
		if err := svc.ReorderHabits(r.Context(), userID, req.IDs); err != nil {
			respondServiceError(w, r, "Reorder habits", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Habits reordered"})
	}
}

// HandleCompleteHabit records a positive habit action and applies the
// reward.
// @Summary Complete habit
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/habits/{id}/complete [post]
func HandleCompleteHabit(svc activity.Service) http.HandlerFunc {
	return handleApplied("Complete habit", svc.CompleteHabit)
}

// HandleFailHabit records a negative habit action and applies the penalty.
// @Summary Fail habit
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/habits/{id}/fail [post]
func HandleFailHabit(svc activity.Service) http.HandlerFunc {
	return handleApplied("Fail habit", svc.FailHabit)
}

// --- Dailies ---

// HandleListDailies returns the caller's dailies in display order.
// @Summary List dailies
// @Tags dailies
// @Produce json
// @Success 200 {array} domain.Daily
// @Router /api/v1/dailies [get]
func HandleListDailies(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		dailies, err := svc.ListDailies(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List dailies", err)
			return
		}
		respondJSON(w, http.StatusOK, dailies)
	}
}

// HandleAddDaily creates a daily at the end of the list.
// @Summary Add daily
// @Tags dailies
// @Accept json
// @Produce json
// @Success 201 {object} domain.Daily
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/dailies [post]
func HandleAddDaily(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add daily"); err != nil {
			return
		}

		daily := &domain.Daily{
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
		}
		if err := svc.AddDaily(r.Context(), daily); err != nil {
			respondServiceError(w, r, "Add daily", err)
			return
		}
		respondJSON(w, http.StatusCreated, daily)
	}
}

// HandleUpdateDaily edits a daily's user-facing fields.
// @Summary Update daily
// @Tags dailies
// @Accept json
// @Produce json
// @Param id path string true "Daily ID"
// @Success 200 {object} domain.Daily
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dailies/{id} [put]
func HandleUpdateDaily(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update daily"); err != nil {
			return
		}

		daily := &domain.Daily{
			ID:         chi.URLParam(r, "id"),
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
		}
		if err := svc.UpdateDaily(r.Context(), daily); err != nil {
			respondServiceError(w, r, "Update daily", err)
			return
		}
		respondJSON(w, http.StatusOK, daily)
	}
}

// HandleDeleteDaily removes a daily.
// @Summary Delete daily
// @Tags dailies
// @Param id path string true "Daily ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dailies/{id} [delete]
func HandleDeleteDaily(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteDaily(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, "Delete daily", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Daily deleted"})
	}
}

// HandleReorderDailies applies a new display ordering.
// @Summary Reorder dailies
// @Tags dailies
// @Accept json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/dailies/reorder [post]
func HandleReorderDailies(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ReorderRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reorder dailies"); err != nil {
			return
		}
		if err := svc.ReorderDailies(r.Context(), userID, req.IDs); err != nil {
			respondServiceError(w, r, "Reorder dailies", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Dailies reordered"})
	}
}

// HandleCompleteDaily marks a daily done for today and applies the
// streak-scaled reward.
// @Summary Complete daily
// @Tags dailies
// @Produce json
// @Param id path string true "Daily ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/dailies/{id}/complete [post]
func HandleCompleteDaily(svc activity.Service) http.HandlerFunc {
	return handleApplied("Complete daily", svc.CompleteDaily)
}

// HandleUncompleteDaily undoes today's completion and refunds the exact
// reward it granted.
// @Summary Uncomplete daily
// @Tags dailies
// @Produce json
// @Param id path string true "Daily ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/dailies/{id}/uncomplete [post]
func HandleUncompleteDaily(svc activity.Service) http.HandlerFunc {
	return handleApplied("Uncomplete daily", svc.UncompleteDaily)
}

// --- Tasks ---

// HandleListTasks returns the caller's tasks in display order.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} domain.Task
// @Router /api/v1/tasks [get]
func HandleListTasks(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		tasks, err := svc.ListTasks(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List tasks", err)
			return
		}
		respondJSON(w, http.StatusOK, tasks)
	}
}

// HandleAddTask creates a task at the end of the list.
// @Summary Add task
// @Tags tasks
// @Accept json
// @Produce json
// @Success 201 {object} domain.Task
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/tasks [post]
func HandleAddTask(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add task"); err != nil {
			return
		}

		due, err := parseDueDate(req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		task := &domain.Task{
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
			DueDate:    due,
		}
		if err := svc.AddTask(r.Context(), task); err != nil {
			respondServiceError(w, r, "Add task", err)
			return
		}
		respondJSON(w, http.StatusCreated, task)
	}
}

// HandleUpdateTask edits a task's user-facing fields.
// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [put]
func HandleUpdateTask(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update task"); err != nil {
			return
		}

		due, err := parseDueDate(req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		task := &domain.Task{
			ID:         chi.URLParam(r, "id"),
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			Attributes: attributesFromRequest(req.Attributes),
			Difficulty: domain.Difficulty(req.Difficulty),
			DueDate:    due,
		}
		if err := svc.UpdateTask(r.Context(), task); err != nil {
			respondServiceError(w, r, "Update task", err)
			return
		}
		respondJSON(w, http.StatusOK, task)
	}
}

// HandleDeleteTask removes a task.
// @Summary Delete task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func HandleDeleteTask(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteTask(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, "Delete task", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Task deleted"})
	}
}

// HandleReorderTasks applies a new display ordering.
// @Summary Reorder tasks
// @Tags tasks
// @Accept json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/tasks/reorder [post]
func HandleReorderTasks(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req ReorderRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reorder tasks"); err != nil {
			return
		}
		if err := svc.ReorderTasks(r.Context(), userID, req.IDs); err != nil {
			respondServiceError(w, r, "Reorder tasks", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Tasks reordered"})
	}
}

// HandleCompleteTask marks a task done and applies the difficulty-tier
// reward.
// @Summary Complete task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/tasks/{id}/complete [post]
func HandleCompleteTask(svc activity.Service) http.HandlerFunc {
	return handleApplied("Complete task", svc.CompleteTask)
}

// HandleUncompleteTask reopens a completed task and claws back its reward.
// @Summary Uncomplete task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} AppliedResponse
// @Router /api/v1/tasks/{id}/uncomplete [post]
func HandleUncompleteTask(svc activity.Service) http.HandlerFunc {
	return handleApplied("Uncomplete task", svc.UncompleteTask)
}

// handleApplied wraps the shared shape of reward-bearing activity actions:
// take the item ID from the path, report applied=true or the no-op guard.
func handleApplied(opName string, op func(ctx context.Context, userID, id string) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		applied, err := op(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		if !applied {
			logger.FromContext(r.Context()).Debug(opName+" was a no-op", "user_id", userID)
		}
		respondJSON(w, http.StatusOK, AppliedResponse{Applied: applied})
	}
}

func parseDueDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
