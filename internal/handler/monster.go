package handler

import (
	"net/http"

	"github.com/gevornos/Life-is-RPG/internal/monster"
)

// DealDamageRequest is a direct damage application against today's monster.
type DealDamageRequest struct {
	Amount int `json:"amount" validate:"required,min=1,max=10000"`
}

// HandleGetMonster returns today's monster, spawning one when needed.
// @Summary Get daily monster
// @Tags monster
// @Produce json
// @Success 200 {object} domain.Monster
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/monster [get]
func HandleGetMonster(svc monster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		m, err := svc.GetOrSpawn(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get monster", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

// HandleDealDamage applies direct damage to today's monster and returns
// its updated state.
// @Summary Deal damage to the daily monster
// @Tags monster
// @Accept json
// @Produce json
// @Success 200 {object} domain.Monster
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/monster/damage [post]
func HandleDealDamage(svc monster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		var req DealDamageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deal damage"); err != nil {
			return
		}
		m, err := svc.DealDamage(r.Context(), userID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Deal damage", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}
