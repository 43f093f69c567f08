package handler

import (
	"net/http"

	"github.com/gevornos/Life-is-RPG/internal/authority"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

// GrantRewardRequest is a client's claim that an activity completion
// happened. The server re-derives the scaling inputs from its own records
// whenever the claim names an item.
type GrantRewardRequest struct {
	ActionType string `json:"action_type" validate:"required,action_type"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,difficulty"`
	Attribute  string `json:"attribute,omitempty" validate:"omitempty,attribute"`
	Streak     int    `json:"streak,omitempty" validate:"omitempty,min=0"`
	ItemID     string `json:"item_id,omitempty" validate:"omitempty,uuid4"`
}

// HandleGrantReward validates and applies a reward claim against the
// authoritative character state.
// @Summary Grant reward
// @Description Validates a completion claim and applies the reward server-side
// @Tags rewards
// @Accept json
// @Produce json
// @Success 200 {object} domain.RewardResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/rewards/grant [post]
func HandleGrantReward(svc authority.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req GrantRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant reward"); err != nil {
			return
		}

		grant := domain.RewardGrant{
			ActionType: domain.ActionType(req.ActionType),
			Difficulty: domain.Difficulty(req.Difficulty),
			Attribute:  domain.Attribute(req.Attribute),
			Streak:     req.Streak,
			ItemID:     req.ItemID,
		}
		result, err := svc.GrantReward(r.Context(), userID, grant)
		if err != nil {
			respondServiceError(w, r, "Grant reward", err)
			return
		}

		logger.FromContext(r.Context()).Info("Reward granted",
			"user_id", userID,
			"action_type", req.ActionType,
			"xp", result.XPGained,
			"gold", result.GoldGained)
		respondJSON(w, http.StatusOK, result)
	}
}
