package handler

import (
	"net/http"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

// CreateCharacterRequest represents the request to create a character.
type CreateCharacterRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// HandleGetCharacter returns the caller's character.
// @Summary Get character
// @Description Returns the authenticated user's character
// @Tags character
// @Produce json
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/character [get]
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		c, err := svc.GetCharacter(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleCreateCharacter creates the caller's character with initial stats.
// Creating twice returns the existing character unchanged.
// @Summary Create character
// @Tags character
// @Accept json
// @Produce json
// @Success 201 {object} domain.Character
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/character [post]
func HandleCreateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		c, err := svc.CreateCharacter(r.Context(), userID, req.Name)
		if err != nil {
			respondServiceError(w, r, "Create character", err)
			return
		}

		logger.FromContext(r.Context()).Info("Character create handled", "user_id", userID)
		respondJSON(w, http.StatusCreated, c)
	}
}

// HandleResetCharacter recreates the caller's character with initial stats.
// @Summary Reset character
// @Tags character
// @Produce json
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/character/reset [post]
func HandleResetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		c, err := svc.ResetCharacter(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Reset character", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}
