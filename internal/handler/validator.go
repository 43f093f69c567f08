package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Custom validations for the reward domain enums
	_ = v.RegisterValidation("attribute", validateAttribute)
	_ = v.RegisterValidation("difficulty", validateDifficulty)
	_ = v.RegisterValidation("action_type", validateActionType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "attribute":
			errs[field] = "Unknown attribute"
		case "difficulty":
			errs[field] = "Unknown difficulty"
		case "action_type":
			errs[field] = "Unknown action type"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "dive":
			errs[field] = "Invalid value"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateAttribute(fl validator.FieldLevel) bool {
	return domain.Attribute(fl.Field().String()).IsValid()
}

func validateDifficulty(fl validator.FieldLevel) bool {
	return domain.Difficulty(fl.Field().String()).IsValid()
}

func validateActionType(fl validator.FieldLevel) bool {
	return domain.ActionType(fl.Field().String()).IsValid()
}
