package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgActivityNotFound  = "activity not found"
	ErrMsgMonsterNotFound   = "no active monster"
	ErrMsgUnauthorized      = "unauthorized"
	ErrMsgNotOwner          = "item does not belong to user"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgSessionInvalid    = "session invalid or expired"
	ErrMsgAuthorityTimeout  = "reward authority timed out"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrActivityNotFound  = errors.New(ErrMsgActivityNotFound)
	ErrMonsterNotFound   = errors.New(ErrMsgMonsterNotFound)

	// Authorization errors surface to the caller and trigger local
	// rollback of the optimistic mutation.
	ErrUnauthorized   = errors.New(ErrMsgUnauthorized)
	ErrNotOwner       = errors.New(ErrMsgNotOwner)
	ErrSessionInvalid = errors.New(ErrMsgSessionInvalid)

	// Transient network errors are treated like authorization failures
	// for rollback purposes but are retryable by the next user action.
	ErrAuthorityTimeout = errors.New(ErrMsgAuthorityTimeout)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
