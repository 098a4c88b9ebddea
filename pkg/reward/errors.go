package reward

import "errors"

var (
	// ErrRollbackNotSupported indicates that an action doesn't support rollback.
	ErrRollbackNotSupported = errors.New("rollback not supported for this action")

	// ErrActionNotFound indicates that a requested action doesn't exist in the registry.
	ErrActionNotFound = errors.New("action not found in registry")

	// ErrUnknownActionType indicates no factory is registered for an action type.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrInvalidConfig indicates that the rewards configuration is invalid.
	ErrInvalidConfig = errors.New("invalid reward configuration")

	// ErrMissingParameter indicates a required action parameter is not set.
	ErrMissingParameter = errors.New("missing action parameter")
)
