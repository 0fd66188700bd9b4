package delegation

import "errors"

var (
	ErrInvalidDelegation   = errors.New("delegation: invalid delegation")
	ErrInvalidUndelegation = errors.New("delegation: invalid undelegation")
	// ErrUndelegationNotFound is returned when the target's reverse set exists
	// but does not list the sender.
	ErrUndelegationNotFound = errors.New("delegation: sender not among target's delegators")
	// ErrDelegationCycleDetected is only raised while resolving sinks.
	ErrDelegationCycleDetected = errors.New("delegation: cycle detected")

	errStateNotConfigured = errors.New("delegation: state not configured")
)
