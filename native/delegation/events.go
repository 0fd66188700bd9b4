package delegation

import (
	"liquidgov/core/types"
	"liquidgov/crypto"
)

const (
	// EventTypeDelegated is emitted when an account delegates its vote.
	EventTypeDelegated = "delegation.delegated"
	// EventTypeUndelegated is emitted when an account withdraws its delegation.
	EventTypeUndelegated = "delegation.undelegated"
)

// Delegated records a new or replaced forward edge.
type Delegated struct {
	Delegator [20]byte
	Delegate  [20]byte
}

func (Delegated) EventType() string { return EventTypeDelegated }

func (e Delegated) Event() *types.Event {
	return &types.Event{
		Type: EventTypeDelegated,
		Attributes: map[string]string{
			"delegator": crypto.FormatAccount(e.Delegator),
			"delegate":  crypto.FormatAccount(e.Delegate),
		},
	}
}

// Undelegated records the removal of a forward edge.
type Undelegated struct {
	Delegator [20]byte
	Delegate  [20]byte
}

func (Undelegated) EventType() string { return EventTypeUndelegated }

func (e Undelegated) Event() *types.Event {
	return &types.Event{
		Type: EventTypeUndelegated,
		Attributes: map[string]string{
			"delegator": crypto.FormatAccount(e.Delegator),
			"delegate":  crypto.FormatAccount(e.Delegate),
		},
	}
}
