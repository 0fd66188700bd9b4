package voting

import (
	"strconv"

	"liquidgov/core/types"
	"liquidgov/crypto"
)

const (
	// EventTypeVoteCreated is emitted when a new vote record is stored.
	EventTypeVoteCreated = "voting.created"
	// EventTypeVoteAdvanced is emitted on every stage transition.
	EventTypeVoteAdvanced = "voting.advanced"
	// EventTypeVoteCommitted is emitted when a commitment is accepted.
	EventTypeVoteCommitted = "voting.committed"
	// EventTypeVoteRevealed is emitted when a reveal (or plain vote) is accepted.
	EventTypeVoteRevealed = "voting.revealed"
)

type VoteCreated struct {
	ID        uint64
	Initiator [20]byte
	VoteType  VoteType
}

func (VoteCreated) EventType() string { return EventTypeVoteCreated }

func (e VoteCreated) Event() *types.Event {
	return &types.Event{
		Type: EventTypeVoteCreated,
		Attributes: map[string]string{
			"id":        strconv.FormatUint(e.ID, 10),
			"initiator": crypto.FormatAccount(e.Initiator),
			"voteType":  e.VoteType.String(),
		},
	}
}

type VoteAdvanced struct {
	ID   uint64
	From VoteStage
	To   VoteStage
}

func (VoteAdvanced) EventType() string { return EventTypeVoteAdvanced }

func (e VoteAdvanced) Event() *types.Event {
	return &types.Event{
		Type: EventTypeVoteAdvanced,
		Attributes: map[string]string{
			"id":   strconv.FormatUint(e.ID, 10),
			"from": e.From.String(),
			"to":   e.To.String(),
		},
	}
}

type VoteCommitted struct {
	ID      uint64
	Account [20]byte
}

func (VoteCommitted) EventType() string { return EventTypeVoteCommitted }

func (e VoteCommitted) Event() *types.Event {
	return &types.Event{
		Type: EventTypeVoteCommitted,
		Attributes: map[string]string{
			"id":      strconv.FormatUint(e.ID, 10),
			"account": crypto.FormatAccount(e.Account),
		},
	}
}

type VoteRevealed struct {
	ID      uint64
	Account [20]byte
	Outcome VoteOutcome
}

func (VoteRevealed) EventType() string { return EventTypeVoteRevealed }

func (e VoteRevealed) Event() *types.Event {
	return &types.Event{
		Type: EventTypeVoteRevealed,
		Attributes: map[string]string{
			"id":      strconv.FormatUint(e.ID, 10),
			"account": crypto.FormatAccount(e.Account),
			"outcome": e.Outcome.Hex(),
		},
	}
}
