package core

import (
	"errors"

	"liquidgov/native/voting"
)

// ActionType names a governance state transition.
type ActionType string

const (
	ActionDelegate     ActionType = "delegate"
	ActionUndelegate   ActionType = "undelegate"
	ActionCreateVote   ActionType = "create_vote"
	ActionCommit       ActionType = "commit"
	ActionReveal       ActionType = "reveal"
	ActionAdvanceStage ActionType = "advance_stage"
)

// ErrUnknownAction is returned by Apply for unrecognised action types.
var ErrUnknownAction = errors.New("core: unknown action type")

// Valid reports whether the action type is one the runtime can dispatch.
func (t ActionType) Valid() bool {
	switch t {
	case ActionDelegate, ActionUndelegate, ActionCreateVote, ActionCommit, ActionReveal, ActionAdvanceStage:
		return true
	default:
		return false
	}
}

// Action is an authenticated governance request. Origin has already been
// resolved to an account by the caller; only the fields relevant to Type are
// read.
type Action struct {
	Type   ActionType
	Origin [20]byte

	// Target is the delegate for ActionDelegate and the previous delegate for
	// ActionUndelegate.
	Target [20]byte

	// VoteID addresses an existing vote for commit, reveal and advance_stage.
	VoteID uint64

	VoteType       voting.VoteType
	TallyType      voting.TallyType
	IsCommitReveal bool
	Outcomes       []voting.VoteOutcome

	Commitment [32]byte
	Outcome    voting.VoteOutcome
	Secret     *voting.Secret
}

// Result carries values produced by a successful action.
type Result struct {
	// VoteID is set for ActionCreateVote.
	VoteID uint64
}
