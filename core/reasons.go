package core

import (
	"errors"

	"liquidgov/native/delegation"
	"liquidgov/native/voting"
)

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{ErrUnknownAction, "unknown_action"},
	{delegation.ErrInvalidDelegation, "invalid_delegation"},
	{delegation.ErrInvalidUndelegation, "invalid_undelegation"},
	{delegation.ErrUndelegationNotFound, "undelegation_not_found"},
	{delegation.ErrDelegationCycleDetected, "delegation_cycle"},
	{voting.ErrVoteRecordNotExist, "vote_not_found"},
	{voting.ErrCommitRevealNotConfigured, "commit_reveal_not_configured"},
	{voting.ErrNotInCommitStage, "not_in_commit_stage"},
	{voting.ErrDuplicateCommit, "duplicate_commit"},
	{voting.ErrNotInVotingStage, "not_in_voting_stage"},
	{voting.ErrInvalidOutcome, "invalid_outcome"},
	{voting.ErrDuplicateReveal, "duplicate_reveal"},
	{voting.ErrMissingSecret, "missing_secret"},
	{voting.ErrNoPriorCommitment, "no_prior_commitment"},
	{voting.ErrCommitmentMismatch, "commitment_mismatch"},
	{voting.ErrNotInitiator, "not_initiator"},
	{voting.ErrVoteAlreadyCompleted, "vote_completed"},
	{voting.ErrInvalidBinaryOutcomes, "invalid_binary_outcomes"},
	{voting.ErrInvalidMultiOptionOutcomes, "invalid_multi_option_outcomes"},
	{voting.ErrInvalidVoteType, "invalid_vote_type"},
	{voting.ErrInvalidTallyType, "invalid_tally_type"},
	{voting.ErrVoteCounterOverflow, "vote_counter_overflow"},
	{voting.ErrCorruptVoteRecord, "corrupt_vote_record"},
}

// rejectionReason maps a governance error onto a stable metrics label. The
// boolean is false for errors that are not input rejections (storage
// failures, cancelled contexts).
func rejectionReason(err error) (string, bool) {
	for _, entry := range rejectionReasons {
		if errors.Is(err, entry.err) {
			return entry.reason, true
		}
	}
	return "", false
}
