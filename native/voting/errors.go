package voting

import "errors"

var (
	ErrVoteRecordNotExist         = errors.New("voting: vote record does not exist")
	ErrCommitRevealNotConfigured  = errors.New("voting: commitments are not configured for this vote")
	ErrNotInCommitStage           = errors.New("voting: vote is not in commit stage")
	ErrDuplicateCommit            = errors.New("voting: duplicate commits are not allowed")
	ErrNotInVotingStage           = errors.New("voting: vote is not in voting stage")
	ErrInvalidOutcome             = errors.New("voting: vote outcome is not valid")
	ErrDuplicateReveal            = errors.New("voting: duplicate votes are not allowed")
	ErrMissingSecret              = errors.New("voting: secret is required")
	ErrNoPriorCommitment          = errors.New("voting: sender has no commitment")
	ErrCommitmentMismatch         = errors.New("voting: commitments do not match")
	ErrNotInitiator               = errors.New("voting: invalid advance attempt by non-initiator")
	ErrVoteAlreadyCompleted       = errors.New("voting: vote already completed")
	ErrInvalidBinaryOutcomes      = errors.New("voting: invalid binary outcomes")
	ErrInvalidMultiOptionOutcomes = errors.New("voting: invalid multi option outcomes")
	ErrInvalidVoteType            = errors.New("voting: invalid vote type")
	ErrInvalidTallyType           = errors.New("voting: invalid tally type")
	ErrVoteCounterOverflow        = errors.New("voting: vote record counter exhausted")
	ErrCorruptVoteRecord          = errors.New("voting: corrupt vote record")

	errStateNotConfigured  = errors.New("voting: state not configured")
	errHasherNotConfigured = errors.New("voting: hasher not configured")
)
