package voting

import (
	"math"

	"liquidgov/core/events"
	"liquidgov/crypto"
)

type voteState interface {
	VoteRecordCount() (uint64, error)
	SetVoteRecordCount(count uint64) error
	VoteRecord(id uint64) (*VoteRecord, bool, error)
	PutVoteRecord(record *VoteRecord) error
}

// Engine owns the vote lifecycle: record creation, stage transitions and the
// commit-reveal checks. Every operation validates fully before writing.
type Engine struct {
	state   voteState
	emitter events.Emitter
	hasher  crypto.Hasher
}

// NewEngine constructs a voting engine using keccak256 commitments and a
// no-op emitter.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		hasher:  crypto.Keccak256Hasher{},
	}
}

// SetState wires the engine to the state backend.
func (e *Engine) SetState(state voteState) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil resets
// the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetHasher selects the digest used to verify reveals. Nil restores keccak256.
func (e *Engine) SetHasher(hasher crypto.Hasher) {
	if hasher == nil {
		e.hasher = crypto.Keccak256Hasher{}
		return
	}
	e.hasher = hasher
}

// Hasher returns the commitment digest in use.
func (e *Engine) Hasher() crypto.Hasher { return e.hasher }

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errStateNotConfigured
	}
	return nil
}

func (e *Engine) load(id uint64) (*VoteRecord, error) {
	record, ok, err := e.state.VoteRecord(id)
	if err != nil {
		return nil, err
	}
	if !ok || record == nil {
		return nil, ErrVoteRecordNotExist
	}
	if !record.Stage.Valid() {
		return nil, ErrCorruptVoteRecord
	}
	return record, nil
}

func validateOutcomes(voteType VoteType, outcomes []VoteOutcome) error {
	var countErr error
	switch voteType {
	case VoteTypeBinary:
		countErr = ErrInvalidBinaryOutcomes
		if len(outcomes) != 2 {
			return countErr
		}
	case VoteTypeMultiOption:
		countErr = ErrInvalidMultiOptionOutcomes
		if len(outcomes) <= 2 {
			return countErr
		}
	default:
		return ErrInvalidVoteType
	}
	seen := make(map[VoteOutcome]struct{}, len(outcomes))
	for _, o := range outcomes {
		if _, dup := seen[o]; dup {
			return countErr
		}
		seen[o] = struct{}{}
	}
	return nil
}

// CreateVote stores a new vote record in the PreVoting stage and returns its
// id. Ids start at 1 and are never reused.
func (e *Engine) CreateVote(sender [20]byte, voteType VoteType, isCommitReveal bool, tallyType TallyType, outcomes []VoteOutcome) (uint64, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	if err := validateOutcomes(voteType, outcomes); err != nil {
		return 0, err
	}
	if !tallyType.Valid() {
		return 0, ErrInvalidTallyType
	}
	count, err := e.state.VoteRecordCount()
	if err != nil {
		return 0, err
	}
	if count == math.MaxUint64 {
		return 0, ErrVoteCounterOverflow
	}
	id := count + 1

	record := &VoteRecord{
		ID:             id,
		Initiator:      sender,
		Stage:          VoteStagePreVoting,
		VoteType:       voteType,
		TallyType:      tallyType,
		IsCommitReveal: isCommitReveal,
		Outcomes:       append([]VoteOutcome(nil), outcomes...),
	}
	if err := e.state.PutVoteRecord(record); err != nil {
		return 0, err
	}
	if err := e.state.SetVoteRecordCount(id); err != nil {
		return 0, err
	}
	e.emit(VoteCreated{ID: id, Initiator: sender, VoteType: voteType})
	return id, nil
}

// AdvanceStage moves the vote to its next lifecycle stage.
func (e *Engine) AdvanceStage(id uint64) error {
	if err := e.ready(); err != nil {
		return err
	}
	record, err := e.load(id)
	if err != nil {
		return err
	}
	return e.advance(record)
}

// AdvanceStageAsInitiator advances the vote on behalf of origin, which must be
// the account that created it.
func (e *Engine) AdvanceStageAsInitiator(origin [20]byte, id uint64) error {
	if err := e.ready(); err != nil {
		return err
	}
	record, err := e.load(id)
	if err != nil {
		return err
	}
	if record.Initiator != origin {
		return ErrNotInitiator
	}
	return e.advance(record)
}

func (e *Engine) advance(record *VoteRecord) error {
	current := record.Stage
	next, err := nextStage(current, record.IsCommitReveal)
	if err != nil {
		return err
	}
	record.Stage = next
	if err := e.state.PutVoteRecord(record); err != nil {
		return err
	}
	e.emit(VoteAdvanced{ID: record.ID, From: current, To: next})
	return nil
}

// Commit records sender's hidden ballot for a commit-reveal vote.
func (e *Engine) Commit(sender [20]byte, id uint64, hash [32]byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	record, err := e.load(id)
	if err != nil {
		return err
	}
	if !record.IsCommitReveal {
		return ErrCommitRevealNotConfigured
	}
	if record.Stage != VoteStageCommit {
		return ErrNotInCommitStage
	}
	if _, ok := record.CommitmentOf(sender); ok {
		return ErrDuplicateCommit
	}

	record.Commitments = append(record.Commitments, Commitment{Account: sender, Hash: hash})
	if err := e.state.PutVoteRecord(record); err != nil {
		return err
	}
	e.emit(VoteCommitted{ID: record.ID, Account: sender})
	return nil
}

// Reveal records sender's ballot. For commit-reveal votes the secret is
// required and hash(sender ++ secret ++ outcome) must equal the stored
// commitment; for plain votes the secret is ignored.
func (e *Engine) Reveal(sender [20]byte, id uint64, outcome VoteOutcome, secret *Secret) error {
	if err := e.ready(); err != nil {
		return err
	}
	record, err := e.load(id)
	if err != nil {
		return err
	}
	if record.Stage != VoteStageVoting {
		return ErrNotInVotingStage
	}
	if !record.HasOutcome(outcome) {
		return ErrInvalidOutcome
	}
	if _, ok := record.RevealOf(sender); ok {
		return ErrDuplicateReveal
	}
	if record.IsCommitReveal {
		if secret == nil {
			return ErrMissingSecret
		}
		committed, ok := record.CommitmentOf(sender)
		if !ok {
			return ErrNoPriorCommitment
		}
		if e.hasher == nil {
			return errHasherNotConfigured
		}
		if ComputeCommitment(e.hasher, sender, *secret, outcome) != committed {
			return ErrCommitmentMismatch
		}
	}

	record.Reveals = append(record.Reveals, Reveal{Account: sender, Outcome: outcome})
	if err := e.state.PutVoteRecord(record); err != nil {
		return err
	}
	e.emit(VoteRevealed{ID: record.ID, Account: sender, Outcome: outcome})
	return nil
}

// VoteRecord returns a copy of the stored record.
func (e *Engine) VoteRecord(id uint64) (*VoteRecord, bool, error) {
	if err := e.ready(); err != nil {
		return nil, false, err
	}
	record, ok, err := e.state.VoteRecord(id)
	if err != nil || !ok {
		return nil, false, err
	}
	return record.Clone(), true, nil
}

// VoteRecordCount returns the number of votes created so far.
func (e *Engine) VoteRecordCount() (uint64, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	return e.state.VoteRecordCount()
}
