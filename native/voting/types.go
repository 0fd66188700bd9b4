package voting

import (
	"encoding/hex"
	"strings"
)

// VoteOutcome is an opaque identifier for one possible result of a vote.
type VoteOutcome [32]byte

// Hex renders the outcome for events and logs.
func (o VoteOutcome) Hex() string { return hex.EncodeToString(o[:]) }

// Secret is the blinding value a voter mixes into a commitment.
type Secret [32]byte

// VoteStage enumerates the lifecycle phases of a vote. Values are ordered so
// that a later stage always compares greater than an earlier one.
type VoteStage uint8

const (
	// VoteStagePreVoting accepts no commitments or reveals.
	VoteStagePreVoting VoteStage = iota
	// VoteStageCommit accepts commitments; only reached by commit-reveal votes.
	VoteStageCommit
	// VoteStageVoting accepts reveals (plain votes for non commit-reveal votes).
	VoteStageVoting
	// VoteStageCompleted is terminal.
	VoteStageCompleted
)

func (s VoteStage) String() string {
	switch s {
	case VoteStagePreVoting:
		return "pre_voting"
	case VoteStageCommit:
		return "commit"
	case VoteStageVoting:
		return "voting"
	case VoteStageCompleted:
		return "completed"
	default:
		return "unspecified"
	}
}

// Valid reports whether the stage is one of the known lifecycle phases.
func (s VoteStage) Valid() bool { return s <= VoteStageCompleted }

// VoteType selects how many outcomes a vote carries.
type VoteType uint8

const (
	// VoteTypeBinary votes carry exactly two outcomes.
	VoteTypeBinary VoteType = iota
	// VoteTypeMultiOption votes carry more than two outcomes.
	VoteTypeMultiOption
)

func (t VoteType) String() string {
	switch t {
	case VoteTypeBinary:
		return "binary"
	case VoteTypeMultiOption:
		return "multi_option"
	default:
		return "unspecified"
	}
}

func (t VoteType) Valid() bool { return t == VoteTypeBinary || t == VoteTypeMultiOption }

// ParseVoteType resolves the names produced by VoteType.String.
func ParseVoteType(name string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary":
		return VoteTypeBinary, nil
	case "multi_option", "multioption":
		return VoteTypeMultiOption, nil
	default:
		return 0, ErrInvalidVoteType
	}
}

// TallyType records the metric an external tally applies to reveals. The
// core only stores it.
type TallyType uint8

const (
	// TallyTypeOnePerson counts one vote per account.
	TallyTypeOnePerson TallyType = iota
	// TallyTypeOneCoin weights votes by balance.
	TallyTypeOneCoin
)

func (t TallyType) String() string {
	switch t {
	case TallyTypeOnePerson:
		return "one_person"
	case TallyTypeOneCoin:
		return "one_coin"
	default:
		return "unspecified"
	}
}

func (t TallyType) Valid() bool { return t == TallyTypeOnePerson || t == TallyTypeOneCoin }

// ParseTallyType resolves the names produced by TallyType.String.
func ParseTallyType(name string) (TallyType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "one_person", "oneperson":
		return TallyTypeOnePerson, nil
	case "one_coin", "onecoin":
		return TallyTypeOneCoin, nil
	default:
		return 0, ErrInvalidTallyType
	}
}

// Commitment is a voter's hidden ballot.
type Commitment struct {
	Account [20]byte
	Hash    [32]byte
}

// Reveal is a voter's disclosed ballot.
type Reveal struct {
	Account [20]byte
	Outcome VoteOutcome
}

// VoteRecord is the durable, append-only record of a single vote. Records are
// created once and then only mutated in place.
type VoteRecord struct {
	ID             uint64
	Initiator      [20]byte
	Stage          VoteStage
	VoteType       VoteType
	TallyType      TallyType
	IsCommitReveal bool
	Outcomes       []VoteOutcome
	Commitments    []Commitment
	Reveals        []Reveal
}

// Clone returns a deep copy of the record.
func (r *VoteRecord) Clone() *VoteRecord {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Outcomes = append([]VoteOutcome(nil), r.Outcomes...)
	clone.Commitments = append([]Commitment(nil), r.Commitments...)
	clone.Reveals = append([]Reveal(nil), r.Reveals...)
	return &clone
}

// HasOutcome reports whether outcome is one of the record's options.
func (r *VoteRecord) HasOutcome(outcome VoteOutcome) bool {
	for _, o := range r.Outcomes {
		if o == outcome {
			return true
		}
	}
	return false
}

// CommitmentOf returns the commitment recorded for account, if any.
func (r *VoteRecord) CommitmentOf(account [20]byte) ([32]byte, bool) {
	for _, c := range r.Commitments {
		if c.Account == account {
			return c.Hash, true
		}
	}
	return [32]byte{}, false
}

// RevealOf returns the outcome revealed by account, if any.
func (r *VoteRecord) RevealOf(account [20]byte) (VoteOutcome, bool) {
	for _, rv := range r.Reveals {
		if rv.Account == account {
			return rv.Outcome, true
		}
	}
	return VoteOutcome{}, false
}
