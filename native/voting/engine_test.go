package voting_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"liquidgov/core/events"
	"liquidgov/core/state"
	"liquidgov/crypto"
	"liquidgov/native/voting"
	"liquidgov/storage"
)

func acct(b byte) [20]byte {
	var a [20]byte
	a[0] = 0xB0
	a[19] = b
	return a
}

var (
	initiator = acct(1)
	voterA    = acct(2)
	voterB    = acct(3)

	outYes   = voting.VoteOutcome{0x01}
	outNo    = voting.VoteOutcome{0x02}
	outMaybe = voting.VoteOutcome{0x03}
)

func newTestEngine(t *testing.T) (*voting.Engine, *state.Manager, *events.Recorder) {
	t.Helper()
	mgr := state.NewManager(storage.NewMemDB())
	engine := voting.NewEngine()
	engine.SetState(mgr)
	rec := &events.Recorder{}
	engine.SetEmitter(rec)
	return engine, mgr, rec
}

func createBinary(t *testing.T, engine *voting.Engine, commitReveal bool) uint64 {
	t.Helper()
	id, err := engine.CreateVote(initiator, voting.VoteTypeBinary, commitReveal, voting.TallyTypeOnePerson, []voting.VoteOutcome{outYes, outNo})
	require.NoError(t, err)
	return id
}

func stageOf(t *testing.T, engine *voting.Engine, id uint64) voting.VoteStage {
	t.Helper()
	record, ok, err := engine.VoteRecord(id)
	require.NoError(t, err)
	require.True(t, ok)
	return record.Stage
}

func TestCreateVoteAllocatesSequentialIDs(t *testing.T) {
	engine, _, rec := newTestEngine(t)

	count, err := engine.VoteRecordCount()
	require.NoError(t, err)
	require.Zero(t, count)

	require.Equal(t, uint64(1), createBinary(t, engine, false))
	require.Equal(t, uint64(2), createBinary(t, engine, true))
	id, err := engine.CreateVote(voterA, voting.VoteTypeMultiOption, false, voting.TallyTypeOneCoin, []voting.VoteOutcome{outYes, outNo, outMaybe})
	require.NoError(t, err)
	require.Equal(t, uint64(3), id)

	count, err = engine.VoteRecordCount()
	require.NoError(t, err)
	require.Equal(t, uint64(3), count)

	record, ok, err := engine.VoteRecord(3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, voterA, record.Initiator)
	require.Equal(t, voting.VoteStagePreVoting, record.Stage)
	require.Equal(t, voting.VoteTypeMultiOption, record.VoteType)
	require.Equal(t, voting.TallyTypeOneCoin, record.TallyType)
	require.False(t, record.IsCommitReveal)
	require.Equal(t, []voting.VoteOutcome{outYes, outNo, outMaybe}, record.Outcomes)
	require.Empty(t, record.Commitments)
	require.Empty(t, record.Reveals)

	require.Len(t, rec.Events, 3)
	created := rec.Events[2].(voting.VoteCreated)
	require.Equal(t, uint64(3), created.ID)
	require.Equal(t, voterA, created.Initiator)
	require.Equal(t, voting.VoteTypeMultiOption, created.VoteType)
}

func TestCreateVoteRejectsBadOutcomes(t *testing.T) {
	engine, mgr, rec := newTestEngine(t)

	cases := []struct {
		voteType voting.VoteType
		outcomes []voting.VoteOutcome
		err      error
	}{
		{voting.VoteTypeBinary, []voting.VoteOutcome{outYes, outNo, outMaybe}, voting.ErrInvalidBinaryOutcomes},
		{voting.VoteTypeBinary, []voting.VoteOutcome{outYes}, voting.ErrInvalidBinaryOutcomes},
		{voting.VoteTypeBinary, nil, voting.ErrInvalidBinaryOutcomes},
		{voting.VoteTypeBinary, []voting.VoteOutcome{outYes, outYes}, voting.ErrInvalidBinaryOutcomes},
		{voting.VoteTypeMultiOption, []voting.VoteOutcome{outYes, outNo}, voting.ErrInvalidMultiOptionOutcomes},
		{voting.VoteTypeMultiOption, []voting.VoteOutcome{outYes, outNo, outNo}, voting.ErrInvalidMultiOptionOutcomes},
		{voting.VoteType(9), []voting.VoteOutcome{outYes, outNo}, voting.ErrInvalidVoteType},
	}
	for _, tc := range cases {
		_, err := engine.CreateVote(initiator, tc.voteType, false, voting.TallyTypeOnePerson, tc.outcomes)
		require.ErrorIs(t, err, tc.err)
	}
	_, err := engine.CreateVote(initiator, voting.VoteTypeBinary, false, voting.TallyType(5), []voting.VoteOutcome{outYes, outNo})
	require.ErrorIs(t, err, voting.ErrInvalidTallyType)

	count, err := engine.VoteRecordCount()
	require.NoError(t, err)
	require.Zero(t, count)
	_, ok, err := engine.VoteRecord(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, mgr.Dirty())
	require.Empty(t, rec.Events)
}

func TestCreateVoteCounterOverflow(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	require.NoError(t, mgr.SetVoteRecordCount(math.MaxUint64))
	_, err := engine.CreateVote(initiator, voting.VoteTypeBinary, false, voting.TallyTypeOnePerson, []voting.VoteOutcome{outYes, outNo})
	require.ErrorIs(t, err, voting.ErrVoteCounterOverflow)
}

func TestCreateVoteCopiesOutcomes(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	outcomes := []voting.VoteOutcome{outYes, outNo}
	id, err := engine.CreateVote(initiator, voting.VoteTypeBinary, false, voting.TallyTypeOnePerson, outcomes)
	require.NoError(t, err)
	outcomes[0] = outMaybe

	record, _, err := engine.VoteRecord(id)
	require.NoError(t, err)
	require.Equal(t, outYes, record.Outcomes[0])
}

func TestAdvanceStageVisitsEveryStage(t *testing.T) {
	for _, commitReveal := range []bool{false, true} {
		engine, _, rec := newTestEngine(t)
		id := createBinary(t, engine, commitReveal)

		expected := []voting.VoteStage{voting.VoteStageVoting, voting.VoteStageCompleted}
		if commitReveal {
			expected = append([]voting.VoteStage{voting.VoteStageCommit}, expected...)
		}
		prev := voting.VoteStagePreVoting
		for _, want := range expected {
			require.NoError(t, engine.AdvanceStage(id))
			require.Equal(t, want, stageOf(t, engine, id))

			evt := rec.Events[len(rec.Events)-1].(voting.VoteAdvanced)
			require.Equal(t, id, evt.ID)
			require.Equal(t, prev, evt.From)
			require.Equal(t, want, evt.To)
			prev = want
		}
		for i := 0; i < 3; i++ {
			require.ErrorIs(t, engine.AdvanceStage(id), voting.ErrVoteAlreadyCompleted)
		}
		require.Equal(t, voting.VoteStageCompleted, stageOf(t, engine, id))
	}
}

func TestAdvanceStageUnknownVote(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	require.ErrorIs(t, engine.AdvanceStage(1), voting.ErrVoteRecordNotExist)
	require.ErrorIs(t, engine.AdvanceStageAsInitiator(initiator, 1), voting.ErrVoteRecordNotExist)
}

func TestAdvanceStageAsInitiator(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	id := createBinary(t, engine, false)
	require.NoError(t, mgr.Commit())

	require.ErrorIs(t, engine.AdvanceStageAsInitiator(voterA, id), voting.ErrNotInitiator)
	require.Zero(t, mgr.Dirty())
	require.Equal(t, voting.VoteStagePreVoting, stageOf(t, engine, id))

	require.NoError(t, engine.AdvanceStageAsInitiator(initiator, id))
	require.Equal(t, voting.VoteStageVoting, stageOf(t, engine, id))
}

func TestPlainVoteScenario(t *testing.T) {
	engine, _, rec := newTestEngine(t)
	id := createBinary(t, engine, false)

	require.ErrorIs(t, engine.Reveal(voterA, id, outYes, nil), voting.ErrNotInVotingStage)

	require.NoError(t, engine.AdvanceStage(id))
	require.Equal(t, voting.VoteStageVoting, stageOf(t, engine, id))

	require.NoError(t, engine.Reveal(voterA, id, outYes, nil))
	record, _, err := engine.VoteRecord(id)
	require.NoError(t, err)
	require.Equal(t, []voting.Reveal{{Account: voterA, Outcome: outYes}}, record.Reveals)

	revealed := rec.Events[len(rec.Events)-1].(voting.VoteRevealed)
	require.Equal(t, voterA, revealed.Account)
	require.Equal(t, outYes, revealed.Outcome)

	// A secret on a plain vote is ignored.
	secret := voting.Secret{0x42}
	require.NoError(t, engine.Reveal(voterB, id, outNo, &secret))
}

func TestRevealRejections(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	require.ErrorIs(t, engine.Reveal(voterA, 7, outYes, nil), voting.ErrVoteRecordNotExist)

	id := createBinary(t, engine, false)
	require.NoError(t, engine.AdvanceStage(id))
	require.ErrorIs(t, engine.Reveal(voterA, id, outMaybe, nil), voting.ErrInvalidOutcome)

	require.NoError(t, engine.Reveal(voterA, id, outYes, nil))
	require.NoError(t, mgr.Commit())
	require.ErrorIs(t, engine.Reveal(voterA, id, outNo, nil), voting.ErrDuplicateReveal)
	require.Zero(t, mgr.Dirty())

	require.NoError(t, engine.AdvanceStage(id))
	require.ErrorIs(t, engine.Reveal(voterB, id, outYes, nil), voting.ErrNotInVotingStage)
}

func TestCommitRejections(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	require.ErrorIs(t, engine.Commit(voterA, 1, [32]byte{1}), voting.ErrVoteRecordNotExist)

	plain := createBinary(t, engine, false)
	require.NoError(t, engine.AdvanceStage(plain))
	require.ErrorIs(t, engine.Commit(voterA, plain, [32]byte{1}), voting.ErrCommitRevealNotConfigured)

	sealed := createBinary(t, engine, true)
	require.ErrorIs(t, engine.Commit(voterA, sealed, [32]byte{1}), voting.ErrNotInCommitStage)

	require.NoError(t, engine.AdvanceStage(sealed))
	require.NoError(t, engine.Commit(voterA, sealed, [32]byte{1}))
	require.NoError(t, mgr.Commit())
	require.ErrorIs(t, engine.Commit(voterA, sealed, [32]byte{2}), voting.ErrDuplicateCommit)
	require.Zero(t, mgr.Dirty())

	require.NoError(t, engine.AdvanceStage(sealed))
	require.ErrorIs(t, engine.Commit(voterB, sealed, [32]byte{1}), voting.ErrNotInCommitStage)

	record, _, err := engine.VoteRecord(sealed)
	require.NoError(t, err)
	require.Equal(t, []voting.Commitment{{Account: voterA, Hash: [32]byte{1}}}, record.Commitments)
}

func TestCommitRevealRoundTrip(t *testing.T) {
	hashers := []crypto.Hasher{crypto.Keccak256Hasher{}, crypto.Blake3Hasher{}, crypto.SHA256Hasher{}}
	for _, hasher := range hashers {
		engine, _, rec := newTestEngine(t)
		engine.SetHasher(hasher)
		id := createBinary(t, engine, true)
		require.NoError(t, engine.AdvanceStage(id))

		secretA := voting.Secret{0xAA, 0x01}
		secretB := voting.Secret{0xBB, 0x02}
		require.NoError(t, engine.Commit(voterA, id, voting.ComputeCommitment(hasher, voterA, secretA, outYes)))
		require.NoError(t, engine.Commit(voterB, id, voting.ComputeCommitment(hasher, voterB, secretB, outNo)))
		require.NoError(t, engine.AdvanceStage(id))

		require.NoError(t, engine.Reveal(voterA, id, outYes, &secretA), hasher.Name())
		require.NoError(t, engine.Reveal(voterB, id, outNo, &secretB), hasher.Name())

		record, _, err := engine.VoteRecord(id)
		require.NoError(t, err)
		require.Equal(t, []voting.Reveal{{Account: voterA, Outcome: outYes}, {Account: voterB, Outcome: outNo}}, record.Reveals)
		require.Equal(t, voting.EventTypeVoteRevealed, rec.Events[len(rec.Events)-1].EventType())
	}
}

func TestRevealCommitmentChecks(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	hasher := engine.Hasher()
	id := createBinary(t, engine, true)
	require.NoError(t, engine.AdvanceStage(id))

	secret := voting.Secret{0x10}
	require.NoError(t, engine.Commit(voterA, id, voting.ComputeCommitment(hasher, voterA, secret, outYes)))
	require.NoError(t, engine.AdvanceStage(id))
	require.NoError(t, mgr.Commit())

	require.ErrorIs(t, engine.Reveal(voterA, id, outYes, nil), voting.ErrMissingSecret)
	require.ErrorIs(t, engine.Reveal(voterB, id, outYes, &secret), voting.ErrNoPriorCommitment)

	wrongSecret := voting.Secret{0x11}
	require.ErrorIs(t, engine.Reveal(voterA, id, outYes, &wrongSecret), voting.ErrCommitmentMismatch)
	require.ErrorIs(t, engine.Reveal(voterA, id, outNo, &secret), voting.ErrCommitmentMismatch)
	require.Zero(t, mgr.Dirty())

	// A commitment made with a different digest does not verify.
	engine.SetHasher(crypto.Blake3Hasher{})
	require.ErrorIs(t, engine.Reveal(voterA, id, outYes, &secret), voting.ErrCommitmentMismatch)

	engine.SetHasher(nil)
	require.NoError(t, engine.Reveal(voterA, id, outYes, &secret))
}

func TestCorruptStageIsTypedError(t *testing.T) {
	engine, mgr, _ := newTestEngine(t)
	require.NoError(t, mgr.PutVoteRecord(&voting.VoteRecord{ID: 1, Stage: voting.VoteStage(200)}))
	require.ErrorIs(t, engine.AdvanceStage(1), voting.ErrCorruptVoteRecord)
	require.ErrorIs(t, engine.Reveal(voterA, 1, outYes, nil), voting.ErrCorruptVoteRecord)
}

func TestVoteRecordReturnsCopy(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	id := createBinary(t, engine, false)

	record, _, err := engine.VoteRecord(id)
	require.NoError(t, err)
	record.Stage = voting.VoteStageCompleted
	record.Outcomes[0] = outMaybe

	require.Equal(t, voting.VoteStagePreVoting, stageOf(t, engine, id))
	fresh, _, err := engine.VoteRecord(id)
	require.NoError(t, err)
	require.Equal(t, outYes, fresh.Outcomes[0])
}

func TestEngineWithoutState(t *testing.T) {
	engine := voting.NewEngine()
	_, err := engine.CreateVote(initiator, voting.VoteTypeBinary, false, voting.TallyTypeOnePerson, []voting.VoteOutcome{outYes, outNo})
	require.Error(t, err)
	require.Error(t, engine.AdvanceStage(1))
	require.Error(t, engine.Commit(voterA, 1, [32]byte{}))
	require.Error(t, engine.Reveal(voterA, 1, outYes, nil))
	_, err = engine.VoteRecordCount()
	require.Error(t, err)
	engine.SetEmitter(nil)
}
