package core

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"liquidgov/core/events"
	"liquidgov/core/genesis"
	"liquidgov/core/state"
	"liquidgov/crypto"
	"liquidgov/native/delegation"
	"liquidgov/native/voting"
	"liquidgov/observability"
	"liquidgov/observability/logging"
	telemetry "liquidgov/observability/otel"
	"liquidgov/storage"
)

// ErrGenesisApplied is returned by InitGenesis when the state already carries
// a schema version.
var ErrGenesisApplied = errors.New("core: genesis already applied")

type eventRecorder interface {
	RecordEvent(eventType string)
}

// meteredEmitter counts committed events before handing them downstream.
type meteredEmitter struct {
	downstream events.Emitter
	metrics    eventRecorder
}

func (m meteredEmitter) Emit(evt events.Event) {
	if evt == nil {
		return
	}
	if m.metrics != nil {
		m.metrics.RecordEvent(evt.EventType())
	}
	if m.downstream != nil {
		m.downstream.Emit(evt)
	}
}

type genesisTarget struct {
	state      *state.Manager
	delegation *delegation.Engine
}

func (g genesisTarget) SetDelegationDepth(depth uint32) error {
	return g.state.SetDelegationDepth(depth)
}

func (g genesisTarget) Delegate(delegator, to [20]byte) error {
	return g.delegation.Delegate(delegator, to)
}

// Runtime applies governance actions against a single state store. Each
// action is all-or-nothing: writes are journaled in the state manager and
// events are buffered until the journal has been committed. Queries observe
// only committed state.
//
// The delegation and voting engines take no locks and assume one caller at a
// time. The runtime mutex only serialises calls from hosts that share a
// Runtime between goroutines; it never reorders actions.
type Runtime struct {
	mu sync.Mutex

	db         storage.Database
	state      *state.Manager
	delegation *delegation.Engine
	voting     *voting.Engine

	buffer     *events.Buffer
	downstream events.Emitter

	logger   *slog.Logger
	metrics  *observability.GovernanceMetrics
	shutdown telemetry.ShutdownFunc
	closeLog func() error
}

// NewRuntime wires the delegation and voting engines to a state manager over
// db. Events are discarded until SetEmitter is called.
func NewRuntime(db storage.Database) *Runtime {
	manager := state.NewManager(db)
	buffer := &events.Buffer{}

	delegationEngine := delegation.NewEngine()
	delegationEngine.SetState(manager)
	delegationEngine.SetEmitter(buffer)

	votingEngine := voting.NewEngine()
	votingEngine.SetState(manager)
	votingEngine.SetEmitter(buffer)

	return &Runtime{
		db:         db,
		state:      manager,
		delegation: delegationEngine,
		voting:     votingEngine,
		buffer:     buffer,
		downstream: events.NoopEmitter{},
		logger:     slog.Default(),
		metrics:    observability.Governance(),
	}
}

// SetEmitter configures the collaborator that receives committed events.
// Passing nil discards them.
func (r *Runtime) SetEmitter(emitter events.Emitter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if emitter == nil {
		r.downstream = events.NoopEmitter{}
		return
	}
	r.downstream = emitter
}

// SetLogger replaces the runtime logger. Nil restores slog.Default.
func (r *Runtime) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger == nil {
		logger = slog.Default()
	}
	r.logger = logger.With(slog.String("component", "runtime"))
}

// SetHasher selects the commitment digest used to verify reveals.
func (r *Runtime) SetHasher(hasher crypto.Hasher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.voting.SetHasher(hasher)
}

// Hasher returns the commitment digest in use.
func (r *Runtime) Hasher() crypto.Hasher {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voting.Hasher()
}

// Close stops telemetry exporters installed by Open, closes the store and
// releases the log file opened by Open.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.shutdown != nil {
		err = r.shutdown(ctx)
		r.shutdown = nil
	}
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
	if r.closeLog != nil {
		if closeErr := r.closeLog(); err == nil {
			err = closeErr
		}
		r.closeLog = nil
	}
	return err
}

// Apply validates and executes one action. On success the state journal is
// committed and the action's events are delivered; on failure neither state
// nor the event stream changes.
func (r *Runtime) Apply(ctx context.Context, action Action) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	_, span := telemetry.Tracer().Start(ctx, "governance."+string(action.Type),
		trace.WithAttributes(
			attribute.String("governance.action", string(action.Type)),
			attribute.String("governance.origin", crypto.FormatAccount(action.Origin)),
		))
	defer span.End()

	result, err := r.apply(ctx, action)
	if err != nil {
		r.state.Discard()
		r.buffer.Discard()
		r.observeFailure(action, err, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	r.buffer.Flush(meteredEmitter{downstream: r.downstream, metrics: observability.Events()})
	r.metrics.ObserveAction(string(action.Type), observability.OutcomeSuccess, time.Since(start))
	if action.Type == ActionCreateVote {
		span.SetAttributes(attribute.String("governance.vote_id", strconv.FormatUint(result.VoteID, 10)))
		r.metrics.SetVoteRecords(result.VoteID)
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (r *Runtime) apply(ctx context.Context, action Action) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	result, err := r.dispatch(action)
	if err != nil {
		return Result{}, err
	}
	if err := r.state.Commit(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (r *Runtime) dispatch(action Action) (Result, error) {
	switch action.Type {
	case ActionDelegate:
		return Result{}, r.delegation.Delegate(action.Origin, action.Target)
	case ActionUndelegate:
		return Result{}, r.delegation.Undelegate(action.Origin, action.Target)
	case ActionCreateVote:
		id, err := r.voting.CreateVote(action.Origin, action.VoteType, action.IsCommitReveal, action.TallyType, action.Outcomes)
		if err != nil {
			return Result{}, err
		}
		return Result{VoteID: id}, nil
	case ActionCommit:
		return Result{}, r.voting.Commit(action.Origin, action.VoteID, action.Commitment)
	case ActionReveal:
		return Result{}, r.voting.Reveal(action.Origin, action.VoteID, action.Outcome, action.Secret)
	case ActionAdvanceStage:
		return Result{}, r.voting.AdvanceStageAsInitiator(action.Origin, action.VoteID)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, string(action.Type))
	}
}

func (r *Runtime) observeFailure(action Action, err error, elapsed time.Duration) {
	attrs := []any{
		slog.String("action", string(action.Type)),
		slog.String("origin", crypto.FormatAccount(action.Origin)),
		slog.Any("error", err),
	}
	if action.VoteID != 0 {
		attrs = append(attrs, slog.Uint64("vote_id", action.VoteID))
	}
	switch action.Type {
	case ActionCommit:
		attrs = append(attrs, logging.MaskField("commitment", hex.EncodeToString(action.Commitment[:])))
	case ActionReveal:
		attrs = append(attrs, logging.MaskField("outcome", action.Outcome.Hex()))
	}
	if reason, ok := rejectionReason(err); ok {
		r.metrics.ObserveAction(string(action.Type), observability.OutcomeRejected, elapsed)
		r.metrics.RecordRejection(string(action.Type), reason)
		r.logger.Debug("governance action rejected", append(attrs, slog.String("reason", reason))...)
		return
	}
	r.metrics.ObserveAction(string(action.Type), observability.OutcomeError, elapsed)
	r.logger.Warn("governance action failed", attrs...)
}

// InitGenesis installs the initial delegation depth and delegations and stamps
// the state schema version. Genesis delegations pass through the same
// validation as runtime delegations.
func (r *Runtime) InitGenesis(ctx context.Context, spec *genesis.Spec) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok, err := r.state.StateVersion(); err != nil {
		return err
	} else if ok {
		return ErrGenesisApplied
	}

	err := genesis.Apply(spec, genesisTarget{state: r.state, delegation: r.delegation})
	if err == nil {
		err = r.state.SetStateVersion(state.StateVersion)
	}
	if err == nil {
		err = r.state.Commit()
	}
	if err != nil {
		r.state.Discard()
		r.buffer.Discard()
		return err
	}
	r.buffer.Flush(meteredEmitter{downstream: r.downstream, metrics: observability.Events()})
	r.logger.Info("genesis applied",
		slog.Uint64("delegation_depth", uint64(spec.DelegationDepth)),
		slog.Int("delegations", len(spec.Delegations)))
	return nil
}

// Initialized reports whether genesis has been applied to the store.
func (r *Runtime) Initialized() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok, err := r.state.StateVersion()
	return ok, err
}

// DelegationDepth returns the configured maximum chain length.
func (r *Runtime) DelegationDepth() (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegation.DelegationDepth()
}

// DelegateOf returns the account's current delegate.
func (r *Runtime) DelegateOf(account [20]byte) ([20]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegation.DelegateOf(account)
}

// DelegatesTo returns the reverse delegation set of account.
func (r *Runtime) DelegatesTo(account [20]byte) ([][20]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegation.DelegatesTo(account)
}

// ResolveSink returns the terminal account of start's delegation chain.
func (r *Runtime) ResolveSink(start [20]byte) ([20]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegation.ResolveSink(start)
}

// TallyDelegation resolves the sink of every account in order.
func (r *Runtime) TallyDelegation(accounts [][20]byte) ([]delegation.SinkPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegation.TallyDelegation(accounts)
}

// VoteRecord returns a copy of the stored vote record.
func (r *Runtime) VoteRecord(id uint64) (*voting.VoteRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voting.VoteRecord(id)
}

// VoteRecordCount returns the number of votes created so far.
func (r *Runtime) VoteRecordCount() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voting.VoteRecordCount()
}
