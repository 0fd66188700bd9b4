package delegation

import (
	"liquidgov/core/events"
)

type delegationState interface {
	DelegationDepth() (uint32, error)
	DelegateOf(account [20]byte) ([20]byte, bool, error)
	SetDelegateOf(account, target [20]byte) error
	RemoveDelegateOf(account [20]byte) error
	DelegatesTo(account [20]byte) ([][20]byte, bool, error)
	SetDelegatesTo(account [20]byte, delegators [][20]byte) error
	RemoveDelegatesTo(account [20]byte) error
}

// Engine applies delegation graph mutations. Every operation performs all of
// its checks before the first state write, so a rejected call never leaves a
// partial update behind.
type Engine struct {
	state   delegationState
	emitter events.Emitter
}

// NewEngine constructs a delegation engine with a no-op emitter.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetState wires the engine to the state backend.
func (e *Engine) SetState(state delegationState) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil resets
// the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

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

// Delegate points delegator's vote at to. A previous edge from delegator is
// overwritten, but delegator is not removed from the previous delegate's
// reverse set.
func (e *Engine) Delegate(delegator, to [20]byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	invalid, err := e.isInvalidDelegation(delegator, to)
	if err != nil {
		return err
	}
	if invalid {
		return ErrInvalidDelegation
	}
	delegators, _, err := e.state.DelegatesTo(to)
	if err != nil {
		return err
	}
	if indexOf(delegators, delegator) < 0 {
		delegators = append(delegators, delegator)
	}

	if err := e.state.SetDelegateOf(delegator, to); err != nil {
		return err
	}
	if err := e.state.SetDelegatesTo(to, delegators); err != nil {
		return err
	}
	e.emit(Delegated{Delegator: delegator, Delegate: to})
	return nil
}

// Undelegate clears sender's forward edge and removes sender from from's
// reverse set. The forward edge is cleared even when it currently points
// somewhere other than from.
func (e *Engine) Undelegate(sender, from [20]byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if sender == from {
		return ErrInvalidUndelegation
	}
	delegators, hasSet, err := e.state.DelegatesTo(from)
	if err != nil {
		return err
	}
	idx := -1
	if hasSet {
		idx = indexOf(delegators, sender)
		if idx < 0 {
			return ErrUndelegationNotFound
		}
	}

	if err := e.state.RemoveDelegateOf(sender); err != nil {
		return err
	}
	if hasSet {
		remaining := make([][20]byte, 0, len(delegators)-1)
		remaining = append(remaining, delegators[:idx]...)
		remaining = append(remaining, delegators[idx+1:]...)
		if len(remaining) == 0 {
			err = e.state.RemoveDelegatesTo(from)
		} else {
			err = e.state.SetDelegatesTo(from, remaining)
		}
		if err != nil {
			return err
		}
	}
	e.emit(Undelegated{Delegator: sender, Delegate: from})
	return nil
}

// DelegationDepth returns the configured maximum chain length.
func (e *Engine) DelegationDepth() (uint32, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	return e.state.DelegationDepth()
}

// DelegateOf returns the account's current delegate.
func (e *Engine) DelegateOf(account [20]byte) ([20]byte, bool, error) {
	if err := e.ready(); err != nil {
		return [20]byte{}, false, err
	}
	return e.state.DelegateOf(account)
}

// DelegatesTo returns the reverse delegation set of account.
func (e *Engine) DelegatesTo(account [20]byte) ([][20]byte, bool, error) {
	if err := e.ready(); err != nil {
		return nil, false, err
	}
	return e.state.DelegatesTo(account)
}

func indexOf(list [][20]byte, account [20]byte) int {
	for i, entry := range list {
		if entry == account {
			return i
		}
	}
	return -1
}
