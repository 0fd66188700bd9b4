package state

import (
	"fmt"
	"math"

	"liquidgov/native/voting"
)

// DelegationDepth returns the configured maximum delegation chain length. An
// unset depth reads as zero, which rejects every delegation.
func (m *Manager) DelegationDepth() (uint32, error) {
	var stored uint64
	ok, err := m.KVGet(DelegationDepthKey(), &stored)
	if err != nil {
		return 0, fmt.Errorf("state: load delegation depth: %w", err)
	}
	if !ok {
		return 0, nil
	}
	if stored > uint64(math.MaxUint32) {
		return 0, fmt.Errorf("state: delegation depth overflow: %d", stored)
	}
	return uint32(stored), nil
}

// SetDelegationDepth records the maximum delegation chain length.
func (m *Manager) SetDelegationDepth(depth uint32) error {
	return m.KVPut(DelegationDepthKey(), uint64(depth))
}

// DelegateOf returns the account's current delegate, if it is delegating.
func (m *Manager) DelegateOf(account [20]byte) ([20]byte, bool, error) {
	var target [20]byte
	ok, err := m.KVGet(DelegateOfKey(account), &target)
	if err != nil {
		return [20]byte{}, false, fmt.Errorf("state: load delegate: %w", err)
	}
	return target, ok, nil
}

// SetDelegateOf installs or replaces the account's forward delegation edge.
func (m *Manager) SetDelegateOf(account, target [20]byte) error {
	return m.KVPut(DelegateOfKey(account), target)
}

// RemoveDelegateOf clears the account's forward delegation edge.
func (m *Manager) RemoveDelegateOf(account [20]byte) error {
	return m.KVDelete(DelegateOfKey(account))
}

// DelegatesTo returns the accounts recorded as delegating to account. The
// boolean is false when no reverse set exists.
func (m *Manager) DelegatesTo(account [20]byte) ([][20]byte, bool, error) {
	var delegators [][20]byte
	ok, err := m.KVGet(DelegatesToKey(account), &delegators)
	if err != nil {
		return nil, false, fmt.Errorf("state: load delegators: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return delegators, true, nil
}

// SetDelegatesTo rewrites the reverse delegation set of account. An empty set
// removes the entry so no empty sets are ever stored.
func (m *Manager) SetDelegatesTo(account [20]byte, delegators [][20]byte) error {
	if len(delegators) == 0 {
		return m.RemoveDelegatesTo(account)
	}
	return m.KVPut(DelegatesToKey(account), delegators)
}

// RemoveDelegatesTo deletes the reverse delegation set of account.
func (m *Manager) RemoveDelegatesTo(account [20]byte) error {
	return m.KVDelete(DelegatesToKey(account))
}

// VoteRecordCount returns the number of vote records ever created.
func (m *Manager) VoteRecordCount() (uint64, error) {
	var count uint64
	if _, err := m.KVGet(VoteRecordCountKey(), &count); err != nil {
		return 0, fmt.Errorf("state: load vote record count: %w", err)
	}
	return count, nil
}

// SetVoteRecordCount stores the vote record counter.
func (m *Manager) SetVoteRecordCount(count uint64) error {
	return m.KVPut(VoteRecordCountKey(), count)
}

// VoteRecord loads the vote record with the supplied id.
func (m *Manager) VoteRecord(id uint64) (*voting.VoteRecord, bool, error) {
	record := new(voting.VoteRecord)
	ok, err := m.KVGet(VoteRecordKey(id), record)
	if err != nil {
		return nil, false, fmt.Errorf("state: load vote record %d: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}
	return record, true, nil
}

// PutVoteRecord persists the vote record under its id.
func (m *Manager) PutVoteRecord(record *voting.VoteRecord) error {
	if record == nil {
		return fmt.Errorf("state: vote record must not be nil")
	}
	return m.KVPut(VoteRecordKey(record.ID), record)
}
