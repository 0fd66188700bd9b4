package state

import (
	"encoding/binary"
	"errors"
)

var errManagerUnavailable = errors.New("state: manager unavailable")

var (
	delegationDepthKeyBytes = []byte("delegation/depth")
	delegateOfPrefix        = []byte("delegation/of/")
	delegatesToPrefix       = []byte("delegation/to/")
	voteRecordPrefix        = []byte("voting/record/")
	voteRecordCountKeyBytes = []byte("voting/count")
)

// DelegationDepthKey returns the key holding the configured maximum chain length.
func DelegationDepthKey() []byte { return append([]byte(nil), delegationDepthKeyBytes...) }

// DelegateOfKey returns the key of an account's forward delegation edge.
func DelegateOfKey(account [20]byte) []byte {
	return append(append([]byte(nil), delegateOfPrefix...), account[:]...)
}

// DelegatesToKey returns the key of the reverse delegation set of an account.
func DelegatesToKey(account [20]byte) []byte {
	return append(append([]byte(nil), delegatesToPrefix...), account[:]...)
}

// VoteRecordKey returns the key of a vote record. The id is big-endian encoded.
func VoteRecordKey(id uint64) []byte {
	buf := make([]byte, len(voteRecordPrefix)+8)
	copy(buf, voteRecordPrefix)
	binary.BigEndian.PutUint64(buf[len(voteRecordPrefix):], id)
	return buf
}

// VoteRecordCountKey returns the key of the vote record counter.
func VoteRecordCountKey() []byte { return append([]byte(nil), voteRecordCountKeyBytes...) }
