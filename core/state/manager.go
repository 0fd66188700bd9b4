package state

import (
	"errors"
	"fmt"
	"sort"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"liquidgov/storage"
)

// Manager provides typed reads and writes of governance state on top of a
// key-value store. Writes are journaled in memory and only reach the store on
// Commit, so a rejected state transition can be dropped with Discard.
//
// Manager is not safe for concurrent use.
type Manager struct {
	db      storage.Database
	pending map[string]pendingValue
}

type pendingValue struct {
	value   []byte
	deleted bool
}

// NewManager creates a state manager operating on the provided store.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db, pending: make(map[string]pendingValue)}
}

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

func (m *Manager) read(hashed []byte) ([]byte, bool, error) {
	if entry, ok := m.pending[string(hashed)]; ok {
		if entry.deleted {
			return nil, false, nil
		}
		return entry.value, true, nil
	}
	data, err := m.db.Get(hashed)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// KVPut stores the provided value under the supplied key using RLP encoding.
// The key is automatically hashed with keccak256.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if m == nil || m.db == nil {
		return errManagerUnavailable
	}
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	m.pending[string(kvKey(key))] = pendingValue{value: encoded}
	return nil
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if m == nil || m.db == nil {
		return false, errManagerUnavailable
	}
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, ok, err := m.read(kvKey(key))
	if err != nil || !ok {
		return false, err
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVDelete removes the supplied key. Removing an absent key is a no-op.
func (m *Manager) KVDelete(key []byte) error {
	if m == nil || m.db == nil {
		return errManagerUnavailable
	}
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	m.pending[string(kvKey(key))] = pendingValue{deleted: true}
	return nil
}

// Dirty reports the number of keys written since the last Commit or Discard.
func (m *Manager) Dirty() int {
	if m == nil {
		return 0
	}
	return len(m.pending)
}

// Commit flushes the journal to the backing store in a single batch. Keys are
// written in lexical order so every replica issues identical batches.
func (m *Manager) Commit() error {
	if m == nil || m.db == nil {
		return errManagerUnavailable
	}
	if len(m.pending) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m.pending))
	for k := range m.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	batch := m.db.NewBatch()
	for _, k := range keys {
		entry := m.pending[k]
		if entry.deleted {
			batch.Delete([]byte(k))
			continue
		}
		batch.Put([]byte(k), entry.value)
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("state: commit: %w", err)
	}
	m.pending = make(map[string]pendingValue)
	return nil
}

// Discard drops every journaled write.
func (m *Manager) Discard() {
	if m == nil {
		return
	}
	m.pending = make(map[string]pendingValue)
}
