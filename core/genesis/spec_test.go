package genesis

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"liquidgov/core/state"
	"liquidgov/crypto"
	"liquidgov/native/delegation"
	"liquidgov/storage"
)

func account(b byte) [20]byte {
	var out [20]byte
	copy(out[:], bytes.Repeat([]byte{b}, 20))
	return out
}

func addr(b byte) string { return crypto.FormatAccount(account(b)) }

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

type engineTarget struct {
	state  *state.Manager
	engine *delegation.Engine
}

func (e engineTarget) SetDelegationDepth(depth uint32) error { return e.state.SetDelegationDepth(depth) }
func (e engineTarget) Delegate(from, to [20]byte) error     { return e.engine.Delegate(from, to) }

func newTarget() engineTarget {
	manager := state.NewManager(storage.NewMemDB())
	engine := delegation.NewEngine()
	engine.SetState(manager)
	return engineTarget{state: manager, engine: engine}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "genesis.json", `{
  "delegationDepth": 3,
  "delegations": [
    {"from": "`+addr(1)+`", "to": "`+addr(2)+`"}
  ]
}`)
	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(3), spec.DelegationDepth)
	require.Equal(t, []DelegationSpec{{From: addr(1), To: addr(2)}}, spec.Delegations)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "genesis.yaml", "delegationDepth: 4\ndelegations:\n  - from: "+addr(3)+"\n    to: "+addr(4)+"\n")
	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(4), spec.DelegationDepth)
	require.Len(t, spec.Delegations, 1)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeFile(t, "genesis.json", `{"delegationDepth": 2, "quorum": 1}`))
	require.Error(t, err)

	_, err = Load(writeFile(t, "genesis.yml", "delegationDepth: 2\nquorum: 1\n"))
	require.Error(t, err)
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load(" ")
	require.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.Error(t, (&Spec{}).Validate())
	require.NoError(t, Default(0).Validate())
	require.Equal(t, DefaultDelegationDepth, Default(0).DelegationDepth)
	require.Equal(t, uint32(9), Default(9).DelegationDepth)

	bad := &Spec{DelegationDepth: 2, Delegations: []DelegationSpec{{From: "nope", To: addr(2)}}}
	require.Error(t, bad.Validate())

	foreign := crypto.NewAddress("cosmos", account(1)).String()
	require.Error(t, (&Spec{DelegationDepth: 2, Delegations: []DelegationSpec{{From: foreign, To: addr(2)}}}).Validate())

	dup := &Spec{DelegationDepth: 2, Delegations: []DelegationSpec{
		{From: addr(1), To: addr(2)},
		{From: addr(1), To: addr(3)},
	}}
	require.Error(t, dup.Validate())
}

func TestApplyInstallsDelegations(t *testing.T) {
	target := newTarget()
	spec := &Spec{DelegationDepth: 3, Delegations: []DelegationSpec{
		{From: addr(1), To: addr(2)},
		{From: addr(2), To: addr(3)},
	}}
	require.NoError(t, Apply(spec, target))

	depth, err := target.state.DelegationDepth()
	require.NoError(t, err)
	require.Equal(t, uint32(3), depth)

	sink, err := target.engine.ResolveSink(account(1))
	require.NoError(t, err)
	require.Equal(t, account(3), sink)
}

func TestApplyValidatesGraph(t *testing.T) {
	target := newTarget()
	spec := &Spec{DelegationDepth: 3, Delegations: []DelegationSpec{
		{From: addr(1), To: addr(2)},
		{From: addr(2), To: addr(1)},
	}}
	err := Apply(spec, target)
	require.ErrorIs(t, err, delegation.ErrInvalidDelegation)

	self := &Spec{DelegationDepth: 3, Delegations: []DelegationSpec{{From: addr(5), To: addr(5)}}}
	require.ErrorIs(t, Apply(self, newTarget()), delegation.ErrInvalidDelegation)
}

func TestApplyNilTarget(t *testing.T) {
	require.Error(t, Apply(Default(0), nil))
}
