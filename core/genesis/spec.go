package genesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDelegationDepth is installed when no genesis file is configured.
const DefaultDelegationDepth uint32 = 5

// Spec describes the initial governance state.
type Spec struct {
	DelegationDepth uint32           `json:"delegationDepth" yaml:"delegationDepth"`
	Delegations     []DelegationSpec `json:"delegations,omitempty" yaml:"delegations,omitempty"`
}

// DelegationSpec is one initial forward edge, both ends bech32 encoded.
type DelegationSpec struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Default returns a spec with the given depth and no delegations. A zero
// depth selects DefaultDelegationDepth.
func Default(depth uint32) *Spec {
	if depth == 0 {
		depth = DefaultDelegationDepth
	}
	return &Spec{DelegationDepth: depth}
}

// Load reads a genesis spec from path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. Unknown fields are rejected.
func Load(path string) (*Spec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("genesis spec path must be provided")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis spec %q: %w", path, err)
	}

	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return nil, fmt.Errorf("decode genesis spec %q: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return nil, fmt.Errorf("decode genesis spec %q: %w", path, err)
		}
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis spec %q: %w", path, err)
	}
	return &spec, nil
}

// Validate checks field formats. Graph rules (self delegation, cycles, depth)
// are enforced when the delegations are applied.
func (s *Spec) Validate() error {
	if s == nil {
		return errors.New("genesis spec must not be nil")
	}
	if s.DelegationDepth == 0 {
		return errors.New("delegationDepth must be greater than zero")
	}
	seen := make(map[[20]byte]struct{}, len(s.Delegations))
	for i, d := range s.Delegations {
		from, err := ParseBech32Account(d.From)
		if err != nil {
			return fmt.Errorf("delegation[%d].from: %w", i, err)
		}
		if _, err := ParseBech32Account(d.To); err != nil {
			return fmt.Errorf("delegation[%d].to: %w", i, err)
		}
		if _, dup := seen[from]; dup {
			return fmt.Errorf("delegation[%d]: duplicate delegator %s", i, d.From)
		}
		seen[from] = struct{}{}
	}
	return nil
}
