package genesis

import "fmt"

// Target receives the genesis state. The delegation engine validates every
// edge exactly as it would at runtime.
type Target interface {
	SetDelegationDepth(depth uint32) error
	Delegate(delegator, to [20]byte) error
}

// Apply writes the depth and then installs the delegations in file order.
// Callers are responsible for committing or discarding the writes.
func Apply(spec *Spec, target Target) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("genesis target must not be nil")
	}
	if err := target.SetDelegationDepth(spec.DelegationDepth); err != nil {
		return fmt.Errorf("set delegation depth: %w", err)
	}
	for i, d := range spec.Delegations {
		from, err := ParseBech32Account(d.From)
		if err != nil {
			return fmt.Errorf("delegation[%d].from: %w", i, err)
		}
		to, err := ParseBech32Account(d.To)
		if err != nil {
			return fmt.Errorf("delegation[%d].to: %w", i, err)
		}
		if err := target.Delegate(from, to); err != nil {
			return fmt.Errorf("delegation[%d] %s -> %s: %w", i, d.From, d.To, err)
		}
	}
	return nil
}
