package delegation

// isInvalidDelegation walks the existing graph from the prospective delegate
// and reports whether installing from -> to would close a cycle or exceed the
// configured depth. The walk is iterative; length counts the tentative edge
// as hop 1.
func (e *Engine) isInvalidDelegation(from, to [20]byte) (bool, error) {
	depth, err := e.state.DelegationDepth()
	if err != nil {
		return false, err
	}
	limit := uint64(depth)
	current := to
	for length := uint64(1); ; length++ {
		if length > limit {
			return true, nil
		}
		if current == from {
			return true, nil
		}
		next, ok, err := e.state.DelegateOf(current)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		current = next
	}
}
