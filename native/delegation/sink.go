package delegation

// SinkPair maps an account to the terminal account of its delegation chain.
type SinkPair struct {
	Account [20]byte
	Sink    [20]byte
}

// ResolveSink follows forward edges from start until it reaches an account
// that does not delegate. Edges are validated when written, but the walk still
// tracks visited accounts and fails with ErrDelegationCycleDetected instead of
// looping if the stored graph contains a cycle.
func (e *Engine) ResolveSink(start [20]byte) ([20]byte, error) {
	if err := e.ready(); err != nil {
		return [20]byte{}, err
	}
	visited := map[[20]byte]struct{}{start: {}}
	current := start
	for {
		next, ok, err := e.state.DelegateOf(current)
		if err != nil {
			return [20]byte{}, err
		}
		if !ok {
			return current, nil
		}
		if _, seen := visited[next]; seen {
			return [20]byte{}, ErrDelegationCycleDetected
		}
		visited[next] = struct{}{}
		current = next
	}
}

// TallyDelegation resolves the sink of every account, preserving input order.
func (e *Engine) TallyDelegation(accounts [][20]byte) ([]SinkPair, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	pairs := make([]SinkPair, 0, len(accounts))
	for _, account := range accounts {
		sink, err := e.ResolveSink(account)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, SinkPair{Account: account, Sink: sink})
	}
	return pairs, nil
}
