package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGovernanceObserveAction(t *testing.T) {
	m := Governance()
	require.Same(t, m, Governance())

	before := testutil.ToFloat64(m.actions.WithLabelValues("delegate", OutcomeSuccess))
	m.ObserveAction("delegate", OutcomeSuccess, 3*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(m.actions.WithLabelValues("delegate", OutcomeSuccess)))

	unknown := testutil.ToFloat64(m.actions.WithLabelValues("unknown", OutcomeError))
	m.ObserveAction(" ", "", time.Millisecond)
	require.Equal(t, unknown+1, testutil.ToFloat64(m.actions.WithLabelValues("unknown", OutcomeError)))
}

func TestGovernanceRejectionsAndVotes(t *testing.T) {
	m := Governance()
	before := testutil.ToFloat64(m.rejects.WithLabelValues("commit", "duplicate_commit"))
	m.RecordRejection("commit", "duplicate_commit")
	require.Equal(t, before+1, testutil.ToFloat64(m.rejects.WithLabelValues("commit", "duplicate_commit")))

	m.SetVoteRecords(7)
	require.Equal(t, float64(7), testutil.ToFloat64(m.voteCount))
}

func TestNilGovernanceMetricsIsSafe(t *testing.T) {
	var m *GovernanceMetrics
	m.ObserveAction("delegate", OutcomeSuccess, time.Second)
	m.RecordRejection("delegate", "x")
	m.SetVoteRecords(1)
}

func TestEventsRecordEvent(t *testing.T) {
	m := Events()
	before := testutil.ToFloat64(m.emitted.WithLabelValues("voting.created"))
	m.RecordEvent(" Voting.Created ")
	require.Equal(t, before+1, testutil.ToFloat64(m.emitted.WithLabelValues("voting.created")))
}
