package jobs

import (
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyUsesConfiguredAttempts(t *testing.T) {
	policy := NewRetryPolicy(5, 2)

	require.Equal(t, 5, policy.InsertOpts(JobKindInviteEmail).MaxAttempts)
	require.Equal(t, 2, policy.InsertOpts(JobKindRSVPEmail).MaxAttempts)
}

func TestRetryPolicyFallsBackOnBadValues(t *testing.T) {
	policy := NewRetryPolicy(0, -1)

	require.Equal(t, InviteEmailMaxAttempts, policy.InsertOpts(JobKindInviteEmail).MaxAttempts)
	require.Equal(t, RSVPEmailMaxAttempts, policy.InsertOpts(JobKindRSVPEmail).MaxAttempts)
	require.Equal(t, RSVPEmailMaxAttempts, policy.InsertOpts("unknown_kind").MaxAttempts)
}

func TestRetryPolicyBackoffDoubles(t *testing.T) {
	policy := NewRetryPolicy(5, 5)
	attemptedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	first := policy.NextRetry(&rivertype.JobRow{Kind: JobKindInviteEmail, Attempt: 1, AttemptedAt: &attemptedAt})
	second := policy.NextRetry(&rivertype.JobRow{Kind: JobKindInviteEmail, Attempt: 2, AttemptedAt: &attemptedAt})

	require.Equal(t, attemptedAt.Add(30*time.Second), first)
	require.Equal(t, attemptedAt.Add(time.Minute), second)
}

func TestNewClientConfigCarriesPolicy(t *testing.T) {
	policy := NewRetryPolicy(7, 4)
	config := NewClientConfig(river.NewWorkers(), nil, policy)

	require.Same(t, policy, config.RetryPolicy)
	require.Equal(t, policy.Default.MaxAttempts, config.MaxAttempts)
}
