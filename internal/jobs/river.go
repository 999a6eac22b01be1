package jobs

import (
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

const (
	JobKindInviteEmail = "invite_email"
	JobKindRSVPEmail   = "rsvp_update_email"
)

// Fallback attempt counts when the env knobs are unset or nonsensical.
const (
	InviteEmailMaxAttempts = 3
	RSVPEmailMaxAttempts   = 3
)

// RetryConfig controls per-kind retry behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryPolicy implements River's ClientRetryPolicy with per-kind exponential backoff.
type RetryPolicy struct {
	Default RetryConfig
	ByKind  map[string]RetryConfig
}

// NewRetryPolicy builds the retry policy, taking max attempts per email
// kind from configuration. Values below 1 fall back to the defaults.
func NewRetryPolicy(inviteAttempts, rsvpAttempts int) *RetryPolicy {
	if inviteAttempts < 1 {
		inviteAttempts = InviteEmailMaxAttempts
	}
	if rsvpAttempts < 1 {
		rsvpAttempts = RSVPEmailMaxAttempts
	}
	return &RetryPolicy{
		Default: RetryConfig{
			MaxAttempts: RSVPEmailMaxAttempts,
			BaseDelay:   30 * time.Second,
			MaxDelay:    10 * time.Minute,
		},
		ByKind: map[string]RetryConfig{
			JobKindInviteEmail: {
				MaxAttempts: inviteAttempts,
				BaseDelay:   30 * time.Second,
				MaxDelay:    10 * time.Minute,
			},
			JobKindRSVPEmail: {
				MaxAttempts: rsvpAttempts,
				BaseDelay:   30 * time.Second,
				MaxDelay:    10 * time.Minute,
			},
		},
	}
}

// NextRetry determines the next retry time for a failed job.
func (p *RetryPolicy) NextRetry(job *rivertype.JobRow) time.Time {
	config := p.configFor(job.Kind)
	if config.BaseDelay == 0 {
		return time.Now()
	}

	attempt := job.Attempt
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(config.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	if job.AttemptedAt != nil {
		return job.AttemptedAt.Add(delay)
	}

	return time.Now().Add(delay)
}

// InsertOpts returns insert options carrying the policy's max attempts
// for the kind.
func (p *RetryPolicy) InsertOpts(kind string) river.InsertOpts {
	return river.InsertOpts{MaxAttempts: p.configFor(kind).MaxAttempts}
}

// NewClientConfig builds a River client configuration with retry policy.
func NewClientConfig(workers *river.Workers, logger *slog.Logger, policy *RetryPolicy) *river.Config {
	if policy == nil {
		policy = NewRetryPolicy(0, 0)
	}
	config := &river.Config{
		Workers:     workers,
		RetryPolicy: policy,
		MaxAttempts: policy.Default.MaxAttempts,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
	}
	if logger != nil {
		config.Logger = logger
		config.ErrorHandler = NewAlertingErrorHandler(logger, nil)
	}
	return config
}

// NewClient creates a River client using pgx v5.
func NewClient(pool *pgxpool.Pool, workers *river.Workers, logger *slog.Logger, policy *RetryPolicy) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), NewClientConfig(workers, logger, policy))
}

func (p *RetryPolicy) configFor(kind string) RetryConfig {
	if p == nil {
		return RetryConfig{MaxAttempts: RSVPEmailMaxAttempts, BaseDelay: 30 * time.Second, MaxDelay: 10 * time.Minute}
	}
	if config, ok := p.ByKind[kind]; ok {
		return config
	}
	return p.Default
}
