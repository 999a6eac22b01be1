package jobs

import (
	"context"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/rs/zerolog"
)

// RiverNotifier implements events.Notifier by inserting River jobs.
// Enqueue is best-effort: failures are logged and never surfaced to the
// triggering request.
type RiverNotifier struct {
	client *river.Client[pgx.Tx]
	policy *RetryPolicy
	logger zerolog.Logger
}

var _ events.Notifier = (*RiverNotifier)(nil)

func NewRiverNotifier(client *river.Client[pgx.Tx], policy *RetryPolicy, logger zerolog.Logger) *RiverNotifier {
	return &RiverNotifier{
		client: client,
		policy: policy,
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *RiverNotifier) InvitationCreated(ctx context.Context, invitationID uuid.UUID) {
	opts := n.policy.InsertOpts(JobKindInviteEmail)
	if _, err := n.client.Insert(ctx, InviteEmailArgs{InvitationID: invitationID}, &opts); err != nil {
		n.logger.Warn().Err(err).Str("invitation_id", invitationID.String()).Msg("enqueue invite email failed")
		metrics.JobsEnqueued.WithLabelValues(JobKindInviteEmail, "error").Inc()
		return
	}
	metrics.JobsEnqueued.WithLabelValues(JobKindInviteEmail, "ok").Inc()
}

func (n *RiverNotifier) RSVPCreated(ctx context.Context, eventID uuid.UUID, message string) {
	opts := n.policy.InsertOpts(JobKindRSVPEmail)
	if _, err := n.client.Insert(ctx, RSVPEmailArgs{EventID: eventID, Message: message}, &opts); err != nil {
		n.logger.Warn().Err(err).Str("event_id", eventID.String()).Msg("enqueue rsvp email failed")
		metrics.JobsEnqueued.WithLabelValues(JobKindRSVPEmail, "error").Inc()
		return
	}
	metrics.JobsEnqueued.WithLabelValues(JobKindRSVPEmail, "ok").Inc()
}
