package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/metrics"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/rs/zerolog"
)

// Mailer sends one message to a set of recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, textBody string) error
}

// Store is the slice of the events repository the notification workers need.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
	GetInvitationDetail(ctx context.Context, id uuid.UUID) (*events.InvitationDetail, error)
	ListRSVPEmails(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

type InviteEmailArgs struct {
	InvitationID uuid.UUID `json:"invitation_id"`
}

func (InviteEmailArgs) Kind() string { return JobKindInviteEmail }

type RSVPEmailArgs struct {
	EventID uuid.UUID `json:"event_id"`
	Message string    `json:"message"`
}

func (RSVPEmailArgs) Kind() string { return JobKindRSVPEmail }

// InviteEmailWorker emails an invitee about their invitation. A missing
// invitation or an invitee without an email address is a no-op, so the job
// is safe to re-run. Mail transport failures are logged and absorbed.
type InviteEmailWorker struct {
	river.WorkerDefaults[InviteEmailArgs]
	Store  Store
	Mailer Mailer
	Logger zerolog.Logger
}

func (InviteEmailWorker) Kind() string { return JobKindInviteEmail }

func (w InviteEmailWorker) Work(ctx context.Context, job *river.Job[InviteEmailArgs]) error {
	if w.Store == nil || w.Mailer == nil {
		return fmt.Errorf("invite email worker not configured")
	}

	detail, err := w.Store.GetInvitationDetail(ctx, job.Args.InvitationID)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			w.Logger.Debug().Str("invitation_id", job.Args.InvitationID.String()).Msg("invitation gone; skipping invite email")
			return nil
		}
		return fmt.Errorf("load invitation: %w", err)
	}

	if detail.InviteeEmail == "" {
		w.Logger.Debug().Str("invitation_id", detail.ID.String()).Msg("invitee has no email; skipping invite email")
		metrics.EmailsSent.WithLabelValues(JobKindInviteEmail, "skipped").Inc()
		return nil
	}

	subject := fmt.Sprintf("You've been invited to %s", detail.EventTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nYou have been invited by %s to the event '%s'.\nEvent starts at: %s\n\nVisit the app to RSVP.\n\nThanks.",
		detail.InviteeName, detail.InviterName, detail.EventTitle, detail.EventStartTime.Format("2006-01-02 15:04 MST"))

	if err := w.Mailer.Send(ctx, []string{detail.InviteeEmail}, subject, body); err != nil {
		w.Logger.Warn().Err(err).Str("invitation_id", detail.ID.String()).Msg("invite email send failed")
		metrics.EmailsSent.WithLabelValues(JobKindInviteEmail, "failed").Inc()
		return nil
	}
	metrics.EmailsSent.WithLabelValues(JobKindInviteEmail, "sent").Inc()
	return nil
}

// RSVPEmailWorker emails every RSVP'd user of an event with a pre-composed
// message about a new RSVP. A missing event or an empty recipient list is a
// no-op. Mail transport failures are logged and absorbed.
type RSVPEmailWorker struct {
	river.WorkerDefaults[RSVPEmailArgs]
	Store  Store
	Mailer Mailer
	Logger zerolog.Logger
}

func (RSVPEmailWorker) Kind() string { return JobKindRSVPEmail }

func (w RSVPEmailWorker) Work(ctx context.Context, job *river.Job[RSVPEmailArgs]) error {
	if w.Store == nil || w.Mailer == nil {
		return fmt.Errorf("rsvp email worker not configured")
	}

	event, err := w.Store.GetByID(ctx, job.Args.EventID)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			w.Logger.Debug().Str("event_id", job.Args.EventID.String()).Msg("event gone; skipping rsvp email")
			return nil
		}
		return fmt.Errorf("load event: %w", err)
	}

	emails, err := w.Store.ListRSVPEmails(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list rsvp emails: %w", err)
	}

	recipients := make([]string, 0, len(emails))
	for _, email := range emails {
		if email != "" {
			recipients = append(recipients, email)
		}
	}
	if len(recipients) == 0 {
		w.Logger.Debug().Str("event_id", event.ID.String()).Msg("no rsvp recipients; skipping rsvp email")
		metrics.EmailsSent.WithLabelValues(JobKindRSVPEmail, "skipped").Inc()
		return nil
	}

	subject := fmt.Sprintf("Update: %s", event.Title)
	if err := w.Mailer.Send(ctx, recipients, subject, job.Args.Message); err != nil {
		w.Logger.Warn().Err(err).Str("event_id", event.ID.String()).Msg("rsvp email send failed")
		metrics.EmailsSent.WithLabelValues(JobKindRSVPEmail, "failed").Inc()
		return nil
	}
	metrics.EmailsSent.WithLabelValues(JobKindRSVPEmail, "sent").Inc()
	return nil
}

// NewWorkers registers the notification workers.
func NewWorkers(store Store, mailer Mailer, logger zerolog.Logger) *river.Workers {
	workers := river.NewWorkers()
	river.AddWorker[InviteEmailArgs](workers, InviteEmailWorker{Store: store, Mailer: mailer, Logger: logger})
	river.AddWorker[RSVPEmailArgs](workers, RSVPEmailWorker{Store: store, Mailer: mailer, Logger: logger})
	return workers
}
