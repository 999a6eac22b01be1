package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	getFn        func(id uuid.UUID) (*events.Event, error)
	invitationFn func(id uuid.UUID) (*events.InvitationDetail, error)
	emailsFn     func(eventID uuid.UUID) ([]string, error)
}

func (s stubStore) GetByID(_ context.Context, id uuid.UUID) (*events.Event, error) {
	return s.getFn(id)
}

func (s stubStore) GetInvitationDetail(_ context.Context, id uuid.UUID) (*events.InvitationDetail, error) {
	return s.invitationFn(id)
}

func (s stubStore) ListRSVPEmails(_ context.Context, eventID uuid.UUID) ([]string, error) {
	return s.emailsFn(eventID)
}

type recordingMailer struct {
	to      [][]string
	subject []string
	body    []string
	err     error
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, textBody string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.body = append(m.body, textBody)
	return m.err
}

func inviteJob(id uuid.UUID) *river.Job[InviteEmailArgs] {
	return &river.Job[InviteEmailArgs]{Args: InviteEmailArgs{InvitationID: id}}
}

func rsvpJob(eventID uuid.UUID, message string) *river.Job[RSVPEmailArgs] {
	return &river.Job[RSVPEmailArgs]{Args: RSVPEmailArgs{EventID: eventID, Message: message}}
}

func TestInviteEmailWorkerSendsEmail(t *testing.T) {
	invitationID := uuid.New()
	start := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	store := stubStore{
		invitationFn: func(id uuid.UUID) (*events.InvitationDetail, error) {
			require.Equal(t, invitationID, id)
			return &events.InvitationDetail{
				Invitation:     events.Invitation{ID: invitationID},
				EventTitle:     "Private Event",
				EventStartTime: start,
				InviteeEmail:   "alice@example.com",
				InviteeName:    "alice",
				InviterName:    "org",
			}, nil
		},
	}
	mailer := &recordingMailer{}
	worker := InviteEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), inviteJob(invitationID))

	require.NoError(t, err)
	require.Len(t, mailer.to, 1)
	require.Equal(t, []string{"alice@example.com"}, mailer.to[0])
	require.Equal(t, "You've been invited to Private Event", mailer.subject[0])
	require.Contains(t, mailer.body[0], "invited by org")
	require.Contains(t, mailer.body[0], "2026-09-12")
}

func TestInviteEmailWorkerMissingInvitationIsNoop(t *testing.T) {
	store := stubStore{
		invitationFn: func(id uuid.UUID) (*events.InvitationDetail, error) {
			return nil, events.ErrNotFound
		},
	}
	mailer := &recordingMailer{}
	worker := InviteEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), inviteJob(uuid.New()))

	require.NoError(t, err)
	require.Empty(t, mailer.to)
}

func TestInviteEmailWorkerEmptyEmailIsNoop(t *testing.T) {
	store := stubStore{
		invitationFn: func(id uuid.UUID) (*events.InvitationDetail, error) {
			return &events.InvitationDetail{
				Invitation: events.Invitation{ID: id},
				EventTitle: "Private Event",
			}, nil
		},
	}
	mailer := &recordingMailer{}
	worker := InviteEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), inviteJob(uuid.New()))

	require.NoError(t, err)
	require.Empty(t, mailer.to)
}

func TestInviteEmailWorkerAbsorbsSendFailure(t *testing.T) {
	store := stubStore{
		invitationFn: func(id uuid.UUID) (*events.InvitationDetail, error) {
			return &events.InvitationDetail{
				Invitation:   events.Invitation{ID: id},
				EventTitle:   "Private Event",
				InviteeEmail: "alice@example.com",
			}, nil
		},
	}
	mailer := &recordingMailer{err: errors.New("smtp down")}
	worker := InviteEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), inviteJob(uuid.New()))

	require.NoError(t, err)
}

func TestInviteEmailWorkerRetriesStoreErrors(t *testing.T) {
	store := stubStore{
		invitationFn: func(id uuid.UUID) (*events.InvitationDetail, error) {
			return nil, errors.New("connection reset")
		},
	}
	worker := InviteEmailWorker{Store: store, Mailer: &recordingMailer{}, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), inviteJob(uuid.New()))

	require.Error(t, err)
}

func TestRSVPEmailWorkerSendsToAllRecipients(t *testing.T) {
	eventID := uuid.New()
	store := stubStore{
		getFn: func(id uuid.UUID) (*events.Event, error) {
			return &events.Event{ID: eventID, Title: "Public Event"}, nil
		},
		emailsFn: func(id uuid.UUID) ([]string, error) {
			return []string{"org@example.com", "", "alice@example.com"}, nil
		},
	}
	mailer := &recordingMailer{}
	worker := RSVPEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), rsvpJob(eventID, "alice RSVP'd Going to Public Event"))

	require.NoError(t, err)
	require.Len(t, mailer.to, 1)
	require.Equal(t, []string{"org@example.com", "alice@example.com"}, mailer.to[0])
	require.Equal(t, "Update: Public Event", mailer.subject[0])
	require.Equal(t, "alice RSVP'd Going to Public Event", mailer.body[0])
}

func TestRSVPEmailWorkerMissingEventIsNoop(t *testing.T) {
	store := stubStore{
		getFn: func(id uuid.UUID) (*events.Event, error) {
			return nil, events.ErrNotFound
		},
	}
	mailer := &recordingMailer{}
	worker := RSVPEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), rsvpJob(uuid.New(), "msg"))

	require.NoError(t, err)
	require.Empty(t, mailer.to)
}

func TestRSVPEmailWorkerNoRecipientsIsNoop(t *testing.T) {
	store := stubStore{
		getFn: func(id uuid.UUID) (*events.Event, error) {
			return &events.Event{ID: id, Title: "Public Event"}, nil
		},
		emailsFn: func(id uuid.UUID) ([]string, error) {
			return []string{"", ""}, nil
		},
	}
	mailer := &recordingMailer{}
	worker := RSVPEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), rsvpJob(uuid.New(), "msg"))

	require.NoError(t, err)
	require.Empty(t, mailer.to)
}

func TestRSVPEmailWorkerAbsorbsSendFailure(t *testing.T) {
	store := stubStore{
		getFn: func(id uuid.UUID) (*events.Event, error) {
			return &events.Event{ID: id, Title: "Public Event"}, nil
		},
		emailsFn: func(id uuid.UUID) ([]string, error) {
			return []string{"alice@example.com"}, nil
		},
	}
	mailer := &recordingMailer{err: errors.New("smtp down")}
	worker := RSVPEmailWorker{Store: store, Mailer: mailer, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), rsvpJob(uuid.New(), "msg"))

	require.NoError(t, err)
}
