package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *EventRepository) HasInvitation(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM invitations WHERE event_id = $1 AND invitee_id = $2
)`, eventID, userID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check invitation: %w", err)
	}
	return exists, nil
}

// CreateInvitation inserts an invitation row. The UNIQUE(event_id, invitee_id)
// constraint resolves concurrent duplicate attempts at the database; a
// violation maps to events.ErrDuplicateInvitation with no row written.
func (r *EventRepository) CreateInvitation(ctx context.Context, params events.InvitationCreateParams) (*events.Invitation, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO invitations (event_id, invitee_id, invited_by_id, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id, event_id, invitee_id, invited_by_id, accepted, created_at, expires_at
`,
		params.EventID, params.InviteeID, params.InvitedByID, params.ExpiresAt)

	var invitation events.Invitation
	if err := row.Scan(
		&invitation.ID,
		&invitation.EventID,
		&invitation.InviteeID,
		&invitation.InvitedByID,
		&invitation.Accepted,
		&invitation.CreatedAt,
		&invitation.ExpiresAt,
	); err != nil {
		if isUniqueViolation(err, "invitations_event_invitee_key") {
			return nil, events.ErrDuplicateInvitation
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return &invitation, nil
}

func (r *EventRepository) GetInvitationDetail(ctx context.Context, id uuid.UUID) (*events.InvitationDetail, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT i.id, i.event_id, i.invitee_id, i.invited_by_id, i.accepted, i.created_at, i.expires_at,
       e.title, e.start_time,
       invitee.email, invitee.username,
       COALESCE(inviter.username, '')
  FROM invitations i
  JOIN events e ON e.id = i.event_id
  JOIN users invitee ON invitee.id = i.invitee_id
  LEFT JOIN users inviter ON inviter.id = i.invited_by_id
 WHERE i.id = $1
`, id)

	var detail events.InvitationDetail
	if err := row.Scan(
		&detail.ID,
		&detail.EventID,
		&detail.InviteeID,
		&detail.InvitedByID,
		&detail.Accepted,
		&detail.CreatedAt,
		&detail.ExpiresAt,
		&detail.EventTitle,
		&detail.EventStartTime,
		&detail.InviteeEmail,
		&detail.InviteeName,
		&detail.InviterName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &detail, nil
}
