package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRSVP inserts an RSVP row. The UNIQUE(event_id, user_id) constraint
// is the atomic guard against duplicate RSVPs under concurrent requests;
// a violation maps to events.ErrDuplicateRSVP.
func (r *EventRepository) CreateRSVP(ctx context.Context, params events.RSVPCreateParams) (*events.RSVP, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO rsvps (event_id, user_id, status)
VALUES ($1, $2, $3)
RETURNING id
`,
		params.EventID, params.UserID, string(params.Status))

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err, "rsvps_event_user_key") {
			return nil, events.ErrDuplicateRSVP
		}
		return nil, fmt.Errorf("create rsvp: %w", err)
	}
	return r.GetRSVP(ctx, params.EventID, params.UserID)
}

func (r *EventRepository) GetRSVP(ctx context.Context, eventID, userID uuid.UUID) (*events.RSVP, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT r.id, r.event_id, r.user_id, u.username, r.status
  FROM rsvps r
  JOIN users u ON u.id = r.user_id
 WHERE r.event_id = $1 AND r.user_id = $2
`, eventID, userID)

	rsvp, err := scanRSVP(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrRSVPNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *EventRepository) UpdateRSVPStatus(ctx context.Context, eventID, userID uuid.UUID, status events.Status) (*events.RSVP, error) {
	tag, err := r.queryer().Exec(ctx, `
UPDATE rsvps SET status = $3 WHERE event_id = $1 AND user_id = $2
`, eventID, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("update rsvp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, events.ErrRSVPNotFound
	}
	return r.GetRSVP(ctx, eventID, userID)
}

// ListRSVPEmails returns the email addresses of every user with an RSVP for
// the event, empty addresses included; callers filter blanks.
func (r *EventRepository) ListRSVPEmails(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT u.email
  FROM rsvps r
  JOIN users u ON u.id = r.user_id
 WHERE r.event_id = $1
 ORDER BY u.username ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan rsvp email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rsvp emails: %w", err)
	}
	return emails, nil
}

func scanRSVP(row eventScanner) (*events.RSVP, error) {
	var rsvp events.RSVP
	var status string
	if err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Username, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan rsvp: %w", err)
	}
	rsvp.Status = events.Status(status)
	return &rsvp, nil
}
