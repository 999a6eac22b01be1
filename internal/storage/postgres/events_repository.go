package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ events.Repository = (*EventRepository)(nil)

// visibilityClause limits rows to events the viewer ($1) may see: public
// events, events they organize, and events they hold an invitation for.
// Invitations grant visibility regardless of accepted or expires_at.
const visibilityClause = `
	(
	  e.is_public
	  OR ($1::uuid IS NOT NULL AND e.organizer_id = $1::uuid)
	  OR ($1::uuid IS NOT NULL AND EXISTS (
	        SELECT 1 FROM invitations i
	         WHERE i.event_id = e.id AND i.invitee_id = $1::uuid))
	)
	AND ($2 = '' OR e.location = $2)
	AND ($3::uuid IS NULL OR e.organizer_id = $3::uuid)
	AND ($4 = '' OR e.title ILIKE '%' || $4 || '%' OR e.description ILIKE '%' || $4 || '%')
`

// escapeLike neutralizes LIKE wildcards in user supplied search text so
// "%" and "_" match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *EventRepository) List(ctx context.Context, viewer *uuid.UUID, filters events.Filters, page events.Pagination) (events.ListResult, error) {
	q := r.queryer()

	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}
	search := escapeLike(filters.Search)

	var total int64
	countRow := q.QueryRow(ctx, `
SELECT count(*)
  FROM events e
 WHERE `+visibilityClause,
		viewer, filters.Location, filters.OrganizerID, search)
	if err := countRow.Scan(&total); err != nil {
		return events.ListResult{}, fmt.Errorf("count events: %w", err)
	}

	rows, err := q.Query(ctx, `
SELECT e.id, e.title, e.description, e.organizer_id, u.username, e.location,
       e.start_time, e.end_time, e.is_public, e.created_at, e.updated_at
  FROM events e
  JOIN users u ON u.id = e.organizer_id
 WHERE `+visibilityClause+`
 ORDER BY e.created_at ASC, e.id ASC
 LIMIT $5 OFFSET $6
`,
		viewer, filters.Location, filters.OrganizerID, search,
		limit, page.Offset)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return events.ListResult{}, err
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("iterate events: %w", err)
	}

	return events.ListResult{Events: items, Total: total}, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT e.id, e.title, e.description, e.organizer_id, u.username, e.location,
       e.start_time, e.end_time, e.is_public, e.created_at, e.updated_at
  FROM events e
  JOIN users u ON u.id = e.organizer_id
 WHERE e.id = $1
`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.EventCreateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (title, description, organizer_id, location, start_time, end_time, is_public)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`,
		params.Title, params.Description, params.OrganizerID, params.Location,
		params.StartTime, params.EndTime, params.IsPublic)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, params events.EventUpdateParams) (*events.Event, error) {
	tag, err := r.queryer().Exec(ctx, `
UPDATE events
   SET title       = COALESCE($2, title),
       description = COALESCE($3, description),
       location    = COALESCE($4, location),
       start_time  = COALESCE($5, start_time),
       end_time    = COALESCE($6, end_time),
       is_public   = COALESCE($7, is_public),
       updated_at  = now()
 WHERE id = $1
`,
		id, params.Title, params.Description, params.Location,
		params.StartTime, params.EndTime, params.IsPublic)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, events.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

type eventScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row eventScanner) (events.Event, error) {
	var event events.Event
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.OrganizerID,
		&event.OrganizerName,
		&event.Location,
		&event.StartTime,
		&event.EndTime,
		&event.IsPublic,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return events.Event{}, err
		}
		return events.Event{}, fmt.Errorf("scan event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) queryer() queryer {
	return pick(r.tx, r.pool)
}
