package postgres

import (
	"context"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
)

func (r *EventRepository) ListReviews(ctx context.Context, eventID uuid.UUID, page events.Pagination) (events.ReviewList, error) {
	q := r.queryer()

	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return events.ReviewList{}, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := q.Query(ctx, `
SELECT r.id, r.event_id, r.user_id, u.username, r.rating, r.comment, r.created_at
  FROM reviews r
  JOIN users u ON u.id = r.user_id
 WHERE r.event_id = $1
 ORDER BY r.created_at ASC, r.id ASC
 LIMIT $2 OFFSET $3
`, eventID, limit, page.Offset)
	if err != nil {
		return events.ReviewList{}, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]events.Review, 0, limit)
	for rows.Next() {
		var review events.Review
		if err := rows.Scan(
			&review.ID,
			&review.EventID,
			&review.UserID,
			&review.Username,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return events.ReviewList{}, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return events.ReviewList{}, fmt.Errorf("iterate reviews: %w", err)
	}

	return events.ReviewList{Reviews: reviews, Total: total}, nil
}

func (r *EventRepository) CreateReview(ctx context.Context, params events.ReviewCreateParams) (*events.Review, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO reviews (event_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`,
		params.EventID, params.UserID, params.Rating, params.Comment)

	review := events.Review{
		EventID: params.EventID,
		UserID:  params.UserID,
		Rating:  params.Rating,
		Comment: params.Comment,
	}
	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Backfill the reviewer's display name for the response body.
	if err := r.queryer().QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, params.UserID).Scan(&review.Username); err != nil {
		return nil, fmt.Errorf("resolve reviewer: %w", err)
	}
	return &review, nil
}
