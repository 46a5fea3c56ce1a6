package repo

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Reviews provides access to the reviews table.
type Reviews struct {
	pool *pgxpool.Pool
}

// NewReviews creates the repository.
func NewReviews(pool *pgxpool.Pool) *Reviews {
	return &Reviews{pool: pool}
}

// CreateReviewInput carries a new review.
type CreateReviewInput struct {
	SchoolName string
	UserID     int64
	Username   string
	Rating     int
	Comment    string
}

// CreateReview inserts a review and returns the stored row.
func (r *Reviews) CreateReview(ctx context.Context, input CreateReviewInput) (Review, error) {
	const query = `
        INSERT INTO reviews (school_name, user_id, username, rating, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, school_name, user_id, username, rating, comment, created_at
    `

	var review Review
	err := r.pool.QueryRow(ctx, query,
		strings.TrimSpace(input.SchoolName),
		input.UserID,
		input.Username,
		input.Rating,
		strings.TrimSpace(input.Comment),
	).Scan(&review.ID, &review.SchoolName, &review.UserID, &review.Username, &review.Rating, &review.Comment, &review.CreatedAt)
	return review, err
}

// ListReviews returns a school's reviews, newest first.
func (r *Reviews) ListReviews(ctx context.Context, schoolName string) ([]Review, error) {
	const query = `
        SELECT id, school_name, user_id, username, rating, comment, created_at
        FROM reviews
        WHERE school_name = $1
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, strings.TrimSpace(schoolName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var review Review
		if err := rows.Scan(&review.ID, &review.SchoolName, &review.UserID, &review.Username, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
