package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"citylocal-backend/internal/domains/review/model"
	"citylocal-backend/internal/infrastructure/database"
)

const reviewColumns = `
	r.id, r.business_id, r.user_id, r.rating, r.title, r.comment, r.images,
	r.helpful_count, r.response_text, r.response_at,
	r.is_approved, r.is_reported, r.report_reason,
	r.created_at, r.updated_at`

type postgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func scanReview(row pgx.Row, withNames bool) (*model.Review, error) {
	r := &model.Review{}
	var images []string

	dest := []interface{}{
		&r.ID, &r.BusinessID, &r.UserID, &r.Rating, &r.Title, &r.Comment, pq.Array(&images),
		&r.HelpfulCount, &r.ResponseText, &r.ResponseAt,
		&r.IsApproved, &r.IsReported, &r.ReportReason,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &r.UserName, &r.BusinessName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	r.Images = images

	return r, nil
}

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, business_id, user_id, rating, title, comment, images,
			helpful_count, response_text, response_at,
			is_approved, is_reported, report_reason,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID, review.BusinessID, review.UserID, review.Rating, review.Title, review.Comment, pq.Array(review.Images),
		review.HelpfulCount, review.ResponseText, review.ResponseAt,
		review.IsApproved, review.IsReported, review.ReportReason,
		review.CreatedAt, review.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r WHERE r.id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// Update writes the author-editable content fields. Moderation flags are
// handled by SetModeration so an edit and a moderation decision cannot
// clobber each other's columns.
func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, title = $3, comment = $4, images = $5,
		    is_approved = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID, review.Rating, review.Title, review.Comment, pq.Array(review.Images),
		review.IsApproved,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE business_id = $1`, businessID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *postgresReviewRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*model.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `, u.name, b.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN businesses b ON b.id = r.business_id
		WHERE r.business_id = $1 AND r.is_approved = true
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	reviews, err := r.queryReviews(ctx, query, businessID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE business_id = $1 AND is_approved = true`,
		businessID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `, u.name, b.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN businesses b ON b.id = r.business_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	reviews, err := r.queryReviews(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) AdminList(ctx context.Context, filter string, page, limit int) ([]*model.Review, int, error) {
	where := ""
	switch filter {
	case model.FilterPending:
		where = "WHERE r.is_approved = false"
	case model.FilterApproved:
		where = "WHERE r.is_approved = true"
	case model.FilterReported:
		where = "WHERE r.is_reported = true"
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name, b.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN businesses b ON b.id = r.business_id
		%s
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`, reviewColumns, where)

	reviews, err := r.queryReviews(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	countWhere := ""
	switch filter {
	case model.FilterPending:
		countWhere = "WHERE is_approved = false"
	case model.FilterApproved:
		countWhere = "WHERE is_approved = true"
	case model.FilterReported:
		countWhere = "WHERE is_reported = true"
	}

	var total int
	err = r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM reviews %s`, countWhere)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ApprovedRatings(ctx context.Context, businessID uuid.UUID) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rating FROM reviews WHERE business_id = $1 AND is_approved = true`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

func (r *postgresReviewRepository) SetModeration(ctx context.Context, id uuid.UUID, approved bool) error {
	query := `
		UPDATE reviews
		SET is_approved = $2, is_reported = false, report_reason = NULL, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, approved)
	if err != nil {
		return fmt.Errorf("failed to update moderation state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) SetResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) error {
	query := `UPDATE reviews SET response_text = $2, response_at = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, text, at)
	if err != nil {
		return fmt.Errorf("failed to set response: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) SetReported(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE reviews SET is_reported = true, report_reason = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		return fmt.Errorf("failed to report review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// ToggleHelpful inserts the caller's vote, or removes it when it already
// exists, and keeps the denormalized count in step.
func (r *postgresReviewRepository) ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (bool, int, error) {
	insert := `
		INSERT INTO review_votes (review_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (review_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, insert, reviewID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to record vote: %w", err)
	}

	marked := result.RowsAffected() > 0
	if !marked {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM review_votes WHERE review_id = $1 AND user_id = $2`,
			reviewID, userID,
		); err != nil {
			return false, 0, fmt.Errorf("failed to remove vote: %w", err)
		}
	}

	var count int
	err = r.db.QueryRow(ctx, `
		UPDATE reviews
		SET helpful_count = (SELECT COUNT(*) FROM review_votes WHERE review_id = $1)
		WHERE id = $1
		RETURNING helpful_count
	`, reviewID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, model.ErrReviewNotFound
		}
		return false, 0, fmt.Errorf("failed to update helpful count: %w", err)
	}

	return marked, count, nil
}

func (r *postgresReviewRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE is_approved = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending reviews: %w", err)
	}
	return count, nil
}

func (r *postgresReviewRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

func (r *postgresReviewRepository) ListRecent(ctx context.Context, limit int) ([]*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `, u.name, b.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN businesses b ON b.id = r.business_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`

	return r.queryReviews(ctx, query, limit)
}

func (r *postgresReviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*model.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
