package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"citylocal-backend/internal/domains/activity/model"
	"citylocal-backend/internal/infrastructure/database"
)

type postgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) Insert(ctx context.Context, activity *model.Activity) error {
	var metadata []byte
	if activity.Metadata != nil {
		var err error
		metadata, err = json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		INSERT INTO activities (
			id, type, description,
			user_id, business_id, review_id, category_id,
			metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.Type,
		activity.Description,
		activity.UserID,
		activity.BusinessID,
		activity.ReviewID,
		activity.CategoryID,
		metadata,
		activity.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// List resolves referenced entities with LEFT JOINs so a deleted user,
// business or category shows up as null rather than breaking the feed.
func (r *postgresActivityRepository) List(ctx context.Context, page, limit int) ([]*model.Activity, int, error) {
	query := `
		SELECT
			a.id, a.type, a.description,
			a.user_id, a.business_id, a.review_id, a.category_id,
			a.metadata, a.created_at,
			u.name, u.email, b.name, c.name
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN businesses b ON b.id = a.business_id
		LEFT JOIN categories c ON c.id = a.category_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*model.Activity
	for rows.Next() {
		activity := &model.Activity{}
		var metadata []byte

		err := rows.Scan(
			&activity.ID,
			&activity.Type,
			&activity.Description,
			&activity.UserID,
			&activity.BusinessID,
			&activity.ReviewID,
			&activity.CategoryID,
			&metadata,
			&activity.CreatedAt,
			&activity.UserName,
			&activity.UserEmail,
			&activity.BusinessName,
			&activity.CategoryName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &activity.Metadata); err != nil {
				// Corrupt metadata must not break the feed.
				activity.Metadata = nil
			}
		}

		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read activities: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	return activities, total, nil
}
