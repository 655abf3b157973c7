package repository

import (
	"context"

	"citylocal-backend/internal/domains/activity/model"
)

type ActivityRepository interface {
	// Insert appends one entry to the audit trail.
	Insert(ctx context.Context, activity *model.Activity) error

	// List returns entries newest first, with referenced entity names
	// resolved; a missing reference resolves to null, never to an error.
	List(ctx context.Context, page, limit int) ([]*model.Activity, int, error)
}
