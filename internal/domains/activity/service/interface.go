package service

import (
	"context"

	"citylocal-backend/internal/domains/activity/model"
)

// Recorder is the write side of the audit trail. Record is fire-and-forget:
// it returns nothing, never panics into the caller, and a failed insert is
// logged and swallowed so the triggering operation cannot be affected.
type Recorder interface {
	Record(activityType model.ActivityType, description string, refs model.Refs, metadata map[string]interface{})
}

// ServiceInterface is the full activity service surface.
type ServiceInterface interface {
	Recorder

	// List returns the paginated admin feed, newest first.
	List(ctx context.Context, page, limit int) ([]*model.Activity, int, error)
}
