package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/contact/model"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)

	// List returns tickets newest first, optionally filtered by status.
	List(ctx context.Context, status string, page, limit int) ([]*model.Ticket, int, error)

	// UpdateStatus advances the lifecycle. repliedAt/resolvedAt are only
	// passed on the first transition into the matching status; nil leaves
	// the stored timestamp untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNote *string, repliedAt, resolvedAt *time.Time) error

	// CountOpen counts tickets not yet resolved (admin dashboard).
	CountOpen(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Ticket, error)

	// DeleteOlderThan purges resolved tickets past the retention window.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
