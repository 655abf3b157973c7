package service

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/contact/model"
)

type ServiceInterface interface {
	// Submit records a contact-form submission and kicks off the
	// notification mails as fire-and-forget side effects.
	Submit(ctx context.Context, req *model.SubmitTicketRequest) (*model.Ticket, error)

	// Admin surface
	Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, status string, page, limit int) (*model.ListTicketsResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateTicketStatusRequest) (*model.Ticket, error)
}
