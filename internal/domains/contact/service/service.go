package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	activityservice "citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/domains/contact/model"
	"citylocal-backend/internal/domains/contact/repository"
	"citylocal-backend/internal/infrastructure/email"
	"citylocal-backend/pkg/logger"
)

const mailTimeout = 10 * time.Second

type contactService struct {
	repo       repository.TicketRepository
	mailer     email.Mailer
	activities activityservice.Recorder
}

func NewContactService(
	repo repository.TicketRepository,
	mailer email.Mailer,
	activities activityservice.Recorder,
) ServiceInterface {
	return &contactService{
		repo:       repo,
		mailer:     mailer,
		activities: activities,
	}
}

// Submit stores the ticket, then sends the admin notification and the
// submitter confirmation in the background. The ticket is created no matter
// what happens to the mails.
func (s *contactService) Submit(ctx context.Context, req *model.SubmitTicketRequest) (*model.Ticket, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &model.Ticket{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    model.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.sendMails(ticket)

	s.activities.Record(
		activitymodel.TypeContactSubmitted,
		fmt.Sprintf("Contact ticket %q submitted", ticket.Subject),
		activitymodel.Refs{},
		map[string]interface{}{"ticket_id": ticket.ID.String()},
	)

	return ticket, nil
}

// sendMails runs both notification mails in the background, detached from
// the request context. Failures are logged and swallowed.
func (s *contactService) sendMails(ticket *model.Ticket) {
	data := email.ContactTicketData{
		TicketID: ticket.ID.String(),
		Name:     ticket.Name,
		Email:    ticket.Email,
		Subject:  ticket.Subject,
		Message:  ticket.Message,
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("contact mail sender panicked", fmt.Errorf("%v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		if err := s.mailer.SendContactNotification(ctx, data); err != nil {
			logger.Warn("failed to send admin notification", err)
		}
		if err := s.mailer.SendContactConfirmation(ctx, data); err != nil {
			logger.Warn("failed to send confirmation mail", err)
		}
	}()
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contactService) List(ctx context.Context, status string, page, limit int) (*model.ListTicketsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if status != "" && !model.ValidStatus(status) {
		status = ""
	}

	tickets, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*model.Ticket{}
	}

	return &model.ListTicketsResponse{
		Tickets: tickets,
		Total:   total,
		Page:    page,
		Pages:   (total + limit - 1) / limit,
	}, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateTicketStatusRequest) (*model.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Stamp the first arrival in a lifecycle state; repeats keep the
	// original timestamp.
	now := time.Now()
	var repliedAt, resolvedAt *time.Time
	if req.Status == model.StatusInProgress && ticket.RepliedAt == nil {
		repliedAt = &now
	}
	if req.Status == model.StatusResolved && ticket.ResolvedAt == nil {
		resolvedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, req.AdminNote, repliedAt, resolvedAt); err != nil {
		return nil, err
	}

	ticket.Status = req.Status
	if req.AdminNote != nil {
		ticket.AdminNote = req.AdminNote
	}
	if repliedAt != nil {
		ticket.RepliedAt = repliedAt
	}
	if resolvedAt != nil {
		ticket.ResolvedAt = resolvedAt
	}

	return ticket, nil
}
