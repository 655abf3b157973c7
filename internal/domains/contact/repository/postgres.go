package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"citylocal-backend/internal/domains/contact/model"
	"citylocal-backend/internal/infrastructure/database"
)

const ticketColumns = `id, name, email, subject, message, status, admin_note, replied_at, resolved_at, created_at, updated_at`

type postgresTicketRepository struct {
	db database.DB
}

func NewPostgresTicketRepository(db database.DB) TicketRepository {
	return &postgresTicketRepository{db: db}
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	t := &model.Ticket{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Subject, &t.Message,
		&t.Status, &t.AdminNote, &t.RepliedAt, &t.ResolvedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	query := `
		INSERT INTO contact_tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID, ticket.Name, ticket.Email, ticket.Subject, ticket.Message,
		ticket.Status, ticket.AdminNote, ticket.RepliedAt, ticket.ResolvedAt,
		ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (r *postgresTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM contact_tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

func (r *postgresTicketRepository) List(ctx context.Context, status string, page, limit int) ([]*model.Ticket, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM contact_tickets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		ticketColumns, where, len(args)+1, len(args)+2,
	)

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*model.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tickets: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM contact_tickets %s`, where)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return tickets, total, nil
}

func (r *postgresTicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNote *string, repliedAt, resolvedAt *time.Time) error {
	query := `
		UPDATE contact_tickets
		SET status = $2,
		    admin_note = COALESCE($3, admin_note),
		    replied_at = COALESCE($4, replied_at),
		    resolved_at = COALESCE($5, resolved_at),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, adminNote, repliedAt, resolvedAt)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrTicketNotFound
	}

	return nil
}

func (r *postgresTicketRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM contact_tickets WHERE status != $1`,
		model.StatusResolved,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tickets: %w", err)
	}

	return count, nil
}

func (r *postgresTicketRepository) ListRecent(ctx context.Context, limit int) ([]*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM contact_tickets ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*model.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *postgresTicketRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM contact_tickets WHERE status = $1 AND updated_at < $2`,
		model.StatusResolved, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge tickets: %w", err)
	}

	return result.RowsAffected(), nil
}
