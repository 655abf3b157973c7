package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/infrastructure/database"
)

const claimColumns = `id, business_id, user_id, status, note, decided_at, created_at, updated_at`

type postgresClaimRepository struct {
	db database.DB
}

func NewPostgresClaimRepository(db database.DB) ClaimRepository {
	return &postgresClaimRepository{db: db}
}

func scanClaim(row pgx.Row) (*model.Claim, error) {
	c := &model.Claim{}
	err := row.Scan(
		&c.ID, &c.BusinessID, &c.UserID, &c.Status,
		&c.Note, &c.DecidedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresClaimRepository) Create(ctx context.Context, claim *model.Claim) error {
	query := `
		INSERT INTO business_claims (` + claimColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		claim.ID, claim.BusinessID, claim.UserID, claim.Status,
		claim.Note, claim.DecidedAt, claim.CreatedAt, claim.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrClaimExists
		}
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

func (r *postgresClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM business_claims WHERE id = $1`

	claim, err := scanClaim(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return claim, nil
}

func (r *postgresClaimRepository) List(ctx context.Context, status string, page, limit int) ([]*model.Claim, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM business_claims %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		claimColumns, where, len(args)+1, len(args)+2,
	)

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []*model.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read claims: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM business_claims %s`, where)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	return claims, total, nil
}

func (r *postgresClaimRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, note *string, decidedAt time.Time) error {
	query := `
		UPDATE business_claims
		SET status = $2, note = COALESCE($3, note), decided_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, note, decidedAt)
	if err != nil {
		return fmt.Errorf("failed to update claim: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrClaimNotFound
	}

	return nil
}

// RejectOtherPending closes every other pending claim on the business
// once one of them has been approved.
func (r *postgresClaimRepository) RejectOtherPending(ctx context.Context, businessID, approvedClaimID uuid.UUID, decidedAt time.Time) error {
	query := `
		UPDATE business_claims
		SET status = $3, decided_at = $4, updated_at = NOW()
		WHERE business_id = $1 AND id != $2 AND status = $5
	`

	_, err := r.db.Exec(ctx, query, businessID, approvedClaimID, model.ClaimRejected, decidedAt, model.ClaimPending)
	if err != nil {
		return fmt.Errorf("failed to reject competing claims: %w", err)
	}

	return nil
}
