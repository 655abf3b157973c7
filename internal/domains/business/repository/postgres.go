package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/infrastructure/database"
)

const businessColumns = `
	id, slug, owner_id, name, description, category_id,
	address, city, state, zip, country, latitude, longitude,
	phone, email, website, hours, tags,
	logo_url, images, video_urls,
	is_active, is_verified, is_featured,
	views, rating_avg, rating_count,
	claimed_at, rejection_reason, rejected_at,
	created_at, updated_at`

type postgresBusinessRepository struct {
	db database.DB
}

func NewPostgresBusinessRepository(db database.DB) BusinessRepository {
	return &postgresBusinessRepository{db: db}
}

// scanBusiness reads one full row in businessColumns order.
func scanBusiness(row pgx.Row) (*model.Business, error) {
	b := &model.Business{}
	var hours []byte
	var tags, images, videos []string

	err := row.Scan(
		&b.ID, &b.Slug, &b.OwnerID, &b.Name, &b.Description, &b.CategoryID,
		&b.Address, &b.City, &b.State, &b.Zip, &b.Country, &b.Latitude, &b.Longitude,
		&b.Phone, &b.Email, &b.Website, &hours, pq.Array(&tags),
		&b.LogoURL, pq.Array(&images), pq.Array(&videos),
		&b.IsActive, &b.IsVerified, &b.IsFeatured,
		&b.Views, &b.RatingAverage, &b.RatingCount,
		&b.ClaimedAt, &b.RejectionReason, &b.RejectedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &b.Hours); err != nil {
			return nil, fmt.Errorf("failed to decode hours: %w", err)
		}
	}
	b.Tags = tags
	b.Images = images
	b.VideoURLs = videos

	return b, nil
}

func marshalHours(hours map[string]model.DayHours) ([]byte, error) {
	if hours == nil {
		return nil, nil
	}
	return json.Marshal(hours)
}

func (r *postgresBusinessRepository) Create(ctx context.Context, business *model.Business) error {
	hours, err := marshalHours(business.Hours)
	if err != nil {
		return fmt.Errorf("failed to encode hours: %w", err)
	}

	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23, $24,
			$25, $26, $27,
			$28, $29, $30,
			$31, $32
		)
	`

	_, err = r.db.Exec(ctx, query,
		business.ID, business.Slug, business.OwnerID, business.Name, business.Description, business.CategoryID,
		business.Address, business.City, business.State, business.Zip, business.Country, business.Latitude, business.Longitude,
		business.Phone, business.Email, business.Website, hours, pq.Array(business.Tags),
		business.LogoURL, pq.Array(business.Images), pq.Array(business.VideoURLs),
		business.IsActive, business.IsVerified, business.IsFeatured,
		business.Views, business.RatingAverage, business.RatingCount,
		business.ClaimedAt, business.RejectionReason, business.RejectedAt,
		business.CreatedAt, business.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

func (r *postgresBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return business, nil
}

func (r *postgresBusinessRepository) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE slug = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return business, nil
}

// Update writes the profile fields only. Lifecycle flags, views, rating
// and ownership have dedicated writers.
func (r *postgresBusinessRepository) Update(ctx context.Context, business *model.Business) error {
	hours, err := marshalHours(business.Hours)
	if err != nil {
		return fmt.Errorf("failed to encode hours: %w", err)
	}

	query := `
		UPDATE businesses
		SET
			name = $2, description = $3, category_id = $4,
			address = $5, city = $6, state = $7, zip = $8, country = $9,
			latitude = $10, longitude = $11,
			phone = $12, email = $13, website = $14,
			hours = $15, tags = $16,
			logo_url = $17, images = $18, video_urls = $19,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		business.ID,
		business.Name, business.Description, business.CategoryID,
		business.Address, business.City, business.State, business.Zip, business.Country,
		business.Latitude, business.Longitude,
		business.Phone, business.Email, business.Website,
		hours, pq.Array(business.Tags),
		business.LogoURL, pq.Array(business.Images), pq.Array(business.VideoURLs),
	)

	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) Search(ctx context.Context, filter SearchFilter) ([]*model.Business, int, error) {
	where, args := buildSearchWhere(filter)

	query := fmt.Sprintf(
		`SELECT %s FROM businesses %s %s LIMIT $%d OFFSET $%d`,
		businessColumns, where, sortClause(filter.Sort), len(args)+1, len(args)+2,
	)

	offset := (filter.Page - 1) * filter.Limit
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, offset)

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*model.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read businesses: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM businesses %s`, where)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	return businesses, total, nil
}

func (r *postgresBusinessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*model.Business, int, error) {
	query := `SELECT ` + businessColumns + `
		FROM businesses
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*model.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read businesses: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM businesses WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	return businesses, total, nil
}

func (r *postgresBusinessRepository) SetApproval(
	ctx context.Context,
	id uuid.UUID,
	isActive, isVerified bool,
	rejectionReason *string,
	rejectedAt *time.Time,
) error {
	query := `
		UPDATE businesses
		SET is_active = $2, is_verified = $3, rejection_reason = $4, rejected_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, isActive, isVerified, rejectionReason, rejectedAt)
	if err != nil {
		return fmt.Errorf("failed to update approval state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	query := `UPDATE businesses SET is_featured = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, featured)
	if err != nil {
		return fmt.Errorf("failed to update featured flag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) SetOwner(ctx context.Context, id, ownerID uuid.UUID, claimedAt time.Time) error {
	query := `UPDATE businesses SET owner_id = $2, claimed_at = $3, updated_at = NOW() WHERE id = $1 AND owner_id IS NULL`

	result, err := r.db.Exec(ctx, query, id, ownerID, claimedAt)
	if err != nil {
		return fmt.Errorf("failed to set owner: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrAlreadyClaimed
	}

	return nil
}

func (r *postgresBusinessRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE businesses SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error {
	query := `UPDATE businesses SET rating_avg = $2, rating_count = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, average, count)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}

	return nil
}

func (r *postgresBusinessRepository) Lookup(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	var ownerID *uuid.UUID
	var isActive bool

	err := r.db.QueryRow(ctx, `SELECT owner_id, is_active FROM businesses WHERE id = $1`, id).
		Scan(&ownerID, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, model.ErrBusinessNotFound
		}
		return nil, false, fmt.Errorf("failed to look up business: %w", err)
	}

	return ownerID, isActive, nil
}

func (r *postgresBusinessRepository) ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE businesses SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`,
		categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear category: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *postgresBusinessRepository) CountByStatus(ctx context.Context) (int, int, int, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = false AND rejection_reason IS NULL),
			COUNT(*) FILTER (WHERE is_active = true)
		FROM businesses
	`

	var total, pending, active int
	if err := r.db.QueryRow(ctx, query).Scan(&total, &pending, &active); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	return total, pending, active, nil
}

func (r *postgresBusinessRepository) ListRecent(ctx context.Context, limit int) ([]*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*model.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}

	return businesses, rows.Err()
}
