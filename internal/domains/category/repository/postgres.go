package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"citylocal-backend/internal/domains/category/model"
	"citylocal-backend/internal/infrastructure/database"
)

type postgresCategoryRepository struct {
	db database.DB
}

func NewPostgresCategoryRepository(db database.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

// List aggregates business counts in the same query so the count can never
// drift from the businesses table.
func (r *postgresCategoryRepository) List(ctx context.Context, includeInactive bool) ([]*model.Category, error) {
	query := `
		SELECT
			c.id, c.name, c.slug, c.icon, c.is_active, c.display_order,
			COUNT(b.id) AS business_count,
			c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN businesses b
			ON b.category_id = c.id AND ($1 OR b.is_active = true)
		WHERE ($1 OR c.is_active = true)
		GROUP BY c.id
		ORDER BY c.display_order ASC, c.name ASC
	`

	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category := &model.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Icon,
			&category.IsActive,
			&category.DisplayOrder,
			&category.BusinessCount,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT
			c.id, c.name, c.slug, c.icon, c.is_active, c.display_order,
			COUNT(b.id) AS business_count,
			c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN businesses b
			ON b.category_id = c.id AND b.is_active = true
		WHERE c.id = $1
		GROUP BY c.id
	`

	category := &model.Category{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Icon,
		&category.IsActive,
		&category.DisplayOrder,
		&category.BusinessCount,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *postgresCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}

	return exists, nil
}

func (r *postgresCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, icon, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Icon,
		category.IsActive,
		category.DisplayOrder,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *postgresCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, icon = $4, is_active = $5, display_order = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Icon,
		category.IsActive,
		category.DisplayOrder,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresCategoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
