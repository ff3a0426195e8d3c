package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, title, slug, parent_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Title, category.Slug, category.ParentID)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", category.Slug).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update rewrites an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET title = $2, slug = $3, parent_id = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, category.ID, category.Title, category.Slug, category.ParentID)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category; its products and sub-categories cascade.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// GetAll retrieves all categories in title order.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, title, slug, parent_id
		FROM categories
		ORDER BY title
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return r.getOne(ctx, `SELECT id, title, slug, parent_id FROM categories WHERE id = $1`, id)
}

// GetBySlug retrieves a single category by its slug.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT id, title, slug, parent_id FROM categories WHERE slug = $1`, slug)
}

// GetChildren retrieves the direct sub-categories of a category.
func (r *categoryRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]model.Category, error) {
	query := `
		SELECT id, title, slug, parent_id
		FROM categories
		WHERE parent_id = $1
		ORDER BY title
	`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		r.logger.Error().Err(err).Str("parent_id", parentID.String()).Msg("failed to query sub-categories")
		return nil, fmt.Errorf("failed to query sub-categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *categoryRepository) getOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Title, &c.Slug, &c.ParentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

func scanCategories(rows pgx.Rows) ([]model.Category, error) {
	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
