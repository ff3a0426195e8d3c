// Seeds a development database with a small catalogue and a demo customer.
// Usage: go run ./scripts
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type seedProduct struct {
	title       string
	description string
	price       int64
}

var catalogue = map[string]map[string][]seedProduct{
	"Furniture": {
		"Chairs": {
			{"Oak Armchair", "Solid oak frame with linen cushions", 12900},
			{"Walnut Dining Chair", "Mid-century walnut dining chair", 8900},
		},
		"Tables": {
			{"Oak Coffee Table", "Low coffee table in solid oak", 18900},
			{"Walnut Desk", "Writing desk with two drawers", 32900},
		},
	},
	"Lighting": {
		"Lamps": {
			{"Brass Floor Lamp", "Adjustable brass floor lamp", 9900},
			{"Ceramic Table Lamp", "Hand glazed ceramic base", 5900},
		},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	if err := database.Sync(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	for parentTitle, children := range catalogue {
		parent, err := ensureCategory(ctx, categoryRepo, parentTitle, nil)
		if err != nil {
			return err
		}

		for childTitle, products := range children {
			child, err := ensureCategory(ctx, categoryRepo, childTitle, &parent.ID)
			if err != nil {
				return err
			}

			for _, p := range products {
				if err := ensureProduct(ctx, productRepo, child.ID, p); err != nil {
					return err
				}
			}
		}
	}

	if err := ensureCustomer(ctx, userRepo); err != nil {
		return err
	}

	logger.Info().Msg("seed completed")
	return nil
}

func ensureCategory(ctx context.Context, repo repository.CategoryRepository, title string, parentID *uuid.UUID) (*model.Category, error) {
	s := slug.Make(title)
	existing, err := repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to check category %q: %w", title, err)
	}
	if existing != nil {
		return existing, nil
	}

	category := &model.Category{
		ID:       uuid.New(),
		Title:    title,
		Slug:     s,
		ParentID: parentID,
	}
	if err := repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", title, err)
	}
	return category, nil
}

func ensureProduct(ctx context.Context, repo repository.ProductRepository, categoryID uuid.UUID, p seedProduct) error {
	s := slug.Make(p.title)
	existing, err := repo.GetBySlug(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to check product %q: %w", p.title, err)
	}
	if existing != nil {
		return nil
	}

	product := &model.Product{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Title:       p.title,
		Description: p.description,
		Price:       p.price,
		Slug:        s,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product %q: %w", p.title, err)
	}
	return nil
}

func ensureCustomer(ctx context.Context, repo repository.UserRepository) error {
	const email = "customer@example.com"

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check demo customer: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	customer := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Demo Customer",
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, customer); err != nil {
		return fmt.Errorf("failed to create demo customer: %w", err)
	}
	return nil
}
