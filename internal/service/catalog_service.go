package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

// relatedProductLimit caps the related products shown on a detail page.
const relatedProductLimit = 5

// catalogService implements CatalogService.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// GetProducts retrieves products newest-first with pagination.
func (s *catalogService) GetProducts(ctx context.Context, limit, offset int) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve products")
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// GetProductBySlug retrieves a product by slug together with a few other
// products from the same category.
func (s *catalogService) GetProductBySlug(ctx context.Context, productSlug string) (*model.Product, []model.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", productSlug).Msg("failed to retrieve product")
		return nil, nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	if product == nil {
		return nil, nil, model.ErrProductNotFound
	}

	siblings, err := s.productRepo.GetByCategories(ctx, []uuid.UUID{product.CategoryID})
	if err != nil {
		s.logger.Error().Err(err).Str("slug", productSlug).Msg("failed to retrieve related products")
		return nil, nil, fmt.Errorf("failed to retrieve related products: %w", err)
	}

	related := make([]model.Product, 0, relatedProductLimit)
	for _, p := range siblings {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == relatedProductLimit {
			break
		}
	}

	return product, related, nil
}

// GetProduct retrieves a product by id.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to retrieve product")
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// SearchProducts retrieves products whose title contains the query.
func (s *catalogService) SearchProducts(ctx context.Context, query string, limit, offset int) ([]model.Product, error) {
	products, err := s.productRepo.Search(ctx, query, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetCategories retrieves all categories.
func (s *catalogService) GetCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve categories")
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// ProductsByCategory resolves a category by slug and returns its products.
// A top-level category additionally contributes the products of its direct
// sub-categories; a sub-category contributes only its own.
func (s *catalogService) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", categorySlug).Msg("failed to resolve category")
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	categoryIDs := []uuid.UUID{category.ID}
	if !category.IsSub() {
		children, err := s.categoryRepo.GetChildren(ctx, category.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", categorySlug).Msg("failed to retrieve sub-categories")
			return nil, fmt.Errorf("failed to retrieve sub-categories: %w", err)
		}
		for _, child := range children {
			categoryIDs = append(categoryIDs, child.ID)
		}
	}

	products, err := s.productRepo.GetByCategories(ctx, categoryIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", categorySlug).Msg("failed to retrieve category products")
		return nil, fmt.Errorf("failed to retrieve category products: %w", err)
	}
	return products, nil
}

// CreateProduct adds a product to the catalogue.
func (s *catalogService) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(req); err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", req.CategoryID).Msg("failed to check category")
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	product := &model.Product{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   time.Now(),
	}
	product.Slug, err = s.uniqueProductSlug(ctx, req.Title, product.ID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("slug", product.Slug).
		Msg("product created")
	return product, nil
}

// UpdateProduct edits an existing product. The slug follows the title.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to retrieve product")
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", req.CategoryID).Msg("failed to check category")
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	product.CategoryID = categoryID
	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	if req.Image != "" {
		product.Image = req.Image
	}
	product.Slug, err = s.uniqueProductSlug(ctx, req.Title, product.ID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return err
	}
	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// CreateCategory adds a category, optionally under a top-level parent.
func (s *catalogService) CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if req.Title == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Category title must not be empty")
	}

	category := &model.Category{
		ID:    uuid.New(),
		Title: req.Title,
		Slug:  slug.Make(req.Title),
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, model.ErrCategoryNotFound
		}
		parent, err := s.categoryRepo.GetByID(ctx, parentID)
		if err != nil {
			s.logger.Error().Err(err).Str("parent_id", *req.ParentID).Msg("failed to check parent category")
			return nil, fmt.Errorf("failed to check parent category: %w", err)
		}
		if parent == nil {
			return nil, model.ErrCategoryNotFound
		}
		if parent.IsSub() {
			return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Categories nest at most one level deep")
		}
		category.ParentID = &parentID
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Str("category_id", category.ID.String()).
		Str("slug", category.Slug).
		Msg("category created")
	return category, nil
}

// UpdateCategory edits an existing category.
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if req.Title == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Category title must not be empty")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to retrieve category")
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	category.Title = req.Title
	category.Slug = slug.Make(req.Title)
	category.ParentID = nil
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, model.ErrCategoryNotFound
		}
		if parentID == id {
			return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "A category cannot be its own parent")
		}
		parent, err := s.categoryRepo.GetByID(ctx, parentID)
		if err != nil {
			s.logger.Error().Err(err).Str("parent_id", *req.ParentID).Msg("failed to check parent category")
			return nil, fmt.Errorf("failed to check parent category: %w", err)
		}
		if parent == nil {
			return nil, model.ErrCategoryNotFound
		}
		if parent.IsSub() {
			return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Categories nest at most one level deep")
		}
		category.ParentID = &parentID
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return err
	}
	s.logger.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}

// AddFavourite marks a product as a favourite of the user.
func (s *catalogService) AddFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to check product")
		return fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	if err := s.userRepo.AddLike(ctx, userID, productID); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to add favourite")
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// RemoveFavourite removes a product from the user's favourites.
func (s *catalogService) RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.userRepo.RemoveLike(ctx, userID, productID); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to remove favourite")
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	return nil
}

// GetFavourites retrieves the user's favourite products.
func (s *catalogService) GetFavourites(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	products, err := s.userRepo.GetLikes(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to retrieve favourites")
		return nil, fmt.Errorf("failed to retrieve favourites: %w", err)
	}
	return products, nil
}

// validateProductRequest checks the writable product fields.
func (s *catalogService) validateProductRequest(req *model.ProductRequest) error {
	if req.Title == "" {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Product title must not be empty")
	}
	if req.Price < 0 {
		return model.ErrInvalidPrice
	}
	return nil
}

// uniqueProductSlug derives a slug from the title and disambiguates it with
// an id fragment when another product already claimed it.
func (s *catalogService) uniqueProductSlug(ctx context.Context, title string, id uuid.UUID) (string, error) {
	candidate := slug.Make(title)
	existing, err := s.productRepo.GetBySlug(ctx, candidate)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", candidate).Msg("failed to check slug")
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil && existing.ID != id {
		candidate = candidate + "-" + id.String()[:8]
	}
	return candidate, nil
}
