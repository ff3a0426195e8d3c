package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// Update rewrites an existing category.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes a category; its products and sub-categories cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetAll retrieves all categories in title order.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by its ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetBySlug retrieves a single category by its slug, nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// GetChildren retrieves the direct sub-categories of a category.
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]model.Category, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update rewrites an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product; cart entries referencing it are tolerated
	// by the display paths, order items cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetAll retrieves products newest-first with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySlug retrieves a single product by its slug, nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetByIDs retrieves the products that still exist for the given IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// GetByCategories retrieves every product belonging to any of the given
	// categories, in catalogue order.
	GetByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]model.Product, error)

	// Search retrieves products whose title contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string, limit, offset int) ([]model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByUser retrieves a user's orders, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetAll retrieves all orders newest-first with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// MarkPaid sets the order status to paid and bumps updated_at.
	// Returns model.ErrOrderNotFound when no such order exists.
	MarkPaid(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// Update rewrites an existing user.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user; orders and addresses cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetAll retrieves all users with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.User, error)

	// GetByID retrieves a single user by its ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a single user by email, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// AddLike marks a product as a favourite of the user. Adding an
	// existing favourite is a no-op.
	AddLike(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveLike removes a product from the user's favourites.
	RemoveLike(ctx context.Context, userID, productID uuid.UUID) error

	// GetLikes retrieves the user's favourite products.
	GetLikes(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
}

// AddressRepository defines the interface for shipping address data access.
type AddressRepository interface {
	// Create inserts a new shipping address.
	Create(ctx context.Context, address *model.ShippingAddress) error

	// Update rewrites an address owned by the given user.
	Update(ctx context.Context, address *model.ShippingAddress) error

	// Delete removes an address owned by the given user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// GetByID retrieves a single address by its ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingAddress, error)

	// GetByUser retrieves all addresses of a user.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)

	// GetDefaultByUser retrieves the addresses the user flagged as default.
	// The flag is not unique in the data layer, so this may return several.
	GetDefaultByUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)
}
