package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines catalogue browsing and management operations.
type CatalogService interface {
	// GetProducts retrieves products newest-first with pagination.
	GetProducts(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetProductBySlug retrieves a product and a handful of related
	// products from the same category.
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, []model.Product, error)

	// GetProduct retrieves a product by id.
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// SearchProducts retrieves products whose title contains the query.
	SearchProducts(ctx context.Context, query string, limit, offset int) ([]model.Product, error)

	// GetCategories retrieves all categories.
	GetCategories(ctx context.Context) ([]model.Category, error)

	// ProductsByCategory resolves a category by slug and returns its
	// products. For a top-level category the products of its direct
	// sub-categories are appended; deeper levels are not traversed.
	ProductsByCategory(ctx context.Context, slug string) ([]model.Product, error)

	// CreateProduct adds a product to the catalogue (manager only).
	CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// UpdateProduct edits an existing product (manager only).
	UpdateProduct(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// DeleteProduct removes a product (manager only).
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// CreateCategory adds a category (manager only).
	CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// UpdateCategory edits an existing category (manager only).
	UpdateCategory(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// DeleteCategory removes a category and, by cascade, its products and
	// sub-categories (manager only).
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// AddFavourite marks a product as a favourite of the user.
	AddFavourite(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveFavourite removes a product from the user's favourites.
	RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error

	// GetFavourites retrieves the user's favourite products.
	GetFavourites(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
}

// CartService validates input and delegates to the cart engine.
type CartService interface {
	// AddToCart puts quantity units of a product into the session cart.
	// Quantity must be within [1, 9].
	AddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error

	// RemoveFromCart removes a product from the session cart.
	RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) error

	// ClearCart discards the session cart.
	ClearCart(ctx context.Context, sessionID string) error

	// GetCart returns the cart lines joined with the live catalogue plus
	// the grand total.
	GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error)
}

// OrderService defines checkout and order management operations.
type OrderService interface {
	// CreateOrder snapshots the session cart into a persisted order. The
	// cart is left untouched; it is cleared by the payment step.
	CreateOrder(ctx context.Context, userID uuid.UUID, sessionID string) (*model.OrderResponse, error)

	// DirectCheckout creates and immediately pays a one-item order for the
	// product at its current price, bypassing the cart.
	DirectCheckout(ctx context.Context, userID, productID uuid.UUID) (*model.OrderResponse, error)

	// FakePayment marks the user's order as paid and clears the cart.
	FakePayment(ctx context.Context, userID, orderID uuid.UUID, sessionID string) error

	// GetOrder retrieves one of the user's orders with its items.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderResponse, error)

	// UserOrders retrieves the user's orders, newest first.
	UserOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderResponse, error)

	// AllOrders retrieves all orders (manager only).
	AllOrders(ctx context.Context, limit, offset int) ([]model.Order, error)

	// OrderDetail retrieves an order with its customer and the customer's
	// default shipping addresses (manager only).
	OrderDetail(ctx context.Context, orderID uuid.UUID) (*model.OrderDetail, error)
}

// AccountService defines registration, authentication and account data
// operations.
type AccountService interface {
	// Register creates a customer account.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login authenticates a customer and issues a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// ManagerLogin authenticates a manager and issues a token. Customers
	// are rejected with the same error as a wrong password.
	ManagerLogin(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// EnsureManager creates the bootstrap manager account when absent.
	EnsureManager(ctx context.Context, email, name, password string) error

	// GetProfile retrieves the user's own account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// UpdateProfile edits the user's own account.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.ProfileRequest) (*model.User, error)

	// ListAddresses retrieves the user's shipping addresses.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)

	// AddAddress creates a shipping address for the user.
	AddAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.ShippingAddress, error)

	// UpdateAddress edits one of the user's shipping addresses.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *model.AddressRequest) (*model.ShippingAddress, error)

	// DeleteAddress removes one of the user's shipping addresses.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// ListUsers retrieves all accounts (manager only).
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)

	// CreateUser creates an account with explicit flags (manager only).
	CreateUser(ctx context.Context, req *model.AdminUserRequest) (*model.User, error)

	// UpdateUser edits an account (manager only).
	UpdateUser(ctx context.Context, id uuid.UUID, req *model.AdminUserRequest) (*model.User, error)

	// DeleteUser removes an account (manager only).
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
