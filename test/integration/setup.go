package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Sync(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB removes all data from the application tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"sessions", "user_likes", "order_items", "orders", "shipping_addresses", "products", "categories", "users"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedCatalogue inserts a parent category with one sub-category and products
// in each, returning what was created.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) (parent, child model.Category, parentProduct, childProduct model.Product) {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	parent = model.Category{ID: uuid.New(), Title: "Furniture", Slug: "furniture"}
	if err := categoryRepo.Create(ctx, &parent); err != nil {
		t.Fatalf("failed to seed parent category: %v", err)
	}

	child = model.Category{ID: uuid.New(), Title: "Chairs", Slug: "chairs", ParentID: &parent.ID}
	if err := categoryRepo.Create(ctx, &child); err != nil {
		t.Fatalf("failed to seed sub-category: %v", err)
	}

	parentProduct = model.Product{
		ID:         uuid.New(),
		CategoryID: parent.ID,
		Title:      "Oak Shelf",
		Price:      7900,
		Slug:       "oak-shelf",
		CreatedAt:  time.Now(),
	}
	if err := productRepo.Create(ctx, &parentProduct); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	childProduct = model.Product{
		ID:         uuid.New(),
		CategoryID: child.ID,
		Title:      "Oak Armchair",
		Price:      12900,
		Slug:       "oak-armchair",
		CreatedAt:  time.Now(),
	}
	if err := productRepo.Create(ctx, &childProduct); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	return parent, child, parentProduct, childProduct
}

// SeedUser inserts a customer account.
func SeedUser(t *testing.T, pool *pgxpool.Pool) model.User {
	t.Helper()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(pool, zerolog.Nop())

	user := model.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		FullName:     "Test User",
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, &user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
