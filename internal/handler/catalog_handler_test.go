package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetProducts(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, []model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Product), args.Get(1).([]model.Product), args.Error(2)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) SearchProducts(ctx context.Context, query string, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) GetCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogService) ProductsByCategory(ctx context.Context, slug string) ([]model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) AddFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCatalogService) RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCatalogService) GetFavourites(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func TestCatalogHandler_Get_NotFound(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockCatalog.On("GetProductBySlug", mock.Anything, "ghost").Return(nil, nil, model.ErrProductNotFound)

	h := NewCatalogHandler(mockCatalog, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/ghost", nil)
	req.SetPathValue("slug", "ghost")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeProductNotFound, resp.Error)
}

func TestCatalogHandler_ByCategory_UnknownSlug(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockCatalog.On("ProductsByCategory", mock.Anything, "nope").Return(nil, model.ErrCategoryNotFound)

	h := NewCatalogHandler(mockCatalog, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories/nope/products", nil)
	req.SetPathValue("slug", "nope")
	rec := httptest.NewRecorder()

	h.ByCategory(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeCategoryNotFound, resp.Error)
}

func TestCatalogHandler_List_SearchQuery(t *testing.T) {
	products := []model.Product{{ID: uuid.New(), Title: "Oak Table"}}

	mockCatalog := new(MockCatalogService)
	mockCatalog.On("SearchProducts", mock.Anything, "oak", 50, 0).Return(products, nil)

	h := NewCatalogHandler(mockCatalog, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products?q=oak", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockCatalog.AssertCalled(t, "SearchProducts", mock.Anything, "oak", 50, 0)
	mockCatalog.AssertNotCalled(t, "GetProducts", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHandler_List_Pagination(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockCatalog.On("GetProducts", mock.Anything, 5, 10).Return([]model.Product{}, nil)

	h := NewCatalogHandler(mockCatalog, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockCatalog.AssertExpectations(t)
}
