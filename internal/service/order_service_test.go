package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProduct(price int64) *model.Product {
	return &model.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Title:      "Walnut Desk",
		Price:      price,
		Slug:       "walnut-desk",
		CreatedAt:  time.Now(),
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()
	sessionID := "sess-1"

	product := newTestProduct(100)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockUserRepo := new(MockUserRepository)
	mockAddressRepo := new(MockAddressRepository)
	mockPublisher := new(MockPublisher)
	mockTx := new(MockTx)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	require.NoError(t, engine.Add(ctx, sessionID, product, 2))

	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{*product}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockPublisher.On("OrderCreated", ctx, mock.AnythingOfType("event.OrderEvent")).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockUserRepo, mockAddressRepo, engine, mockPublisher, logger)

	resp, err := service.CreateOrder(ctx, userID, sessionID)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.False(t, resp.Paid)
	assert.Equal(t, int64(200), resp.TotalPrice)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, product.ID, resp.Items[0].ProductID)
	assert.Equal(t, int64(100), resp.Items[0].Price)
	assert.Equal(t, 2, resp.Items[0].Quantity)

	assert.True(t, mockTx.committed)
	mockOrderRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_SnapshotsCartPrice(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	sessionID := "sess-snap"

	product := newTestProduct(100)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)
	mockTx := new(MockTx)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	require.NoError(t, engine.Add(ctx, sessionID, product, 1))

	// The catalogue price moved after the product was added to the cart.
	repriced := *product
	repriced.Price = 150
	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{repriced}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 && items[0].Price == 100
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockPublisher.On("OrderCreated", ctx, mock.Anything).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	resp, err := service.CreateOrder(ctx, uuid.New(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.TotalPrice)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	resp, err := service.CreateOrder(ctx, uuid.New(), "sess-empty")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_CreateOrder_LeavesCartIntact(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	sessionID := "sess-keep"

	product := newTestProduct(40)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)
	mockTx := new(MockTx)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	require.NoError(t, engine.Add(ctx, sessionID, product, 3))

	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{*product}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockPublisher.On("OrderCreated", ctx, mock.Anything).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	_, err := service.CreateOrder(ctx, uuid.New(), sessionID)
	require.NoError(t, err)

	total, err := engine.TotalPrice(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), total)
}

func TestOrderService_CreateOrder_ItemInsertFailureRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	sessionID := "sess-fail"

	product := newTestProduct(100)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)
	mockTx := new(MockTx)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	require.NoError(t, engine.Add(ctx, sessionID, product, 1))

	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{*product}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(errors.New("insert failed"))
	mockTx.On("Rollback", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	resp, err := service.CreateOrder(ctx, uuid.New(), sessionID)
	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockPublisher.AssertNotCalled(t, "OrderCreated", mock.Anything, mock.Anything)
}

func TestOrderService_DirectCheckout_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()

	product := newTestProduct(250)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)
	mockTx := new(MockTx)

	mockProductRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{*product}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.MatchedBy(func(o *model.Order) bool {
		return o.Paid && o.UserID == userID
	})).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 && items[0].Quantity == 1 && items[0].Price == 250
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockPublisher.On("OrderCreated", ctx, mock.Anything).Return(nil)
	mockPublisher.On("OrderPaid", ctx, mock.Anything).Return(nil)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	resp, err := service.DirectCheckout(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.True(t, resp.Paid)
	assert.Equal(t, int64(250), resp.TotalPrice)
	mockOrderRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_DirectCheckout_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, new(MockPublisher), logger)

	resp, err := service.DirectCheckout(ctx, uuid.New(), uuid.New())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_FakePayment_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	sessionID := "sess-pay"

	product := newTestProduct(60)

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockPublisher)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	require.NoError(t, engine.Add(ctx, sessionID, product, 2))

	order := &model.Order{ID: orderID, UserID: userID}
	items := []model.OrderItem{{OrderID: orderID, ProductID: product.ID, Price: 60, Quantity: 2}}
	mockOrderRepo.On("GetByID", ctx, orderID).Return(order, items, nil)
	mockOrderRepo.On("MarkPaid", ctx, orderID).Return(nil)
	mockPublisher.On("OrderPaid", ctx, mock.Anything).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, new(MockUserRepository), new(MockAddressRepository), engine, mockPublisher, logger)

	err := service.FakePayment(ctx, userID, orderID, sessionID)
	require.NoError(t, err)

	total, err := engine.TotalPrice(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockOrderRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_FakePayment_WrongOwner(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	order := &model.Order{ID: orderID, UserID: uuid.New()}
	mockOrderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{}, nil)

	engine := cart.NewEngine(session.NewMemoryStore(), new(MockProductRepository), logger)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockUserRepository), new(MockAddressRepository), engine, new(MockPublisher), logger)

	err := service.FakePayment(ctx, uuid.New(), orderID, "sess-x")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	mockOrderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_WrongOwner(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	order := &model.Order{ID: orderID, UserID: uuid.New()}
	mockOrderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{}, nil)

	engine := cart.NewEngine(session.NewMemoryStore(), new(MockProductRepository), logger)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockUserRepository), new(MockAddressRepository), engine, new(MockPublisher), logger)

	resp, err := service.GetOrder(ctx, uuid.New(), orderID)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_OrderDetail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()
	userID := uuid.New()

	product := newTestProduct(30)
	order := &model.Order{ID: orderID, UserID: userID, Paid: true}
	items := []model.OrderItem{{OrderID: orderID, ProductID: product.ID, Price: 30, Quantity: 2}}
	customer := &model.User{ID: userID, Email: "jo@example.com", FullName: "Jo"}
	addresses := []model.ShippingAddress{{ID: uuid.New(), UserID: userID, IsDefault: true}}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockUserRepo := new(MockUserRepository)
	mockAddressRepo := new(MockAddressRepository)

	mockOrderRepo.On("GetByID", ctx, orderID).Return(order, items, nil)
	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{*product}, nil)
	mockUserRepo.On("GetByID", ctx, userID).Return(customer, nil)
	mockAddressRepo.On("GetDefaultByUser", ctx, userID).Return(addresses, nil)

	engine := cart.NewEngine(session.NewMemoryStore(), mockProductRepo, logger)
	service := NewOrderService(mockOrderRepo, mockProductRepo, mockUserRepo, mockAddressRepo, engine, new(MockPublisher), logger)

	detail, err := service.OrderDetail(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), detail.Order.TotalPrice)
	assert.Equal(t, "jo@example.com", detail.Customer.Email)
	require.Len(t, detail.Addresses, 1)
	assert.True(t, detail.Addresses[0].IsDefault)
}
