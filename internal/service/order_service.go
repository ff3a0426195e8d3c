package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/cart"
	"storefront/internal/event"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	cart        *cart.Engine
	publisher   event.Publisher
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	cartEngine *cart.Engine,
	publisher event.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		cart:        cartEngine,
		publisher:   publisher,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder snapshots the session cart into a persisted order. Each cart
// line becomes one order item carrying the price captured when the product
// was first added. The cart itself stays as it is until payment.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, sessionID string) (*model.OrderResponse, error) {
	items, err := s.cart.Items(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read cart")
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Paid:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.Product.ID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	resp, err := s.buildResponse(ctx, order, orderItems)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(orderItems)).
		Int64("total_price", resp.TotalPrice).
		Msg("order created")

	s.emit(ctx, s.publisher.OrderCreated, order, resp.TotalPrice, len(orderItems))
	return resp, nil
}

// DirectCheckout creates and immediately pays a one-item order for the
// product at its current catalogue price, bypassing the cart.
func (s *orderService) DirectCheckout(ctx context.Context, userID, productID uuid.UUID) (*model.OrderResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to retrieve product")
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Paid:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := []model.OrderItem{{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Price:     product.Price,
		Quantity:  1,
	}}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	resp, err := s.buildResponse(ctx, order, orderItems)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Msg("direct checkout completed")

	s.emit(ctx, s.publisher.OrderCreated, order, resp.TotalPrice, 1)
	s.emit(ctx, s.publisher.OrderPaid, order, resp.TotalPrice, 1)
	return resp, nil
}

// FakePayment marks the user's order as paid and clears the session cart.
func (s *orderService) FakePayment(ctx context.Context, userID, orderID uuid.UUID, sessionID string) error {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to retrieve order")
		return fmt.Errorf("failed to retrieve order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return model.ErrOrderNotFound
	}

	if err := s.orderRepo.MarkPaid(ctx, orderID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to mark order paid")
		return err
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to clear cart after payment")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	var total int64
	for i := range items {
		total += items[i].Cost()
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("user_id", userID.String()).
		Int64("total_price", total).
		Msg("order paid")

	s.emit(ctx, s.publisher.OrderPaid, order, total, len(items))
	return nil
}

// GetOrder retrieves one of the user's orders with its items.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to retrieve order")
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return s.buildResponse(ctx, order, items)
}

// UserOrders retrieves the user's orders newest-first, each with its items.
func (s *orderService) UserOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to retrieve orders")
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		order, items, err := s.orderRepo.GetByID(ctx, orders[i].ID)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", orders[i].ID.String()).Msg("failed to retrieve order items")
			return nil, fmt.Errorf("failed to retrieve order items: %w", err)
		}
		if order == nil {
			continue
		}
		resp, err := s.buildResponse(ctx, order, items)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// AllOrders retrieves all orders with pagination.
func (s *orderService) AllOrders(ctx context.Context, limit, offset int) ([]model.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve orders")
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// OrderDetail retrieves an order together with its customer and the default
// shipping addresses of that customer.
func (s *orderService) OrderDetail(ctx context.Context, orderID uuid.UUID) (*model.OrderDetail, error) {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to retrieve order")
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	resp, err := s.buildResponse(ctx, order, items)
	if err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", order.UserID.String()).Msg("failed to retrieve customer")
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrUserNotFound
	}

	addresses, err := s.addressRepo.GetDefaultByUser(ctx, order.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", order.UserID.String()).Msg("failed to retrieve addresses")
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}

	return &model.OrderDetail{
		Order:     *resp,
		Customer:  *customer,
		Addresses: addresses,
	}, nil
}

// buildResponse assembles the order payload. Products deleted from the
// catalogue since the order was placed are simply absent from the product
// list; the items and the total are unaffected.
func (s *orderService) buildResponse(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.OrderResponse, error) {
	var total int64
	productIDs := make([]uuid.UUID, len(items))
	for i := range items {
		total += items[i].Cost()
		productIDs[i] = items[i].ProductID
	}

	products := []model.Product{}
	if len(productIDs) > 0 {
		var err error
		products, err = s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to retrieve order products")
			return nil, fmt.Errorf("failed to retrieve order products: %w", err)
		}
	}

	return &model.OrderResponse{
		ID:         order.ID,
		Paid:       order.Paid,
		CreatedAt:  order.CreatedAt,
		TotalPrice: total,
		Items:      items,
		Products:   products,
	}, nil
}

// emit publishes an order event. Publishing is best effort; a failure is
// logged and does not fail the request.
func (s *orderService) emit(ctx context.Context, publish func(context.Context, event.OrderEvent) error, order *model.Order, total int64, itemCount int) {
	evt := event.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: total,
		ItemCount:  itemCount,
		Occurred:   time.Now(),
	}
	if err := publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order event")
	}
}
