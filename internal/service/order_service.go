package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

const (
	taxRate               = 0.15
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
)

// OrderService turns carts into orders and manages fulfillment state.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	carts      repository.CartStore
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles collaborator requirements.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	CartStore   repository.CartStore
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		carts:      deps.CartStore,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// PriceBreakdown computes the order totals: items price, 15% tax, and
// flat shipping waived above the free-shipping threshold.
func PriceBreakdown(itemsPrice float64) (tax, shipping, total float64) {
	tax = itemsPrice * taxRate
	shipping = flatShippingPrice
	if itemsPrice > freeShippingThreshold {
		shipping = 0
	}
	total = itemsPrice + tax + shipping
	return tax, shipping, total
}

// CreateOrder places an order from the user's cart: stock is checked
// per line, decremented, and the cart cleared. A confirmation email
// goes out through the event dispatcher, best-effort.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, shippingAddress domain.Address, paymentMethod string) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.NewValidationError("Cart is empty", nil)
	}

	var orderItems []domain.OrderItem
	var itemsPrice float64
	for _, cartItem := range cart.Items {
		product, err := s.products.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("Product")
			}
			return nil, err
		}
		if product.Stock < cartItem.Quantity {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Not enough stock for %s", product.Name), nil)
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     image,
			Quantity:  cartItem.Quantity,
			Price:     product.Price,
		})
		itemsPrice += float64(cartItem.Quantity) * product.Price
	}

	tax, shipping, total := PriceBreakdown(itemsPrice)
	order := &domain.Order{
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        tax,
		ShippingPrice:   shipping,
		TotalPrice:      total,
		Status:          domain.OrderStatusProcessing,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.logger.Error("stock decrement failed",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err))
		}
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after order", zap.String("user_id", userID), zap.Error(err))
	}

	s.publishCreated(ctx, order)
	return order, nil
}

// GetOrder loads an order, restricted to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, orderID, callerID string, callerRole domain.Role) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}
	if order.UserID != callerID && callerRole != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("Not authorized to view this order")
	}
	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAllOrders returns every order plus aggregates for the admin view.
func (s *OrderService) ListAllOrders(ctx context.Context, limit, offset int) ([]domain.Order, int64, float64, error) {
	orders, err := s.orders.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	count, err := s.orders.Count(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	sales, err := s.orders.TotalSales(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return orders, count, sales, nil
}

// UpdateStatus advances fulfillment state; delivery stamps the order.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid order status", nil)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}

	oldStatus := order.Status
	order.Status = status
	if status == domain.OrderStatusDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && oldStatus != status {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			UserID:    order.UserID,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   order.ID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return order, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *domain.Order) {
	if s.dispatcher == nil {
		return
	}

	email := ""
	if user, err := s.users.GetByID(ctx, order.UserID); err == nil {
		email = user.Email
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		UserID:    order.UserID,
		Timestamp: time.Now(),
		Payload: events.OrderCreatedPayload{
			OrderID:    order.ID,
			Email:      email,
			TotalPrice: order.TotalPrice,
		},
	})
}
