package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/events"
)

// NotificationService turns domain events into outbound email. All
// delivery here is best-effort; flows that need delivery guarantees
// (password reset) call the mailer directly.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}

	body := fmt.Sprintf(`
    <h1>Welcome, %s!</h1>
    <p>Thanks for creating an account.</p>`, payload.Name)
	if payload.VerifyURL != "" {
		body += fmt.Sprintf(`
    <p>Please verify your email address:</p>
    <a href="%s">%s</a>`, payload.VerifyURL, payload.VerifyURL)
	}

	if err := n.mailer.Send(ctx, payload.Email, "Welcome! Please verify your email", body); err != nil {
		n.logger.Warn("welcome email failed", zap.String("user_id", event.UserID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderCreatedPayload)
	if !ok || payload.Email == "" {
		return nil
	}

	body := fmt.Sprintf(`
    <h1>Order Confirmation</h1>
    <p>Thank you for your order!</p>
    <p>Order ID: %s</p>
    <p>Total Amount: $%.2f</p>
    <p>We will notify you once your order is shipped.</p>`, payload.OrderID, payload.TotalPrice)

	if err := n.mailer.Send(ctx, payload.Email, "Order Confirmation", body); err != nil {
		n.logger.Warn("order confirmation email failed", zap.String("order_id", payload.OrderID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("order status changed", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}
