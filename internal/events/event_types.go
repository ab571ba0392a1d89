package events

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload carries what the welcome/verification mail needs.
type UserRegisteredPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	VerifyURL string `json:"verify_url,omitempty"`
}

// OrderCreatedPayload carries order confirmation details.
type OrderCreatedPayload struct {
	OrderID    string  `json:"order_id"`
	Email      string  `json:"email"`
	TotalPrice float64 `json:"total_price"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
