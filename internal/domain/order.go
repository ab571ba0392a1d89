package domain

import "time"

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a purchased product line, denormalized so the order
// survives later catalog edits.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order including its price breakdown.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	ShippingAddress Address
	PaymentMethod   string
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64
	Status          OrderStatus
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
