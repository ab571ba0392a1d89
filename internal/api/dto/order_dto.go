package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// CreateOrderRequest places an order from the current cart.
type CreateOrderRequest struct {
	ShippingAddress UpsertAddressRequest `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method"`
}

// UpdateOrderStatusRequest moves an order through fulfillment. Admin
// only.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the full order view returned to its owner.
type OrderResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress domain.Address     `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	ItemsPrice      float64            `json:"items_price"`
	TaxPrice        float64            `json:"tax_price"`
	ShippingPrice   float64            `json:"shipping_price"`
	TotalPrice      float64            `json:"total_price"`
	Status          domain.OrderStatus `json:"status"`
	IsDelivered     bool               `json:"is_delivered"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           order.Items,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		ItemsPrice:      order.ItemsPrice,
		TaxPrice:        order.TaxPrice,
		ShippingPrice:   order.ShippingPrice,
		TotalPrice:      order.TotalPrice,
		Status:          order.Status,
		IsDelivered:     order.IsDelivered,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
	}
}

func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// OrderListResponse is the paginated admin order listing with the
// aggregate sales figure.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	TotalSales float64         `json:"total_sales"`
}
