package dto

import "github.com/spec-kit/shop-service/internal/domain"

// AddCartItemRequest puts a product into the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest changes the quantity of an existing line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart plus its derived total.
type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
}

func NewCartResponse(cart *domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{Items: items, TotalPrice: cart.TotalPrice()}
}
