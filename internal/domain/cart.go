package domain

// CartItem is a single product line in a shopping cart. Price is the
// unit price captured when the item was added.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Cart holds the items a user intends to order.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// TotalPrice sums quantity times unit price across all items.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
