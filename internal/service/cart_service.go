package service

import (
	"context"
	"errors"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CartService mediates between the redis cart store and the catalog;
// every quantity change is validated against current stock.
type CartService struct {
	carts   repository.CartStore
	catalog *CatalogService
}

// NewCartService builds the service.
func NewCartService(carts repository.CartStore, catalog *CatalogService) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// GetCart returns the user's cart; an absent cart reads as empty.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem puts a product into the cart, merging quantities when the
// product is already present.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing := 0
	for _, item := range cart.Items {
		if item.ProductID == productID {
			existing = item.Quantity
			break
		}
	}
	if product.Stock < existing+quantity {
		return nil, apperrors.NewValidationError("Not enough stock available", nil)
	}

	return s.carts.AddItem(ctx, userID, productID, quantity, product.Price)
}

// UpdateItem sets the quantity of a cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var productID string
	for _, item := range cart.Items {
		if item.ID == itemID {
			productID = item.ProductID
			break
		}
	}
	if productID == "" {
		return nil, apperrors.NewNotFound("Cart item")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, apperrors.NewValidationError("Not enough stock available", nil)
	}

	updated, err := s.carts.UpdateItem(ctx, userID, itemID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, apperrors.NewNotFound("Cart item")
		}
		return nil, err
	}
	return updated, nil
}

// RemoveItem removes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := s.carts.RemoveItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, apperrors.NewNotFound("Cart item")
		}
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the user's cart. Idempotent.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}
