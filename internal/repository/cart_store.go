package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ErrCartItemNotFound is returned when an item id is absent from the cart.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartStore keeps per-user carts in Redis. Carts are working state, not
// records: the authoritative purchase data lands in the orders table.
type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID string, quantity int, unitPrice float64) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type cartStore struct {
	client *redis.Client
}

// NewCartStore returns a Redis-backed implementation.
func NewCartStore(client *redis.Client) CartStore {
	return &cartStore{client: client}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (s *cartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *cartStore) AddItem(ctx context.Context, userID, productID string, quantity int, unitPrice float64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        uuid.NewString(),
			ProductID: productID,
			Quantity:  quantity,
			Price:     unitPrice,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartStore) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartStore) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, ErrCartItemNotFound
	}
	cart.Items = kept

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}

func (s *cartStore) save(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(cart.UserID), raw, 0).Err()
}
