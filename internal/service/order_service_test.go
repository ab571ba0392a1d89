package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

func TestPriceBreakdown(t *testing.T) {
	cases := []struct {
		name         string
		itemsPrice   float64
		wantTax      float64
		wantShipping float64
		wantTotal    float64
	}{
		{name: "below free shipping", itemsPrice: 50, wantTax: 7.5, wantShipping: 10, wantTotal: 67.5},
		{name: "above free shipping", itemsPrice: 200, wantTax: 30, wantShipping: 0, wantTotal: 230},
		{name: "at threshold still pays shipping", itemsPrice: 100, wantTax: 15, wantShipping: 10, wantTotal: 125},
		{name: "empty", itemsPrice: 0, wantTax: 0, wantShipping: 10, wantTotal: 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tax, shipping, total := PriceBreakdown(tc.itemsPrice)
			assert.InDelta(t, tc.wantTax, tax, 0.001)
			assert.InDelta(t, tc.wantShipping, shipping, 0.001)
			assert.InDelta(t, tc.wantTotal, total, 0.001)
		})
	}
}

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]domain.Product, int64, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListCategories(_ context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeProductRepo) TopRated(_ context.Context, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) error {
	product, ok := r.products[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if product.Stock+delta < 0 {
		return pgx.ErrNoRows
	}
	product.Stock += delta
	return nil
}

func (r *fakeProductRepo) SetRating(_ context.Context, id string, rating float64, numReviews int) error {
	product, ok := r.products[id]
	if !ok {
		return pgx.ErrNoRows
	}
	product.Rating = rating
	product.NumReviews = numReviews
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context, _, _ int) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) TotalSales(_ context.Context) (float64, error) {
	var sum float64
	for _, order := range r.orders {
		sum += order.TotalPrice
	}
	return sum, nil
}

func (r *fakeOrderRepo) Recent(_ context.Context, _ int) ([]domain.Order, error) {
	return r.ListAll(context.Background(), 0, 0)
}

type memoryCartStore struct {
	carts map[string]*domain.Cart
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: map[string]*domain.Cart{}}
}

func (s *memoryCartStore) Get(_ context.Context, userID string) (*domain.Cart, error) {
	cart, ok := s.carts[userID]
	if !ok {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	return cart, nil
}

func (s *memoryCartStore) AddItem(_ context.Context, userID, productID string, quantity int, unitPrice float64) (*domain.Cart, error) {
	cart, _ := s.Get(context.Background(), userID)
	cart.Items = append(cart.Items, domain.CartItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		Price:     unitPrice,
	})
	s.carts[userID] = cart
	return cart, nil
}

func (s *memoryCartStore) UpdateItem(_ context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	cart, _ := s.Get(context.Background(), userID)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			return cart, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (s *memoryCartStore) RemoveItem(_ context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, _ := s.Get(context.Background(), userID)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return cart, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (s *memoryCartStore) Clear(_ context.Context, userID string) error {
	delete(s.carts, userID)
	return nil
}

type orderFixture struct {
	service    *OrderService
	products   *fakeProductRepo
	orders     *fakeOrderRepo
	carts      *memoryCartStore
	users      *fakeUserRepo
	dispatcher events.Dispatcher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	carts := newMemoryCartStore()
	users := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewOrderService(OrderDependencies{
		OrderRepo:   orders,
		ProductRepo: products,
		CartStore:   carts,
		UserRepo:    users,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
	return &orderFixture{service: svc, products: products, orders: orders, carts: carts, users: users, dispatcher: dispatcher}
}

func (f *orderFixture) seedProduct(t *testing.T, name string, price float64, stock int) *domain.Product {
	t.Helper()
	product := &domain.Product{Name: name, Description: "d", Category: "c", Price: price, Stock: stock}
	require.NoError(t, f.products.Create(context.Background(), product))
	return product
}

var testAddress = domain.Address{Street: "1 Main St", City: "Springfield", ZipCode: "12345", Country: "US"}

func TestCreateOrderFromCart(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Widget", 25, 10)
	_, err := f.carts.AddItem(context.Background(), "user-1", product.ID, 2, product.Price)
	require.NoError(t, err)

	order, err := f.service.CreateOrder(context.Background(), "user-1", testAddress, "card")
	require.NoError(t, err)

	assert.InDelta(t, 50, order.ItemsPrice, 0.001)
	assert.InDelta(t, 7.5, order.TaxPrice, 0.001)
	assert.InDelta(t, 10, order.ShippingPrice, 0.001)
	assert.InDelta(t, 67.5, order.TotalPrice, 0.001)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)

	// Stock decremented and cart cleared.
	stored, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)

	cart, err := f.carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.CreateOrder(context.Background(), "user-1", testAddress, "card")
	assertStatus(t, err, 400)
	assert.Equal(t, "Cart is empty", apperrors.ToDomainError(err).Message)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Widget", 25, 1)
	_, err := f.carts.AddItem(context.Background(), "user-1", product.ID, 3, product.Price)
	require.NoError(t, err)

	_, err = f.service.CreateOrder(context.Background(), "user-1", testAddress, "card")
	assertStatus(t, err, 400)
	assert.Equal(t, "Not enough stock for Widget", apperrors.ToDomainError(err).Message)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	f := newOrderFixture(t)
	user := &domain.User{Email: "jo@example.com"}
	require.NoError(t, f.users.Create(context.Background(), user))
	product := f.seedProduct(t, "Widget", 150, 5)
	_, err := f.carts.AddItem(context.Background(), user.ID, product.ID, 1, product.Price)
	require.NoError(t, err)

	var got events.Event
	f.dispatcher.Subscribe(events.EventOrderCreated, func(_ context.Context, event events.Event) error {
		got = event
		return nil
	})

	order, err := f.service.CreateOrder(context.Background(), user.ID, testAddress, "card")
	require.NoError(t, err)

	payload, ok := got.Payload.(events.OrderCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, "jo@example.com", payload.Email)
	assert.InDelta(t, order.TotalPrice, payload.TotalPrice, 0.001)
}

func TestGetOrderOwnerOnly(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Widget", 25, 10)
	_, err := f.carts.AddItem(context.Background(), "user-1", product.ID, 1, product.Price)
	require.NoError(t, err)
	order, err := f.service.CreateOrder(context.Background(), "user-1", testAddress, "card")
	require.NoError(t, err)

	_, err = f.service.GetOrder(context.Background(), order.ID, "user-1", domain.RoleUser)
	assert.NoError(t, err)

	_, err = f.service.GetOrder(context.Background(), order.ID, "user-2", domain.RoleUser)
	assertStatus(t, err, 403)

	_, err = f.service.GetOrder(context.Background(), order.ID, "user-2", domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestUpdateStatusDeliveredStampsOrder(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Widget", 25, 10)
	_, err := f.carts.AddItem(context.Background(), "user-1", product.ID, 1, product.Price)
	require.NoError(t, err)
	order, err := f.service.CreateOrder(context.Background(), "user-1", testAddress, "card")
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, updated.IsDelivered)
	require.NotNil(t, updated.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *updated.DeliveredAt, time.Minute)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), "order-1", domain.OrderStatus("misplaced"))
	assertStatus(t, err, 400)
}
