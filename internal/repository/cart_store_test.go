package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartStore(t *testing.T) CartStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartStore(client)
}

func TestCartStoreEmptyCart(t *testing.T) {
	store := newTestCartStore(t)

	cart, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice())
}

func TestCartStoreAddItem(t *testing.T) {
	store := newTestCartStore(t)

	cart, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 19.99)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-1", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.NotEmpty(t, cart.Items[0].ID)
	assert.InDelta(t, 39.98, cart.TotalPrice(), 0.001)
}

func TestCartStoreAddMergesSameProduct(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), "user-1", "prod-1", 1, 10)
	require.NoError(t, err)
	cart, err := store.AddItem(context.Background(), "user-1", "prod-1", 3, 10)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCartStoreSurvivesRoundtrip(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)
	_, err = store.AddItem(context.Background(), "user-1", "prod-2", 1, 5)
	require.NoError(t, err)

	cart, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.InDelta(t, 25, cart.TotalPrice(), 0.001)
}

func TestCartStoreUpdateItem(t *testing.T) {
	store := newTestCartStore(t)

	cart, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	updated, err := store.UpdateItem(context.Background(), "user-1", itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

func TestCartStoreUpdateUnknownItem(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)

	_, err = store.UpdateItem(context.Background(), "user-1", "no-such-item", 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartStoreRemoveItem(t *testing.T) {
	store := newTestCartStore(t)

	cart, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)

	after, err := store.RemoveItem(context.Background(), "user-1", cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)
}

func TestCartStoreRemoveUnknownItem(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.RemoveItem(context.Background(), "user-1", "no-such-item")
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartStoreClear(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)
	require.NoError(t, store.Clear(context.Background(), "user-1"))

	cart, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartStoreIsolatedPerUser(t *testing.T) {
	store := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), "user-1", "prod-1", 2, 10)
	require.NoError(t, err)

	other, err := store.Get(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}
