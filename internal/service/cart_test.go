package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

func TestAddItemAccumulatesQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza Napolitana", 900, true)

	_, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 2})
	require.NoError(t, err)

	view, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(5), view.Items[0].Quantity)
	assert.Equal(t, int64(4500), view.Items[0].Subtotal)
	assert.Equal(t, int64(4500), view.Total)
}

func TestAddItemValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)

	cases := []struct {
		name string
		req  transport.AddItemRequest
	}{
		{"missing product", transport.AddItemRequest{Quantity: 1}},
		{"zero quantity", transport.AddItemRequest{ProductID: pizza.ID, Quantity: 0}},
		{"negative quantity", transport.AddItemRequest{ProductID: pizza.ID, Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Cart.AddItem(ctx, user.ID, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ana")

	_, err := env.Cart.AddItem(context.Background(), user.ID, transport.AddItemRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemUnavailableProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ana")
	soldOut := env.createProduct(t, "Empanada", 200, false)

	_, err := env.Cart.AddItem(context.Background(), user.ID, transport.AddItemRequest{ProductID: soldOut.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateItemOverwritesQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)

	view, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 4})
	require.NoError(t, err)
	itemID := view.Items[0].ID

	view, err = env.Cart.UpdateItem(ctx, user.ID, itemID, transport.UpdateItemRequest{Quantity: 7})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(7), view.Items[0].Quantity)
}

func TestUpdateItemNonPositiveQuantityDeletesLine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)

	for _, quantity := range []int{0, -3} {
		t.Run(fmt.Sprintf("quantity %d", quantity), func(t *testing.T) {
			view, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 2})
			require.NoError(t, err)
			itemID := view.Items[0].ID

			view, err = env.Cart.UpdateItem(ctx, user.ID, itemID, transport.UpdateItemRequest{Quantity: quantity})
			require.NoError(t, err)
			assert.Empty(t, view.Items)
			assert.Zero(t, view.Total)
		})
	}
}

func TestUpdateItemNotInCallersCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "ana")
	bruno := env.createUser(t, "bruno")
	pizza := env.createProduct(t, "Pizza", 900, true)

	view, err := env.Cart.AddItem(ctx, ana.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = env.Cart.UpdateItem(ctx, bruno.ID, view.Items[0].ID, transport.UpdateItemRequest{Quantity: 2})
	assert.ErrorIs(t, err, ErrNotFound)

	// ana's line is untouched
	view, err = env.Cart.View(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)
	soda := env.createProduct(t, "Bebida", 150, true)

	_, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 1})
	require.NoError(t, err)
	view, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: soda.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	view, err = env.Cart.RemoveItem(ctx, user.ID, view.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, soda.ID, view.Items[0].Product.ID)

	_, err = env.Cart.RemoveItem(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearCartIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)

	_, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 3})
	require.NoError(t, err)

	view, err := env.Cart.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = env.Cart.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartViewUsesLivePrices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ana")
	pizza := env.createProduct(t, "Pizza", 900, true)

	_, err := env.Cart.AddItem(ctx, user.ID, transport.AddItemRequest{ProductID: pizza.ID, Quantity: 2})
	require.NoError(t, err)

	newPrice := int64(1100)
	_, err = env.Catalog.PatchProduct(ctx, pizza.ID, transport.PatchProductRequest{Price: &newPrice})
	require.NoError(t, err)

	view, err := env.Cart.View(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2200), view.Items[0].Subtotal)
	assert.Equal(t, int64(2200), view.Total)
}

func TestViewCreatesCartOnFirstUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.Cart.View(ctx, 42)
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Empty(t, view.Items)

	again, err := env.Cart.View(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, view.ID, again.ID)
}
