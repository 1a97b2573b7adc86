package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/mykafka"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// View returns the cart with subtotals computed from live product
// prices. Nothing here is persisted; contrast with Order, whose total
// is frozen at checkout.
func (s *CartService) View(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, userID uint, req transport.AddItemRequest) (*transport.CartView, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
	}
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, fmt.Errorf("%w: product %q is not available", ErrUnavailable, product.Name)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.AddItem(ctx, cart.ID, req.ProductID, uint(req.Quantity))
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicUserEvents, fmt.Sprint(userID), map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   item.Quantity,
	})

	return s.buildView(ctx, cart)
}

// UpdateItem overwrites the quantity exactly; a quantity of zero or
// less deletes the line. Contrast with AddItem, which accumulates.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, req transport.UpdateItemRequest) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		err = s.Repo.DeleteCartItem(ctx, item.ID)
	} else {
		err = s.Repo.SetItemQuantity(ctx, item.ID, uint(req.Quantity))
	}
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.DeleteCartItem(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

// Clear is idempotent on an empty cart.
func (s *CartService) Clear(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

func (s *CartService) buildView(ctx context.Context, cart *models.Cart) (*transport.CartView, error) {
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := &transport.CartView{
		ID:    cart.ID,
		Items: make([]transport.CartItemView, 0, len(items)),
	}
	for _, it := range items {
		var subtotal int64
		if it.Product != nil {
			subtotal = it.Product.Price * int64(it.Quantity)
		}
		view.Items = append(view.Items, transport.CartItemView{
			ID:       it.ID,
			Product:  it.Product,
			Quantity: it.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}
	return view, nil
}
