package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/mykafka"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// Checkout converts the caller's cart into an order. The repo runs the
// whole conversion in one transaction, so a failure leaves both cart
// and orders untouched.
func (s *OrderService) Checkout(ctx context.Context, userID uint, req transport.CheckoutRequest) (*models.Order, error) {
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, fmt.Errorf("%w: delivery_address required", ErrValidation)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.CreateOrderFromCart(ctx, cart, req.PaymentMethod, req.DeliveryAddress)
	if errors.Is(err, repo.ErrEmptyCart) {
		return nil, fmt.Errorf("%w: nothing to check out", ErrEmptyCart)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product no longer exists", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":           "order_created",
		"order_id":       order.ID,
		"user_id":        userID,
		"total":          order.Total,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
	})

	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

// ListActive is the cashier queue: orders waiting for confirmation or
// already in the kitchen, oldest first.
func (s *OrderService) ListActive(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrdersByStatus(ctx, []string{models.StatusPending, models.StatusPreparing})
}

// ListDispatch is the delivery queue: orders being prepared or on the
// road, oldest first.
func (s *OrderService) ListDispatch(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrdersByStatus(ctx, []string{models.StatusPreparing, models.StatusOnRoute})
}

// SetStatus overwrites the order status with any of the five recognized
// values. Staff may move an order anywhere, including backwards; the
// state graph is intentionally not enforced here.
func (s *OrderService) SetStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicOrderEvents, fmt.Sprint(orderID), map[string]any{
		"type":     "order_status_changed",
		"order_id": orderID,
		"status":   status,
	})

	return order, nil
}
