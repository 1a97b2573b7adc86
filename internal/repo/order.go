package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/models"
)

var ErrEmptyCart = errors.New("cart has no items")

// CreateOrderFromCart converts the cart into an order as one transaction:
// total from live prices, per-line name/price snapshot, cart clear. The
// cart row is touched first so concurrent checkouts of the same cart
// serialize on its row lock; the loser then reads an empty cart.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, cart *models.Cart, paymentMethod, deliveryAddress string) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("id ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total int64
		lines := make([]models.OrderLine, 0, len(items))
		for _, it := range items {
			if it.Product == nil {
				return gorm.ErrRecordNotFound
			}
			total += it.Product.Price * int64(it.Quantity)
			productID := it.ProductID
			lines = append(lines, models.OrderLine{
				ProductID:   &productID,
				ProductName: it.Product.Name,
				UnitPrice:   it.Product.Price,
				Quantity:    it.Quantity,
			})
		}

		order = models.Order{
			UserID:          cart.UserID,
			Total:           total,
			Status:          models.InitialStatus(paymentMethod),
			PaymentMethod:   paymentMethod,
			DeliveryAddress: deliveryAddress,
			Lines:           lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByStatus returns the FIFO queue the kitchen and dispatch
// screens work through.
func (r *GormRepo) ListOrdersByStatus(ctx context.Context, statuses []string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("status IN ?", statuses).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
