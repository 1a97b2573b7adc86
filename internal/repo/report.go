package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

// ordersInRange scopes a query to non-cancelled orders inside the
// inclusive date-only range.
func ordersInRange(q *gorm.DB, from, to *time.Time) *gorm.DB {
	q = q.Where("orders.status <> ?", models.StatusCancelled)
	if from != nil {
		q = q.Where("orders.created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("orders.created_at < ?", to.Add(24*time.Hour))
	}
	return q
}

func (r *GormRepo) OrderTotals(ctx context.Context, from, to *time.Time) (revenue int64, count int64, err error) {
	var row struct {
		Revenue int64
		Count   int64
	}
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	err = ordersInRange(q, from, to).
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Revenue, row.Count, nil
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context, from, to *time.Time) ([]transport.StatusCount, error) {
	var rows []transport.StatusCount
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	err := ordersInRange(q, from, to).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) CountOrdersByPaymentMethod(ctx context.Context, from, to *time.Time) ([]transport.PaymentCount, error) {
	var rows []transport.PaymentCount
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	err := ordersInRange(q, from, to).
		Select("payment_method, COUNT(*) AS count").
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts groups by the snapshotted line name, not live product
// identity, so renamed or deleted products aggregate under the name
// they were sold as.
func (r *GormRepo) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]transport.ProductSales, error) {
	var rows []transport.ProductSales
	q := r.DB.WithContext(ctx).
		Table("order_lines").
		Joins("JOIN orders ON orders.id = order_lines.order_id")
	err := ordersInRange(q, from, to).
		Select("order_lines.product_name AS product_name, SUM(order_lines.quantity) AS quantity").
		Group("order_lines.product_name").
		Order("SUM(order_lines.quantity) DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
