package service

import (
	"context"
	"time"

	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

const topProductsLimit = 5

type ReportService struct {
	Repo *repo.GormRepo
}

// Stats summarizes non-cancelled orders in the inclusive date range.
// Aggregation groups lines by their snapshotted product name, so
// renamed or deleted products still count under the name they were
// sold as.
func (s *ReportService) Stats(ctx context.Context, from, to *time.Time) (*transport.SalesStats, error) {
	revenue, count, err := s.Repo.OrderTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.Repo.CountOrdersByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byPayment, err := s.Repo.CountOrdersByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	top, err := s.Repo.TopProducts(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}

	stats := &transport.SalesStats{
		From:            from,
		To:              to,
		TotalRevenue:    revenue,
		OrderCount:      count,
		ByStatus:        byStatus,
		ByPaymentMethod: byPayment,
		TopProducts:     top,
	}
	if count > 0 {
		stats.AverageOrder = float64(revenue) / float64(count)
	}
	return stats, nil
}
