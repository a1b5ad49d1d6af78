package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Legeek117/projet-stock/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminStatsCacheKey = "stats:admin"
	statsCacheTTL      = 60 * time.Second
)

type StatsService interface {
	AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error)
}

// statsService runs the dashboard aggregations as raw SQL over the orders
// and products tables. The admin dashboard is cached in Redis for a short
// TTL; the per-user view is cheap enough to always hit the database.
type statsService struct {
	db        *gorm.DB
	rdb       *redis.Client
	threshold int
}

func NewStatsService(db *gorm.DB, rdb *redis.Client, lowStockThreshold int) StatsService {
	return &statsService{db: db, rdb: rdb, threshold: lowStockThreshold}
}

func (s *statsService) AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, adminStatsCacheKey).Bytes(); err == nil {
			var resp dto.AdminStatsResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	resp := &dto.AdminStatsResponse{
		TotalRevenue: decimal.Zero,
		SalesToday:   dto.SalesPeriod{Total: decimal.Zero},
		SalesChart:   []dto.DailySales{},
	}

	var revenue decimal.NullDecimal
	err := s.db.WithContext(ctx).Raw(
		`SELECT SUM(total_amount) FROM orders WHERE status != 'cancelled'`,
	).Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		resp.TotalRevenue = revenue.Decimal
	}

	today, err := s.salesPeriod(ctx, `created_at::date = CURRENT_DATE`)
	if err != nil {
		return nil, err
	}
	resp.SalesToday = *today

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products`,
	).Scan(&resp.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products WHERE stock_quantity < ?`, s.threshold,
	).Scan(&resp.LowStockCount).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Day   string
		Total decimal.Decimal
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(total_amount), 0)   AS total
		FROM orders
		WHERE status != 'cancelled'
		  AND created_at >= CURRENT_DATE - INTERVAL '6 days'
		GROUP BY day
		ORDER BY day ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		resp.SalesChart = append(resp.SalesChart, dto.DailySales{Date: r.Day, Total: r.Total})
	}

	// Populate cache, best effort
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), adminStatsCacheKey, b, statsCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *statsService) UserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error) {
	today, err := s.salesPeriod(ctx, `created_at::date = CURRENT_DATE AND user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	week, err := s.salesPeriod(ctx, `created_at >= CURRENT_DATE - INTERVAL '6 days' AND user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{SalesToday: *today, SalesWeek: *week}, nil
}

func (s *statsService) salesPeriod(ctx context.Context, where string, args ...interface{}) (*dto.SalesPeriod, error) {
	var row struct {
		Count int64
		Total decimal.NullDecimal
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS count, SUM(total_amount) AS total
		 FROM orders WHERE status != 'cancelled' AND `+where, args...,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	period := &dto.SalesPeriod{Count: row.Count, Total: decimal.Zero}
	if row.Total.Valid {
		period.Total = row.Total.Decimal
	}
	return period, nil
}
