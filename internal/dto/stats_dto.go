package dto

import "github.com/shopspring/decimal"

type SalesPeriod struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type DailySales struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type AdminStatsResponse struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SalesToday    SalesPeriod     `json:"sales_today"`
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	SalesChart    []DailySales    `json:"sales_chart"`
}

type UserStatsResponse struct {
	SalesToday SalesPeriod `json:"sales_today"`
	SalesWeek  SalesPeriod `json:"sales_week"`
}
