package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados del panel del dueño, recalculados por consulta.
type DashboardResponse struct {
	TotalCollected  decimal.Decimal `json:"total_collected"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	CriticalStock   int             `json:"critical_stock"`
	StockAlerts     []StockAlert    `json:"stock_alerts"`
	RecentSales     []SaleResponse  `json:"recent_sales"`
}
