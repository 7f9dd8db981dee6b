package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardTotals resultado crudo de los agregados del dashboard.
// Se recalcula completo en cada consulta: sin contadores incrementales
// que puedan derivar respecto al ledger.
type DashboardTotals struct {
	TotalCollected  decimal.Decimal // suma de paid_amount
	TotalReceivable decimal.Decimal // suma de debt_amount con deuda abierta
	CriticalStock   int             // productos con stock <= umbral crítico
}

// AnalyticsRepository define las consultas de lectura para el dashboard del dueño.
// Las implementaciones son read-only.
type AnalyticsRepository interface {
	GetDashboardTotals(ctx context.Context, tenantID string) (DashboardTotals, error)
}
