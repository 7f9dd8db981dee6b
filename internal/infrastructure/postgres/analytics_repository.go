package postgres

import (
	"context"
	"fmt"

	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para el dashboard del dueño.
// Los totales se recalculan completos con agregados SQL en cada consulta.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardTotals calcula en la DB el total cobrado, el total por cobrar
// y la cantidad de productos con stock crítico para el tenant.
func (r *AnalyticsRepo) GetDashboardTotals(ctx context.Context, tenantID string) (repository.DashboardTotals, error) {
	var totals repository.DashboardTotals

	query := `
		SELECT
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(debt_amount) FILTER (WHERE status = $2), 0)
		FROM sales
		WHERE tenant_id = $1`
	err := r.q.QueryRow(ctx, query, tenantID, entity.SaleStatusOpenDebt).
		Scan(&totals.TotalCollected, &totals.TotalReceivable)
	if err != nil {
		return totals, fmt.Errorf("dashboard totals: %w", err)
	}

	stockQuery := `
		SELECT COUNT(*) FROM products
		WHERE tenant_id = $1 AND stock_quantity <= $2`
	err = r.q.QueryRow(ctx, stockQuery, tenantID, entity.StockCriticalThreshold).
		Scan(&totals.CriticalStock)
	if err != nil {
		return totals, fmt.Errorf("critical stock count: %w", err)
	}
	return totals, nil
}
