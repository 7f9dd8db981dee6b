package analytics

import (
	"context"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/inventory"
	"github.com/devstock/ledger-api/internal/application/sales"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

const recentSalesLimit = 10

// DashboardUseCase arma el panel del dueño: recaudado, por cobrar, alertas
// de stock y flujo reciente de ventas. Todo se recalcula desde el store en
// cada consulta; no hay acumuladores en memoria que puedan derivar.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	inventoryUC   *inventory.InventoryUseCase
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, saleRepo repository.SaleRepository, inventoryUC *inventory.InventoryUseCase) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, saleRepo: saleRepo, inventoryUC: inventoryUC}
}

// Dashboard agrega el estado actual del tenant.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, tenantID string) (*dto.DashboardResponse, error) {
	totals, err := uc.analyticsRepo.GetDashboardTotals(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	alerts, err := uc.inventoryUC.StockAlerts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.saleRepo.ListByTenant(ctx, tenantID, recentSalesLimit, 0)
	if err != nil {
		return nil, err
	}

	recentOut := make([]dto.SaleResponse, 0, len(recent))
	for _, s := range recent {
		recentOut = append(recentOut, *sales.ToSaleResponse(s))
	}
	return &dto.DashboardResponse{
		TotalCollected:  totals.TotalCollected,
		TotalReceivable: totals.TotalReceivable,
		CriticalStock:   totals.CriticalStock,
		StockAlerts:     alerts,
		RecentSales:     recentOut,
	}, nil
}
