package repository

import (
	"context"
	"time"

	"github.com/devstock/ledger-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// ListByTenant devuelve las ventas más recientes primero.
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Sale, error)
	// ListOpenDebts devuelve ventas con deuda pendiente, ordenadas por fecha
	// ascendente (para el detalle por cliente).
	ListOpenDebts(ctx context.Context, tenantID string) ([]*entity.Sale, error)
	// Settle aplica la transición open-debt -> settled en un solo UPDATE
	// condicionado al estado actual. Devuelve false si ninguna fila cambió
	// (venta inexistente, ya saldada o sin deuda); el caller decide qué significa.
	Settle(ctx context.Context, tenantID, id string, settledAt time.Time) (bool, error)
}
