package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `
	id, tenant_id, product_name, unit_price, quantity, total_price,
	paid_amount, debt_amount, client_name, client_phone, seller_email,
	status, created_at, settled_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.TenantID, &s.ProductName, &s.UnitPrice, &s.Quantity, &s.TotalPrice,
		&s.PaidAmount, &s.DebtAmount, &s.ClientName, &s.ClientPhone, &s.SellerEmail,
		&s.Status, &s.CreatedAt, &s.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una venta. Se invoca dentro de la misma tx que el
// decremento de stock (TxRunner.Run).
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (
			id, tenant_id, product_name, unit_price, quantity, total_price,
			paid_amount, debt_amount, client_name, client_phone, seller_email,
			status, created_at, settled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.ProductName, sale.UnitPrice, sale.Quantity,
		sale.TotalPrice, sale.PaidAmount, sale.DebtAmount, sale.ClientName,
		sale.ClientPhone, sale.SellerEmail, sale.Status, sale.CreatedAt, sale.SettledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByTenantAndID obtiene una venta de la tienda. (nil, nil) si no existe.
func (r *SaleRepo) GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	query := `SELECT` + saleColumns + ` FROM sales WHERE tenant_id = $1 AND id = $2`
	sale, err := scanSale(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// ListByTenant devuelve las ventas más recientes primero, con paginación.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListOpenDebts devuelve las ventas con deuda pendiente, más antiguas primero.
func (r *SaleRepo) ListOpenDebts(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	query := `
		SELECT` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, tenantID, entity.SaleStatusOpenDebt)
	if err != nil {
		return nil, fmt.Errorf("list open debts: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// Settle aplica la transición open-debt -> settled en un solo UPDATE
// condicionado al estado actual: dos settles concurrentes serializan y solo
// uno afecta la fila. Devuelve false si ninguna fila cambió.
func (r *SaleRepo) Settle(ctx context.Context, tenantID, id string, settledAt time.Time) (bool, error) {
	query := `
		UPDATE sales
		SET status = $4, debt_amount = 0,
		    paid_amount = total_price, settled_at = $5
		WHERE tenant_id = $1 AND id = $2 AND status = $3`
	tag, err := r.q.Exec(ctx, query,
		tenantID, id, entity.SaleStatusOpenDebt, entity.SaleStatusSettled, settledAt,
	)
	if err != nil {
		return false, fmt.Errorf("settle sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var sales []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
