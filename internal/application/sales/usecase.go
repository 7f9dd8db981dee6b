package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/event"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

// SalesUseCase es el ledger de transacciones: registra ventas con pago
// parcial o total, salda deudas y agrega las cuentas por cobrar.
type SalesUseCase struct {
	txRunner  TxRunner
	saleRepo  repository.SaleRepository
	publisher event.Publisher
}

// NewSalesUseCase construye el caso de uso de ventas.
func NewSalesUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, publisher event.Publisher) *SalesUseCase {
	return &SalesUseCase{txRunner: txRunner, saleRepo: saleRepo, publisher: publisher}
}

// RecordSale registra una venta en una sola unidad atómica: decremento
// condicional de stock + inserción de la venta, ambos dentro de la misma
// transacción. Si el stock no alcanza, no queda ningún efecto parcial.
// El precio y el nombre del producto se copian al registro: cambios
// posteriores del producto no alteran el histórico.
func (uc *SalesUseCase) RecordSale(ctx context.Context, tenantID, sellerEmail string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 || in.PaidAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.ClientPhone) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByTenantAndID(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, err := products.DecrementStock(ctx, tenantID, product.ID, in.Quantity); err != nil {
			return err
		}

		total := product.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		// PaidAmount se acota al total: el invariante paid + debt == total
		// vale siempre, también con un pago en exceso.
		paid := in.PaidAmount
		if paid.GreaterThan(total) {
			paid = total
		}
		debt := total.Sub(paid)
		status := entity.SaleStatusNoDebt
		if debt.GreaterThan(decimal.Zero) {
			status = entity.SaleStatusOpenDebt
		}
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    in.Quantity,
			TotalPrice:  total,
			PaidAmount:  paid,
			DebtAmount:  debt,
			ClientName:  strings.TrimSpace(in.ClientName),
			ClientPhone: strings.TrimSpace(in.ClientPhone),
			SellerEmail: sellerEmail,
			Status:      status,
			CreatedAt:   now,
		}
		return sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(tenantID, event.KindProducts, event.OpUpdated, in.ProductID)
	uc.publish(tenantID, event.KindSales, event.OpCreated, sale.ID)
	return ToSaleResponse(sale), nil
}

// SettleDebt aplica la transición open-debt -> settled. Volver a saldar una
// venta ya saldada (o una que nunca tuvo deuda) es un no-op exitoso: el
// caller no puede distinguir "ya la saldó otro" de una carrera propia.
func (uc *SalesUseCase) SettleDebt(ctx context.Context, tenantID, saleID string) (*dto.SaleResponse, error) {
	settled, err := uc.saleRepo.Settle(ctx, tenantID, saleID, time.Now())
	if err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByTenantAndID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if settled {
		uc.publish(tenantID, event.KindSales, event.OpUpdated, saleID)
	}
	return ToSaleResponse(sale), nil
}

// ListSales devuelve las ventas del tenant, más recientes primero.
func (uc *SalesUseCase) ListSales(ctx context.Context, tenantID string, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *ToSaleResponse(s))
	}
	return out, nil
}

// DebtsByClient agrega las ventas con deuda abierta por nombre de cliente.
// Es una reducción pura sobre el snapshot actual (sin contadores mantenidos
// aparte). Los clientes aparecen en el orden de su deuda más antigua.
func (uc *SalesUseCase) DebtsByClient(ctx context.Context, tenantID string) ([]dto.ClientDebtSummary, error) {
	open, err := uc.saleRepo.ListOpenDebts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var summaries []dto.ClientDebtSummary
	for _, s := range open {
		i, ok := index[s.ClientName]
		if !ok {
			i = len(summaries)
			index[s.ClientName] = i
			summaries = append(summaries, dto.ClientDebtSummary{
				ClientName:  s.ClientName,
				ClientPhone: s.ClientPhone,
				TotalDebt:   decimal.Zero,
			})
		}
		summaries[i].TotalDebt = summaries[i].TotalDebt.Add(s.DebtAmount)
		summaries[i].Items = append(summaries[i].Items, *ToSaleResponse(s))
	}
	return summaries, nil
}

func (uc *SalesUseCase) publish(tenantID string, kind event.Kind, op event.Op, id string) {
	if uc.publisher == nil {
		return
	}
	uc.publisher.Publish(event.Event{
		TenantID: tenantID,
		Kind:     kind,
		Op:       op,
		EntityID: id,
		At:       time.Now(),
	})
}

// ToSaleResponse mapea la entidad al DTO de respuesta.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		ProductName: s.ProductName,
		UnitPrice:   s.UnitPrice,
		Quantity:    s.Quantity,
		TotalPrice:  s.TotalPrice,
		PaidAmount:  s.PaidAmount,
		DebtAmount:  s.DebtAmount,
		ClientName:  s.ClientName,
		ClientPhone: s.ClientPhone,
		SellerEmail: s.SellerEmail,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		SettledAt:   s.SettledAt,
	}
}
