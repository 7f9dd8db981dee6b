package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest registro de una venta, con pago total o parcial.
type RecordSaleRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
}

// SaleResponse venta registrada (los montos son snapshot del momento de venta).
type SaleResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DebtAmount  decimal.Decimal `json:"debt_amount"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	SellerEmail string          `json:"seller_email"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	SettledAt   *time.Time      `json:"settled_at,omitempty"`
}

// ClientDebtSummary deuda acumulada de un cliente con sus ventas pendientes.
// La clave es el nombre tal como se tecleó: dos clientes homónimos se
// agrupan juntos (limitación aceptada del modelo).
type ClientDebtSummary struct {
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	TotalDebt   decimal.Decimal `json:"total_debt"`
	Items       []SaleResponse  `json:"items"`
}
