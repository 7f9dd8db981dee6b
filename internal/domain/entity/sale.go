package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta respecto a la deuda del cliente.
const (
	SaleStatusOpenDebt = "open-debt" // queda saldo por cobrar
	SaleStatusNoDebt   = "no-debt"   // pagada completa al momento de la venta
	SaleStatusSettled  = "settled"   // la deuda fue saldada después
)

// Sale representa una venta registrada. Inmutable salvo la transición
// open-debt -> settled. ProductName y UnitPrice son copia al momento de la
// venta: renombrar o cambiar el precio del producto no altera el histórico.
// Invariante: PaidAmount + DebtAmount == TotalPrice en todo momento; una vez
// settled, DebtAmount queda fijado en 0 y no se recalcula.
type Sale struct {
	ID          string
	TenantID    string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	TotalPrice  decimal.Decimal
	PaidAmount  decimal.Decimal
	DebtAmount  decimal.Decimal
	ClientName  string
	ClientPhone string
	SellerEmail string
	Status      string
	CreatedAt   time.Time
	SettledAt   *time.Time // nil mientras no se salde
}

// HasOpenDebt indica si la venta tiene saldo pendiente de cobro.
func (s *Sale) HasOpenDebt() bool {
	return s.Status == SaleStatusOpenDebt && s.DebtAmount.GreaterThan(decimal.Zero)
}
