package sales

import (
	"context"

	"github.com/devstock/ledger-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos de productos y ventas
// atados a ella. El registro de venta y el decremento de stock se confirman
// juntos o se revierte todo: nunca queda una venta sin su rebaja de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
