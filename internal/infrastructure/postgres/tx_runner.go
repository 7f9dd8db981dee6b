package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devstock/ledger-api/internal/application/auth"
	"github.com/devstock/ledger-api/internal/application/sales"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner and auth.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de productos y ventas atados a la tx
// y hace Commit o Rollback. Es la unidad atómica de registrar-venta:
// decremento de stock e inserción de la venta viajan juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(productRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIdentity inicia una transacción con repos de cuentas e identidades
// (registro de dueño y materialización tardía de empleados).
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	identities repository.IdentityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewAccountRepository(tx)
	identityRepo := NewIdentityRepository(tx)

	if err := fn(accountRepo, identityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
