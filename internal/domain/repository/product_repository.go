package repository

import (
	"context"

	"github.com/devstock/ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Toda lectura y escritura exige tenantID: no existe operación que cruce tiendas.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock resta qty de forma atómica en la DB: un solo UPDATE
	// condicionado a stock_quantity >= qty. Devuelve el stock restante,
	// domain.ErrInsufficientStock si no alcanza o domain.ErrNotFound si el
	// producto no existe en ese tenant. Nunca lee-y-reescribe desde el cliente.
	DecrementStock(ctx context.Context, tenantID, id string, qty int) (int, error)
	// ListByTenant lista productos de la tienda; nameFilter "" devuelve todos.
	ListByTenant(ctx context.Context, tenantID, nameFilter string) ([]*entity.Product, error)
	Delete(ctx context.Context, tenantID, id string) error
}
