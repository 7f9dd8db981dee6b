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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Toda consulta filtra por tenant_id: el aislamiento entre tiendas se
// refuerza también en esta capa, no solo en los usecases.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, tenant_id, name, unit_price, stock_quantity, image_ref, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.UnitPrice, &p.StockQuantity,
		&p.ImageRef, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (
			id, tenant_id, name, unit_price, stock_quantity, image_ref,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.TenantID, product.Name, product.UnitPrice,
		product.StockQuantity, product.ImageRef, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByTenantAndID obtiene un producto de la tienda. (nil, nil) si no existe.
func (r *ProductRepo) GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2`
	product, err := scanProduct(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Update reescribe los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, unit_price = $4, stock_quantity = $5, image_ref = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		product.TenantID, product.ID, product.Name, product.UnitPrice,
		product.StockQuantity, product.ImageRef, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock resta qty en un solo UPDATE condicionado a que alcance el
// stock. La condición viaja en el WHERE: dos ventas concurrentes del último
// ítem serializan en la DB y solo una gana. Si no afectó filas, una lectura
// posterior distingue producto inexistente de stock insuficiente.
func (r *ProductRepo) DecrementStock(ctx context.Context, tenantID, id string, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2 AND stock_quantity >= $3
		RETURNING stock_quantity`
	var remaining int
	err := r.q.QueryRow(ctx, query, tenantID, id, qty, time.Now().UTC()).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	product, err := r.GetByTenantAndID(ctx, tenantID, id)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// ListByTenant lista los productos de la tienda; nameFilter "" devuelve todos.
func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID, nameFilter string) ([]*entity.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query, tenantID, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Delete elimina un producto de la tienda.
func (r *ProductRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
