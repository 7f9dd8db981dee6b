package inventory

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

// InventoryUseCase gestiona el inventario de una tienda: altas, ediciones,
// bajas y el decremento atómico de stock. Cada mutación confirmada publica
// un evento de cambio para las suscripciones en vivo.
type InventoryUseCase struct {
	productRepo repository.ProductRepository
	publisher   event.Publisher
}

// NewInventoryUseCase construye el caso de uso de inventario.
func NewInventoryUseCase(productRepo repository.ProductRepository, publisher event.Publisher) *InventoryUseCase {
	return &InventoryUseCase{productRepo: productRepo, publisher: publisher}
}

// CreateProduct valida y persiste un producto nuevo del tenant.
func (uc *InventoryUseCase) CreateProduct(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitPrice.LessThan(decimal.Zero) || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          name,
		UnitPrice:     in.UnitPrice,
		StockQuantity: in.StockQuantity,
		ImageRef:      in.ImageRef,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.publish(tenantID, event.OpCreated, product.ID)
	return ToProductResponse(product), nil
}

// UpdateProduct aplica una edición parcial: solo los campos presentes se
// sobreescriben. El TenantID de un producto existente nunca cambia.
func (uc *InventoryUseCase) UpdateProduct(ctx context.Context, tenantID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByTenantAndID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockQuantity = *in.StockQuantity
	}
	if in.ImageRef != nil {
		product.ImageRef = *in.ImageRef
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.publish(tenantID, event.OpUpdated, product.ID)
	return ToProductResponse(product), nil
}

// DeleteProduct elimina el producto. Las ventas históricas conservan su
// snapshot de nombre y precio, así que no hay cascada.
func (uc *InventoryUseCase) DeleteProduct(ctx context.Context, tenantID, productID string) error {
	product, err := uc.productRepo.GetByTenantAndID(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.productRepo.Delete(ctx, tenantID, productID); err != nil {
		return err
	}
	uc.publish(tenantID, event.OpDeleted, productID)
	return nil
}

// DecrementStock resta stock de forma atómica (un solo UPDATE condicional en
// la DB). Dos vendedores disputando la última unidad: exactamente uno gana.
func (uc *InventoryUseCase) DecrementStock(ctx context.Context, tenantID, productID string, qty int) (int, error) {
	if qty < 1 {
		return 0, domain.ErrInvalidInput
	}
	remaining, err := uc.productRepo.DecrementStock(ctx, tenantID, productID, qty)
	if err != nil {
		return 0, err
	}
	uc.publish(tenantID, event.OpUpdated, productID)
	return remaining, nil
}

// ListProducts lista el inventario del tenant con filtro opcional por nombre.
func (uc *InventoryUseCase) ListProducts(ctx context.Context, tenantID, nameFilter string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListByTenant(ctx, tenantID, nameFilter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// StockAlerts devuelve los productos en nivel crítico o bajo.
func (uc *InventoryUseCase) StockAlerts(ctx context.Context, tenantID string) ([]dto.StockAlert, error) {
	products, err := uc.productRepo.ListByTenant(ctx, tenantID, "")
	if err != nil {
		return nil, err
	}
	var alerts []dto.StockAlert
	for _, p := range products {
		level := entity.ClassifyStock(p.StockQuantity)
		if level == entity.StockNormal {
			continue
		}
		alerts = append(alerts, dto.StockAlert{
			ProductID:     p.ID,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			Level:         level,
		})
	}
	return alerts, nil
}

func (uc *InventoryUseCase) publish(tenantID string, op event.Op, id string) {
	if uc.publisher == nil {
		return
	}
	uc.publisher.Publish(event.Event{
		TenantID: tenantID,
		Kind:     event.KindProducts,
		Op:       op,
		EntityID: id,
		At:       time.Now(),
	})
}

// ToProductResponse mapea la entidad al DTO con el nivel de stock derivado.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		StockLevel:    entity.ClassifyStock(p.StockQuantity),
		ImageRef:      p.ImageRef,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
