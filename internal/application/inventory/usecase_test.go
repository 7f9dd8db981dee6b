package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/inventory"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/event"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByTenantAndID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.products[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return domain.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) DecrementStock(_ context.Context, tenantID, id string, qty int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.TenantID != tenantID {
		return 0, domain.ErrNotFound
	}
	if p.StockQuantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return p.StockQuantity, nil
}

func (f *fakeProductRepo) ListByTenant(_ context.Context, tenantID, nameFilter string) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, tenantID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

// capturingPublisher acumula los eventos publicados.
type capturingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturingPublisher) Publish(ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *capturingPublisher) all() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.events...)
}

const tenantA = "tenant-a"

func buildInventoryUseCase() (*inventory.InventoryUseCase, *fakeProductRepo, *capturingPublisher) {
	repo := newFakeProductRepo()
	pub := &capturingPublisher{}
	return inventory.NewInventoryUseCase(repo, pub), repo, pub
}

func TestCreateProduct_ValidaYPublica(t *testing.T) {
	uc, _, pub := buildInventoryUseCase()
	ctx := context.Background()

	out, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{
		Name:          "  Sac de riz  ",
		UnitPrice:     decimal.NewFromInt(100),
		StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sac de riz", out.Name, "el nombre se recorta")
	assert.Equal(t, entity.StockNormal, out.StockLevel)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, event.KindProducts, events[0].Kind)
	assert.Equal(t, event.OpCreated, events[0].Op)
	assert.Equal(t, tenantA, events[0].TenantID)
}

func TestCreateProduct_EntradaInvalida(t *testing.T) {
	uc, _, _ := buildInventoryUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{Name: "  ", UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{Name: "x", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{Name: "x", UnitPrice: decimal.NewFromInt(1), StockQuantity: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Edición parcial: solo los campos presentes cambian.
func TestUpdateProduct_Parcial(t *testing.T) {
	uc, _, _ := buildInventoryUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{
		Name:          "Sac de riz",
		UnitPrice:     decimal.NewFromInt(100),
		StockQuantity: 12,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(120)
	out, err := uc.UpdateProduct(ctx, tenantA, created.ID, dto.UpdateProductRequest{UnitPrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, out.UnitPrice.Equal(newPrice))
	assert.Equal(t, "Sac de riz", out.Name, "los campos ausentes no se tocan")
	assert.Equal(t, 12, out.StockQuantity)
}

func TestUpdateProduct_OtroTenantNoVe(t *testing.T) {
	uc, _, _ := buildInventoryUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{
		Name:      "Sac de riz",
		UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	name := "robado"
	_, err = uc.UpdateProduct(ctx, "tenant-b", created.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockAlerts_SoloCriticoYBajo(t *testing.T) {
	uc, _, _ := buildInventoryUseCase()
	ctx := context.Background()

	seed := func(name string, stock int) {
		t.Helper()
		_, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{
			Name:          name,
			UnitPrice:     decimal.NewFromInt(10),
			StockQuantity: stock,
		})
		require.NoError(t, err)
	}
	seed("critico", 3)
	seed("bajo", 8)
	seed("normal", 50)

	alerts, err := uc.StockAlerts(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	byName := make(map[string]string, len(alerts))
	for _, a := range alerts {
		byName[a.Name] = a.Level
	}
	assert.Equal(t, entity.StockCritical, byName["critico"])
	assert.Equal(t, entity.StockLow, byName["bajo"])
}

func TestDeleteProduct_PublicaBaja(t *testing.T) {
	uc, repo, pub := buildInventoryUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, tenantA, dto.CreateProductRequest{
		Name:      "Sac de riz",
		UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, tenantA, created.ID))

	gone, err := repo.GetByTenantAndID(ctx, tenantA, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	events := pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, event.OpDeleted, events[1].Op)

	// Borrar de nuevo: ya no existe.
	assert.ErrorIs(t, uc.DeleteProduct(ctx, tenantA, created.ID), domain.ErrNotFound)
}
