package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el inventario de la tienda.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageRef      string          `json:"image_ref"`
}

// UpdateProductRequest edición parcial: solo los campos presentes se sobreescriben.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	StockQuantity *int             `json:"stock_quantity"`
	ImageRef      *string          `json:"image_ref"`
}

// ProductResponse producto con su clasificación de stock derivada.
type ProductResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	StockLevel    string          `json:"stock_level"` // critical | low | normal
	ImageRef      string          `json:"image_ref,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockAlert producto en nivel crítico o bajo para el panel de alertas.
type StockAlert struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	Level         string `json:"level"`
}
