package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbrales fijos de clasificación de stock para alertas del dashboard.
const (
	StockCriticalThreshold = 5
	StockLowThreshold      = 10
)

// Niveles de stock derivados (solo alertas; no bloquean operaciones).
const (
	StockCritical = "critical"
	StockLow      = "low"
	StockNormal   = "normal"
)

// Product representa un artículo del inventario de una tienda.
// StockQuantity nunca es negativo: el decremento es condicional en la DB.
type Product struct {
	ID            string
	TenantID      string
	Name          string
	UnitPrice     decimal.Decimal
	StockQuantity int
	ImageRef      string // referencia opaca (URL o data-uri); el core no la interpreta
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClassifyStock devuelve la severidad del nivel de stock: critical (<= 5),
// low (<= 10) o normal. Función pura usada por las alertas del dashboard.
func ClassifyStock(stockQuantity int) string {
	switch {
	case stockQuantity <= StockCriticalThreshold:
		return StockCritical
	case stockQuantity <= StockLowThreshold:
		return StockLow
	default:
		return StockNormal
	}
}
