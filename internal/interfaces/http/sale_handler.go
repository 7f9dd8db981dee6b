package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/sales"
)

// SaleHandler maneja el ledger de ventas y deudas.
type SaleHandler struct {
	uc *sales.SalesUseCase
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(uc *sales.SalesUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar venta
// @Description  Decrementa stock e inserta la venta en una sola transacción; sin efectos parciales si el stock no alcanza.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordSaleRequest  true  "product_id, quantity, paid_amount, client_name, client_phone"
// @Success      201   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.RecordSale(c.Context(), GetTenantID(c), GetEmail(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo por página (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.ListSales(c.Context(), GetTenantID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Settle godoc
// @Summary      Saldar deuda de una venta
// @Description  Transición open-debt -> settled. Volver a saldar es un no-op exitoso.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/settle [post]
func (h *SaleHandler) Settle(c *fiber.Ctx) error {
	sale, err := h.uc.SettleDebt(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(sale)
}

// Debts godoc
// @Summary      Deudas abiertas agregadas por cliente
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClientDebtSummary
// @Router       /api/debts [get]
func (h *SaleHandler) Debts(c *fiber.Ctx) error {
	out, err := h.uc.DebtsByClient(c.Context(), GetTenantID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
