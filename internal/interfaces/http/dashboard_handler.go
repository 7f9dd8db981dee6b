package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devstock/ledger-api/internal/application/analytics"
)

// DashboardHandler expone el panel del dueño.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard del dueño
// @Description  Recaudado, por cobrar, alertas de stock y ventas recientes. Recalculado en cada consulta.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetTenantID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
