package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/team"
)

// TeamHandler maneja la plantilla de la tienda (solo dueño, salvo la
// confirmación de nota que es del propio empleado).
type TeamHandler struct {
	uc *team.TeamUseCase
}

// NewTeamHandler construye el handler de equipo.
func NewTeamHandler(uc *team.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Add godoc
// @Summary      Alta de empleado (pre-aprovisionado)
// @Tags         team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddMemberRequest  true  "email, password, role (assistant|clerk)"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Add(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	account, err := h.uc.AddMember(c.Context(), GetTenantID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

// List godoc
// @Summary      Listar plantilla (sin la cuenta dueña)
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.uc.ListMembers(c.Context(), GetTenantID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(members)
}

// Remove godoc
// @Summary      Baja de empleado
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SendNote godoc
// @Summary      Dejar nota a un empleado (sobreescribe la anterior)
// @Tags         team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.SendNoteRequest  true  "text"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id}/note [post]
func (h *TeamHandler) SendNote(c *fiber.Ctx) error {
	var in dto.SendNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SendNote(c.Context(), GetTenantID(c), c.Params("id"), in.Text); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcknowledgeNote godoc
// @Summary      Confirmar (limpiar) la nota de la propia cuenta
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /api/team/note [delete]
func (h *TeamHandler) AcknowledgeNote(c *fiber.Ctx) error {
	if err := h.uc.AcknowledgeNote(c.Context(), GetUserID(c)); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
