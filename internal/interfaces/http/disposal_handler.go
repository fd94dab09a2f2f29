package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/disposal"
	"github.com/jhoicas/Taller-api/internal/application/dto"
)

// DisposalHandler maneja las peticiones HTTP de bajas (protegido).
type DisposalHandler struct {
	uc *disposal.UseCase
}

// NewDisposalHandler construye el handler.
func NewDisposalHandler(uc *disposal.UseCase) *DisposalHandler {
	return &DisposalHandler{uc: uc}
}

// Dispose godoc
// @Summary      Dar de baja cantidades elegibles y herramientas dañadas
// @Description  Idempotente por fuente: las ya dadas de baja se reportan, no fallan. Nunca toca stock.
// @Tags         disposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DisposeRequest  true  "Fuentes a dar de baja"
// @Success      200   {object}  dto.DisposeResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/disposals [post]
func (h *DisposalHandler) Dispose(c *fiber.Ctx) error {
	var in dto.DisposeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Sources) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sources es requerido"})
	}
	out, err := h.uc.Dispose(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEligible godoc
// @Summary      Listar cantidades elegibles de baja pendientes
// @Tags         disposals
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DisposalEligibleResponse
// @Router       /api/disposals/eligible [get]
func (h *DisposalHandler) ListEligible(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListEligible(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
