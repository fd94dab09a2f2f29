package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ToolHandler maneja las peticiones HTTP para Tool (protegido).
type ToolHandler struct {
	uc *usecase.ToolUseCase
}

// NewToolHandler construye el handler.
func NewToolHandler(uc *usecase.ToolUseCase) *ToolHandler {
	return &ToolHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar herramienta
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateToolRequest  true  "Datos de la herramienta"
// @Success      201   {object}  dto.ToolResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tools [post]
func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateToolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkDamaged godoc
// @Summary      Marcar herramienta como dañada (candidata a baja)
// @Tags         tools
// @Security     Bearer
// @Param        id  path  string  true  "ID de la herramienta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/damage [post]
func (h *ToolHandler) MarkDamaged(c *fiber.Ctx) error {
	if err := h.uc.MarkDamaged(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar herramientas
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ToolResponse
// @Router       /api/tools [get]
func (h *ToolHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
