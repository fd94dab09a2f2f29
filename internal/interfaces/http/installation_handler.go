package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/installation"
)

// InstallationHandler maneja las peticiones HTTP de instalaciones (protegido).
type InstallationHandler struct {
	uc *installation.UseCase
}

// NewInstallationHandler construye el handler.
func NewInstallationHandler(uc *installation.UseCase) *InstallationHandler {
	return &InstallationHandler{uc: uc}
}

// Schedule godoc
// @Summary      Agendar instalación (despacha los ítems QC_PASSED referenciados)
// @Tags         installations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleInstallationRequest  true  "Instalación"
// @Success      201   {object}  dto.InstallationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/installations [post]
func (h *InstallationHandler) Schedule(c *fiber.Ctx) error {
	var in dto.ScheduleInstallationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CrewID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "crew_id e items son requeridos"})
	}
	out, err := h.uc.Schedule(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener instalación por ID
// @Tags         installations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la instalación"
// @Success      200  {object}  dto.InstallationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installations/{id} [get]
func (h *InstallationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "instalación no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar instalaciones
// @Tags         installations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InstallationResponse
// @Router       /api/installations [get]
func (h *InstallationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
