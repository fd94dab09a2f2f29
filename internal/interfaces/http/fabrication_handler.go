package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/fabrication"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// FabricationHandler maneja las peticiones HTTP de órdenes de trabajo (protegido).
type FabricationHandler struct {
	uc *fabrication.UseCase
}

// NewFabricationHandler construye el handler.
func NewFabricationHandler(uc *fabrication.UseCase) *FabricationHandler {
	return &FabricationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de trabajo (todos los ítems arrancan en PENDING)
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobOrderRequest  true  "Orden de trabajo"
// @Success      201   {object}  dto.JobOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/job-orders [post]
func (h *FabricationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClientID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id e items son requeridos"})
	}
	out, err := h.uc.CreateJobOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdvanceItem godoc
// @Summary      Avanzar un ítem al estado inmediatamente siguiente
// @Description  DISPATCHED no se acepta aquí; solo el agendamiento de instalación despacha.
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Param        jobId   path  string  true  "ID de la orden de trabajo"
// @Param        itemId  path  string  true  "ID del ítem"
// @Param        body    body  dto.AdvanceItemRequest  true  "Estado destino"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{jobId}/items/{itemId}/advance [post]
func (h *FabricationHandler) AdvanceItem(c *fiber.Ctx) error {
	var in dto.AdvanceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.AdvanceItem(c.UserContext(), c.Params("jobId"), c.Params("itemId"), entity.FabricationStatus(in.ToStatus))
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener orden de trabajo por ID
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de trabajo"
// @Success      200  {object}  dto.JobOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id} [get]
func (h *FabricationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de trabajo no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.JobOrderResponse
// @Router       /api/job-orders [get]
func (h *FabricationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
