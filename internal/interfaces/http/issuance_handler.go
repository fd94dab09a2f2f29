package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/issuance"
)

// IssuanceHandler maneja las peticiones HTTP de salidas de mercancía (protegido).
type IssuanceHandler struct {
	uc  *issuance.UseCase
	pdf *issuance.PDFUseCase
}

// NewIssuanceHandler construye el handler.
func NewIssuanceHandler(uc *issuance.UseCase, pdf *issuance.PDFUseCase) *IssuanceHandler {
	return &IssuanceHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear salida de mercancía (descuenta stock atómicamente)
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssuanceRequest  true  "Salida"
// @Success      201   {object}  dto.IssuanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issuances [post]
func (h *IssuanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssuanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClientID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id e items son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar salida (revierte el stock línea por línea)
// @Tags         issuances
// @Security     Bearer
// @Param        id  path  string  true  "ID de la salida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id} [delete]
func (h *IssuanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener salida por ID
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.IssuanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id} [get]
func (h *IssuanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar salidas
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IssuanceResponse
// @Router       /api/issuances [get]
func (h *IssuanceHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la nota de entrega en PDF
// @Tags         issuances
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la salida"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id}/pdf [get]
func (h *IssuanceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.GenerateByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}
