package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
)

// InventoryHandler expone los ajustes manuales de stock.
type InventoryHandler struct {
	ledger *ledger.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *ledger.Service) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Adjust godoc
// @Summary      Ajuste manual de stock (positivo acredita, negativo descuenta)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.AdjustInput{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Remarks:   in.Remarks,
		Actor:     GetUserID(c),
	}
	if in.EffectiveDate != "" {
		date, err := time.Parse("2006-01-02", in.EffectiveDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_date debe ser YYYY-MM-DD"})
		}
		input.EffectiveDate = date
	}
	newStock, err := h.ledger.Adjust(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{ProductID: in.ProductID, NewStock: newStock})
}
