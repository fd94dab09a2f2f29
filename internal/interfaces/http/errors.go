package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Si el error es un
// LineError, la línea y el producto culpables viajan en el cuerpo para que el
// caller sepa qué corregir.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidState):
		status, code = fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrConflictingState):
		status, code = fiber.StatusConflict, "CONFLICTING_STATE"
	case errors.Is(err, domain.ErrContention):
		status, code = fiber.StatusConflict, "CONTENTION"
	}

	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		line := lineErr.Line
		resp.Line = &line
		resp.Product = lineErr.ProductID
	}
	return c.Status(status).JSON(resp)
}
