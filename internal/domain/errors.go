package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidQuantity   = errors.New("cantidad inválida para la operación")
	ErrInvalidState      = errors.New("el estado actual no permite la operación")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrConflictingState  = errors.New("conflicto con documentos dependientes")
	ErrContention        = errors.New("transacción abortada por concurrencia, reintente")
)

// LineError envuelve un error de dominio con la línea y el producto que lo causaron,
// para que el caller sepa qué corregir antes de reenviar. errors.Is resuelve al sentinel.
type LineError struct {
	Line      int // índice de la línea (base 0)
	ProductID string
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (producto %s): %v", e.Line, e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// NewLineError construye un error de línea.
func NewLineError(line int, productID string, err error) *LineError {
	return &LineError{Line: line, ProductID: productID, Err: err}
}
