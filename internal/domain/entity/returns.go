package entity

import "time"

// ReturnStatus estados del ciclo de vida de una devolución (RMA).
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "PENDING"
	ReturnReceived  ReturnStatus = "RECEIVED"
	ReturnCompleted ReturnStatus = "COMPLETED"
	ReturnCancelled ReturnStatus = "CANCELLED"
)

// returnTransitions tabla cerrada de transiciones válidas. Una devolución solo
// avanza; la cancelación únicamente es posible desde PENDING.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnPending:  {ReturnReceived, ReturnCancelled},
	ReturnReceived: {ReturnCompleted},
}

// CanTransitionTo indica si la transición de estado es válida.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado ya no admite transiciones.
func (s ReturnStatus) IsTerminal() bool {
	return len(returnTransitions[s]) == 0
}

// Return representa una devolución entrante de mercancía previamente entregada.
// La inspección (fase 2) reparte cada línea entre reingreso a stock y baja;
// lo no repartido queda como pérdida sin justificar y se reporta al caller.
type Return struct {
	ID         string
	RMANumber  string // consecutivo legible: RMA-000001
	IssuanceID string // salida de origen
	ClientID   string
	Reason     string
	Status     ReturnStatus
	Items      []ReturnItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReturnItem es una línea de devolución. Nombre y SKU se copian del producto
// al iniciar la devolución para que el documento sea autocontenido.
// Restocked/Disposed/Unaccounted se llenan al completar la inspección.
type ReturnItem struct {
	ID          string
	ReturnID    string
	LineNo      int
	ProductID   string
	Name        string
	SKU         string
	Quantity    int64 // cantidad que el cliente declara devolver, >= 1
	Restocked   int64 // reingresado a stock por inspección
	Disposed    int64 // marcado para baja (no toca stock)
	Unaccounted int64 // devuelto pero ni reingresado ni dado de baja
}
