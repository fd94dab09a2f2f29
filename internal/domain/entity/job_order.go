package entity

import "time"

// FabricationStatus estados de producción de un ítem de orden de trabajo.
type FabricationStatus string

const (
	FabPending    FabricationStatus = "PENDING"
	FabInProgress FabricationStatus = "IN_PROGRESS"
	FabCompleted  FabricationStatus = "COMPLETED"
	FabQCPassed   FabricationStatus = "QC_PASSED"
	FabDispatched FabricationStatus = "DISPATCHED"
)

// fabricationOrder progresión fija: un paso a la vez, sin saltos ni retrocesos.
var fabricationOrder = []FabricationStatus{
	FabPending, FabInProgress, FabCompleted, FabQCPassed, FabDispatched,
}

// Next devuelve el siguiente estado de la progresión, o "" si ya es terminal.
func (s FabricationStatus) Next() FabricationStatus {
	for i, st := range fabricationOrder {
		if st == s && i+1 < len(fabricationOrder) {
			return fabricationOrder[i+1]
		}
	}
	return ""
}

// CanTransitionTo solo acepta el estado inmediatamente siguiente.
func (s FabricationStatus) CanTransitionTo(next FabricationStatus) bool {
	return next != "" && s.Next() == next
}

// IsValid indica si el valor pertenece al conjunto cerrado de estados.
func (s FabricationStatus) IsValid() bool {
	for _, st := range fabricationOrder {
		if st == s {
			return true
		}
	}
	return false
}

// JobOrder agrupa ítems de fabricación para un cliente/proyecto.
type JobOrder struct {
	ID        string
	Number    string // consecutivo legible: OT-000001
	ClientID  string
	Remarks   string
	Items     []JobOrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobOrderItem es un ítem en producción. Su estado avanza de uno en uno;
// QC_PASSED lo hace elegible para agendar instalación, y agendar es la
// única vía hacia DISPATCHED.
type JobOrderItem struct {
	ID          string
	JobOrderID  string
	LineNo      int
	ProductID   string
	Description string
	Status      FabricationStatus
	UpdatedAt   time.Time
}
