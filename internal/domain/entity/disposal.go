package entity

import "time"

// DisposalEligible es una cantidad marcada en inspección como no apta para
// reingreso, pendiente de baja definitiva. Es una entidad de primera clase
// (no se reconstruye de texto formateado). Darla de baja NO toca stock:
// la cantidad salió de stock en la entrega y nunca volvió a entrar.
type DisposalEligible struct {
	ID         string
	ProductID  string
	ReturnID   string // inspección de origen
	Quantity   int64  // > 0
	CreatedAt  time.Time
	Disposed   bool // baja definitiva aplicada (idempotente)
	DisposedAt *time.Time
	DisposedBy string
	Reason     string
}

// ToolStatus estado de una herramienta de la flota activa.
type ToolStatus string

const (
	ToolActive   ToolStatus = "ACTIVE"
	ToolDamaged  ToolStatus = "DAMAGED"
	ToolDisposed ToolStatus = "DISPOSED"
)

// Tool representa una herramienta del taller. Las dañadas son candidatas a
// baja; una vez DISPOSED salen permanentemente de la flota.
type Tool struct {
	ID         string
	Name       string
	Status     ToolStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DisposedAt *time.Time
}

// Tipos de fuente para la operación de baja.
const (
	DisposalSourceProduct = "product"
	DisposalSourceTool    = "tool"
)
