package event

import "time"

// Nombres de eventos de dominio emitidos tras el Commit de cada operación.
const (
	StockAdjusted         = "stock.adjusted"
	IssuanceCreated       = "issuance.created"
	IssuanceDeleted       = "issuance.deleted"
	ReturnInitiated       = "return.initiated"
	ReturnInspected       = "return.inspected"
	POReceived            = "po.received"
	DisposalCompleted     = "disposal.completed"
	InstallationScheduled = "installation.scheduled"
)

// Event es un evento de dominio para el feed de actividad externo.
type Event struct {
	Name    string
	Actor   string
	At      time.Time
	Payload map[string]any
}

// Publisher publica eventos hacia el feed de actividad. La entrega es
// fire-and-forget: Publish nunca bloquea ni revierte la transacción de origen,
// por eso los workflows solo lo invocan después del Commit.
type Publisher interface {
	Publish(e Event)
}

// Nop descarta los eventos; útil en tests.
type Nop struct{}

func (Nop) Publish(Event) {}
