package entity

import "time"

// InstallationStatus estado de avance de una instalación agendada.
type InstallationStatus string

const (
	InstallationScheduled InstallationStatus = "SCHEDULED"
	InstallationDone      InstallationStatus = "DONE"
)

// Installation representa una instalación agendada: cuadrilla, rango de fechas
// y los ítems QC_PASSED que consume. Al crearla, cada ítem pasa a DISPATCHED
// en la misma transacción; esa transición actúa como reclamo contra el
// doble agendamiento concurrente.
type Installation struct {
	ID        string
	Number    string // consecutivo legible: INST-000001
	CrewID    string
	StartDate time.Time // StartDate <= EndDate
	EndDate   time.Time
	Status    InstallationStatus
	Items     []InstallationItem
	CreatedAt time.Time
}

// InstallationItem referencia un ítem de orden de trabajo consumido.
type InstallationItem struct {
	ID             string
	InstallationID string
	JobOrderID     string
	JobOrderItemID string
}
