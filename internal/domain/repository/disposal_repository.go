package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// DisposalRepository define el puerto de las cantidades elegibles para baja.
type DisposalRepository interface {
	CreateEligible(d *entity.DisposalEligible) error
	GetEligibleByID(id string) (*entity.DisposalEligible, error)
	// GetEligibleForUpdate bloquea la fila (SELECT FOR UPDATE) para que la baja
	// idempotente se decida contra el estado vivo.
	GetEligibleForUpdate(id string) (*entity.DisposalEligible, error)
	MarkDisposed(id string, at time.Time, by, reason string) error
	// ListPending devuelve las cantidades elegibles aún no dadas de baja.
	ListPending(limit, offset int) ([]*entity.DisposalEligible, error)
}

// ToolRepository define el puerto de persistencia de herramientas.
type ToolRepository interface {
	Create(t *entity.Tool) error
	GetByID(id string) (*entity.Tool, error)
	GetForUpdate(id string) (*entity.Tool, error)
	UpdateStatus(id string, status entity.ToolStatus, disposedAt *time.Time, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Tool, error)
}
