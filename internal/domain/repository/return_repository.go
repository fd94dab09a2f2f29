package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia de devoluciones (RMA).
type ReturnRepository interface {
	Create(r *entity.Return) error
	GetByID(id string) (*entity.Return, error)
	// GetForUpdate bloquea la cabecera de la devolución (SELECT FOR UPDATE)
	// para que las transiciones de estado se validen contra la fila viva.
	GetForUpdate(id string) (*entity.Return, error)
	UpdateStatus(id string, status entity.ReturnStatus, updatedAt time.Time) error
	// UpdateItemInspection fija el reparto de inspección de una línea.
	UpdateItemInspection(itemID string, restocked, disposed, unaccounted int64) error
	// ExistsByIssuance indica si alguna devolución (no cancelada) referencia la salida.
	ExistsByIssuance(issuanceID string) (bool, error)
	List(limit, offset int) ([]*entity.Return, error)
}
