package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// JobOrderRepository define el puerto de persistencia de órdenes de trabajo.
type JobOrderRepository interface {
	Create(jo *entity.JobOrder) error
	GetByID(id string) (*entity.JobOrder, error)
	GetItem(jobOrderID, itemID string) (*entity.JobOrderItem, error)
	// GetItemForUpdate bloquea la fila del ítem (SELECT FOR UPDATE); la
	// transición de estado se valida contra esta lectura, no contra una previa.
	GetItemForUpdate(jobOrderID, itemID string) (*entity.JobOrderItem, error)
	UpdateItemStatus(itemID string, status entity.FabricationStatus, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.JobOrder, error)
}

// InstallationRepository define el puerto de persistencia de instalaciones.
type InstallationRepository interface {
	Create(inst *entity.Installation) error
	GetByID(id string) (*entity.Installation, error)
	List(limit, offset int) ([]*entity.Installation, error)
}
