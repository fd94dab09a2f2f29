package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.POStatus, receivedDate *time.Time, updatedAt time.Time) error
	// UpdateItemReceived fija la cantidad recibida de una línea en la inspección.
	UpdateItemReceived(itemID string, receivedQty int64) error
	UpdatePayment(id string, status entity.PaymentStatus, amount decimal.Decimal, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}
