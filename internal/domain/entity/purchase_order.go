package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estados del ciclo de vida de una orden de compra.
type POStatus string

const (
	POPending   POStatus = "PENDING"
	POShipped   POStatus = "SHIPPED"
	PODelivered POStatus = "DELIVERED"
	POReceived  POStatus = "RECEIVED"
)

// poTransitions tabla cerrada de transiciones. PENDING puede saltar a DELIVERED
// directamente (el proveedor no siempre reporta el despacho).
var poTransitions = map[POStatus][]POStatus{
	POPending:   {POShipped, PODelivered},
	POShipped:   {PODelivered},
	PODelivered: {POReceived},
}

// CanTransitionTo indica si la transición de estado es válida.
func (s POStatus) CanTransitionTo(next POStatus) bool {
	for _, allowed := range poTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus estado de pago de la orden de compra.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// El stock solo se acredita al completar la inspección de recepción,
// y nunca por encima de la cantidad ordenada por línea.
type PurchaseOrder struct {
	ID            string
	PONumber      string // consecutivo legible: OC-000001
	SupplierID    string
	Status        POStatus
	PaymentStatus PaymentStatus
	PaidAmount    decimal.Decimal
	OrderDate     time.Time
	ExpectedDate  *time.Time
	ReceivedDate  *time.Time
	Items         []PurchaseOrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseOrderItem es una línea de orden de compra. ReceivedQty se fija en la
// inspección de recepción; recibir menos de lo ordenado es entrega parcial legal.
type PurchaseOrderItem struct {
	ID          string
	POID        string
	LineNo      int
	ProductID   string
	OrderedQty  int64 // >= 1
	ReceivedQty int64 // 0 hasta la inspección; <= OrderedQty
	UnitCost    decimal.Decimal
}
