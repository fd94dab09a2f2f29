package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// docTypePO tipo de documento para el consecutivo OC-000001.
const docTypePO = "OC"

// UseCase implementa recepción de compras: la orden avanza
// PENDING -> SHIPPED -> DELIVERED -> RECEIVED y el stock solo se acredita al
// completar la inspección de recepción, nunca por encima de lo ordenado.
type UseCase struct {
	txRunner  repository.TxRunner
	orders    repository.PurchaseOrderRepository // lecturas fuera de transacción
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	events    event.Publisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{txRunner: txRunner, orders: orders, suppliers: suppliers, products: products, events: events}
}

// Create registra una orden de compra en PENDING con su consecutivo.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.CreatePORequest) (*dto.POResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrInvalidInput)
		}
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	for i, item := range in.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrNotFound)
		}
	}

	var expected *time.Time
	if in.ExpectedDate != "" {
		d, err := time.Parse("2006-01-02", in.ExpectedDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expected = &d
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		Status:        entity.POPending,
		PaymentStatus: entity.PaymentUnpaid,
		PaidAmount:    decimal.Zero,
		OrderDate:     now,
		ExpectedDate:  expected,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, item := range in.Items {
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:         uuid.New().String(),
			POID:       po.ID,
			LineNo:     i,
			ProductID:  item.ProductID,
			OrderedQty: item.Quantity,
			UnitCost:   item.UnitCost,
		})
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		seq, err := tx.Counters.Next(docTypePO)
		if err != nil {
			return err
		}
		po.PONumber = fmt.Sprintf("%s-%06d", docTypePO, seq)
		return tx.PurchaseOrders.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(po), nil
}

// MarkShipped transiciona PENDING -> SHIPPED. Sin efecto sobre stock.
func (uc *UseCase) MarkShipped(ctx context.Context, poID string) error {
	return uc.transition(ctx, poID, entity.POShipped)
}

// MarkDelivered transiciona PENDING|SHIPPED -> DELIVERED. Sin efecto sobre stock.
func (uc *UseCase) MarkDelivered(ctx context.Context, poID string) error {
	return uc.transition(ctx, poID, entity.PODelivered)
}

func (uc *UseCase) transition(ctx context.Context, poID string, next entity.POStatus) error {
	if poID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		po, err := tx.PurchaseOrders.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		return tx.PurchaseOrders.UpdateStatus(poID, next, nil, now)
	})
}

// CompleteInspection registra lo recibido contra lo ordenado, todo o nada:
// si alguna línea reporta recibido > ordenado, la operación entera se rechaza
// con ErrInvalidQuantity. En éxito acredita stock por línea vía ledger y la
// orden pasa DELIVERED -> RECEIVED en la misma transacción. Recibir menos de
// lo ordenado es entrega parcial legal.
func (uc *UseCase) CompleteInspection(ctx context.Context, actor, poID string, in dto.CompletePOInspectionRequest) (*dto.POResponse, error) {
	if poID == "" {
		return nil, domain.ErrInvalidInput
	}
	byProduct := make(map[string]int64, len(in.Items))
	for i, line := range in.Items {
		if line.ProductID == "" || line.Received < 0 {
			return nil, domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
		}
		if _, dup := byProduct[line.ProductID]; dup {
			return nil, domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
		}
		byProduct[line.ProductID] = line.Received
	}

	now := time.Now()
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		po, err = tx.PurchaseOrders.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PODelivered {
			return domain.ErrInvalidState
		}

		// Validación completa antes de acreditar nada.
		inOrder := make(map[string]bool, len(po.Items))
		for i := range po.Items {
			item := &po.Items[i]
			inOrder[item.ProductID] = true
			if byProduct[item.ProductID] > item.OrderedQty {
				return domain.NewLineError(item.LineNo, item.ProductID, domain.ErrInvalidQuantity)
			}
		}
		for i, line := range in.Items {
			if !inOrder[line.ProductID] {
				return domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
			}
		}

		for i := range po.Items {
			item := &po.Items[i]
			received := byProduct[item.ProductID]
			if received > 0 {
				if _, err := ledger.Apply(tx.Products, tx.History, item.ProductID, received, now, now, actor); err != nil {
					return domain.NewLineError(item.LineNo, item.ProductID, err)
				}
			}
			item.ReceivedQty = received
			if err := tx.PurchaseOrders.UpdateItemReceived(item.ID, received); err != nil {
				return err
			}
		}
		po.Status = entity.POReceived
		po.ReceivedDate = &now
		po.UpdatedAt = now
		return tx.PurchaseOrders.UpdateStatus(po.ID, entity.POReceived, &now, now)
	})
	if err != nil {
		return nil, err
	}

	var totalReceived int64
	for _, item := range po.Items {
		totalReceived += item.ReceivedQty
	}
	uc.events.Publish(event.Event{
		Name:  event.POReceived,
		Actor: actor,
		At:    now,
		Payload: map[string]any{
			"po_id":          po.ID,
			"po_number":      po.PONumber,
			"total_received": totalReceived,
		},
	})
	return toResponse(po), nil
}

// Pay marca la orden como pagada. Se rechaza con ErrInvalidState si la orden
// no está en RECEIVED: no se paga mercancía cuya recepción no está confirmada.
func (uc *UseCase) Pay(ctx context.Context, poID string, amount decimal.Decimal) error {
	if poID == "" || !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		po, err := tx.PurchaseOrders.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POReceived {
			return domain.ErrInvalidState
		}
		if po.PaymentStatus != entity.PaymentUnpaid {
			return domain.ErrInvalidState
		}
		return tx.PurchaseOrders.UpdatePayment(poID, entity.PaymentPaid, amount, now)
	})
}

// GetByID obtiene una orden de compra (lectura fuera de transacción).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.POResponse, error) {
	po, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(po), nil
}

// List lista órdenes de compra paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.POResponse, error) {
	list, err := uc.orders.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.POResponse, 0, len(list))
	for _, po := range list {
		result = append(result, toResponse(po))
	}
	return result, nil
}

func toResponse(po *entity.PurchaseOrder) *dto.POResponse {
	resp := &dto.POResponse{
		ID:            po.ID,
		PONumber:      po.PONumber,
		SupplierID:    po.SupplierID,
		Status:        string(po.Status),
		PaymentStatus: string(po.PaymentStatus),
		PaidAmount:    po.PaidAmount,
		OrderDate:     po.OrderDate.Format("2006-01-02"),
		Items:         make([]dto.POItemResponse, 0, len(po.Items)),
	}
	if po.ExpectedDate != nil {
		resp.ExpectedDate = po.ExpectedDate.Format("2006-01-02")
	}
	if po.ReceivedDate != nil {
		resp.ReceivedDate = po.ReceivedDate.Format("2006-01-02")
	}
	for _, item := range po.Items {
		resp.Items = append(resp.Items, dto.POItemResponse{
			ProductID:   item.ProductID,
			OrderedQty:  item.OrderedQty,
			ReceivedQty: item.ReceivedQty,
			UnitCost:    item.UnitCost,
		})
	}
	return resp
}
