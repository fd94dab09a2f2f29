package fabrication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// docTypeJobOrder tipo de documento para el consecutivo OT-000001.
const docTypeJobOrder = "OT"

// UseCase implementa el motor de estados de producción: cada ítem de orden de
// trabajo avanza PENDING -> IN_PROGRESS -> COMPLETED -> QC_PASSED -> DISPATCHED
// de uno en uno, sin saltos ni retrocesos. No toca stock; existe para que el
// agendador de instalaciones tenga un pool bien definido de dónde consumir.
type UseCase struct {
	txRunner  repository.TxRunner
	jobOrders repository.JobOrderRepository // lecturas fuera de transacción
	clients   repository.ClientRepository
	products  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	jobOrders repository.JobOrderRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, jobOrders: jobOrders, clients: clients, products: products}
}

// CreateJobOrder registra una orden de trabajo con todos sus ítems en PENDING.
func (uc *UseCase) CreateJobOrder(ctx context.Context, in dto.CreateJobOrderRequest) (*dto.JobOrderResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrInvalidInput)
		}
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	jo := &entity.JobOrder{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Remarks:   in.Remarks,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, item := range in.Items {
		jo.Items = append(jo.Items, entity.JobOrderItem{
			ID:          uuid.New().String(),
			JobOrderID:  jo.ID,
			LineNo:      i,
			ProductID:   item.ProductID,
			Description: item.Description,
			Status:      entity.FabPending,
			UpdatedAt:   now,
		})
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		seq, err := tx.Counters.Next(docTypeJobOrder)
		if err != nil {
			return err
		}
		jo.Number = fmt.Sprintf("%s-%06d", docTypeJobOrder, seq)
		return tx.JobOrders.Create(jo)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(jo), nil
}

// AdvanceItem avanza un ítem al estado indicado. Solo se acepta el estado
// inmediatamente siguiente de la progresión (ErrInvalidTransition en cualquier
// otro caso), validado contra la fila bloqueada dentro de la transacción.
// DISPATCHED no se acepta por esta vía: esa transición pertenece en exclusiva
// al agendador de instalaciones.
func (uc *UseCase) AdvanceItem(ctx context.Context, jobOrderID, itemID string, toStatus entity.FabricationStatus) error {
	if jobOrderID == "" || itemID == "" {
		return domain.ErrInvalidInput
	}
	if !toStatus.IsValid() {
		return domain.ErrInvalidInput
	}
	if toStatus == entity.FabDispatched {
		return domain.ErrInvalidTransition
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		item, err := tx.JobOrders.GetItemForUpdate(jobOrderID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.Status.CanTransitionTo(toStatus) {
			return domain.ErrInvalidTransition
		}
		return tx.JobOrders.UpdateItemStatus(itemID, toStatus, now)
	})
}

// GetByID obtiene una orden de trabajo (lectura fuera de transacción).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.JobOrderResponse, error) {
	jo, err := uc.jobOrders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if jo == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(jo), nil
}

// List lista órdenes de trabajo paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.JobOrderResponse, error) {
	list, err := uc.jobOrders.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.JobOrderResponse, 0, len(list))
	for _, jo := range list {
		result = append(result, toResponse(jo))
	}
	return result, nil
}

func toResponse(jo *entity.JobOrder) *dto.JobOrderResponse {
	resp := &dto.JobOrderResponse{
		ID:       jo.ID,
		Number:   jo.Number,
		ClientID: jo.ClientID,
		Remarks:  jo.Remarks,
		Items:    make([]dto.JobOrderItemResponse, 0, len(jo.Items)),
	}
	for _, item := range jo.Items {
		resp.Items = append(resp.Items, dto.JobOrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Status:      string(item.Status),
		})
	}
	return resp
}
