package returns

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// docTypeReturn tipo de documento para el consecutivo RMA-000001.
const docTypeReturn = "RMA"

// UseCase implementa el flujo de devolución en dos fases: recepción del RMA y
// luego inspección, que reparte cada línea entre reingreso a stock y baja.
// La porción de baja no toca stock (salió en la entrega y no vuelve a entrar);
// lo no repartido queda como pérdida sin justificar y se reporta al caller.
type UseCase struct {
	txRunner  repository.TxRunner
	returns   repository.ReturnRepository // lecturas fuera de transacción
	issuances repository.IssuanceRepository
	products  repository.ProductRepository
	events    event.Publisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	returns repository.ReturnRepository,
	issuances repository.IssuanceRepository,
	products repository.ProductRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{txRunner: txRunner, returns: returns, issuances: issuances, products: products, events: events}
}

// Initiate registra la intención de devolución contra una salida existente.
// Copia nombre y SKU del producto a cada línea y deja el RMA en PENDING.
// Sin efecto sobre stock.
func (uc *UseCase) Initiate(ctx context.Context, actor string, in dto.InitiateReturnRequest) (*dto.ReturnResponse, error) {
	if in.IssuanceID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrInvalidInput)
		}
	}

	iss, err := uc.issuances.GetByID(in.IssuanceID)
	if err != nil {
		return nil, err
	}
	if iss == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	ret := &entity.Return{
		ID:         uuid.New().String(),
		IssuanceID: in.IssuanceID,
		ClientID:   iss.ClientID,
		Reason:     in.Reason,
		Status:     entity.ReturnPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i, item := range in.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrNotFound)
		}
		ret.Items = append(ret.Items, entity.ReturnItem{
			ID:        uuid.New().String(),
			ReturnID:  ret.ID,
			LineNo:    i,
			ProductID: item.ProductID,
			Name:      product.Name,
			SKU:       product.SKU,
			Quantity:  item.Quantity,
		})
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		seq, err := tx.Counters.Next(docTypeReturn)
		if err != nil {
			return err
		}
		ret.RMANumber = fmt.Sprintf("%s-%06d", docTypeReturn, seq)
		return tx.Returns.Create(ret)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(event.Event{
		Name:  event.ReturnInitiated,
		Actor: actor,
		At:    now,
		Payload: map[string]any{
			"return_id":   ret.ID,
			"rma_number":  ret.RMANumber,
			"issuance_id": ret.IssuanceID,
		},
	})
	return toResponse(ret), nil
}

// MarkReceived transiciona PENDING -> RECEIVED. La mercancía está físicamente
// de vuelta pero aún sin calificar; sin efecto sobre stock.
func (uc *UseCase) MarkReceived(ctx context.Context, returnID string) error {
	return uc.transition(ctx, returnID, entity.ReturnReceived)
}

// Cancel transiciona PENDING -> CANCELLED. Una devolución ya recibida o
// completada no se puede cancelar.
func (uc *UseCase) Cancel(ctx context.Context, returnID string) error {
	return uc.transition(ctx, returnID, entity.ReturnCancelled)
}

func (uc *UseCase) transition(ctx context.Context, returnID string, next entity.ReturnStatus) error {
	if returnID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		ret, err := tx.Returns.GetForUpdate(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if !ret.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		return tx.Returns.UpdateStatus(returnID, next, now)
	})
}

// CompleteInspection aplica el reparto de inspección a todas las líneas de la
// devolución, todo o nada: si alguna línea viola restock+disposal <= devuelto,
// ninguna línea se aplica. Por línea: el reingreso acredita stock vía ledger;
// la porción de baja crea una cantidad elegible (sin tocar stock); el resto
// se persiste como pérdida sin justificar y se reporta en el resultado.
// La devolución pasa RECEIVED -> COMPLETED.
func (uc *UseCase) CompleteInspection(ctx context.Context, actor, returnID string, in dto.CompleteInspectionRequest) (*dto.InspectionResultResponse, error) {
	if returnID == "" {
		return nil, domain.ErrInvalidInput
	}
	byProduct := make(map[string]dto.InspectionLineRequest, len(in.Items))
	for i, line := range in.Items {
		if line.ProductID == "" || line.Restock < 0 || line.Disposal < 0 {
			return nil, domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
		}
		if _, dup := byProduct[line.ProductID]; dup {
			return nil, domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
		}
		byProduct[line.ProductID] = line
	}

	now := time.Now()
	var ret *entity.Return
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		ret, err = tx.Returns.GetForUpdate(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if ret.Status != entity.ReturnReceived {
			return domain.ErrInvalidState
		}

		// Validación completa antes de aplicar nada (todo o nada).
		inReturn := make(map[string]bool, len(ret.Items))
		for i := range ret.Items {
			item := &ret.Items[i]
			inReturn[item.ProductID] = true
			line := byProduct[item.ProductID]
			if line.Restock+line.Disposal > item.Quantity {
				return domain.NewLineError(item.LineNo, item.ProductID, domain.ErrInvalidQuantity)
			}
		}
		// Líneas del request que no pertenecen a la devolución.
		for i, line := range in.Items {
			if !inReturn[line.ProductID] {
				return domain.NewLineError(i, line.ProductID, domain.ErrInvalidInput)
			}
		}

		for i := range ret.Items {
			item := &ret.Items[i]
			line := byProduct[item.ProductID]
			if line.Restock > 0 {
				if _, err := ledger.Apply(tx.Products, tx.History, item.ProductID, line.Restock, now, now, actor); err != nil {
					return domain.NewLineError(item.LineNo, item.ProductID, err)
				}
			}
			if line.Disposal > 0 {
				eligible := &entity.DisposalEligible{
					ID:        uuid.New().String(),
					ProductID: item.ProductID,
					ReturnID:  ret.ID,
					Quantity:  line.Disposal,
					CreatedAt: now,
				}
				if err := tx.Disposals.CreateEligible(eligible); err != nil {
					return err
				}
			}
			item.Restocked = line.Restock
			item.Disposed = line.Disposal
			item.Unaccounted = item.Quantity - line.Restock - line.Disposal
			if err := tx.Returns.UpdateItemInspection(item.ID, item.Restocked, item.Disposed, item.Unaccounted); err != nil {
				return err
			}
		}
		ret.Status = entity.ReturnCompleted
		ret.UpdatedAt = now
		return tx.Returns.UpdateStatus(ret.ID, entity.ReturnCompleted, now)
	})
	if err != nil {
		return nil, err
	}

	result := &dto.InspectionResultResponse{Return: *toResponse(ret)}
	for _, item := range ret.Items {
		result.TotalRestocked += item.Restocked
		result.TotalDisposed += item.Disposed
		result.TotalUnaccounted += item.Unaccounted
	}

	uc.events.Publish(event.Event{
		Name:  event.ReturnInspected,
		Actor: actor,
		At:    now,
		Payload: map[string]any{
			"return_id":   ret.ID,
			"rma_number":  ret.RMANumber,
			"restocked":   result.TotalRestocked,
			"disposed":    result.TotalDisposed,
			"unaccounted": result.TotalUnaccounted,
		},
	})
	return result, nil
}

// GetByID obtiene una devolución (lectura fuera de transacción).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(ret), nil
}

// List lista devoluciones paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.ReturnResponse, error) {
	list, err := uc.returns.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ReturnResponse, 0, len(list))
	for _, ret := range list {
		result = append(result, toResponse(ret))
	}
	return result, nil
}

func toResponse(ret *entity.Return) *dto.ReturnResponse {
	resp := &dto.ReturnResponse{
		ID:         ret.ID,
		RMANumber:  ret.RMANumber,
		IssuanceID: ret.IssuanceID,
		ClientID:   ret.ClientID,
		Reason:     ret.Reason,
		Status:     string(ret.Status),
		Items:      make([]dto.ReturnItemResponse, 0, len(ret.Items)),
	}
	for _, item := range ret.Items {
		resp.Items = append(resp.Items, dto.ReturnItemResponse{
			ProductID:   item.ProductID,
			Name:        item.Name,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Restocked:   item.Restocked,
			Disposed:    item.Disposed,
			Unaccounted: item.Unaccounted,
		})
	}
	return resp
}
