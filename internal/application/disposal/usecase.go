package disposal

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UseCase implementa la baja definitiva: cantidades elegibles de producto
// (salidas de inspección) y herramientas dañadas. La baja de producto jamás
// pasa por el ledger — la cantidad salió de stock en la entrega y nunca fue
// reingresada — y repetir una baja ya aplicada es un no-op exitoso para
// tolerar requests reintentados.
type UseCase struct {
	txRunner  repository.TxRunner
	disposals repository.DisposalRepository // lecturas fuera de transacción
	tools     repository.ToolRepository
	events    event.Publisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	disposals repository.DisposalRepository,
	tools repository.ToolRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{txRunner: txRunner, disposals: disposals, tools: tools, events: events}
}

// Dispose valida la selección completa antes de aplicar remoción alguna
// (todo o nada). Fuentes ya dadas de baja se reportan como no-op; fuentes
// desconocidas rechazan la operación entera con ErrNotFound.
func (uc *UseCase) Dispose(ctx context.Context, actor string, in dto.DisposeRequest) (*dto.DisposeResultResponse, error) {
	if len(in.Sources) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, src := range in.Sources {
		if src.SourceID == "" || (src.SourceType != entity.DisposalSourceProduct && src.SourceType != entity.DisposalSourceTool) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	result := &dto.DisposeResultResponse{}
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		result.Disposed = result.Disposed[:0]
		result.AlreadyGone = result.AlreadyGone[:0]

		// Fase 1: resolver y validar todas las fuentes contra filas bloqueadas.
		type resolved struct {
			src      dto.DisposalSourceRequest
			eligible *entity.DisposalEligible
			tool     *entity.Tool
			gone     bool
		}
		items := make([]resolved, 0, len(in.Sources))
		for _, src := range in.Sources {
			switch src.SourceType {
			case entity.DisposalSourceProduct:
				eligible, err := tx.Disposals.GetEligibleForUpdate(src.SourceID)
				if err != nil {
					return err
				}
				if eligible == nil {
					return domain.ErrNotFound
				}
				items = append(items, resolved{src: src, eligible: eligible, gone: eligible.Disposed})
			case entity.DisposalSourceTool:
				tool, err := tx.Tools.GetForUpdate(src.SourceID)
				if err != nil {
					return err
				}
				if tool == nil {
					return domain.ErrNotFound
				}
				items = append(items, resolved{src: src, tool: tool, gone: tool.Status == entity.ToolDisposed})
			}
		}

		// Fase 2: aplicar. Nunca se llama al ledger aquí.
		for _, it := range items {
			if it.gone {
				result.AlreadyGone = append(result.AlreadyGone, it.src)
				continue
			}
			if it.eligible != nil {
				if err := tx.Disposals.MarkDisposed(it.eligible.ID, now, actor, in.Reason); err != nil {
					return err
				}
			} else {
				if err := tx.Tools.UpdateStatus(it.tool.ID, entity.ToolDisposed, &now, now); err != nil {
					return err
				}
			}
			result.Disposed = append(result.Disposed, it.src)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.TotalProcessed = len(in.Sources)

	if len(result.Disposed) > 0 {
		uc.events.Publish(event.Event{
			Name:  event.DisposalCompleted,
			Actor: actor,
			At:    now,
			Payload: map[string]any{
				"disposed": len(result.Disposed),
				"skipped":  len(result.AlreadyGone),
				"reason":   in.Reason,
			},
		})
	}
	return result, nil
}

// ListEligible lista las cantidades elegibles de baja aún pendientes.
func (uc *UseCase) ListEligible(ctx context.Context, limit, offset int) ([]*dto.DisposalEligibleResponse, error) {
	list, err := uc.disposals.ListPending(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.DisposalEligibleResponse, 0, len(list))
	for _, d := range list {
		result = append(result, &dto.DisposalEligibleResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			ReturnID:  d.ReturnID,
			Quantity:  d.Quantity,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}
