package installation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// docTypeInstallation tipo de documento para el consecutivo INST-000001.
const docTypeInstallation = "INST"

// UseCase agenda instalaciones consumiendo ítems QC_PASSED del motor de
// fabricación. La transición QC_PASSED -> DISPATCHED de cada ítem ocurre en la
// misma transacción que crea la instalación: es el reclamo que impide que dos
// agendamientos concurrentes reserven el mismo ítem.
type UseCase struct {
	txRunner      repository.TxRunner
	installations repository.InstallationRepository // lecturas fuera de transacción
	events        event.Publisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	installations repository.InstallationRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{txRunner: txRunner, installations: installations, events: events}
}

// Schedule valida el rango de fechas, verifica dentro de la transacción que
// cada ítem referenciado siga en QC_PASSED (contra la fila bloqueada), lo pasa
// a DISPATCHED y persiste la instalación, todo atómicamente.
func (uc *UseCase) Schedule(ctx context.Context, actor string, in dto.ScheduleInstallationRequest) (*dto.InstallationResponse, error) {
	if in.CrewID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if start.After(end) {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Items))
	for _, ref := range in.Items {
		if ref.JobOrderID == "" || ref.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		if seen[ref.ItemID] {
			return nil, domain.ErrInvalidInput
		}
		seen[ref.ItemID] = true
	}

	now := time.Now()
	inst := &entity.Installation{
		ID:        uuid.New().String(),
		CrewID:    in.CrewID,
		StartDate: start,
		EndDate:   end,
		Status:    entity.InstallationScheduled,
		CreatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		// Reclamo de cada ítem: debe seguir en QC_PASSED en la fila viva.
		for _, ref := range in.Items {
			item, err := tx.JobOrders.GetItemForUpdate(ref.JobOrderID, ref.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Status != entity.FabQCPassed {
				return domain.ErrInvalidState
			}
			if err := tx.JobOrders.UpdateItemStatus(ref.ItemID, entity.FabDispatched, now); err != nil {
				return err
			}
		}
		seq, err := tx.Counters.Next(docTypeInstallation)
		if err != nil {
			return err
		}
		inst.Number = fmt.Sprintf("%s-%06d", docTypeInstallation, seq)
		inst.Items = make([]entity.InstallationItem, 0, len(in.Items))
		for _, ref := range in.Items {
			inst.Items = append(inst.Items, entity.InstallationItem{
				ID:             uuid.New().String(),
				InstallationID: inst.ID,
				JobOrderID:     ref.JobOrderID,
				JobOrderItemID: ref.ItemID,
			})
		}
		return tx.Installations.Create(inst)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(event.Event{
		Name:  event.InstallationScheduled,
		Actor: actor,
		At:    now,
		Payload: map[string]any{
			"installation_id": inst.ID,
			"number":          inst.Number,
			"crew_id":         inst.CrewID,
			"items":           len(inst.Items),
		},
	})
	return toResponse(inst), nil
}

// GetByID obtiene una instalación (lectura fuera de transacción).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InstallationResponse, error) {
	inst, err := uc.installations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(inst), nil
}

// List lista instalaciones paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.InstallationResponse, error) {
	list, err := uc.installations.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.InstallationResponse, 0, len(list))
	for _, inst := range list {
		result = append(result, toResponse(inst))
	}
	return result, nil
}

func toResponse(inst *entity.Installation) *dto.InstallationResponse {
	resp := &dto.InstallationResponse{
		ID:        inst.ID,
		Number:    inst.Number,
		CrewID:    inst.CrewID,
		StartDate: inst.StartDate.Format("2006-01-02"),
		EndDate:   inst.EndDate.Format("2006-01-02"),
		Status:    string(inst.Status),
		Items:     make([]dto.InstallationItemRequest, 0, len(inst.Items)),
	}
	for _, item := range inst.Items {
		resp.Items = append(resp.Items, dto.InstallationItemRequest{
			JobOrderID: item.JobOrderID,
			ItemID:     item.JobOrderItemID,
		})
	}
	return resp
}
