package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ToolUseCase registro de herramientas de la flota. Marcar una herramienta
// como dañada la vuelve candidata a baja; la baja definitiva es del workflow
// de disposal.
type ToolUseCase struct {
	tools repository.ToolRepository
}

// NewToolUseCase construye el caso de uso.
func NewToolUseCase(tools repository.ToolRepository) *ToolUseCase {
	return &ToolUseCase{tools: tools}
}

// Create registra una herramienta activa.
func (uc *ToolUseCase) Create(ctx context.Context, in dto.CreateToolRequest) (*dto.ToolResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tool := &entity.Tool{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Status:    entity.ToolActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tools.Create(tool); err != nil {
		return nil, err
	}
	return toToolResponse(tool), nil
}

// MarkDamaged transiciona ACTIVE -> DAMAGED.
func (uc *ToolUseCase) MarkDamaged(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	tool, err := uc.tools.GetByID(id)
	if err != nil {
		return err
	}
	if tool == nil {
		return domain.ErrNotFound
	}
	if tool.Status != entity.ToolActive {
		return domain.ErrInvalidTransition
	}
	return uc.tools.UpdateStatus(id, entity.ToolDamaged, nil, time.Now())
}

// List lista herramientas paginadas.
func (uc *ToolUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ToolResponse, error) {
	list, err := uc.tools.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ToolResponse, 0, len(list))
	for _, t := range list {
		result = append(result, toToolResponse(t))
	}
	return result, nil
}

func toToolResponse(t *entity.Tool) *dto.ToolResponse {
	return &dto.ToolResponse{ID: t.ID, Name: t.Name, Status: string(t.Status)}
}
