package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.InstallationRepository = (*InstallationRepo)(nil)

// InstallationRepo implementación de InstallationRepository sobre PostgreSQL.
type InstallationRepo struct {
	q Querier
}

// NewInstallationRepository construye el adaptador.
func NewInstallationRepository(q Querier) *InstallationRepo {
	return &InstallationRepo{q: q}
}

// Create persiste la instalación con sus ítems.
func (r *InstallationRepo) Create(inst *entity.Installation) error {
	ctx := context.Background()
	query := `
		INSERT INTO installations (id, number, crew_id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		inst.ID, inst.Number, inst.CrewID, inst.StartDate, inst.EndDate, inst.Status, inst.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create installation: %w", err)
	}
	itemQuery := `
		INSERT INTO installation_items (id, installation_id, job_order_id, job_order_item_id)
		VALUES ($1, $2, $3, $4)`
	for _, item := range inst.Items {
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, item.InstallationID, item.JobOrderID, item.JobOrderItemID); err != nil {
			return fmt.Errorf("create installation item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la instalación con sus ítems, o nil si no existe.
func (r *InstallationRepo) GetByID(id string) (*entity.Installation, error) {
	ctx := context.Background()
	query := `SELECT id, number, crew_id, start_date, end_date, status, created_at FROM installations WHERE id = $1`
	var inst entity.Installation
	err := r.q.QueryRow(ctx, query, id).
		Scan(&inst.ID, &inst.Number, &inst.CrewID, &inst.StartDate, &inst.EndDate, &inst.Status, &inst.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installation: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	inst.Items = items
	return &inst, nil
}

// List lista instalaciones, de la más reciente a la más antigua.
func (r *InstallationRepo) List(limit, offset int) ([]*entity.Installation, error) {
	ctx := context.Background()
	query := `SELECT id, number, crew_id, start_date, end_date, status, created_at FROM installations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installation
	for rows.Next() {
		var inst entity.Installation
		if err := rows.Scan(&inst.ID, &inst.Number, &inst.CrewID, &inst.StartDate, &inst.EndDate, &inst.Status, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan installation: %w", err)
		}
		list = append(list, &inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inst := range list {
		items, err := r.itemsOf(ctx, inst.ID)
		if err != nil {
			return nil, err
		}
		inst.Items = items
	}
	return list, nil
}

func (r *InstallationRepo) itemsOf(ctx context.Context, installationID string) ([]entity.InstallationItem, error) {
	query := `
		SELECT id, installation_id, job_order_id, job_order_item_id
		FROM installation_items
		WHERE installation_id = $1`
	rows, err := r.q.Query(ctx, query, installationID)
	if err != nil {
		return nil, fmt.Errorf("list installation items: %w", err)
	}
	defer rows.Close()
	var items []entity.InstallationItem
	for rows.Next() {
		var it entity.InstallationItem
		if err := rows.Scan(&it.ID, &it.InstallationID, &it.JobOrderID, &it.JobOrderItemID); err != nil {
			return nil, fmt.Errorf("scan installation item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
