package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.JobOrderRepository = (*JobOrderRepo)(nil)

// JobOrderRepo implementación de JobOrderRepository sobre PostgreSQL.
type JobOrderRepo struct {
	q Querier
}

// NewJobOrderRepository construye el adaptador.
func NewJobOrderRepository(q Querier) *JobOrderRepo {
	return &JobOrderRepo{q: q}
}

// Create persiste la orden de trabajo con sus ítems.
func (r *JobOrderRepo) Create(jo *entity.JobOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO job_orders (id, number, client_id, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, jo.ID, jo.Number, jo.ClientID, jo.Remarks, jo.CreatedAt, jo.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create job order: %w", err)
	}
	itemQuery := `
		INSERT INTO job_order_items (id, job_order_id, line_no, product_id, description, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range jo.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.JobOrderID, item.LineNo, item.ProductID, item.Description, item.Status, item.UpdatedAt,
		); err != nil {
			return fmt.Errorf("create job order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden de trabajo con sus ítems, o nil si no existe.
func (r *JobOrderRepo) GetByID(id string) (*entity.JobOrder, error) {
	ctx := context.Background()
	query := `SELECT id, number, client_id, remarks, created_at, updated_at FROM job_orders WHERE id = $1`
	var jo entity.JobOrder
	err := r.q.QueryRow(ctx, query, id).
		Scan(&jo.ID, &jo.Number, &jo.ClientID, &jo.Remarks, &jo.CreatedAt, &jo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job order: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	jo.Items = items
	return &jo, nil
}

const jobOrderItemColumns = `id, job_order_id, line_no, product_id, description, status, updated_at`

// GetItem obtiene un ítem de la orden, o nil si no existe.
func (r *JobOrderRepo) GetItem(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	query := `SELECT ` + jobOrderItemColumns + ` FROM job_order_items WHERE id = $1 AND job_order_id = $2`
	return r.scanItem(r.q.QueryRow(context.Background(), query, itemID, jobOrderID))
}

// GetItemForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *JobOrderRepo) GetItemForUpdate(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	query := `SELECT ` + jobOrderItemColumns + ` FROM job_order_items WHERE id = $1 AND job_order_id = $2 FOR UPDATE`
	return r.scanItem(r.q.QueryRow(context.Background(), query, itemID, jobOrderID))
}

func (r *JobOrderRepo) scanItem(row pgx.Row) (*entity.JobOrderItem, error) {
	var it entity.JobOrderItem
	err := row.Scan(&it.ID, &it.JobOrderID, &it.LineNo, &it.ProductID, &it.Description, &it.Status, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan job order item: %w", err)
	}
	return &it, nil
}

// UpdateItemStatus cambia el estado de producción de un ítem.
func (r *JobOrderRepo) UpdateItemStatus(itemID string, status entity.FabricationStatus, updatedAt time.Time) error {
	query := `UPDATE job_order_items SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update job order item status: %w", err)
	}
	return nil
}

// List lista órdenes de trabajo, de la más reciente a la más antigua.
func (r *JobOrderRepo) List(limit, offset int) ([]*entity.JobOrder, error) {
	ctx := context.Background()
	query := `SELECT id, number, client_id, remarks, created_at, updated_at FROM job_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobOrder
	for rows.Next() {
		var jo entity.JobOrder
		if err := rows.Scan(&jo.ID, &jo.Number, &jo.ClientID, &jo.Remarks, &jo.CreatedAt, &jo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job order: %w", err)
		}
		list = append(list, &jo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, jo := range list {
		items, err := r.itemsOf(ctx, jo.ID)
		if err != nil {
			return nil, err
		}
		jo.Items = items
	}
	return list, nil
}

func (r *JobOrderRepo) itemsOf(ctx context.Context, jobOrderID string) ([]entity.JobOrderItem, error) {
	query := `SELECT ` + jobOrderItemColumns + ` FROM job_order_items WHERE job_order_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, jobOrderID)
	if err != nil {
		return nil, fmt.Errorf("list job order items: %w", err)
	}
	defer rows.Close()
	var items []entity.JobOrderItem
	for rows.Next() {
		var it entity.JobOrderItem
		if err := rows.Scan(&it.ID, &it.JobOrderID, &it.LineNo, &it.ProductID, &it.Description, &it.Status, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
