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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, rma_number, issuance_id, client_id, reason, status, created_at, updated_at`

// Create persiste la devolución con sus líneas.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	ctx := context.Background()
	query := `
		INSERT INTO returns (id, rma_number, issuance_id, client_id, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.RMANumber, ret.IssuanceID, ret.ClientID, ret.Reason, ret.Status, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create return: %w", err)
	}
	itemQuery := `
		INSERT INTO return_items (id, return_id, line_no, product_id, name, sku, quantity, restocked, disposed, unaccounted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range ret.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.ReturnID, item.LineNo, item.ProductID, item.Name, item.SKU,
			item.Quantity, item.Restocked, item.Disposed, item.Unaccounted,
		); err != nil {
			return fmt.Errorf("create return item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la devolución con sus líneas, o nil si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la devolución y bloquea la cabecera (SELECT FOR UPDATE).
func (r *ReturnRepo) GetForUpdate(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *ReturnRepo) getOne(query, id string) (*entity.Return, error) {
	ctx := context.Background()
	var ret entity.Return
	err := r.q.QueryRow(ctx, query, id).
		Scan(&ret.ID, &ret.RMANumber, &ret.IssuanceID, &ret.ClientID, &ret.Reason, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	ret.Items = items
	return &ret, nil
}

// UpdateStatus cambia el estado de la devolución.
func (r *ReturnRepo) UpdateStatus(id string, status entity.ReturnStatus, updatedAt time.Time) error {
	query := `UPDATE returns SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	return nil
}

// UpdateItemInspection fija el reparto de inspección de una línea.
func (r *ReturnRepo) UpdateItemInspection(itemID string, restocked, disposed, unaccounted int64) error {
	query := `UPDATE return_items SET restocked = $2, disposed = $3, unaccounted = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, restocked, disposed, unaccounted)
	if err != nil {
		return fmt.Errorf("update return item inspection: %w", err)
	}
	return nil
}

// ExistsByIssuance indica si alguna devolución no cancelada referencia la salida.
func (r *ReturnRepo) ExistsByIssuance(issuanceID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM returns WHERE issuance_id = $1 AND status <> $2)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, issuanceID, entity.ReturnCancelled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check return by issuance: %w", err)
	}
	return exists, nil
}

// List lista devoluciones, de la más reciente a la más antigua, con sus líneas.
func (r *ReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	ctx := context.Background()
	query := `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.RMANumber, &ret.IssuanceID, &ret.ClientID, &ret.Reason, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range list {
		items, err := r.itemsOf(ctx, ret.ID)
		if err != nil {
			return nil, err
		}
		ret.Items = items
	}
	return list, nil
}

func (r *ReturnRepo) itemsOf(ctx context.Context, returnID string) ([]entity.ReturnItem, error) {
	query := `
		SELECT id, return_id, line_no, product_id, name, sku, quantity, restocked, disposed, unaccounted
		FROM return_items
		WHERE return_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	var items []entity.ReturnItem
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.LineNo, &it.ProductID, &it.Name, &it.SKU,
			&it.Quantity, &it.Restocked, &it.Disposed, &it.Unaccounted); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
