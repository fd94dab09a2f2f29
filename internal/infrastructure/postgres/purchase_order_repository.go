package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, po_number, supplier_id, status, payment_status, paid_amount, order_date, expected_date, received_date, created_at, updated_at`

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, po_number, supplier_id, status, payment_status, paid_amount, order_date, expected_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.SupplierID, po.Status, po.PaymentStatus, po.PaidAmount,
		po.OrderDate, po.ExpectedDate, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (id, po_id, line_no, product_id, ordered_qty, received_qty, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range po.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.POID, item.LineNo, item.ProductID, item.OrderedQty, item.ReceivedQty, item.UnitCost,
		); err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la orden y bloquea la cabecera (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.PaymentStatus, &po.PaidAmount,
		&po.OrderDate, &po.ExpectedDate, &po.ReceivedDate, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return &po, nil
}

// UpdateStatus cambia el estado de la orden; receivedDate solo se fija al recibir.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.POStatus, receivedDate *time.Time, updatedAt time.Time) error {
	query := `UPDATE purchase_orders SET status = $2, received_date = COALESCE($3, received_date), updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, receivedDate, updatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, receivedQty int64) error {
	query := `UPDATE purchase_order_items SET received_qty = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, receivedQty)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return nil
}

// UpdatePayment registra el pago de la orden.
func (r *PurchaseOrderRepo) UpdatePayment(id string, status entity.PaymentStatus, amount decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE purchase_orders SET payment_status = $2, paid_amount = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, amount, updatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order payment: %w", err)
	}
	return nil
}

// List lista órdenes, de la más reciente a la más antigua, con sus líneas.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + poColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.PaymentStatus, &po.PaidAmount,
			&po.OrderDate, &po.ExpectedDate, &po.ReceivedDate, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		items, err := r.itemsOf(ctx, po.ID)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}
	return list, nil
}

func (r *PurchaseOrderRepo) itemsOf(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_id, line_no, product_id, ordered_qty, received_qty, unit_cost
		FROM purchase_order_items
		WHERE po_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.POID, &it.LineNo, &it.ProductID, &it.OrderedQty, &it.ReceivedQty, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
