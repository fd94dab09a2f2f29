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

var _ repository.IssuanceRepository = (*IssuanceRepo)(nil)

// IssuanceRepo implementación de IssuanceRepository sobre PostgreSQL.
type IssuanceRepo struct {
	q Querier
}

// NewIssuanceRepository construye el adaptador.
func NewIssuanceRepository(q Querier) *IssuanceRepo {
	return &IssuanceRepo{q: q}
}

// Create persiste la cabecera y sus líneas.
func (r *IssuanceRepo) Create(i *entity.Issuance) error {
	ctx := context.Background()
	query := `
		INSERT INTO issuances (id, number, date, client_id, remarks, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, i.ID, i.Number, i.Date, i.ClientID, i.Remarks, i.IssuedBy, i.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create issuance: %w", err)
	}
	itemQuery := `
		INSERT INTO issuance_items (id, issuance_id, line_no, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range i.Items {
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, item.IssuanceID, item.LineNo, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("create issuance item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la salida con sus líneas, o nil si no existe.
func (r *IssuanceRepo) GetByID(id string) (*entity.Issuance, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, date, client_id, remarks, issued_by, created_at
		FROM issuances WHERE id = $1`
	var i entity.Issuance
	err := r.q.QueryRow(ctx, query, id).
		Scan(&i.ID, &i.Number, &i.Date, &i.ClientID, &i.Remarks, &i.IssuedBy, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issuance: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	i.Items = items
	return &i, nil
}

// Delete elimina cabecera y líneas. La reversión de stock es del workflow.
func (r *IssuanceRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM issuance_items WHERE issuance_id = $1`, id); err != nil {
		return fmt.Errorf("delete issuance items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM issuances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete issuance: %w", err)
	}
	return nil
}

// List lista salidas, de la más reciente a la más antigua, con sus líneas.
func (r *IssuanceRepo) List(limit, offset int) ([]*entity.Issuance, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, date, client_id, remarks, issued_by, created_at
		FROM issuances
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Issuance
	for rows.Next() {
		var i entity.Issuance
		if err := rows.Scan(&i.ID, &i.Number, &i.Date, &i.ClientID, &i.Remarks, &i.IssuedBy, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
		}
		list = append(list, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, i := range list {
		items, err := r.itemsOf(ctx, i.ID)
		if err != nil {
			return nil, err
		}
		i.Items = items
	}
	return list, nil
}

func (r *IssuanceRepo) itemsOf(ctx context.Context, issuanceID string) ([]entity.IssuanceItem, error) {
	query := `
		SELECT id, issuance_id, line_no, product_id, quantity
		FROM issuance_items
		WHERE issuance_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, issuanceID)
	if err != nil {
		return nil, fmt.Errorf("list issuance items: %w", err)
	}
	defer rows.Close()
	var items []entity.IssuanceItem
	for rows.Next() {
		var it entity.IssuanceItem
		if err := rows.Scan(&it.ID, &it.IssuanceID, &it.LineNo, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan issuance item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
