package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.DisposalRepository = (*DisposalRepo)(nil)

// DisposalRepo implementación de DisposalRepository sobre PostgreSQL.
type DisposalRepo struct {
	q Querier
}

// NewDisposalRepository construye el adaptador.
func NewDisposalRepository(q Querier) *DisposalRepo {
	return &DisposalRepo{q: q}
}

const disposalColumns = `id, product_id, return_id, quantity, created_at, disposed, disposed_at, disposed_by, reason`

// CreateEligible persiste una cantidad elegible para baja.
func (r *DisposalRepo) CreateEligible(d *entity.DisposalEligible) error {
	query := `
		INSERT INTO disposal_eligible (id, product_id, return_id, quantity, created_at, disposed, disposed_at, disposed_by, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.ProductID, d.ReturnID, d.Quantity, d.CreatedAt, d.Disposed, d.DisposedAt, d.DisposedBy, d.Reason,
	)
	if err != nil {
		return fmt.Errorf("create disposal eligible: %w", err)
	}
	return nil
}

// GetEligibleByID obtiene una cantidad elegible, o nil si no existe.
func (r *DisposalRepo) GetEligibleByID(id string) (*entity.DisposalEligible, error) {
	query := `SELECT ` + disposalColumns + ` FROM disposal_eligible WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetEligibleForUpdate obtiene la cantidad elegible y bloquea la fila.
func (r *DisposalRepo) GetEligibleForUpdate(id string) (*entity.DisposalEligible, error) {
	query := `SELECT ` + disposalColumns + ` FROM disposal_eligible WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *DisposalRepo) scanOne(row pgx.Row) (*entity.DisposalEligible, error) {
	var d entity.DisposalEligible
	err := row.Scan(&d.ID, &d.ProductID, &d.ReturnID, &d.Quantity, &d.CreatedAt,
		&d.Disposed, &d.DisposedAt, &d.DisposedBy, &d.Reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan disposal eligible: %w", err)
	}
	return &d, nil
}

// MarkDisposed aplica la baja definitiva sobre la cantidad elegible.
func (r *DisposalRepo) MarkDisposed(id string, at time.Time, by, reason string) error {
	query := `UPDATE disposal_eligible SET disposed = TRUE, disposed_at = $2, disposed_by = $3, reason = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, at, by, reason)
	if err != nil {
		return fmt.Errorf("mark disposed: %w", err)
	}
	return nil
}

// ListPending lista las cantidades elegibles aún no dadas de baja.
func (r *DisposalRepo) ListPending(limit, offset int) ([]*entity.DisposalEligible, error) {
	query := `SELECT ` + disposalColumns + ` FROM disposal_eligible WHERE disposed = FALSE ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending disposals: %w", err)
	}
	defer rows.Close()
	var list []*entity.DisposalEligible
	for rows.Next() {
		var d entity.DisposalEligible
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ReturnID, &d.Quantity, &d.CreatedAt,
			&d.Disposed, &d.DisposedAt, &d.DisposedBy, &d.Reason); err != nil {
			return nil, fmt.Errorf("scan disposal eligible: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
