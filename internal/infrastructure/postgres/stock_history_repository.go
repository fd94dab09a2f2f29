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

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación de StockHistoryRepository sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador.
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Append agrega una entrada al historial.
func (r *StockHistoryRepo) Append(s *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_history (id, product_id, effective_date, stock_after, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ProductID, s.EffectiveDate, s.StockAfter, s.RecordedAt, s.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("append stock history: %w", err)
	}
	return nil
}

// LatestAsOf devuelve la entrada más reciente con recorded_at <= cutoff,
// o nil si el producto no tenía historial a esa fecha.
func (r *StockHistoryRepo) LatestAsOf(productID string, cutoff time.Time) (*entity.StockSnapshot, error) {
	query := `
		SELECT id, product_id, effective_date, stock_after, recorded_at, recorded_by
		FROM stock_history
		WHERE product_id = $1 AND recorded_at <= $2
		ORDER BY recorded_at DESC
		LIMIT 1`
	var s entity.StockSnapshot
	err := r.q.QueryRow(context.Background(), query, productID, cutoff).
		Scan(&s.ID, &s.ProductID, &s.EffectiveDate, &s.StockAfter, &s.RecordedAt, &s.RecordedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest stock as of: %w", err)
	}
	return &s, nil
}

// ListByProduct lista el historial de un producto, del más reciente al más antiguo.
func (r *StockHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT id, product_id, effective_date, stock_after, recorded_at, recorded_by
		FROM stock_history
		WHERE product_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.ID, &s.ProductID, &s.EffectiveDate, &s.StockAfter, &s.RecordedAt, &s.RecordedBy); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
