package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo entrega consecutivos por tipo de documento usando una fila por
// tipo en document_counters. El UPSERT con RETURNING toma el lock de fila, así
// dos transacciones concurrentes nunca obtienen el mismo número.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next devuelve el siguiente consecutivo del tipo de documento.
func (r *CounterRepo) Next(docType string) (int64, error) {
	query := `
		INSERT INTO document_counters (doc_type, last_number)
		VALUES ($1, 1)
		ON CONFLICT (doc_type) DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, docType).Scan(&n); err != nil {
		return 0, fmt.Errorf("next counter %s: %w", docType, err)
	}
	return n, nil
}
