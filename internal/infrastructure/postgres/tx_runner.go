package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Ensure TxRunner implementa repository.TxRunner.
var _ repository.TxRunner = (*TxRunner)(nil)

// maxTxAttempts reintentos de una transacción abortada por serialización
// antes de devolver domain.ErrContention.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable,
// con repositorios atados a la tx, reintentando conflictos de escritura
// concurrentes (SQLSTATE 40001/40P01) de forma transparente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con el bundle de repos atados a la tx
// y hace Commit o Rollback. Los precondiciones del dominio se re-evalúan
// dentro de fn contra lecturas FOR UPDATE, nunca contra lecturas previas.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrContention, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bundle := repository.Tx{
		Products:       NewProductRepository(tx),
		History:        NewStockHistoryRepository(tx),
		Issuances:      NewIssuanceRepository(tx),
		Returns:        NewReturnRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		JobOrders:      NewJobOrderRepository(tx),
		Installations:  NewInstallationRepository(tx),
		Disposals:      NewDisposalRepository(tx),
		Tools:          NewToolRepository(tx),
		Counters:       NewCounterRepository(tx),
	}
	if err := fn(bundle); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
