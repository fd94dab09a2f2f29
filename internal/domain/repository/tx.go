package repository

import "context"

// CounterRepository entrega consecutivos por tipo de documento (SAL, RMA, OC,
// OT, INST). Next se llama dentro de la transacción del documento que numera.
type CounterRepository interface {
	Next(docType string) (int64, error)
}

// Tx agrupa los repositorios atados a una misma transacción. Los workflows
// reciben este bundle dentro de TxRunner.Run; todo lo que toquen con él
// comparte Commit o Rollback.
type Tx struct {
	Products       ProductRepository
	History        StockHistoryRepository
	Issuances      IssuanceRepository
	Returns        ReturnRepository
	PurchaseOrders PurchaseOrderRepository
	JobOrders      JobOrderRepository
	Installations  InstallationRepository
	Disposals      DisposalRepository
	Tools          ToolRepository
	Counters       CounterRepository
}

// TxRunner ejecuta fn dentro de una transacción serializable del almacén,
// reintentando de forma transparente los conflictos de escritura concurrentes
// un número acotado de veces antes de devolver domain.ErrContention.
// Garantiza atomicidad para todas las operaciones compuestas del motor.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}
