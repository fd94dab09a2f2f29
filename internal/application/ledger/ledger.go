package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Apply muta el stock de un producto como un paso dentro de la transacción del
// caller: bloquea la fila (GetForUpdate), verifica que el resultado no sea
// negativo, escribe el contador y anexa una entrada al historial. Nunca hace
// Commit por sí mismo; la atomicidad es del TxRunner que lo envuelve.
//
// Es el único camino permitido para cambiar Product.Stock.
func Apply(
	products repository.ProductRepository,
	history repository.StockHistoryRepository,
	productID string,
	delta int64,
	effectiveDate, now time.Time,
	actor string,
) (int64, error) {
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	newStock := product.Stock + delta
	if newStock < 0 {
		return 0, domain.ErrInsufficientStock
	}
	if err := products.UpdateStock(productID, newStock, now); err != nil {
		return 0, err
	}
	if effectiveDate.IsZero() {
		effectiveDate = now
	}
	snap := &entity.StockSnapshot{
		ID:            uuid.New().String(),
		ProductID:     productID,
		EffectiveDate: effectiveDate,
		StockAfter:    newStock,
		RecordedAt:    now,
		RecordedBy:    actor,
	}
	if err := history.Append(snap); err != nil {
		return 0, err
	}
	return newStock, nil
}

// AdjustInput entrada para un ajuste manual de stock.
type AdjustInput struct {
	ProductID     string
	Delta         int64     // != 0; negativo descuenta, positivo acredita
	EffectiveDate time.Time // cero = ahora
	Remarks       string
	Actor         string
}

// Service expone el ajuste manual (transacción propia) y las consultas de
// historial, que son analíticas y corren fuera de transacciones.
type Service struct {
	txRunner repository.TxRunner
	products repository.ProductRepository
	history  repository.StockHistoryRepository
	events   event.Publisher
}

// NewService construye el servicio del ledger.
func NewService(
	txRunner repository.TxRunner,
	products repository.ProductRepository,
	history repository.StockHistoryRepository,
	events event.Publisher,
) *Service {
	return &Service{txRunner: txRunner, products: products, history: history, events: events}
}

// Adjust aplica un ajuste manual en su propia transacción (reintentable).
func (s *Service) Adjust(ctx context.Context, input AdjustInput) (int64, error) {
	if input.ProductID == "" || input.Delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	now := time.Now()
	var newStock int64
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var errApply error
		newStock, errApply = Apply(tx.Products, tx.History, input.ProductID, input.Delta, input.EffectiveDate, now, input.Actor)
		return errApply
	})
	if err != nil {
		return 0, err
	}
	s.events.Publish(event.Event{
		Name:  event.StockAdjusted,
		Actor: input.Actor,
		At:    now,
		Payload: map[string]any{
			"product_id": input.ProductID,
			"delta":      input.Delta,
			"new_stock":  newStock,
			"remarks":    input.Remarks,
		},
	})
	return newStock, nil
}

// StockAsOf devuelve el stock del producto al fin del día indicado: la entrada
// más reciente del historial con RecordedAt <= fin de día, o 0 si no hay
// ninguna. Lectura analítica, sin transacción.
func (s *Service) StockAsOf(ctx context.Context, productID string, date time.Time) (int64, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	snap, err := s.history.LatestAsOf(productID, EndOfDay(date))
	if err != nil {
		return 0, err
	}
	if snap == nil {
		return 0, nil
	}
	return snap.StockAfter, nil
}

// History lista el historial de stock de un producto (más reciente primero).
func (s *Service) History(ctx context.Context, productID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	return s.history.ListByProduct(productID, limit, offset)
}

// EndOfDay devuelve el último instante del día de la fecha dada.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
