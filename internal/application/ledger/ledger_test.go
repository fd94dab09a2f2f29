package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// seedProduct inserta un producto con el stock dado, sin pasar por el caso de
// uso de productos (así el historial arranca vacío y cada test lo controla).
func seedProduct(t *testing.T, store *memory.Store, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Products.Create(&entity.Product{
			ID:        id,
			SKU:       "SKU-" + id[:8],
			Name:      "producto de prueba",
			Stock:     stock,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	require.NoError(t, err)
	return id
}

func newService(store *memory.Store) *ledger.Service {
	return ledger.NewService(store, store.Products(), store.History(), event.Nop{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_AcreditaYDescuenta(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 10)
	svc := newService(store)

	newStock, err := svc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: productID,
		Delta:     5,
		Actor:     "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), newStock)

	newStock, err = svc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: productID,
		Delta:     -8,
		Actor:     "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), newStock)

	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.Stock, "el stock persistido debe reflejar ambos ajustes")
}

func TestAdjust_StockInsuficiente_NoDejaRastro(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 3)
	svc := newService(store)

	_, err := svc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: productID,
		Delta:     -4,
		Actor:     "tester",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock y el historial quedan intactos: el rechazo no escribe nada.
	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.Stock)

	history, err := svc.History(context.Background(), productID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, history, "un ajuste rechazado no debe anexar historial")
}

func TestAdjust_DeltaCero_Invalido(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 3)
	svc := newService(store)

	_, err := svc.Adjust(context.Background(), ledger.AdjustInput{ProductID: productID, Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)

	_, err := svc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: uuid.New().String(),
		Delta:     1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_AnexaHistorialConStockResultante(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 0)
	svc := newService(store)

	for _, delta := range []int64{10, -3, 7} {
		_, err := svc.Adjust(context.Background(), ledger.AdjustInput{
			ProductID: productID,
			Delta:     delta,
			Actor:     "tester",
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), productID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Más reciente primero: 14, 7, 10.
	assert.Equal(t, int64(14), history[0].StockAfter)
	assert.Equal(t, int64(7), history[1].StockAfter)
	assert.Equal(t, int64(10), history[2].StockAfter)
	assert.Equal(t, "tester", history[0].RecordedBy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StockAsOf
// ──────────────────────────────────────────────────────────────────────────────

func TestStockAsOf_SinHistorial_EsCero(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 5)
	svc := newService(store)

	stock, err := svc.StockAsOf(context.Background(), productID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock,
		"sin entradas de historial el stock histórico es 0, aunque el stock vivo sea otro")
}

func TestStockAsOf_AntesDelPrimerMovimiento_EsCero(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 0)
	svc := newService(store)

	_, err := svc.Adjust(context.Background(), ledger.AdjustInput{ProductID: productID, Delta: 9})
	require.NoError(t, err)

	ayer := time.Now().AddDate(0, 0, -1)
	stock, err := svc.StockAsOf(context.Background(), productID, ayer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock)
}

func TestStockAsOf_FinDeDia_TomaLaUltimaEntrada(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 0)
	svc := newService(store)

	// Dos movimientos hoy; la consulta a fin de hoy ve el último.
	_, err := svc.Adjust(context.Background(), ledger.AdjustInput{ProductID: productID, Delta: 9})
	require.NoError(t, err)
	_, err = svc.Adjust(context.Background(), ledger.AdjustInput{ProductID: productID, Delta: -2})
	require.NoError(t, err)

	stock, err := svc.StockAsOf(context.Background(), productID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock)
}

func TestStockAsOf_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)

	_, err := svc.StockAsOf(context.Background(), uuid.New().String(), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	eod := ledger.EndOfDay(in)

	assert.Equal(t, 15, eod.Day())
	assert.Equal(t, 23, eod.Hour())
	assert.Equal(t, 59, eod.Minute())
	assert.True(t, eod.After(in))
	assert.True(t, eod.Before(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}
