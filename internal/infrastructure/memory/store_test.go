package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Products.Create(&entity.Product{
			ID: id, SKU: "SKU-" + id[:8], Name: "producto", Stock: stock,
			CreatedAt: now, UpdatedAt: now,
		})
	})
	require.NoError(t, err)
	return id
}

// Una transacción que falla a mitad de camino no deja escrituras parciales:
// el clon descartado se lleva consigo todo lo escrito dentro del callback.
func TestRun_FalloDescartaEscrituras(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 10)

	boom := errors.New("boom")
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		require.NoError(t, tx.Products.UpdateStock(productID, 99, time.Now()))
		if _, err := tx.Counters.Next("SAL"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Stock, "el stock escrito en la tx fallida no debe verse")

	// El consecutivo tampoco avanzó: la siguiente tx exitosa recibe el 1.
	err = store.Run(context.Background(), func(tx repository.Tx) error {
		seq, err := tx.Counters.Next("SAL")
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Run(ctx, func(tx repository.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LasTransaccionesSeSerializan(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 0)

	// 50 incrementos concurrentes de +1: el resultado exacto exige que cada
	// transacción vea el estado comprometido por la anterior.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Run(context.Background(), func(tx repository.Tx) error {
				p, err := tx.Products.GetForUpdate(productID)
				if err != nil {
					return err
				}
				return tx.Products.UpdateStock(productID, p.Stock+1, time.Now())
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), product.Stock)
}

// Las lecturas devuelven copias: mutar el resultado no contamina el almacén.
func TestLecturas_DevuelvenCopias(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, 10)

	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	product.Stock = 999

	fresh, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), fresh.Stock)
}

func TestCounters_PorTipoDeDocumento(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		for _, want := range []int64{1, 2, 3} {
			seq, err := tx.Counters.Next("SAL")
			require.NoError(t, err)
			assert.Equal(t, want, seq)
		}
		// Cada tipo de documento lleva su propio consecutivo.
		seq, err := tx.Counters.Next("RMA")
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)
		return nil
	})
	require.NoError(t, err)
}
