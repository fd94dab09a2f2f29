package issuance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/issuance"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	uc       *issuance.UseCase
	clientID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	clientID := uuid.New().String()
	now := time.Now()
	err := store.Clients().Create(&entity.Client{
		ID:        clientID,
		Name:      "Cliente de Prueba",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return &fixture{
		store:    store,
		uc:       issuance.NewUseCase(store, store.Issuances(), store.Clients(), event.Nop{}),
		clientID: clientID,
	}
}

// seedProduct inserta un producto con el stock dado.
func (f *fixture) seedProduct(t *testing.T, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	err := f.store.Run(context.Background(), func(tx repository.Tx) error {
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

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	product, err := f.store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYNumera(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, "SAL-000001", resp.Number)
	assert.Equal(t, "bodeguero-1", resp.IssuedBy)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(4), resp.Items[0].Quantity)

	assert.Equal(t, int64(6), f.stockOf(t, productID))

	// El descuento queda en el historial.
	history, err := f.store.History().ListByProduct(productID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(6), history[0].StockAfter)
}

func TestCreate_Consecutivo_Incrementa(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	for i, want := range []string{"SAL-000001", "SAL-000002", "SAL-000003"} {
		resp, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
			ClientID: f.clientID,
			Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err, "salida %d", i)
		assert.Equal(t, want, resp.Number)
	}
}

func TestCreate_StockInsuficiente_NadaParcial(t *testing.T) {
	f := newFixture(t)
	okID := f.seedProduct(t, 10)
	cortoID := f.seedProduct(t, 2)

	// La segunda línea excede el stock: ninguna de las dos debe aplicarse.
	_, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items: []dto.IssuanceItemRequest{
			{ProductID: okID, Quantity: 5},
			{ProductID: cortoID, Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var lineErr *domain.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Line, "el error debe señalar la línea culpable")
	assert.Equal(t, cortoID, lineErr.ProductID)

	assert.Equal(t, int64(10), f.stockOf(t, okID), "la línea buena no debe quedar aplicada")
	assert.Equal(t, int64(2), f.stockOf(t, cortoID))

	list, err := f.store.Issuances().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "no debe persistirse ninguna salida")
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	_, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: uuid.New().String(),
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	_, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Dos salidas concurrentes de 6 unidades contra stock 10: exactamente una gana
// y la otra recibe ErrInsufficientStock. Nunca stock negativo ni doble venta.
func TestCreate_Concurrencia_UnaGanadora(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
				ClientID: f.clientID,
				Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 6}},
			})
		}(i)
	}
	wg.Wait()

	var oks, fails int
	for _, err := range errs {
		if err == nil {
			oks++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			fails++
		}
	}
	assert.Equal(t, 1, oks, "exactamente una salida debe ganar")
	assert.Equal(t, 1, fails)
	assert.Equal(t, int64(4), f.stockOf(t, productID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete (reversión)
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RevierteStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	resp, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.stockOf(t, productID))

	require.NoError(t, f.uc.Delete(context.Background(), "tester", resp.ID))

	assert.Equal(t, int64(10), f.stockOf(t, productID), "la reversión debe reintegrar las unidades")

	_, err = f.uc.GetByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La reversión queda registrada como una entrada más del historial,
	// nunca como un borrado de entradas anteriores.
	history, err := f.store.History().ListByProduct(productID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestDelete_ConDevolucionExistente_Conflicto(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	resp, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)

	// Una devolución referencia la salida: la reversión deja de ser válida.
	now := time.Now()
	err = f.store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Returns.Create(&entity.Return{
			ID:         uuid.New().String(),
			RMANumber:  "RMA-000001",
			IssuanceID: resp.ID,
			ClientID:   f.clientID,
			Status:     entity.ReturnPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), "tester", resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflictingState)
	assert.Equal(t, int64(6), f.stockOf(t, productID), "nada debe revertirse")
}

func TestDelete_ConDevolucionCancelada_Procede(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 10)

	resp, err := f.uc.Create(context.Background(), "tester", dto.CreateIssuanceRequest{
		ClientID: f.clientID,
		Items:    []dto.IssuanceItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)

	// Una devolución CANCELLED no bloquea: no es documento vivo aguas abajo.
	now := time.Now()
	err = f.store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Returns.Create(&entity.Return{
			ID:         uuid.New().String(),
			RMANumber:  "RMA-000001",
			IssuanceID: resp.ID,
			ClientID:   f.clientID,
			Status:     entity.ReturnCancelled,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), "tester", resp.ID))
	assert.Equal(t, int64(10), f.stockOf(t, productID))
}

func TestDelete_Inexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Delete(context.Background(), "tester", uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
