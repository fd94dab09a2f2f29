package disposal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/disposal"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	uc        *disposal.UseCase
	productID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	productID := uuid.New().String()
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Products.Create(&entity.Product{
			ID:        productID,
			SKU:       "SKU-BAJA",
			Name:      "producto con bajas",
			Stock:     10,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	require.NoError(t, err)
	return &fixture{
		store:     store,
		uc:        disposal.NewUseCase(store, store.Disposals(), store.Tools(), event.Nop{}),
		productID: productID,
	}
}

// seedEligible crea una cantidad elegible pendiente y devuelve su ID.
func (f *fixture) seedEligible(t *testing.T, qty int64) string {
	t.Helper()
	id := uuid.New().String()
	err := f.store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Disposals.CreateEligible(&entity.DisposalEligible{
			ID:        id,
			ProductID: f.productID,
			ReturnID:  uuid.New().String(),
			Quantity:  qty,
			CreatedAt: time.Now(),
		})
	})
	require.NoError(t, err)
	return id
}

// seedDamagedTool registra una herramienta ya marcada como dañada.
func (f *fixture) seedDamagedTool(t *testing.T) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	err := f.store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Tools.Create(&entity.Tool{
			ID:        id,
			Name:      "pulidora de cantos",
			Status:    entity.ToolDamaged,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T) int64 {
	t.Helper()
	product, err := f.store.Products().GetByID(f.productID)
	require.NoError(t, err)
	return product.Stock
}

func productSource(id string) dto.DisposalSourceRequest {
	return dto.DisposalSourceRequest{SourceType: entity.DisposalSourceProduct, SourceID: id}
}

func toolSource(id string) dto.DisposalSourceRequest {
	return dto.DisposalSourceRequest{SourceType: entity.DisposalSourceTool, SourceID: id}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Dispose
// ──────────────────────────────────────────────────────────────────────────────

func TestDispose_MarcaElegibleSinTocarStock(t *testing.T) {
	f := newFixture(t)
	eligibleID := f.seedEligible(t, 2)

	result, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Reason:  "vidrio estrellado",
		Sources: []dto.DisposalSourceRequest{productSource(eligibleID)},
	})
	require.NoError(t, err)

	assert.Len(t, result.Disposed, 1)
	assert.Empty(t, result.AlreadyGone)
	assert.Equal(t, 1, result.TotalProcessed)

	// La baja jamás pasa por el ledger.
	assert.Equal(t, int64(10), f.stock(t))

	pendientes, err := f.store.Disposals().ListPending(10, 0)
	require.NoError(t, err)
	assert.Empty(t, pendientes)

	gone, err := f.store.Disposals().GetEligibleByID(eligibleID)
	require.NoError(t, err)
	assert.True(t, gone.Disposed)
	assert.Equal(t, "tester", gone.DisposedBy)
	assert.Equal(t, "vidrio estrellado", gone.Reason)
}

// Repetir la baja de una fuente ya aplicada es un no-op exitoso: el request
// reintentado se reporta en already_disposed, nunca como error.
func TestDispose_Idempotente(t *testing.T) {
	f := newFixture(t)
	eligibleID := f.seedEligible(t, 2)

	_, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{productSource(eligibleID)},
	})
	require.NoError(t, err)

	result, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{productSource(eligibleID)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Disposed)
	assert.Len(t, result.AlreadyGone, 1)
	assert.Equal(t, int64(10), f.stock(t))
}

func TestDispose_FuenteDesconocida_TodoONada(t *testing.T) {
	f := newFixture(t)
	eligibleID := f.seedEligible(t, 2)

	_, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{
			productSource(eligibleID),
			productSource(uuid.New().String()), // no existe
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La fuente válida tampoco debe haberse aplicado.
	pendientes, err := f.store.Disposals().ListPending(10, 0)
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)
}

func TestDispose_HerramientaDanada(t *testing.T) {
	f := newFixture(t)
	toolID := f.seedDamagedTool(t)

	result, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Reason:  "motor quemado",
		Sources: []dto.DisposalSourceRequest{toolSource(toolID)},
	})
	require.NoError(t, err)
	assert.Len(t, result.Disposed, 1)

	tool, err := f.store.Tools().GetByID(toolID)
	require.NoError(t, err)
	assert.Equal(t, entity.ToolDisposed, tool.Status)
	assert.NotNil(t, tool.DisposedAt)

	// Segunda baja de la misma herramienta: no-op.
	result, err = f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{toolSource(toolID)},
	})
	require.NoError(t, err)
	assert.Len(t, result.AlreadyGone, 1)
}

func TestDispose_MixtoProductoYHerramienta(t *testing.T) {
	f := newFixture(t)
	eligibleID := f.seedEligible(t, 3)
	toolID := f.seedDamagedTool(t)

	result, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{productSource(eligibleID), toolSource(toolID)},
	})
	require.NoError(t, err)
	assert.Len(t, result.Disposed, 2)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, int64(10), f.stock(t))
}

func TestDispose_TipoDeFuenteInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		Sources: []dto.DisposalSourceRequest{{SourceType: "vehiculo", SourceID: uuid.New().String()}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
