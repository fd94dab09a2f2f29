package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

func newProductUC(store *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store, store.Products())
}

func TestProductCreate_NormalizaSKU(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	resp, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU:  "  vid-temp-8mm ",
		Name: "Vidrio templado 8mm",
	})
	require.NoError(t, err)
	assert.Equal(t, "VID-TEMP-8MM", resp.SKU, "el SKU se guarda en mayúsculas sin espacios")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	_, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "VID-TEMP-8MM", Name: "Vidrio templado 8mm",
	})
	require.NoError(t, err)

	// Mismo SKU con otra capitalización: sigue siendo duplicado.
	_, err = uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "vid-temp-8mm", Name: "Otro nombre",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_StockInicialConHistorial(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	resp, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "PERFIL-ALU", Name: "Perfil de aluminio", Stock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Stock)

	// El stock inicial también es auditable: primera entrada del historial.
	history, err := store.History().ListByProduct(resp.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(12), history[0].StockAfter)
	assert.Equal(t, "tester", history[0].RecordedBy)
}

func TestProductCreate_StockCeroSinHistorial(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	resp, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "SILICONA-NEG", Name: "Silicona negra",
	})
	require.NoError(t, err)

	history, err := store.History().ListByProduct(resp.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "VID-LAM-6MM", Name: "Vidrio laminado 6mm", Stock: 7,
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:         "Vidrio laminado 6mm incoloro",
		ReorderLimit: 3,
		Location:     "estante B2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vidrio laminado 6mm incoloro", updated.Name)
	assert.Equal(t, int64(7), updated.Stock, "el update descriptivo no debe cambiar stock")

	product, err := store.Products().GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.Stock)
}

func TestProductCreate_BelowReorder(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	resp, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		SKU: "TORN-INOX", Name: "Tornillo inoxidable", Stock: 2, ReorderLimit: 5,
	})
	require.NoError(t, err)
	assert.True(t, resp.BelowReorder)
}

func TestProductGetByID_Inexistente(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	_, err := uc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
