package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/procurement"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	uc         *procurement.UseCase
	supplierID string
	productID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	supplierID := uuid.New().String()
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{
		ID: supplierID, Name: "Vidrios del Norte", CreatedAt: now, UpdatedAt: now,
	}))

	productID := uuid.New().String()
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Products.Create(&entity.Product{
			ID:        productID,
			SKU:       "PERFIL-ALU-3M",
			Name:      "Perfil de aluminio 3m",
			Stock:     0,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	require.NoError(t, err)

	return &fixture{
		store:      store,
		uc:         procurement.NewUseCase(store, store.PurchaseOrders(), store.Suppliers(), store.Products(), event.Nop{}),
		supplierID: supplierID,
		productID:  productID,
	}
}

func (f *fixture) stock(t *testing.T) int64 {
	t.Helper()
	product, err := f.store.Products().GetByID(f.productID)
	require.NoError(t, err)
	return product.Stock
}

// createPO crea una orden de 20 unidades y la devuelve.
func (f *fixture) createPO(t *testing.T) *dto.POResponse {
	t.Helper()
	po, err := f.uc.Create(context.Background(), "tester", dto.CreatePORequest{
		SupplierID: f.supplierID,
		Items: []dto.POItemRequest{
			{ProductID: f.productID, Quantity: 20, UnitCost: decimal.NewFromFloat(12.50)},
		},
	})
	require.NoError(t, err)
	return po
}

// deliver lleva la orden hasta DELIVERED por el camino completo.
func (f *fixture) deliver(t *testing.T, poID string) {
	t.Helper()
	require.NoError(t, f.uc.MarkShipped(context.Background(), poID))
	require.NoError(t, f.uc.MarkDelivered(context.Background(), poID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create y transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PendingNumerada(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)

	assert.Equal(t, "OC-000001", po.PONumber)
	assert.Equal(t, string(entity.POPending), po.Status)
	assert.Equal(t, string(entity.PaymentUnpaid), po.PaymentStatus)
	require.Len(t, po.Items, 1)
	assert.Equal(t, int64(20), po.Items[0].OrderedQty)
	assert.Equal(t, int64(0), po.Items[0].ReceivedQty)
	assert.Equal(t, int64(0), f.stock(t), "crear la orden no acredita nada")
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), "tester", dto.CreatePORequest{
		SupplierID: uuid.New().String(),
		Items:      []dto.POItemRequest{{ProductID: f.productID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransiciones_CaminoCompleto(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)

	require.NoError(t, f.uc.MarkShipped(context.Background(), po.ID))
	// SHIPPED -> SHIPPED no es transición válida.
	assert.ErrorIs(t, f.uc.MarkShipped(context.Background(), po.ID), domain.ErrInvalidTransition)

	require.NoError(t, f.uc.MarkDelivered(context.Background(), po.ID))
	got, err := f.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PODelivered), got.Status)
}

func TestTransiciones_PendingDirectoADelivered(t *testing.T) {
	// El proveedor no siempre reporta el despacho: PENDING -> DELIVERED es legal.
	f := newFixture(t)
	po := f.createPO(t)

	require.NoError(t, f.uc.MarkDelivered(context.Background(), po.ID))
	got, err := f.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PODelivered), got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CompleteInspection
// ──────────────────────────────────────────────────────────────────────────────

// Entrega parcial legal: ordenadas 20, recibidas 15 → acredita 15 y la orden
// queda RECEIVED con la diferencia visible por línea.
func TestInspection_ParcialAcredita(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)
	f.deliver(t, po.ID)

	got, err := f.uc.CompleteInspection(context.Background(), "inspector", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 15}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.POReceived), got.Status)
	assert.NotEmpty(t, got.ReceivedDate)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(20), got.Items[0].OrderedQty)
	assert.Equal(t, int64(15), got.Items[0].ReceivedQty)

	assert.Equal(t, int64(15), f.stock(t))

	// El crédito queda en el historial de stock.
	history, err := f.store.History().ListByProduct(f.productID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(15), history[0].StockAfter)
}

func TestInspection_RecibidoMayorQueOrdenado_TodoONada(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)
	f.deliver(t, po.ID)

	_, err := f.uc.CompleteInspection(context.Background(), "tester", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 25}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, int64(0), f.stock(t), "nada debe acreditarse")
	got, err := f.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PODelivered), got.Status, "la orden sigue inspeccionable")
}

func TestInspection_RequiereDelivered(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)

	_, err := f.uc.CompleteInspection(context.Background(), "tester", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(0), f.stock(t))
}

func TestInspection_NoRepetible(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)
	f.deliver(t, po.ID)

	_, err := f.uc.CompleteInspection(context.Background(), "tester", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 20}},
	})
	require.NoError(t, err)

	// RECEIVED no admite una segunda inspección.
	_, err = f.uc.CompleteInspection(context.Background(), "tester", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 20}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(20), f.stock(t), "el crédito no debe duplicarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Pay
// ──────────────────────────────────────────────────────────────────────────────

func TestPay_SoloOrdenesRecibidas(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)

	monto := decimal.NewFromFloat(250.00)

	// PENDING: no se paga mercancía no confirmada.
	assert.ErrorIs(t, f.uc.Pay(context.Background(), po.ID, monto), domain.ErrInvalidState)

	f.deliver(t, po.ID)
	_, err := f.uc.CompleteInspection(context.Background(), "tester", po.ID, dto.CompletePOInspectionRequest{
		Items: []dto.POInspectionLineRequest{{ProductID: f.productID, Received: 20}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Pay(context.Background(), po.ID, monto))

	got, err := f.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentPaid), got.PaymentStatus)
	assert.True(t, got.PaidAmount.Equal(monto))

	// Ya pagada: un segundo pago se rechaza.
	assert.ErrorIs(t, f.uc.Pay(context.Background(), po.ID, monto), domain.ErrInvalidState)
}

func TestPay_MontoInvalido(t *testing.T) {
	f := newFixture(t)
	po := f.createPO(t)

	assert.ErrorIs(t, f.uc.Pay(context.Background(), po.ID, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.Pay(context.Background(), po.ID, decimal.NewFromInt(-5)), domain.ErrInvalidInput)
}
