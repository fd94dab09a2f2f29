package installation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/fabrication"
	"github.com/jhoicas/Taller-api/internal/application/installation"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memory.Store
	uc     *installation.UseCase
	fab    *fabrication.UseCase
	joID   string
	itemID string
}

// newFixture deja una orden de trabajo con un ítem listo en QC_PASSED.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	clientID := uuid.New().String()
	require.NoError(t, store.Clients().Create(&entity.Client{
		ID: clientID, Name: "Cliente de Prueba", CreatedAt: now, UpdatedAt: now,
	}))

	productID := uuid.New().String()
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return tx.Products.Create(&entity.Product{
			ID:        productID,
			SKU:       "PUERTA-VID-210",
			Name:      "Puerta de vidrio 210x90",
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	require.NoError(t, err)

	fab := fabrication.NewUseCase(store, store.JobOrders(), store.Clients(), store.Products())
	jo, err := fab.CreateJobOrder(context.Background(), dto.CreateJobOrderRequest{
		ClientID: clientID,
		Items:    []dto.JobOrderItemRequest{{ProductID: productID}},
	})
	require.NoError(t, err)
	itemID := jo.Items[0].ID

	for _, paso := range []entity.FabricationStatus{entity.FabInProgress, entity.FabCompleted, entity.FabQCPassed} {
		require.NoError(t, fab.AdvanceItem(context.Background(), jo.ID, itemID, paso))
	}

	return &fixture{
		store:  store,
		uc:     installation.NewUseCase(store, store.Installations(), event.Nop{}),
		fab:    fab,
		joID:   jo.ID,
		itemID: itemID,
	}
}

func (f *fixture) scheduleRequest() dto.ScheduleInstallationRequest {
	return dto.ScheduleInstallationRequest{
		CrewID:    "cuadrilla-1",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-02",
		Items:     []dto.InstallationItemRequest{{JobOrderID: f.joID, ItemID: f.itemID}},
	}
}

func (f *fixture) itemStatus(t *testing.T) entity.FabricationStatus {
	t.Helper()
	item, err := f.store.JobOrders().GetItem(f.joID, f.itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Status
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Schedule
// ──────────────────────────────────────────────────────────────────────────────

func TestSchedule_DespachaLosItems(t *testing.T) {
	f := newFixture(t)

	inst, err := f.uc.Schedule(context.Background(), "coordinador", f.scheduleRequest())
	require.NoError(t, err)

	assert.Equal(t, "INST-000001", inst.Number)
	assert.Equal(t, string(entity.InstallationScheduled), inst.Status)
	assert.Equal(t, "cuadrilla-1", inst.CrewID)
	require.Len(t, inst.Items, 1)

	// Agendar es la única vía hacia DISPATCHED.
	assert.Equal(t, entity.FabDispatched, f.itemStatus(t))
}

func TestSchedule_SoloItemsQCPassed(t *testing.T) {
	f := newFixture(t)

	// Retrocedemos el escenario: un segundo ítem que aún está en COMPLETED.
	jo, err := f.fab.CreateJobOrder(context.Background(), dto.CreateJobOrderRequest{
		ClientID: mustClientID(t, f.store),
		Items:    []dto.JobOrderItemRequest{{ProductID: mustProductID(t, f.store)}},
	})
	require.NoError(t, err)
	itemID := jo.Items[0].ID
	require.NoError(t, f.fab.AdvanceItem(context.Background(), jo.ID, itemID, entity.FabInProgress))
	require.NoError(t, f.fab.AdvanceItem(context.Background(), jo.ID, itemID, entity.FabCompleted))

	req := f.scheduleRequest()
	req.Items = []dto.InstallationItemRequest{{JobOrderID: jo.ID, ItemID: itemID}}
	_, err = f.uc.Schedule(context.Background(), "coordinador", req)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSchedule_ItemYaDespachado_NoSeReagenda(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Schedule(context.Background(), "coordinador", f.scheduleRequest())
	require.NoError(t, err)

	// El ítem quedó DISPATCHED: un segundo agendamiento lo rechaza y no crea nada.
	_, err = f.uc.Schedule(context.Background(), "coordinador", f.scheduleRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	list, err := f.uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSchedule_RangoDeFechasInvalido(t *testing.T) {
	f := newFixture(t)

	req := f.scheduleRequest()
	req.StartDate = "2026-09-05"
	req.EndDate = "2026-09-02"
	_, err := f.uc.Schedule(context.Background(), "coordinador", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = f.scheduleRequest()
	req.StartDate = "no-es-fecha"
	_, err = f.uc.Schedule(context.Background(), "coordinador", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Mismo día es legal.
	req = f.scheduleRequest()
	req.StartDate = "2026-09-01"
	req.EndDate = "2026-09-01"
	_, err = f.uc.Schedule(context.Background(), "coordinador", req)
	assert.NoError(t, err)
}

func TestSchedule_ItemDuplicadoEnRequest(t *testing.T) {
	f := newFixture(t)

	req := f.scheduleRequest()
	req.Items = append(req.Items, req.Items[0])
	_, err := f.uc.Schedule(context.Background(), "coordinador", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.FabQCPassed, f.itemStatus(t), "nada debe reclamarse")
}

func TestSchedule_ItemInexistente_NadaParcial(t *testing.T) {
	f := newFixture(t)

	req := f.scheduleRequest()
	req.Items = append(req.Items, dto.InstallationItemRequest{
		JobOrderID: f.joID,
		ItemID:     uuid.New().String(),
	})
	_, err := f.uc.Schedule(context.Background(), "coordinador", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El ítem bueno no debe quedar reclamado por una transacción fallida.
	assert.Equal(t, entity.FabQCPassed, f.itemStatus(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers menores
// ──────────────────────────────────────────────────────────────────────────────

func mustClientID(t *testing.T, store *memory.Store) string {
	t.Helper()
	clients, err := store.Clients().List(1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, clients)
	return clients[0].ID
}

func mustProductID(t *testing.T, store *memory.Store) string {
	t.Helper()
	products, err := store.Products().List(1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products[0].ID
}
