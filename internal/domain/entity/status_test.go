package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Las tablas de transición son cerradas: lo que no está listado está prohibido.
// Estos tests fijan las tablas para que un cambio accidental se note de inmediato.

func TestReturnStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.ReturnStatus
		ok       bool
	}{
		{entity.ReturnPending, entity.ReturnReceived, true},
		{entity.ReturnPending, entity.ReturnCancelled, true},
		{entity.ReturnPending, entity.ReturnCompleted, false}, // sin saltar la recepción
		{entity.ReturnReceived, entity.ReturnCompleted, true},
		{entity.ReturnReceived, entity.ReturnCancelled, false}, // recibida no se cancela
		{entity.ReturnReceived, entity.ReturnPending, false},
		{entity.ReturnCompleted, entity.ReturnReceived, false},
		{entity.ReturnCancelled, entity.ReturnReceived, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestReturnStatus_Terminales(t *testing.T) {
	assert.False(t, entity.ReturnPending.IsTerminal())
	assert.False(t, entity.ReturnReceived.IsTerminal())
	assert.True(t, entity.ReturnCompleted.IsTerminal())
	assert.True(t, entity.ReturnCancelled.IsTerminal())
}

func TestPOStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.POStatus
		ok       bool
	}{
		{entity.POPending, entity.POShipped, true},
		{entity.POPending, entity.PODelivered, true}, // el proveedor no siempre reporta despacho
		{entity.POPending, entity.POReceived, false},
		{entity.POShipped, entity.PODelivered, true},
		{entity.POShipped, entity.POReceived, false},
		{entity.PODelivered, entity.POReceived, true},
		{entity.POReceived, entity.PODelivered, false},
		{entity.POReceived, entity.POPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestFabricationStatus_Next(t *testing.T) {
	assert.Equal(t, entity.FabInProgress, entity.FabPending.Next())
	assert.Equal(t, entity.FabCompleted, entity.FabInProgress.Next())
	assert.Equal(t, entity.FabQCPassed, entity.FabCompleted.Next())
	assert.Equal(t, entity.FabDispatched, entity.FabQCPassed.Next())
	assert.Equal(t, entity.FabricationStatus(""), entity.FabDispatched.Next(), "DISPATCHED es terminal")
}

func TestFabricationStatus_SoloUnPaso(t *testing.T) {
	// Solo el siguiente inmediato es válido: ni saltos ni retrocesos.
	assert.True(t, entity.FabPending.CanTransitionTo(entity.FabInProgress))
	assert.False(t, entity.FabPending.CanTransitionTo(entity.FabCompleted))
	assert.False(t, entity.FabInProgress.CanTransitionTo(entity.FabPending))
	assert.False(t, entity.FabQCPassed.CanTransitionTo(entity.FabCompleted))
	assert.True(t, entity.FabQCPassed.CanTransitionTo(entity.FabDispatched))
	assert.False(t, entity.FabDispatched.CanTransitionTo(entity.FabPending))
}

func TestFabricationStatus_IsValid(t *testing.T) {
	for _, s := range []entity.FabricationStatus{
		entity.FabPending, entity.FabInProgress, entity.FabCompleted,
		entity.FabQCPassed, entity.FabDispatched,
	} {
		assert.True(t, s.IsValid(), "%s", s)
	}
	assert.False(t, entity.FabricationStatus("ARCHIVED").IsValid())
	assert.False(t, entity.FabricationStatus("").IsValid())
}
