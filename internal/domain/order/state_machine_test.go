package order_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
)

func TestApply_ProgresionNormal(t *testing.T) {
	steps := []struct {
		from, transition, want string
	}{
		{entity.OrderStatusDraft, order.TransitionSubmit, entity.OrderStatusPending},
		{entity.OrderStatusPending, order.TransitionApprove, entity.OrderStatusApproved},
		{entity.OrderStatusApproved, order.TransitionOrder, entity.OrderStatusOrdered},
		{entity.OrderStatusOrdered, order.TransitionShip, entity.OrderStatusShipped},
		{entity.OrderStatusShipped, order.TransitionDeliver, entity.OrderStatusDelivered},
	}
	for _, s := range steps {
		got, err := order.Apply(s.from, s.transition)
		require.NoError(t, err, "%s desde %s", s.transition, s.from)
		assert.Equal(t, s.want, got)
	}
}

// Sin saltos: cada transición exige exactamente su estado previo.
func TestApply_SinSaltos(t *testing.T) {
	cases := []struct {
		from, transition string
	}{
		{entity.OrderStatusDraft, order.TransitionApprove},
		{entity.OrderStatusDraft, order.TransitionReceive},
		{entity.OrderStatusPending, order.TransitionOrder},
		{entity.OrderStatusPending, order.TransitionShip},
		{entity.OrderStatusApproved, order.TransitionReceive},
		{entity.OrderStatusApproved, order.TransitionShip},
		{entity.OrderStatusShipped, order.TransitionApprove},
		{entity.OrderStatusDelivered, order.TransitionShip},
		{entity.OrderStatusCancelled, order.TransitionSubmit},
	}
	for _, c := range cases {
		_, err := order.Apply(c.from, c.transition)
		require.Error(t, err, "%s desde %s debe fallar", c.transition, c.from)

		var stErr *domain.InvalidStateTransitionError
		require.True(t, errors.As(err, &stErr))
		// El error nombra estado actual y transición intentada
		assert.Equal(t, c.from, stErr.From)
		assert.Equal(t, c.transition, stErr.Transition)
	}
}

func TestApply_CancelDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{
		entity.OrderStatusDraft, entity.OrderStatusPending, entity.OrderStatusApproved,
		entity.OrderStatusOrdered, entity.OrderStatusShipped,
	} {
		got, err := order.Apply(from, order.TransitionCancel)
		require.NoError(t, err, "cancel desde %s", from)
		assert.Equal(t, entity.OrderStatusCancelled, got)
	}
	// terminales
	for _, from := range []string{entity.OrderStatusDelivered, entity.OrderStatusCancelled} {
		_, err := order.Apply(from, order.TransitionCancel)
		assert.Error(t, err, "cancel desde %s debe fallar", from)
	}
}

func TestApply_ReceiveSoloOrderedOShipped(t *testing.T) {
	for _, from := range []string{entity.OrderStatusOrdered, entity.OrderStatusShipped} {
		got, err := order.Apply(from, order.TransitionReceive)
		require.NoError(t, err)
		assert.Equal(t, from, got, "receive parcial no cambia el estado")
		assert.True(t, order.CanReceive(from))
	}
	_, err := order.Apply(entity.OrderStatusApproved, order.TransitionReceive)
	assert.Error(t, err, "receive estando APPROVED es transición inválida")
}

func TestItemsMutable(t *testing.T) {
	assert.True(t, order.ItemsMutable(entity.OrderStatusDraft))
	assert.True(t, order.ItemsMutable(entity.OrderStatusPending))
	assert.True(t, order.ItemsMutable(entity.OrderStatusApproved))
	assert.False(t, order.ItemsMutable(entity.OrderStatusOrdered))
	assert.False(t, order.ItemsMutable(entity.OrderStatusShipped))
	assert.False(t, order.ItemsMutable(entity.OrderStatusDelivered))
	assert.False(t, order.ItemsMutable(entity.OrderStatusCancelled))
}

func TestApplyDeliveryStatus(t *testing.T) {
	// progresión hacia adelante
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusPending, entity.DeliveryStatusPickedUp))
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusPickedUp, entity.DeliveryStatusInTransit))
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusInTransit, entity.DeliveryStatusOutForDelivery))
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusOutForDelivery, entity.DeliveryStatusDelivered))
	// saltos hacia adelante permitidos (el carrier puede omitir escaneos)
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusPending, entity.DeliveryStatusInTransit))

	// retrocesos y terminales
	assert.Error(t, order.ApplyDeliveryStatus(entity.DeliveryStatusInTransit, entity.DeliveryStatusPickedUp))
	assert.Error(t, order.ApplyDeliveryStatus(entity.DeliveryStatusDelivered, entity.DeliveryStatusInTransit))
	assert.Error(t, order.ApplyDeliveryStatus(entity.DeliveryStatusFailed, entity.DeliveryStatusInTransit))

	// FAILED desde cualquier no terminal
	require.NoError(t, order.ApplyDeliveryStatus(entity.DeliveryStatusOutForDelivery, entity.DeliveryStatusFailed))
	assert.Error(t, order.ApplyDeliveryStatus(entity.DeliveryStatusDelivered, entity.DeliveryStatusFailed))
}
