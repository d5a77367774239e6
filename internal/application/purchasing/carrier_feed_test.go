package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pro/internal/application/purchasing"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

func carrierFeed(events ...purchasing.CarrierEvent) *purchasing.CarrierFeed {
	return &purchasing.CarrierFeed{
		TrackingNumber: "RM123456789GB",
		Carrier:        "Royal Mail",
		Events:         events,
	}
}

func TestApplyCarrierFeed_AplicaEventosEnOrdenCronologico(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusOrdered)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	// Los eventos llegan desordenados; el feed no garantiza el orden
	resp, err := f.uc.ApplyCarrierFeed(ctx, created.ID, carrierFeed(
		purchasing.CarrierEvent{Status: entity.DeliveryStatusInTransit, Location: "Hub Crick", Timestamp: base.Add(6 * time.Hour)},
		purchasing.CarrierEvent{Status: entity.DeliveryStatusPickedUp, Location: "Depósito Swindon", Timestamp: base},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusInTransit, resp.Status)
	assert.Equal(t, "RM123456789GB", resp.TrackingNumber)
	assert.Equal(t, "Royal Mail", resp.Carrier)
	assert.Equal(t, "Hub Crick", resp.CurrentLocation)

	// PENDING inicial + PICKED_UP + IN_TRANSIT
	require.Len(t, resp.StatusHistory, 3)
	assert.Equal(t, entity.DeliveryStatusPickedUp, resp.StatusHistory[1].Status)
	assert.Equal(t, entity.DeliveryStatusInTransit, resp.StatusHistory[2].Status)

	// IN_TRANSIT arrastra la orden a SHIPPED
	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, got.Status)
}

func TestApplyCarrierFeed_ReIngestaEsIdempotente(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusOrdered)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	feed := carrierFeed(
		purchasing.CarrierEvent{Status: entity.DeliveryStatusPickedUp, Timestamp: base},
		purchasing.CarrierEvent{Status: entity.DeliveryStatusInTransit, Timestamp: base.Add(6 * time.Hour)},
	)

	_, err = f.uc.ApplyCarrierFeed(ctx, created.ID, feed)
	require.NoError(t, err)
	resp, err := f.uc.ApplyCarrierFeed(ctx, created.ID, feed)
	require.NoError(t, err)

	// El segundo pase no duplica entradas del historial
	assert.Equal(t, entity.DeliveryStatusInTransit, resp.Status)
	assert.Len(t, resp.StatusHistory, 3)
}

func TestApplyCarrierFeed_DeliveredCierraLaOrden(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusShipped)

	delivered := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	resp, err := f.uc.ApplyCarrierFeed(ctx, created.ID, carrierFeed(
		purchasing.CarrierEvent{Status: entity.DeliveryStatusDelivered, Location: "Almacén central", Timestamp: delivered},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDelivered, resp.Status)
	require.NotNil(t, resp.ActualDeliveryDate)

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
}

func TestApplyCarrierFeed_SinEventosFalla(t *testing.T) {
	f := buildFixture()

	_, err := f.uc.ApplyCarrierFeed(context.Background(), "order-x", &purchasing.CarrierFeed{})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}
