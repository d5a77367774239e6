package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// orderReadyToReceive crea una orden y la avanza hasta SHIPPED.
func orderReadyToReceive(t *testing.T, f *fixture) *dto.OrderResponse {
	t.Helper()
	created, err := f.uc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusShipped)
	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	return got
}

func TestReceive_ParcialDejaLaOrdenAbierta(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	resp, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 15},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusShipped, resp.Status, "recepción parcial no cierra la orden")
	assert.Equal(t, 15, resp.Items[0].QuantityReceived)
	assert.False(t, resp.Items[0].IsReceived)

	// El stock subió y el libro tiene el asiento RECEIVING con la orden como referencia
	p, err := f.productRepo.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 25, p.QuantityInStock)

	require.Len(t, f.adjustmentRepo.entries, 1)
	entry := f.adjustmentRepo.entries[0]
	assert.Equal(t, entity.ReasonReceiving, entry.Reason)
	assert.Equal(t, o.ID, entry.ReferenceID)
	assert.Equal(t, 10, entry.OldQuantity)
	assert.Equal(t, 25, entry.NewQuantity)
}

func TestReceive_CompletaCierraOrdenTrackingYProveedor(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	resp, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 40, QualityChecked: true},
			{ItemID: o.Items[1].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)
	require.NotNil(t, resp.ActualDeliveryDate)
	for _, item := range resp.Items {
		assert.True(t, item.IsReceived)
	}

	// Un asiento RECEIVING por línea
	require.Len(t, f.adjustmentRepo.entries, 2)

	// El tracking se cierra en DELIVERED
	tracking, err := f.deliveryRepo.GetByOrderID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDelivered, tracking.Status)
	require.NotNil(t, tracking.ActualDeliveryDate)

	// Las estadísticas del proveedor se actualizan
	s, err := f.supplierRepo.GetByID("sup-1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalOrders)
	assert.True(t, s.OnTimeDeliveryRate.Equal(decimal.NewFromInt(100)), "tasa %s", s.OnTimeDeliveryRate)
}

func TestReceive_SegundaRecepcionCompletaLaPrimera(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 15},
			{ItemID: o.Items[1].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)

	resp, err := f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)

	p, err := f.productRepo.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.QuantityInStock, "10 iniciales + 15 + 25")
}

func TestReceive_SobreRecepcionNoAplicaNada(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	// Primera línea válida, segunda excede lo ordenado: todo o nada
	_, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 10},
			{ItemID: o.Items[1].ID, QuantityReceived: 21},
		},
	})

	var oErr *domain.OverReceiptError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, o.Items[1].ID, oErr.ItemID)
	assert.Equal(t, 20, oErr.Ordered)
	assert.Equal(t, 21, oErr.Requested)

	// Ninguna mutación parcial
	p, err := f.productRepo.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.QuantityInStock)
	assert.Empty(t, f.adjustmentRepo.entries)

	got, err := f.uc.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Items[0].QuantityReceived)
}

func TestReceive_SobreRecepcionAcumulada(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: o.Items[0].ID, QuantityReceived: 30}},
	})
	require.NoError(t, err)

	// 30 ya recibidas + 11 > 40 ordenadas
	_, err = f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: o.Items[0].ID, QuantityReceived: 11}},
	})
	var oErr *domain.OverReceiptError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, 30, oErr.AlreadyReceived)
}

func TestReceive_LoteConLineaRepetidaCuentaAcumulado(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	// La misma línea dos veces en el lote: 40+40 contra 40 ordenadas
	_, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 40},
			{ItemID: o.Items[0].ID, QuantityReceived: 40},
		},
	})

	var oErr *domain.OverReceiptError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, o.Items[0].ID, oErr.ItemID)
	assert.Equal(t, 40, oErr.Ordered)
	assert.Equal(t, 0, oErr.AlreadyReceived)
	assert.Equal(t, 80, oErr.Requested)

	// Ninguna mutación parcial
	p, err := f.productRepo.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.QuantityInStock)
	assert.Empty(t, f.adjustmentRepo.entries)

	got, err := f.uc.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Items[0].QuantityReceived)
}

func TestReceive_LineaRepetidaDentroDelPendienteSeSuma(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	resp, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 10},
			{ItemID: o.Items[0].ID, QuantityReceived: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Items[0].QuantityReceived)
	require.Len(t, f.adjustmentRepo.entries, 2, "un asiento por línea del lote")

	p, err := f.productRepo.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 25, p.QuantityInStock)
}

func TestReceive_ParcialPosteriorNoBorraControlDeCalidad(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 10, QualityChecked: true, QualityNotes: "lote en buen estado"},
		},
	})
	require.NoError(t, err)

	resp, err := f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 10},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Items[0].IsQualityChecked)
	assert.Equal(t, "lote en buen estado", resp.Items[0].QualityNotes)
}

func TestReceive_EntregaATiempoSubeElRating(t *testing.T) {
	f := buildFixture()
	require.NoError(t, f.supplierRepo.UpdateStats("sup-1", 0, decimal.NewFromInt(100), decimal.NewFromInt(4)))

	o := orderReadyToReceive(t, f)
	_, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 40},
			{ItemID: o.Items[1].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)

	s, err := f.supplierRepo.GetByID("sup-1")
	require.NoError(t, err)
	assert.True(t, s.Rating.Equal(decimal.RequireFromString("4.1")), "rating %s", s.Rating)
}

func TestReceive_EntregaTardiaBajaElRatingSinPasarDeCero(t *testing.T) {
	f := buildFixture()
	require.NoError(t, f.supplierRepo.UpdateStats("sup-1", 0, decimal.NewFromInt(100), decimal.RequireFromString("0.1")))

	req := createRequest()
	past := time.Now().AddDate(0, 0, -3)
	req.ExpectedDeliveryDate = &past

	ctx := context.Background()
	created, err := f.uc.Create(ctx, "user-1", req)
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusShipped)

	o, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: o.Items[0].ID, QuantityReceived: 40},
			{ItemID: o.Items[1].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)

	s, err := f.supplierRepo.GetByID("sup-1")
	require.NoError(t, err)
	assert.True(t, s.Rating.IsZero(), "rating %s", s.Rating)
	assert.True(t, s.OnTimeDeliveryRate.IsZero(), "tasa %s", s.OnTimeDeliveryRate)
}

func TestReceive_SoloDesdeOrderedOShipped(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	advanceTo(t, f, created.ID, entity.OrderStatusApproved)

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)

	_, err = f.uc.Receive(ctx, created.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: got.Items[0].ID, QuantityReceived: 1}},
	})
	var sErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, entity.OrderStatusApproved, sErr.From)
}

func TestReceive_LineaAjena(t *testing.T) {
	f := buildFixture()
	o := orderReadyToReceive(t, f)

	_, err := f.uc.Receive(context.Background(), o.ID, "staff-1", dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: "item-de-otra-orden", QuantityReceived: 1}},
	})
	var nfErr *domain.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "purchase_order_item", nfErr.Resource)
}
