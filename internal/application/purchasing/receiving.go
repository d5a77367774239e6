package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// Receive procesa la recepción (parcial o total) de una orden ORDERED o
// SHIPPED. El lote completo se valida antes de tocar nada: si una sola línea
// excede lo pendiente, ninguna se aplica. Cada línea recibida deja un asiento
// RECEIVING en el libro de ajustes con la orden como referencia. Si la última
// unidad pendiente llega, la orden pasa a DELIVERED, el tracking se cierra y
// las estadísticas del proveedor se actualizan.
func (uc *UseCase) Receive(ctx context.Context, orderID, actor string, in dto.ReceiveOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		v := &domain.ValidationError{}
		v.Add("items", "se requiere al menos una línea recibida")
		return nil, v
	}

	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
		adjustmentRepo repository.AdjustmentRepository,
		supplierRepo repository.SupplierRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return &domain.NotFoundError{Resource: "purchase_order", Key: orderID}
		}
		if !order.CanReceive(o.Status) {
			return &domain.InvalidStateTransitionError{Entity: "purchase_order", From: o.Status, Transition: order.TransitionReceive}
		}

		// Validación del lote completo antes de mutar. Las cantidades se
		// acumulan por línea: un lote que repite el mismo item_id cuenta
		// contra lo pendiente una sola vez, no por aparición.
		requested := make(map[string]int, len(in.Items))
		for _, rcv := range in.Items {
			item := o.ItemByID(rcv.ItemID)
			if item == nil {
				return &domain.NotFoundError{Resource: "purchase_order_item", Key: rcv.ItemID}
			}
			if rcv.QuantityReceived <= 0 {
				return &domain.InvalidQuantityError{Quantity: rcv.QuantityReceived}
			}
			requested[rcv.ItemID] += rcv.QuantityReceived
			if requested[rcv.ItemID] > item.Outstanding() {
				return &domain.OverReceiptError{
					ItemID:          rcv.ItemID,
					Ordered:         item.QuantityOrdered,
					AlreadyReceived: item.QuantityReceived,
					Requested:       requested[rcv.ItemID],
				}
			}
		}

		now := time.Now()
		for _, rcv := range in.Items {
			item := o.ItemByID(rcv.ItemID)

			p, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "product", Key: item.ProductID}
			}

			newQty := p.QuantityInStock + rcv.QuantityReceived
			if err := adjustmentRepo.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				OldQuantity: p.QuantityInStock,
				NewQuantity: newQty,
				Reason:      entity.ReasonReceiving,
				Notes:       "recepción orden " + o.OrderNumber,
				ReferenceID: o.ID,
				CreatedAt:   now,
				CreatedBy:   actor,
			}); err != nil {
				return err
			}
			if err := productRepo.UpdateQuantity(p.ID, newQty); err != nil {
				return err
			}

			item.QuantityReceived += rcv.QuantityReceived
			item.IsReceived = item.Outstanding() == 0
			// Un parcial posterior sin control de calidad no borra el
			// realizado en una recepción anterior.
			if rcv.QualityChecked {
				item.IsQualityChecked = true
			}
			if rcv.QualityNotes != "" {
				item.QualityNotes = rcv.QualityNotes
			}
			if item.IsReceived {
				item.ReceivedDate = &now
			}
			if err := orderRepo.UpdateItemReceipt(item); err != nil {
				return err
			}
		}

		if o.FullyReceived() {
			if err := uc.completeOrder(orderRepo, supplierRepo, deliveryRepo, o, actor, now); err != nil {
				return err
			}
		} else {
			o.UpdatedAt = now
			if err := orderRepo.Update(o); err != nil {
				return err
			}
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// completeOrder cierra una orden totalmente recibida: DELIVERED con fecha
// real de entrega, tracking cerrado y estadísticas del proveedor al día.
func (uc *UseCase) completeOrder(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	deliveryRepo repository.DeliveryRepository,
	o *entity.PurchaseOrder,
	actor string,
	now time.Time,
) error {
	o.Status = entity.OrderStatusDelivered
	o.ActualDeliveryDate = &now
	o.UpdatedAt = now
	if err := orderRepo.Update(o); err != nil {
		return err
	}

	tracking, err := deliveryRepo.GetByOrderID(o.ID)
	if err != nil {
		return err
	}
	if tracking != nil && !order.DeliveryTerminal(tracking.Status) {
		tracking.Status = entity.DeliveryStatusDelivered
		tracking.ActualDeliveryDate = &now
		tracking.DeliveredTo = actor
		tracking.LastStatusUpdate = now
		tracking.UpdatedAt = now
		tracking.StatusHistory = historyJSON(tracking, entity.DeliveryStatusEvent{
			Status:    entity.DeliveryStatusDelivered,
			Location:  tracking.DestinationLocation,
			Timestamp: now,
		})
		if err := deliveryRepo.Update(tracking); err != nil {
			return err
		}
	}

	return uc.refreshSupplierStats(supplierRepo, o, now)
}

// refreshSupplierStats recalcula el contador de órdenes, la tasa de entregas
// a tiempo y el rating del proveedor tras una entrega completada. El rating
// se mueve en pasos pequeños (+0.1 a tiempo, -0.2 tarde) acotado a 0-5.
func (uc *UseCase) refreshSupplierStats(supplierRepo repository.SupplierRepository, o *entity.PurchaseOrder, now time.Time) error {
	s, err := supplierRepo.GetByID(o.SupplierID)
	if err != nil || s == nil {
		return err
	}

	onTime := o.ExpectedDeliveryDate == nil || !now.After(o.ExpectedDeliveryDate.AddDate(0, 0, 1))

	total := s.TotalOrders + 1
	timely := s.OnTimeDeliveryRate.Div(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(int64(s.TotalOrders)))
	if onTime {
		timely = timely.Add(decimal.NewFromInt(1))
	}
	rate := timely.Div(decimal.NewFromInt(int64(total))).Mul(decimal.NewFromInt(100)).Round(2)

	return supplierRepo.UpdateStats(s.ID, total, rate, nudgeRating(s.Rating, onTime))
}

var (
	ratingMax      = decimal.NewFromInt(5)
	ratingStepUp   = decimal.RequireFromString("0.1")
	ratingStepDown = decimal.RequireFromString("0.2")
)

func nudgeRating(rating decimal.Decimal, onTime bool) decimal.Decimal {
	if onTime {
		rating = rating.Add(ratingStepUp)
	} else {
		rating = rating.Sub(ratingStepDown)
	}
	if rating.GreaterThan(ratingMax) {
		return ratingMax
	}
	if rating.IsNegative() {
		return decimal.Zero
	}
	return rating
}
