package purchasing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// GetTracking devuelve el tracking de envío de una orden.
func (uc *UseCase) GetTracking(orderID string) (*dto.DeliveryResponse, error) {
	tracking, err := uc.deliveryRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, &domain.NotFoundError{Resource: "delivery_tracking", Key: orderID}
	}
	out := dto.ToDeliveryResponse(tracking)
	return &out, nil
}

// UpdateTracking aplica una actualización manual al tracking. El estado solo
// avanza (con saltos permitidos); IN_TRANSIT arrastra la orden a SHIPPED y
// DELIVERED la cierra en DELIVERED.
func (uc *UseCase) UpdateTracking(ctx context.Context, orderID string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	var updated *entity.DeliveryTracking
	err := uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		tracking, err := deliveryRepo.GetByOrderID(orderID)
		if err != nil {
			return err
		}
		if tracking == nil {
			return &domain.NotFoundError{Resource: "delivery_tracking", Key: orderID}
		}

		now := time.Now()
		if in.Status != "" && in.Status != tracking.Status {
			if err := order.ApplyDeliveryStatus(tracking.Status, in.Status); err != nil {
				return err
			}
			location := tracking.CurrentLocation
			if in.CurrentLocation != nil {
				location = *in.CurrentLocation
			}
			tracking.Status = in.Status
			tracking.LastStatusUpdate = now
			tracking.StatusHistory = historyJSON(tracking, entity.DeliveryStatusEvent{
				Status:    in.Status,
				Location:  location,
				Timestamp: now,
			})

			switch in.Status {
			case entity.DeliveryStatusPickedUp:
				tracking.ShippedDate = &now
			case entity.DeliveryStatusDelivered:
				tracking.ActualDeliveryDate = &now
			}

			if err := uc.syncOrderWithDelivery(orderRepo, orderID, in.Status, now); err != nil {
				return err
			}
		}

		if in.TrackingNumber != nil {
			tracking.TrackingNumber = *in.TrackingNumber
		}
		if in.Carrier != nil {
			tracking.Carrier = *in.Carrier
		}
		if in.CurrentLocation != nil {
			tracking.CurrentLocation = *in.CurrentLocation
		}
		if in.EstimatedDeliveryDate != nil {
			tracking.EstimatedDeliveryDate = in.EstimatedDeliveryDate
		}
		if in.DeliveredTo != nil {
			tracking.DeliveredTo = *in.DeliveredTo
		}
		if in.DeliverySignature != nil {
			tracking.DeliverySignature = *in.DeliverySignature
		}
		if in.DeliveryPhotoURL != nil {
			tracking.DeliveryPhotoURL = *in.DeliveryPhotoURL
		}
		if in.DeliveryNotes != nil {
			tracking.DeliveryNotes = *in.DeliveryNotes
		}
		tracking.UpdatedAt = now

		if err := deliveryRepo.Update(tracking); err != nil {
			return err
		}
		updated = tracking
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToDeliveryResponse(updated)
	return &out, nil
}

// syncOrderWithDelivery arrastra el estado de la orden cuando el envío avanza.
// Una transición inválida se ignora: la orden pudo llegar ahí por otra vía.
func (uc *UseCase) syncOrderWithDelivery(orderRepo repository.PurchaseOrderRepository, orderID, deliveryStatus string, now time.Time) error {
	var t string
	switch deliveryStatus {
	case entity.DeliveryStatusInTransit:
		t = order.TransitionShip
	case entity.DeliveryStatusDelivered:
		t = order.TransitionDeliver
	default:
		return nil
	}

	o, err := orderRepo.GetForUpdate(orderID)
	if err != nil || o == nil {
		return err
	}
	next, err := order.Apply(o.Status, t)
	if err != nil {
		return nil
	}
	o.Status = next
	if deliveryStatus == entity.DeliveryStatusDelivered {
		o.ActualDeliveryDate = &now
	}
	o.UpdatedAt = now
	return orderRepo.Update(o)
}

// historyJSON agrega un evento al historial JSON del tracking. Un historial
// corrupto se descarta y se arranca de nuevo con el evento entrante.
func historyJSON(t *entity.DeliveryTracking, ev entity.DeliveryStatusEvent) string {
	var events []entity.DeliveryStatusEvent
	if t != nil && t.StatusHistory != "" {
		_ = json.Unmarshal([]byte(t.StatusHistory), &events)
	}
	events = append(events, ev)
	raw, err := json.Marshal(events)
	if err != nil {
		return t.StatusHistory
	}
	return string(raw)
}
