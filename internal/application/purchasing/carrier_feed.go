package purchasing

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// CarrierEvent es un escaneo reportado por la transportadora, ya normalizado
// a los estados internos de envío.
type CarrierEvent struct {
	Status    string
	Location  string
	Timestamp time.Time
}

// CarrierFeed es el contenido de un feed de tracking de la transportadora.
type CarrierFeed struct {
	TrackingNumber        string
	Carrier               string
	EstimatedDeliveryDate *time.Time
	Events                []CarrierEvent
}

// FeedParser convierte el cuerpo crudo de un feed de transportadora en un
// CarrierFeed. La implementación vive en infraestructura.
type FeedParser interface {
	ParseFeed(data []byte) (*CarrierFeed, error)
}

// ApplyCarrierFeed ingiere un feed de la transportadora sobre el tracking de
// una orden. Los eventos se aplican en orden cronológico; los que no avanzan
// el estado se ignoran, así un feed re-ingerido es idempotente.
func (uc *UseCase) ApplyCarrierFeed(ctx context.Context, orderID string, feed *CarrierFeed) (*dto.DeliveryResponse, error) {
	if feed == nil || len(feed.Events) == 0 {
		v := &domain.ValidationError{}
		v.Add("events", "el feed no trae eventos")
		return nil, v.AsError()
	}

	events := make([]CarrierEvent, len(feed.Events))
	copy(events, feed.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

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

		if feed.TrackingNumber != "" {
			tracking.TrackingNumber = feed.TrackingNumber
		}
		if feed.Carrier != "" {
			tracking.Carrier = feed.Carrier
		}
		if feed.EstimatedDeliveryDate != nil {
			tracking.EstimatedDeliveryDate = feed.EstimatedDeliveryDate
		}

		now := time.Now()
		for _, ev := range events {
			if ev.Status == tracking.Status {
				if ev.Location != "" {
					tracking.CurrentLocation = ev.Location
				}
				continue
			}
			if err := order.ApplyDeliveryStatus(tracking.Status, ev.Status); err != nil {
				// Escaneo atrasado o duplicado: el feed manda la foto
				// completa y el historial local ya va más adelante.
				continue
			}

			tracking.Status = ev.Status
			if ev.Location != "" {
				tracking.CurrentLocation = ev.Location
			}
			tracking.LastStatusUpdate = ev.Timestamp
			tracking.StatusHistory = historyJSON(tracking, entity.DeliveryStatusEvent{
				Status:    ev.Status,
				Location:  ev.Location,
				Timestamp: ev.Timestamp,
			})

			switch ev.Status {
			case entity.DeliveryStatusPickedUp:
				ts := ev.Timestamp
				tracking.ShippedDate = &ts
			case entity.DeliveryStatusDelivered:
				ts := ev.Timestamp
				tracking.ActualDeliveryDate = &ts
			}

			if err := uc.syncOrderWithDelivery(orderRepo, orderID, ev.Status, ev.Timestamp); err != nil {
				return err
			}
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
