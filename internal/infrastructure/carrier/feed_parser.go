// Package carrier interpreta los feeds XML de tracking que publican las
// transportadoras (FedEx, DHL, Royal Mail, ...). Cada transportadora usa sus
// propios nombres de estado; aquí se normalizan a los estados internos de
// envío antes de entregárselos al caso de uso de compras.
//
// Formato esperado (la raíz puede ser <TrackingFeed> con un <Shipment>
// adentro, o directamente <Shipment>):
//
//	<TrackingFeed>
//	  <Shipment>
//	    <TrackingNumber>RM123456789GB</TrackingNumber>
//	    <Carrier>Royal Mail</Carrier>
//	    <EstimatedDelivery>2025-06-03</EstimatedDelivery>
//	    <Event>
//	      <Status>IN TRANSIT</Status>
//	      <Location>Crick Hub</Location>
//	      <Timestamp>2025-06-01T10:32:00Z</Timestamp>
//	    </Event>
//	  </Shipment>
//	</TrackingFeed>
package carrier

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tu-usuario/supermarket-pro/internal/application/purchasing"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// statusAliases traduce los nombres de estado de las transportadoras a los
// estados internos de envío.
var statusAliases = map[string]string{
	"PENDING":          entity.DeliveryStatusPending,
	"INFO_RECEIVED":    entity.DeliveryStatusPending,
	"LABEL_CREATED":    entity.DeliveryStatusPending,
	"PICKED_UP":        entity.DeliveryStatusPickedUp,
	"PICKUP":           entity.DeliveryStatusPickedUp,
	"COLLECTED":        entity.DeliveryStatusPickedUp,
	"IN_TRANSIT":       entity.DeliveryStatusInTransit,
	"TRANSIT":          entity.DeliveryStatusInTransit,
	"ARRIVED_AT_HUB":   entity.DeliveryStatusInTransit,
	"OUT_FOR_DELIVERY": entity.DeliveryStatusOutForDelivery,
	"WITH_COURIER":     entity.DeliveryStatusOutForDelivery,
	"DELIVERED":        entity.DeliveryStatusDelivered,
	"FAILED":           entity.DeliveryStatusFailed,
	"EXCEPTION":        entity.DeliveryStatusFailed,
	"DELIVERY_FAILED":  entity.DeliveryStatusFailed,
	"RETURNED":         entity.DeliveryStatusFailed,
}

// timestampLayouts en orden de preferencia. Las transportadoras no se ponen
// de acuerdo en el formato de fecha.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// XMLFeedParser parsea feeds XML de transportadoras.
type XMLFeedParser struct{}

// NewXMLFeedParser crea el parser de feeds.
func NewXMLFeedParser() *XMLFeedParser {
	return &XMLFeedParser{}
}

// ParseFeed lee el XML del feed y devuelve los eventos normalizados.
func (p *XMLFeedParser) ParseFeed(data []byte) (*purchasing.CarrierFeed, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("carrier: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("carrier: documento sin raíz: %w", domain.ErrInvalidInput)
	}

	shipment := root
	if root.Tag != "Shipment" {
		shipment = root.FindElement("Shipment")
		if shipment == nil {
			return nil, fmt.Errorf("carrier: no se encontró el nodo Shipment: %w", domain.ErrInvalidInput)
		}
	}

	feed := &purchasing.CarrierFeed{
		TrackingNumber: childText(shipment, "TrackingNumber"),
		Carrier:        childText(shipment, "Carrier"),
	}
	if raw := childText(shipment, "EstimatedDelivery"); raw != "" {
		ts, err := parseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("carrier: EstimatedDelivery %q: %w", raw, domain.ErrInvalidInput)
		}
		feed.EstimatedDeliveryDate = &ts
	}

	// Los eventos pueden venir directos o dentro de un contenedor <Events>.
	eventNodes := shipment.SelectElements("Event")
	if events := shipment.FindElement("Events"); events != nil {
		eventNodes = append(eventNodes, events.SelectElements("Event")...)
	}

	for _, node := range eventNodes {
		rawStatus := childText(node, "Status")
		status, ok := normalizeStatus(rawStatus)
		if !ok {
			return nil, fmt.Errorf("carrier: estado desconocido %q: %w", rawStatus, domain.ErrInvalidInput)
		}
		rawTS := childText(node, "Timestamp")
		ts, err := parseTimestamp(rawTS)
		if err != nil {
			return nil, fmt.Errorf("carrier: Timestamp %q: %w", rawTS, domain.ErrInvalidInput)
		}
		feed.Events = append(feed.Events, purchasing.CarrierEvent{
			Status:    status,
			Location:  childText(node, "Location"),
			Timestamp: ts,
		})
	}
	if len(feed.Events) == 0 {
		return nil, fmt.Errorf("carrier: el feed no trae eventos: %w", domain.ErrInvalidInput)
	}
	return feed, nil
}

// normalizeStatus pasa el estado de la transportadora al vocabulario interno.
func normalizeStatus(raw string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	status, ok := statusAliases[key]
	return status, ok
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("carrier: formato de fecha no reconocido: %q", raw)
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.FindElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// Asegurar que XMLFeedParser implementa purchasing.FeedParser.
var _ purchasing.FeedParser = (*XMLFeedParser)(nil)
