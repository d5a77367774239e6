package entity

import "time"

// Estados de un envío. DELIVERED es terminal; FAILED es alcanzable desde
// cualquier estado no terminal.
const (
	DeliveryStatusPending        = "PENDING"
	DeliveryStatusPickedUp       = "PICKED_UP"
	DeliveryStatusInTransit      = "IN_TRANSIT"
	DeliveryStatusOutForDelivery = "OUT_FOR_DELIVERY"
	DeliveryStatusDelivered      = "DELIVERED"
	DeliveryStatusFailed         = "FAILED"
)

// DeliveryTracking sigue el envío de una orden de compra (uno a uno).
type DeliveryTracking struct {
	ID              string
	PurchaseOrderID string

	TrackingNumber string
	Carrier        string // FedEx, UPS, DHL, Royal Mail, ...
	Status         string

	ShippedDate           *time.Time
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time

	CurrentLocation     string
	OriginLocation      string
	DestinationLocation string

	DeliveredTo      string
	DeliverySignature string
	DeliveryPhotoURL string
	DeliveryNotes    string

	LastStatusUpdate time.Time
	StatusHistory    string // JSON: lista de {status, location, timestamp}

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryStatusEvent es una entrada del historial de estados del envío.
type DeliveryStatusEvent struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
