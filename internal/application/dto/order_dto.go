package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// OrderItemRequest línea de una orden de compra nueva.
type OrderItemRequest struct {
	ProductID       string          `json:"product_id"`
	QuantityOrdered int             `json:"quantity_ordered"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SupplierSKU     string          `json:"supplier_sku"`
}

// CreateOrderRequest comando para crear una orden de compra.
// SaveAsDraft la deja en DRAFT; si no, nace en PENDING.
type CreateOrderRequest struct {
	SupplierID           string             `json:"supplier_id"`
	Items                []OrderItemRequest `json:"items"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	DeliveryAddress      string             `json:"delivery_address"`
	DeliveryInstructions string             `json:"delivery_instructions"`
	ShippingCost         decimal.Decimal    `json:"shipping_cost"`
	DiscountAmount       decimal.Decimal    `json:"discount_amount"`
	Notes                string             `json:"notes"`
	ReferenceNumber      string             `json:"reference_number"`
	SaveAsDraft          bool               `json:"save_as_draft"`
}

// UpdateOrderRequest actualización de una orden; solo pre-ORDERED.
// Items == nil deja las líneas como están; no nil las reemplaza completas.
type UpdateOrderRequest struct {
	Items                []OrderItemRequest `json:"items"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	DeliveryAddress      *string            `json:"delivery_address"`
	DeliveryInstructions *string            `json:"delivery_instructions"`
	ShippingCost         *decimal.Decimal   `json:"shipping_cost"`
	DiscountAmount       *decimal.Decimal   `json:"discount_amount"`
	Notes                *string            `json:"notes"`
	ReferenceNumber      *string            `json:"reference_number"`
}

// ReceiveItemRequest recepción contra una línea de la orden.
type ReceiveItemRequest struct {
	ItemID           string `json:"item_id"`
	QuantityReceived int    `json:"quantity_received"`
	QualityChecked   bool   `json:"quality_checked"`
	QualityNotes     string `json:"quality_notes"`
}

// ReceiveOrderRequest lote de recepción; se valida completo antes de aplicar
// cualquier mutación (todo o nada).
type ReceiveOrderRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// OrderItemResponse línea de la orden en respuestas.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductSKU       string          `json:"product_sku"`
	SupplierSKU      string          `json:"supplier_sku,omitempty"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	IsReceived       bool            `json:"is_received"`
	IsQualityChecked bool            `json:"is_quality_checked"`
	QualityNotes     string          `json:"quality_notes,omitempty"`
	ReceivedDate     *time.Time      `json:"received_date,omitempty"`
}

// OrderResponse salida de una orden de compra con sus líneas.
type OrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	SupplierID  string `json:"supplier_id"`
	Status      string `json:"status"`

	OrderDate            time.Time  `json:"order_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`

	DeliveryAddress      string `json:"delivery_address,omitempty"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
	Notes                string `json:"notes,omitempty"`
	ReferenceNumber      string `json:"reference_number,omitempty"`

	CreatedBy  string     `json:"created_by"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	Items []OrderItemResponse `json:"items"`
}

// ToOrderResponse mapea el agregado a su DTO.
func ToOrderResponse(o *entity.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductSKU:       it.ProductSKU,
			SupplierSKU:      it.SupplierSKU,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitPrice:        it.UnitPrice.Round(2),
			TotalPrice:       it.TotalPrice.Round(2),
			IsReceived:       it.IsReceived,
			IsQualityChecked: it.IsQualityChecked,
			QualityNotes:     it.QualityNotes,
			ReceivedDate:     it.ReceivedDate,
		})
	}
	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		SupplierID:           o.SupplierID,
		Status:               o.Status,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		ActualDeliveryDate:   o.ActualDeliveryDate,
		Subtotal:             o.Subtotal.Round(2),
		TaxAmount:            o.TaxAmount.Round(2),
		ShippingCost:         o.ShippingCost.Round(2),
		DiscountAmount:       o.DiscountAmount.Round(2),
		TotalAmount:          o.TotalAmount.Round(2),
		DeliveryAddress:      o.DeliveryAddress,
		DeliveryInstructions: o.DeliveryInstructions,
		Notes:                o.Notes,
		ReferenceNumber:      o.ReferenceNumber,
		CreatedBy:            o.CreatedBy,
		ApprovedBy:           o.ApprovedBy,
		ApprovedAt:           o.ApprovedAt,
		CreatedAt:            o.CreatedAt,
		Items:                items,
	}
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateDeliveryRequest actualización manual del tracking de un envío.
type UpdateDeliveryRequest struct {
	Status                string     `json:"status"`
	TrackingNumber        *string    `json:"tracking_number"`
	Carrier               *string    `json:"carrier"`
	CurrentLocation       *string    `json:"current_location"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	DeliveredTo           *string    `json:"delivered_to"`
	DeliverySignature     *string    `json:"delivery_signature"`
	DeliveryPhotoURL      *string    `json:"delivery_photo_url"`
	DeliveryNotes         *string    `json:"delivery_notes"`
}

// DeliveryResponse salida del tracking de un envío.
type DeliveryResponse struct {
	ID              string `json:"id"`
	PurchaseOrderID string `json:"purchase_order_id"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
	Carrier         string `json:"carrier,omitempty"`
	Status          string `json:"status"`

	ShippedDate           *time.Time `json:"shipped_date,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	ActualDeliveryDate    *time.Time `json:"actual_delivery_date,omitempty"`

	CurrentLocation     string `json:"current_location,omitempty"`
	OriginLocation      string `json:"origin_location,omitempty"`
	DestinationLocation string `json:"destination_location,omitempty"`

	DeliveredTo       string `json:"delivered_to,omitempty"`
	DeliverySignature string `json:"delivery_signature,omitempty"`
	DeliveryPhotoURL  string `json:"delivery_photo_url,omitempty"`
	DeliveryNotes     string `json:"delivery_notes,omitempty"`

	LastStatusUpdate time.Time                    `json:"last_status_update"`
	StatusHistory    []entity.DeliveryStatusEvent `json:"status_history"`
}

// ToDeliveryResponse mapea el tracking a su DTO decodificando el historial.
func ToDeliveryResponse(t *entity.DeliveryTracking) DeliveryResponse {
	var history []entity.DeliveryStatusEvent
	if t.StatusHistory != "" {
		_ = json.Unmarshal([]byte(t.StatusHistory), &history)
	}
	return DeliveryResponse{
		ID:                    t.ID,
		PurchaseOrderID:       t.PurchaseOrderID,
		TrackingNumber:        t.TrackingNumber,
		Carrier:               t.Carrier,
		Status:                t.Status,
		ShippedDate:           t.ShippedDate,
		EstimatedDeliveryDate: t.EstimatedDeliveryDate,
		ActualDeliveryDate:    t.ActualDeliveryDate,
		CurrentLocation:       t.CurrentLocation,
		OriginLocation:        t.OriginLocation,
		DestinationLocation:   t.DestinationLocation,
		DeliveredTo:           t.DeliveredTo,
		DeliverySignature:     t.DeliverySignature,
		DeliveryPhotoURL:      t.DeliveryPhotoURL,
		DeliveryNotes:         t.DeliveryNotes,
		LastStatusUpdate:      t.LastStatusUpdate,
		StatusHistory:         history,
	}
}

// OrderSummaryResponse conteos y totales de órdenes por estado.
type OrderSummaryResponse struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	ShippedOrders   int             `json:"shipped_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PendingValue    decimal.Decimal `json:"pending_value"`
}

// DeliveryMetricsResponse métricas de envíos.
type DeliveryMetricsResponse struct {
	InTransitCount      int             `json:"in_transit_count"`
	DeliveredToday      int             `json:"delivered_today"`
	DelayedDeliveries   int             `json:"delayed_deliveries"`
	AverageDeliveryDays decimal.Decimal `json:"average_delivery_time"`
}
