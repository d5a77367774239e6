package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. DELIVERED y CANCELLED son terminales.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusPending   = "PENDING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusOrdered   = "ORDERED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder es el agregado de una orden de compra a un proveedor.
// Subtotal/TaxAmount/TotalAmount se recalculan siempre desde las líneas
// (order.ComputeTotals); ShippingCost y DiscountAmount se ingresan directo.
// La orden es dueña exclusiva de sus Items (cascade al borrar).
type PurchaseOrder struct {
	ID          string
	OrderNumber string // generado: PO-YYYYMMDD-NNN
	SupplierID  string
	Status      string

	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time

	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal

	DeliveryAddress      string
	DeliveryInstructions string

	Notes           string
	ReferenceNumber string // referencia del proveedor

	CreatedBy  string
	ApprovedBy string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []*PurchaseOrderItem
}

// FullyReceived indica si todas las líneas están completamente recibidas.
func (o *PurchaseOrder) FullyReceived() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if !item.IsReceived {
			return false
		}
	}
	return true
}

// ItemByID busca una línea de la orden por id. Nil si no pertenece a la orden.
func (o *PurchaseOrder) ItemByID(itemID string) *PurchaseOrderItem {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// PurchaseOrderItem es una línea de la orden. TotalPrice = QuantityOrdered × UnitPrice.
// QuantityReceived nunca excede QuantityOrdered (OverReceiptError en caso contrario).
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string

	QuantityOrdered  int
	QuantityReceived int
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal

	// Snapshot del producto al momento de ordenar
	ProductName string
	ProductSKU  string
	SupplierSKU string

	IsReceived       bool
	IsQualityChecked bool
	QualityNotes     string
	ReceivedDate     *time.Time
}

// Outstanding devuelve las unidades pendientes de recibir.
func (i *PurchaseOrderItem) Outstanding() int {
	return i.QuantityOrdered - i.QuantityReceived
}
