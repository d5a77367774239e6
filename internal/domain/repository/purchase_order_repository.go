package repository

import (
	"time"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// OrderFilter criterios de listado de órdenes de compra.
type OrderFilter struct {
	Status     string
	SupplierID string
}

// PurchaseOrderRepository define el puerto de persistencia del agregado orden
// de compra. Create y ReplaceItems operan sobre la orden con sus líneas; las
// líneas pertenecen en exclusiva a la orden (cascade al borrar).
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	// Update persiste la cabecera (status, totales, fechas, aprobación, notas).
	Update(order *entity.PurchaseOrder) error
	// ReplaceItems reemplaza todas las líneas de la orden (solo pre-ORDERED).
	ReplaceItems(orderID string, items []*entity.PurchaseOrderItem) error
	// UpdateItemReceipt persiste los campos de recepción de una línea.
	UpdateItemReceipt(item *entity.PurchaseOrderItem) error
	List(filter OrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error)
	// CountCreatedOn cuenta órdenes creadas en el día indicado (secuencia del order number).
	CountCreatedOn(day time.Time) (int, error)
}

// DeliveryRepository define el puerto de persistencia del tracking de envíos (1:1 con la orden).
type DeliveryRepository interface {
	Create(tracking *entity.DeliveryTracking) error
	GetByOrderID(orderID string) (*entity.DeliveryTracking, error)
	Update(tracking *entity.DeliveryTracking) error
}
