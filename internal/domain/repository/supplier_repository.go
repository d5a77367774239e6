package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(activeOnly bool, limit, offset int) ([]*entity.Supplier, int, error)
	// UpdateStats actualiza solo las estadísticas de desempeño; las muta
	// únicamente el procesador de recepciones.
	UpdateStats(id string, totalOrders int, onTimeRate, rating decimal.Decimal) error
	// AvailableAssociations devuelve las asociaciones proveedor-producto
	// disponibles para un producto.
	AvailableAssociations(productID string) ([]*entity.SupplierProduct, error)
}
