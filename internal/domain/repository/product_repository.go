package repository

import (
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// ProductFilter criterios de listado de productos. El filtro por estado activo
// se aplica una sola vez en el límite de consulta del repositorio, no en los call sites.
type ProductFilter struct {
	Category    string
	Subcategory string
	Brand       string
	SupplierID  string
	StockStatus string // OUT_OF_STOCK | LOW_STOCK | NORMAL | OVERSTOCK
	Perishable  *bool
	Search      string // busca en name, description, sku, barcode
}

// Category agrupa una categoría con sus subcategorías activas.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los listados excluyen productos archivados; los lookups por id/sku/barcode
// devuelven también archivados (el historial sigue siendo consultable).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity actualiza solo quantity_in_stock (usado por el libro de ajustes).
	UpdateQuantity(id string, quantity int) error
	SetActive(id string, active bool) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Categories() ([]Category, error)
	// ListBelowMinThreshold devuelve productos activos con quantity_in_stock < min_stock_threshold.
	ListBelowMinThreshold(limit int) ([]*entity.Product, error)
}
