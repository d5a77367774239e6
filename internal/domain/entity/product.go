package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del supermercado.
// QuantityInStock solo se muta vía el libro de ajustes (StockAdjustment);
// el stock_status nunca se persiste, se deriva en lectura (inventory.ComputeStockStatus).
type Product struct {
	ID          string
	SKU         string // único, inmutable, normalizado a mayúsculas en la creación
	Barcode     string // opcional; único solo cuando está presente
	Name        string
	Description string

	Category    string
	Subcategory string
	Brand       string

	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal

	QuantityInStock   int
	MinStockThreshold int
	MaxStockThreshold int // 0 = sin límite superior

	// Ubicación en tienda
	Aisle       string
	Shelf       string
	BinLocation string

	UnitOfMeasure string          // pieces, kg, liters, ...
	Weight        decimal.Decimal // gramos
	Dimensions    string          // "L x W x H"

	// Perecederos
	IsPerishable           bool
	ExpiryDate             *time.Time
	DaysUntilExpiryWarning int

	// Asociación con proveedor principal (referencia, no ownership)
	SupplierID  string
	SupplierSKU string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string // UserID del actor que creó el producto
}
