package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/inventory"
)

// CreateProductRequest comando tipado para crear un producto.
// Se valida como unidad antes de cualquier mutación.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Brand       string `json:"brand"`

	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`

	QuantityInStock   int `json:"quantity_in_stock"`
	MinStockThreshold int `json:"min_stock_threshold"`
	MaxStockThreshold int `json:"max_stock_threshold"`

	Aisle       string `json:"aisle"`
	Shelf       string `json:"shelf"`
	BinLocation string `json:"bin_location"`

	UnitOfMeasure string          `json:"unit_of_measure"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"`

	IsPerishable           bool       `json:"is_perishable"`
	ExpiryDate             *time.Time `json:"expiry_date"`
	DaysUntilExpiryWarning int        `json:"days_until_expiry_warning"`

	SupplierID  string `json:"supplier_id"`
	SupplierSKU string `json:"supplier_sku"`
}

// UpdateProductRequest comando parcial de actualización. SKU presente y
// distinto al almacenado produce ImmutableFieldError; la cantidad no se toca
// aquí (solo vía ajustes de stock).
type UpdateProductRequest struct {
	SKU         *string `json:"sku"`
	Barcode     *string `json:"barcode"`
	Name        *string `json:"name"`
	Description *string `json:"description"`

	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
	Brand       *string `json:"brand"`

	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`

	MinStockThreshold *int `json:"min_stock_threshold"`
	MaxStockThreshold *int `json:"max_stock_threshold"`

	Aisle       *string `json:"aisle"`
	Shelf       *string `json:"shelf"`
	BinLocation *string `json:"bin_location"`

	UnitOfMeasure *string          `json:"unit_of_measure"`
	Weight        *decimal.Decimal `json:"weight"`
	Dimensions    *string          `json:"dimensions"`

	IsPerishable           *bool      `json:"is_perishable"`
	ExpiryDate             *time.Time `json:"expiry_date"`
	DaysUntilExpiryWarning *int       `json:"days_until_expiry_warning"`

	SupplierID  *string `json:"supplier_id"`
	SupplierSKU *string `json:"supplier_sku"`
}

// ProductResponse salida de un producto. StockStatus es derivado en lectura.
type ProductResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Barcode     string `json:"barcode,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Brand       string `json:"brand,omitempty"`

	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`

	QuantityInStock   int    `json:"quantity_in_stock"`
	MinStockThreshold int    `json:"min_stock_threshold"`
	MaxStockThreshold int    `json:"max_stock_threshold,omitempty"`
	StockStatus       string `json:"stock_status"`

	Aisle       string `json:"aisle,omitempty"`
	Shelf       string `json:"shelf,omitempty"`
	BinLocation string `json:"bin_location,omitempty"`

	UnitOfMeasure string          `json:"unit_of_measure"`
	Weight        decimal.Decimal `json:"weight,omitempty"`
	Dimensions    string          `json:"dimensions,omitempty"`

	IsPerishable           bool       `json:"is_perishable"`
	ExpiryDate             *time.Time `json:"expiry_date,omitempty"`
	DaysUntilExpiryWarning int        `json:"days_until_expiry_warning,omitempty"`

	SupplierID  string `json:"supplier_id,omitempty"`
	SupplierSKU string `json:"supplier_sku,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su DTO, derivando stock_status.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                     p.ID,
		SKU:                    p.SKU,
		Barcode:                p.Barcode,
		Name:                   p.Name,
		Description:            p.Description,
		Category:               p.Category,
		Subcategory:            p.Subcategory,
		Brand:                  p.Brand,
		CostPrice:              p.CostPrice.Round(2),
		SellingPrice:           p.SellingPrice.Round(2),
		QuantityInStock:        p.QuantityInStock,
		MinStockThreshold:      p.MinStockThreshold,
		MaxStockThreshold:      p.MaxStockThreshold,
		StockStatus:            inventory.StatusOf(p),
		Aisle:                  p.Aisle,
		Shelf:                  p.Shelf,
		BinLocation:            p.BinLocation,
		UnitOfMeasure:          p.UnitOfMeasure,
		Weight:                 p.Weight,
		Dimensions:             p.Dimensions,
		IsPerishable:           p.IsPerishable,
		ExpiryDate:             p.ExpiryDate,
		DaysUntilExpiryWarning: p.DaysUntilExpiryWarning,
		SupplierID:             p.SupplierID,
		SupplierSKU:            p.SupplierSKU,
		IsActive:               p.IsActive,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
