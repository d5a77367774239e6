package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
)

// validateCreate valida el comando completo y reporta todas las violaciones juntas.
func validateCreate(in dto.CreateProductRequest) error {
	v := &domain.ValidationError{}

	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "requerido")
	}
	if strings.TrimSpace(in.SKU) == "" {
		v.Add("sku", "requerido")
	}
	if strings.TrimSpace(in.Category) == "" {
		v.Add("category", "requerido")
	}
	if !in.CostPrice.GreaterThan(decimal.Zero) {
		v.Add("cost_price", "debe ser mayor que 0")
	}
	if !in.SellingPrice.GreaterThan(decimal.Zero) {
		v.Add("selling_price", "debe ser mayor que 0")
	}
	// Precio de venta <= costo: inconsistencia de datos, error duro en el core
	if in.SellingPrice.GreaterThan(decimal.Zero) && in.CostPrice.GreaterThan(decimal.Zero) &&
		!in.SellingPrice.GreaterThan(in.CostPrice) {
		v.Add("selling_price", "debe ser mayor que cost_price")
	}
	if in.QuantityInStock < 0 {
		v.Add("quantity_in_stock", "debe ser >= 0")
	}
	if in.MinStockThreshold < 0 {
		v.Add("min_stock_threshold", "debe ser >= 0")
	}
	if in.MaxStockThreshold != 0 && in.MaxStockThreshold <= in.MinStockThreshold {
		v.Add("max_stock_threshold", "debe ser mayor que min_stock_threshold")
	}
	if in.IsPerishable && in.ExpiryDate == nil {
		v.Add("expiry_date", "requerido para productos perecederos")
	}

	return v.AsError()
}

// validateUpdate valida solo los campos presentes del comando parcial, con las
// mismas reglas de create. Los valores prev* permiten cruzar precios y
// umbrales cuando solo uno de los dos campos del par viene en el update.
func validateUpdate(in dto.UpdateProductRequest, prevCost, prevSelling decimal.Decimal, prevMin, prevMax int) error {
	v := &domain.ValidationError{}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.Add("name", "requerido")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		v.Add("category", "requerido")
	}
	cost := prevCost
	if in.CostPrice != nil {
		cost = *in.CostPrice
		if !cost.GreaterThan(decimal.Zero) {
			v.Add("cost_price", "debe ser mayor que 0")
		}
	}
	selling := prevSelling
	if in.SellingPrice != nil {
		selling = *in.SellingPrice
		if !selling.GreaterThan(decimal.Zero) {
			v.Add("selling_price", "debe ser mayor que 0")
		}
	}
	if selling.GreaterThan(decimal.Zero) && cost.GreaterThan(decimal.Zero) &&
		!selling.GreaterThan(cost) {
		v.Add("selling_price", "debe ser mayor que cost_price")
	}

	min := prevMin
	if in.MinStockThreshold != nil {
		min = *in.MinStockThreshold
		if min < 0 {
			v.Add("min_stock_threshold", "debe ser >= 0")
		}
	}
	max := prevMax
	if in.MaxStockThreshold != nil {
		max = *in.MaxStockThreshold
	}
	if max != 0 && max <= min {
		v.Add("max_stock_threshold", "debe ser mayor que min_stock_threshold")
	}

	return v.AsError()
}
