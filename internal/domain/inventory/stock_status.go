// Package inventory contiene la lógica pura de clasificación de stock.
// Única implementación autoritativa de stock_status: se evalúa en lectura,
// nunca se persiste, así siempre es consistente con la cantidad actual.
package inventory

import (
	"time"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// Clasificación derivada del nivel de stock.
const (
	StockStatusOutOfStock = "OUT_OF_STOCK"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusNormal     = "NORMAL"
	StockStatusOverstock  = "OVERSTOCK"
)

// ComputeStockStatus clasifica el stock de forma pura a partir de
// (cantidad, umbral mínimo, umbral máximo). maxThreshold == 0 significa sin límite.
func ComputeStockStatus(quantity, minThreshold, maxThreshold int) string {
	switch {
	case quantity == 0:
		return StockStatusOutOfStock
	case quantity < minThreshold:
		return StockStatusLowStock
	case maxThreshold > 0 && quantity > maxThreshold:
		return StockStatusOverstock
	default:
		return StockStatusNormal
	}
}

// StatusOf clasifica el stock de un producto.
func StatusOf(p *entity.Product) string {
	return ComputeStockStatus(p.QuantityInStock, p.MinStockThreshold, p.MaxStockThreshold)
}

// ExpiringSoon indica si un producto perecedero vence dentro de su ventana de
// aviso contada desde now. Falso para no perecederos, sin fecha o ya vencidos.
func ExpiringSoon(p *entity.Product, now time.Time) bool {
	if !p.IsPerishable || p.ExpiryDate == nil {
		return false
	}
	if p.ExpiryDate.Before(now) {
		return false
	}
	window := time.Duration(p.DaysUntilExpiryWarning) * 24 * time.Hour
	return !p.ExpiryDate.After(now.Add(window))
}
