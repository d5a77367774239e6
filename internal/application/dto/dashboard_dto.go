package dto

import "github.com/shopspring/decimal"

// DashboardMetricsDTO métricas de inventario para la página principal.
type DashboardMetricsDTO struct {
	TotalProducts    int             `json:"total_products"`
	LowStockCount    int             `json:"low_stock_count"`
	OutOfStockCount  int             `json:"out_of_stock_count"`
	ExpiringSoon     int             `json:"expiring_soon_count"`
	TotalValue       decimal.Decimal `json:"total_value"` // Σ quantity × cost_price
}

// LowStockItemDTO detalle de un producto bajo umbral.
type LowStockItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinThreshold int    `json:"min_threshold"`
	Location     string `json:"location,omitempty"`
}

// LowStockResponse listado de productos bajo umbral.
type LowStockResponse struct {
	Items      []LowStockItemDTO `json:"items"`
	TotalCount int               `json:"total_count"`
}
