package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductMetrics agregados de inventario para el dashboard.
type ProductMetrics struct {
	TotalProducts  int
	LowStockCount  int
	OutOfStock     int
	ExpiringSoon   int
	InventoryValue decimal.Decimal // Σ quantity × cost_price
}

// LowStockRow detalle de un producto bajo umbral para el widget del dashboard.
type LowStockRow struct {
	ProductID    string
	Name         string
	CurrentStock int
	MinThreshold int
	Location     string // "aisle-shelf" si hay datos de ubicación
}

// OrderSummary conteos y valores de órdenes de compra por estado.
type OrderSummary struct {
	TotalOrders     int
	PendingOrders   int // PENDING + APPROVED
	ShippedOrders   int
	DeliveredOrders int
	TotalValue      decimal.Decimal
	PendingValue    decimal.Decimal
}

// DeliveryMetrics métricas de envíos para el dashboard de compras.
type DeliveryMetrics struct {
	InTransitCount      int
	DeliveredToday      int
	DelayedDeliveries   int // expected_delivery_date vencida sin entrega
	AverageDeliveryDays decimal.Decimal
}

// MetricsRepository consultas read-only de agregados para dashboards.
type MetricsRepository interface {
	ProductMetrics(ctx context.Context) (*ProductMetrics, error)
	LowStockItems(ctx context.Context) ([]LowStockRow, error)
	OrderSummary(ctx context.Context) (*OrderSummary, error)
	DeliveryMetrics(ctx context.Context) (*DeliveryMetrics, error)
}
