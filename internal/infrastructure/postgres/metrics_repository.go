package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas de solo lectura para los dashboards de inventario y compras.
type MetricsRepo struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository construye el adaptador de métricas.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepo {
	return &MetricsRepo{pool: pool}
}

// ProductMetrics agrega conteos de inventario y el valor total a costo en una
// sola pasada sobre products. Usa COALESCE para devolver cero sin filas.
func (r *MetricsRepo) ProductMetrics(ctx context.Context) (*repository.ProductMetrics, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                             AS total_products,
	    COUNT(*) FILTER (WHERE quantity_in_stock > 0
	                       AND quantity_in_stock < min_stock_threshold)                      AS low_stock,
	    COUNT(*) FILTER (WHERE quantity_in_stock = 0)                                        AS out_of_stock,
	    COUNT(*) FILTER (WHERE is_perishable
	                       AND expiry_date IS NOT NULL
	                       AND expiry_date >= now()
	                       AND expiry_date <= now() + days_until_expiry_warning * INTERVAL '1 day') AS expiring_soon,
	    COALESCE(SUM(quantity_in_stock * cost_price), 0)                                     AS inventory_value
	FROM products
	WHERE is_active = true`

	var m repository.ProductMetrics
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.TotalProducts, &m.LowStockCount, &m.OutOfStock, &m.ExpiringSoon, &m.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.ProductMetrics: %w", err)
	}
	return &m, nil
}

// LowStockItems devuelve el detalle de productos bajo umbral, más críticos primero.
func (r *MetricsRepo) LowStockItems(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
	SELECT
	    id,
	    name,
	    quantity_in_stock,
	    min_stock_threshold,
	    TRIM(BOTH '-' FROM aisle || '-' || shelf) AS location
	FROM products
	WHERE is_active = true
	  AND min_stock_threshold > 0
	  AND quantity_in_stock < min_stock_threshold
	ORDER BY quantity_in_stock::FLOAT / min_stock_threshold ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("metrics.LowStockItems: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.CurrentStock, &row.MinThreshold, &row.Location); err != nil {
			return nil, fmt.Errorf("metrics.LowStockItems scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// OrderSummary agrega conteos y valores de órdenes por estado. PENDING y
// APPROVED cuentan juntas como pendientes; CANCELLED queda fuera de los valores.
func (r *MetricsRepo) OrderSummary(ctx context.Context) (*repository.OrderSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                 AS total_orders,
	    COUNT(*) FILTER (WHERE status IN ('PENDING', 'APPROVED'))                AS pending_orders,
	    COUNT(*) FILTER (WHERE status = 'SHIPPED')                               AS shipped_orders,
	    COUNT(*) FILTER (WHERE status = 'DELIVERED')                             AS delivered_orders,
	    COALESCE(SUM(total_amount) FILTER (WHERE status <> 'CANCELLED'), 0)      AS total_value,
	    COALESCE(SUM(total_amount) FILTER (WHERE status IN ('PENDING', 'APPROVED')), 0) AS pending_value
	FROM purchase_orders`

	var s repository.OrderSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.ShippedOrders, &s.DeliveredOrders, &s.TotalValue, &s.PendingValue,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.OrderSummary: %w", err)
	}
	return &s, nil
}

// DeliveryMetrics agrega métricas de envíos. Demorados: fecha estimada vencida
// sin entrega. Promedio de días: entregas reales contra su fecha de despacho.
func (r *MetricsRepo) DeliveryMetrics(ctx context.Context) (*repository.DeliveryMetrics, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE status IN ('PICKED_UP', 'IN_TRANSIT', 'OUT_FOR_DELIVERY'))   AS in_transit,
	    COUNT(*) FILTER (WHERE status = 'DELIVERED'
	                       AND actual_delivery_date >= date_trunc('day', now()))            AS delivered_today,
	    COUNT(*) FILTER (WHERE status NOT IN ('DELIVERED', 'FAILED')
	                       AND estimated_delivery_date IS NOT NULL
	                       AND estimated_delivery_date < now())                             AS delayed,
	    COALESCE(AVG(
	        EXTRACT(EPOCH FROM (actual_delivery_date - shipped_date)) / 86400
	    ) FILTER (WHERE actual_delivery_date IS NOT NULL AND shipped_date IS NOT NULL), 0)  AS avg_days
	FROM delivery_tracking`

	var m repository.DeliveryMetrics
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.InTransitCount, &m.DeliveredToday, &m.DelayedDeliveries, &m.AverageDeliveryDays,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.DeliveryMetrics: %w", err)
	}
	return &m, nil
}
