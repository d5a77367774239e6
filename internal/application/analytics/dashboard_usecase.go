// Package analytics contiene los casos de uso de métricas para la página
// principal del panel de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// DashboardUseCase genera las métricas de inventario del panel.
//
// Fuente de datos: MetricsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	metricsRepo repository.MetricsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(metricsRepo repository.MetricsRepository) *DashboardUseCase {
	return &DashboardUseCase{metricsRepo: metricsRepo}
}

// GetMetrics devuelve los conteos de inventario y el valor total a costo.
func (uc *DashboardUseCase) GetMetrics(ctx context.Context) (*dto.DashboardMetricsDTO, error) {
	m, err := uc.metricsRepo.ProductMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: métricas de inventario: %w", err)
	}
	return &dto.DashboardMetricsDTO{
		TotalProducts:   m.TotalProducts,
		LowStockCount:   m.LowStockCount,
		OutOfStockCount: m.OutOfStock,
		ExpiringSoon:    m.ExpiringSoon,
		TotalValue:      m.InventoryValue.Round(2),
	}, nil
}

// GetLowStock devuelve el widget de productos bajo umbral con su ubicación.
func (uc *DashboardUseCase) GetLowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	rows, err := uc.metricsRepo.LowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos bajo umbral: %w", err)
	}
	items := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItemDTO{
			ID:           r.ProductID,
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			MinThreshold: r.MinThreshold,
			Location:     r.Location,
		})
	}
	return &dto.LowStockResponse{Items: items, TotalCount: len(items)}, nil
}
