package repository

import "github.com/tu-usuario/supermarket-pro/internal/domain/entity"

// AdjustmentRepository define el puerto del libro de ajustes de stock.
// Append-only: no expone update ni delete. ListByProduct re-consulta en cada
// llamada, ordenado por created_at ascendente.
type AdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	ListByProduct(productID string) ([]*entity.StockAdjustment, error)
}
