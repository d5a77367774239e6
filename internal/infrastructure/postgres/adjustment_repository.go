package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo persiste el libro de ajustes de stock. La tabla es
// append-only: nunca se actualiza ni borra una entrada.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador del libro de ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create inserta una entrada en el libro.
func (r *AdjustmentRepo) Create(a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, old_quantity, new_quantity, reason, notes, reference_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductID, a.OldQuantity, a.NewQuantity, a.Reason, a.Notes, a.ReferenceID, a.CreatedAt, a.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// ListByProduct devuelve las entradas de un producto, ascendente por fecha.
func (r *AdjustmentRepo) ListByProduct(productID string) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, product_id, old_quantity, new_quantity, reason, notes, reference_id, created_at, created_by
		FROM stock_adjustments
		WHERE product_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.OldQuantity, &a.NewQuantity, &a.Reason, &a.Notes, &a.ReferenceID, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
