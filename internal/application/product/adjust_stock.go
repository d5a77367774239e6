package product

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// AdjustStock fija la cantidad de un producto y registra el delta en el libro
// de ajustes, todo en una transacción con bloqueo de fila (SELECT FOR UPDATE):
// dos ajustes simultáneos sobre el mismo producto se serializan en la BD y
// ningún delta se pierde.
func (uc *UseCase) AdjustStock(ctx context.Context, productID, actor string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.NewQuantity < 0 {
		return nil, &domain.InvalidQuantityError{Quantity: in.NewQuantity}
	}
	if !entity.ManualAdjustmentReason(in.Reason) {
		v := &domain.ValidationError{}
		v.Add("reason", "razón inválida (RESTOCK, SALE, DAMAGE, CORRECTION o RETURN)")
		return nil, v
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, adjustmentRepo repository.AdjustmentRepository) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil || !p.IsActive {
			return &domain.NotFoundError{Resource: "product", Key: productID}
		}

		now := time.Now()
		adj := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			OldQuantity: p.QuantityInStock,
			NewQuantity: in.NewQuantity,
			Reason:      in.Reason,
			Notes:       in.Notes,
			CreatedAt:   now,
			CreatedBy:   actor,
		}
		if err := adjustmentRepo.Create(adj); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(p.ID, in.NewQuantity); err != nil {
			return err
		}
		p.QuantityInStock = in.NewQuantity
		p.UpdatedAt = now
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToProductResponse(updated)
	return &out, nil
}

// History devuelve el historial de ajustes de un producto, ascendente por
// fecha. Cada llamada re-consulta el libro.
func (uc *UseCase) History(productID string) ([]dto.StockAdjustmentResponse, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", Key: productID}
	}
	entries, err := uc.adjustmentRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToAdjustmentResponse(e))
	}
	return out, nil
}
