package product

import (
	"context"

	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que "append al libro de ajustes" y
// "update de quantity_in_stock" queden ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.AdjustmentRepository,
	) error) error
}
