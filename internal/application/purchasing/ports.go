package purchasing

import (
	"context"

	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del módulo de compras atados a esa tx. La recepción exige
// atomicidad entre "update de líneas", "append de N entradas al libro de
// ajustes" y "posible cambio de estado de la orden": o todo o nada.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
		adjustmentRepo repository.AdjustmentRepository,
		supplierRepo repository.SupplierRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}
