package purchasing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// OrderPDFGenerator genera el documento imprimible de una orden de compra
// (el que se envía al proveedor).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}

// PDFUseCase genera el documento PDF de una orden de compra.
type PDFUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	generator    OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orderRepo repository.PurchaseOrderRepository, supplierRepo repository.SupplierRepository, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, supplierRepo: supplierRepo, generator: generator}
}

// DownloadOrderPDF genera el PDF de una orden. Los borradores no se imprimen:
// un DRAFT aún puede cambiar entero.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if o == nil {
		return nil, "", &domain.NotFoundError{Resource: "purchase_order", Key: orderID}
	}
	if o.Status == entity.OrderStatusDraft {
		return nil, "", fmt.Errorf("%w: la orden está en borrador, envíela antes de generar el PDF", domain.ErrInvalidInput)
	}

	supplier, err := uc.supplierRepo.GetByID(o.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, "", &domain.NotFoundError{Resource: "supplier", Key: o.SupplierID}
	}

	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, o, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_%s.pdf", o.OrderNumber), nil
}
