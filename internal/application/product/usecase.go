// Package product implementa el almacén de productos: CRUD validado,
// soft delete y ajustes de stock vía el libro de ajustes.
package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// UseCase casos de uso de productos. Toda mutación de quantity_in_stock pasa
// por AdjustStock; Update no toca la cantidad.
type UseCase struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
	txRunner       TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, adjustmentRepo repository.AdjustmentRepository, txRunner TxRunner) *UseCase {
	return &UseCase{productRepo: productRepo, adjustmentRepo: adjustmentRepo, txRunner: txRunner}
}

// Create valida el comando completo (todas las violaciones juntas), normaliza
// el SKU a mayúsculas y persiste. Si hay stock inicial, escribe la entrada de
// apertura en el libro (RESTOCK) en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		ID:                     uuid.New().String(),
		SKU:                    strings.ToUpper(strings.TrimSpace(in.SKU)),
		Barcode:                strings.TrimSpace(in.Barcode),
		Name:                   strings.TrimSpace(in.Name),
		Description:            in.Description,
		Category:               strings.TrimSpace(in.Category),
		Subcategory:            in.Subcategory,
		Brand:                  in.Brand,
		CostPrice:              in.CostPrice,
		SellingPrice:           in.SellingPrice,
		QuantityInStock:        in.QuantityInStock,
		MinStockThreshold:      in.MinStockThreshold,
		MaxStockThreshold:      in.MaxStockThreshold,
		Aisle:                  in.Aisle,
		Shelf:                  in.Shelf,
		BinLocation:            in.BinLocation,
		UnitOfMeasure:          defaultUnit(in.UnitOfMeasure),
		Weight:                 in.Weight,
		Dimensions:             in.Dimensions,
		IsPerishable:           in.IsPerishable,
		ExpiryDate:             in.ExpiryDate,
		DaysUntilExpiryWarning: defaultExpiryWarning(in.DaysUntilExpiryWarning),
		SupplierID:             in.SupplierID,
		SupplierSKU:            in.SupplierSKU,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
		CreatedBy:              actor,
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, adjustmentRepo repository.AdjustmentRepository) error {
		if err := productRepo.Create(p); err != nil {
			return err
		}
		if p.QuantityInStock > 0 {
			// Entrada de apertura: el libro reproduce el stock desde cero
			return adjustmentRepo.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				OldQuantity: 0,
				NewQuantity: p.QuantityInStock,
				Reason:      entity.ReasonRestock,
				Notes:       "stock inicial",
				CreatedAt:   now,
				CreatedBy:   actor,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToProductResponse(p)
	return &out, nil
}

// GetByID obtiene un producto por id (incluye archivados: historial consultable).
func (uc *UseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", Key: id}
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// GetBySKU obtiene un producto por SKU (case-insensitive: se normaliza a mayúsculas).
func (uc *UseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(sku))
	p, err := uc.productRepo.GetBySKU(normalized)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", Key: normalized}
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (uc *UseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", Key: barcode}
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// List lista productos activos con filtros y paginación.
func (uc *UseCase) List(filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, total, err := uc.productRepo.List(filter, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update aplica un comando parcial. El SKU es inmutable post-creación: un SKU
// presente y distinto al almacenado produce ImmutableFieldError.
func (uc *UseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, &domain.NotFoundError{Resource: "product", Key: id}
	}

	if in.SKU != nil && strings.ToUpper(strings.TrimSpace(*in.SKU)) != p.SKU {
		return nil, &domain.ImmutableFieldError{Field: "sku"}
	}
	if err := validateUpdate(in, p.CostPrice, p.SellingPrice, p.MinStockThreshold, p.MaxStockThreshold); err != nil {
		return nil, err
	}

	applyUpdate(p, in)
	p.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// SoftDelete archiva el producto (is_active=false). La fila y su historial se
// conservan; desaparece de listados y sugerencias de reorden.
func (uc *UseCase) SoftDelete(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil || !p.IsActive {
		return &domain.NotFoundError{Resource: "product", Key: id}
	}
	return uc.productRepo.SetActive(id, false)
}

// Categories devuelve las categorías activas con sus subcategorías.
func (uc *UseCase) Categories() ([]repository.Category, error) {
	return uc.productRepo.Categories()
}

func defaultUnit(u string) string {
	if strings.TrimSpace(u) == "" {
		return "pieces"
	}
	return u
}

func defaultExpiryWarning(days int) int {
	if days <= 0 {
		return 7
	}
	return days
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Subcategory != nil {
		p.Subcategory = *in.Subcategory
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.MinStockThreshold != nil {
		p.MinStockThreshold = *in.MinStockThreshold
	}
	if in.MaxStockThreshold != nil {
		p.MaxStockThreshold = *in.MaxStockThreshold
	}
	if in.Aisle != nil {
		p.Aisle = *in.Aisle
	}
	if in.Shelf != nil {
		p.Shelf = *in.Shelf
	}
	if in.BinLocation != nil {
		p.BinLocation = *in.BinLocation
	}
	if in.UnitOfMeasure != nil {
		p.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.Dimensions != nil {
		p.Dimensions = *in.Dimensions
	}
	if in.IsPerishable != nil {
		p.IsPerishable = *in.IsPerishable
	}
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate
	}
	if in.DaysUntilExpiryWarning != nil {
		p.DaysUntilExpiryWarning = *in.DaysUntilExpiryWarning
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
	if in.SupplierSKU != nil {
		p.SupplierSKU = *in.SupplierSKU
	}
}
