// Package inventory implementa el motor de sugerencias de reorden.
package inventory

import (
	"sort"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/inventory"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// maxSuggestions tope de productos analizados por snapshot.
const maxSuggestions = 200

// ReorderUseCase calcula sugerencias de reorden para productos bajo umbral.
type ReorderUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewReorderUseCase construye el caso de uso.
func NewReorderUseCase(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ReorderUseCase {
	return &ReorderUseCase{productRepo: productRepo, supplierRepo: supplierRepo}
}

// Suggestions devuelve los productos activos bajo su umbral mínimo, con la
// cantidad sugerida para volver al nivel objetivo (max, o min×2 si no hay max)
// y el proveedor disponible de menor precio. Agotados primero, luego por
// severidad (stock/min ascendente).
func (uc *ReorderUseCase) Suggestions() (*dto.ReorderSuggestionsResponse, error) {
	products, err := uc.productRepo.ListBelowMinThreshold(maxSuggestions)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(products))
	for _, p := range products {
		target := p.MaxStockThreshold
		if target == 0 {
			target = p.MinStockThreshold * 2
		}
		suggested := target - p.QuantityInStock
		if suggested <= 0 {
			continue
		}

		supplier, err := uc.bestSupplier(p.ID)
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			ProductSKU:        p.SKU,
			CurrentStock:      p.QuantityInStock,
			MinThreshold:      p.MinStockThreshold,
			SuggestedQuantity: suggested,
			StockStatus:       inventory.StatusOf(p),
			Supplier:          supplier,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		return severity(a) < severity(b)
	})

	return &dto.ReorderSuggestionsResponse{Suggestions: suggestions, TotalCount: len(suggestions)}, nil
}

// severity razón stock/min; menor es más urgente. Min en cero no llega aquí
// (sin umbral no hay sugerencia).
func severity(s dto.ReorderSuggestionDTO) float64 {
	if s.MinThreshold == 0 {
		return 1
	}
	return float64(s.CurrentStock) / float64(s.MinThreshold)
}

// bestSupplier elige la asociación disponible de menor precio; a igualdad de
// precio gana la asociación preferida. Nil si el producto no tiene proveedores.
func (uc *ReorderUseCase) bestSupplier(productID string) (*dto.ReorderSupplierDTO, error) {
	assocs, err := uc.supplierRepo.AvailableAssociations(productID)
	if err != nil {
		return nil, err
	}

	var best *entity.SupplierProduct
	for _, a := range assocs {
		if !a.IsAvailable {
			continue
		}
		if best == nil {
			best = a
			continue
		}
		switch {
		case a.SupplierPrice.LessThan(best.SupplierPrice):
			best = a
		case a.SupplierPrice.Equal(best.SupplierPrice) && a.IsPreferred && !best.IsPreferred:
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}

	s, err := uc.supplierRepo.GetByID(best.SupplierID)
	if err != nil {
		return nil, err
	}
	name := ""
	if s != nil {
		name = s.Name
	}
	return &dto.ReorderSupplierDTO{
		SupplierID:   best.SupplierID,
		Name:         name,
		Price:        best.SupplierPrice.Round(2),
		MinimumOrder: best.MinimumOrderQuantity,
		LeadTimeDays: best.LeadTimeDays,
	}, nil
}
