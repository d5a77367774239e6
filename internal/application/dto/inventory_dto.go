package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// AdjustStockRequest comando para fijar la cantidad de un producto.
// El delta se calcula contra la cantidad actual y queda registrado en el libro.
type AdjustStockRequest struct {
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason"` // RESTOCK | SALE | DAMAGE | CORRECTION | RETURN
	Notes       string `json:"notes"`
}

// StockAdjustmentResponse una entrada del libro de ajustes.
type StockAdjustmentResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Delta       int       `json:"delta"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

// ToAdjustmentResponse mapea la entidad a su DTO.
func ToAdjustmentResponse(a *entity.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		OldQuantity: a.OldQuantity,
		NewQuantity: a.NewQuantity,
		Delta:       a.Delta(),
		Reason:      a.Reason,
		Notes:       a.Notes,
		ReferenceID: a.ReferenceID,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

// ReorderSupplierDTO proveedor sugerido para reponer un producto.
type ReorderSupplierDTO struct {
	SupplierID   string          `json:"supplier_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	MinimumOrder int             `json:"minimum_order"`
	LeadTimeDays int             `json:"lead_time_days"`
}

// ReorderSuggestionDTO un producto bajo umbral con su cantidad sugerida de pedido.
type ReorderSuggestionDTO struct {
	ProductID         string              `json:"product_id"`
	ProductName       string              `json:"product_name"`
	ProductSKU        string              `json:"product_sku"`
	CurrentStock      int                 `json:"current_stock"`
	MinThreshold      int                 `json:"min_threshold"`
	SuggestedQuantity int                 `json:"suggested_quantity"`
	StockStatus       string              `json:"stock_status"`
	Supplier          *ReorderSupplierDTO `json:"supplier,omitempty"`
}

// ReorderSuggestionsResponse snapshot de sugerencias de reorden.
type ReorderSuggestionsResponse struct {
	Suggestions []ReorderSuggestionDTO `json:"suggestions"`
	TotalCount  int                    `json:"total_count"`
}
