package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/tu-usuario/supermarket-pro/internal/application/inventory"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

type fakeProductRepo struct {
	belowThreshold []*entity.Product
}

func (r *fakeProductRepo) Create(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error)      { return nil, nil }
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error)     { return nil, nil }
func (r *fakeProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) UpdateQuantity(string, int) error             { return nil }
func (r *fakeProductRepo) SetActive(string, bool) error                 { return nil }
func (r *fakeProductRepo) Categories() ([]repository.Category, error)   { return nil, nil }

func (r *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) ListBelowMinThreshold(int) ([]*entity.Product, error) {
	return r.belowThreshold, nil
}

type fakeSupplierRepo struct {
	suppliers    map[string]*entity.Supplier
	associations map[string][]*entity.SupplierProduct
}

func (r *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *fakeSupplierRepo) List(bool, int, int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

func (r *fakeSupplierRepo) UpdateStats(string, int, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (r *fakeSupplierRepo) AvailableAssociations(productID string) ([]*entity.SupplierProduct, error) {
	return r.associations[productID], nil
}

func TestSuggestions_CantidadYOrden(t *testing.T) {
	productRepo := &fakeProductRepo{
		belowThreshold: []*entity.Product{
			{ID: "p-low", Name: "Pan", SKU: "BREAD-001", QuantityInStock: 8, MinStockThreshold: 20, MaxStockThreshold: 0},
			{ID: "p-out", Name: "Leche", SKU: "MILK-001", QuantityInStock: 0, MinStockThreshold: 20, MaxStockThreshold: 150},
			{ID: "p-mild", Name: "Huevos", SKU: "EGGS-001", QuantityInStock: 18, MinStockThreshold: 20, MaxStockThreshold: 100},
		},
	}
	supplierRepo := &fakeSupplierRepo{
		suppliers:    map[string]*entity.Supplier{},
		associations: map[string][]*entity.SupplierProduct{},
	}

	uc := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	resp, err := uc.Suggestions()
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 3)
	assert.Equal(t, 3, resp.TotalCount)

	// Agotados primero, después por severidad (stock/min ascendente)
	assert.Equal(t, "p-out", resp.Suggestions[0].ProductID)
	assert.Equal(t, "p-low", resp.Suggestions[1].ProductID)
	assert.Equal(t, "p-mild", resp.Suggestions[2].ProductID)

	// Objetivo = max si existe, min×2 si no
	assert.Equal(t, 150, resp.Suggestions[0].SuggestedQuantity, "150 - 0")
	assert.Equal(t, 32, resp.Suggestions[1].SuggestedQuantity, "20×2 - 8")
	assert.Equal(t, "OUT_OF_STOCK", resp.Suggestions[0].StockStatus)
	assert.Equal(t, "LOW_STOCK", resp.Suggestions[1].StockStatus)
}

func TestSuggestions_SinMaximoSugiereDobleDelMinimo(t *testing.T) {
	productRepo := &fakeProductRepo{
		belowThreshold: []*entity.Product{
			{ID: "p-1", Name: "Queso", SKU: "CHEESE-001", QuantityInStock: 3, MinStockThreshold: 20},
		},
	}
	supplierRepo := &fakeSupplierRepo{
		suppliers:    map[string]*entity.Supplier{},
		associations: map[string][]*entity.SupplierProduct{},
	}

	uc := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	resp, err := uc.Suggestions()
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)

	// 20×2 − 3 = 37
	assert.Equal(t, 37, resp.Suggestions[0].SuggestedQuantity)
}

func TestSuggestions_EligeProveedorMasBarato(t *testing.T) {
	productRepo := &fakeProductRepo{
		belowThreshold: []*entity.Product{
			{ID: "p-1", Name: "Leche", SKU: "MILK-001", QuantityInStock: 5, MinStockThreshold: 20},
		},
	}
	supplierRepo := &fakeSupplierRepo{
		suppliers: map[string]*entity.Supplier{
			"sup-cheap": {ID: "sup-cheap", Name: "Mayorista Sur"},
			"sup-pref":  {ID: "sup-pref", Name: "Lácteos del Norte"},
		},
		associations: map[string][]*entity.SupplierProduct{
			"p-1": {
				{SupplierID: "sup-pref", ProductID: "p-1", SupplierPrice: decimal.RequireFromString("0.60"), IsPreferred: true, IsAvailable: true},
				{SupplierID: "sup-cheap", ProductID: "p-1", SupplierPrice: decimal.RequireFromString("0.55"), IsAvailable: true, LeadTimeDays: 3, MinimumOrderQuantity: 12},
				{SupplierID: "sup-na", ProductID: "p-1", SupplierPrice: decimal.RequireFromString("0.40"), IsAvailable: false},
			},
		},
	}

	uc := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	resp, err := uc.Suggestions()
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)

	// El más barato disponible gana; el no disponible se ignora
	supplier := resp.Suggestions[0].Supplier
	require.NotNil(t, supplier)
	assert.Equal(t, "sup-cheap", supplier.SupplierID)
	assert.Equal(t, "Mayorista Sur", supplier.Name)
	assert.Equal(t, 12, supplier.MinimumOrder)
	assert.Equal(t, 3, supplier.LeadTimeDays)
}

func TestSuggestions_PreferidoDesempataAPrecioIgual(t *testing.T) {
	productRepo := &fakeProductRepo{
		belowThreshold: []*entity.Product{
			{ID: "p-1", Name: "Leche", SKU: "MILK-001", QuantityInStock: 5, MinStockThreshold: 20},
		},
	}
	supplierRepo := &fakeSupplierRepo{
		suppliers: map[string]*entity.Supplier{
			"sup-a": {ID: "sup-a", Name: "A"},
			"sup-b": {ID: "sup-b", Name: "B"},
		},
		associations: map[string][]*entity.SupplierProduct{
			"p-1": {
				{SupplierID: "sup-a", ProductID: "p-1", SupplierPrice: decimal.RequireFromString("0.50"), IsAvailable: true},
				{SupplierID: "sup-b", ProductID: "p-1", SupplierPrice: decimal.RequireFromString("0.50"), IsPreferred: true, IsAvailable: true},
			},
		},
	}

	uc := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	resp, err := uc.Suggestions()
	require.NoError(t, err)
	require.NotNil(t, resp.Suggestions[0].Supplier)
	assert.Equal(t, "sup-b", resp.Suggestions[0].Supplier.SupplierID)
}

func TestSuggestions_SinProveedores(t *testing.T) {
	productRepo := &fakeProductRepo{
		belowThreshold: []*entity.Product{
			{ID: "p-1", Name: "Leche", SKU: "MILK-001", QuantityInStock: 5, MinStockThreshold: 20},
		},
	}
	supplierRepo := &fakeSupplierRepo{
		suppliers:    map[string]*entity.Supplier{},
		associations: map[string][]*entity.SupplierProduct{},
	}

	uc := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	resp, err := uc.Suggestions()
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Nil(t, resp.Suggestions[0].Supplier, "sin asociaciones el proveedor va vacío")
}
