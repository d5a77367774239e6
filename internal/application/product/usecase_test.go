package product_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/application/product"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int) error {
	if p, ok := r.products[id]; ok {
		p.QuantityInStock = quantity
	}
	return nil
}

func (r *fakeProductRepo) SetActive(id string, active bool) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (r *fakeProductRepo) List(_ repository.ProductFilter, _, _ int) ([]*entity.Product, int, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Categories() ([]repository.Category, error) { return nil, nil }

func (r *fakeProductRepo) ListBelowMinThreshold(_ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.QuantityInStock < p.MinStockThreshold {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAdjustmentRepo struct {
	entries []*entity.StockAdjustment
}

func (r *fakeAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	cp := *a
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeAdjustmentRepo) ListByProduct(productID string) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	productRepo    *fakeProductRepo
	adjustmentRepo *fakeAdjustmentRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.AdjustmentRepository) error) error {
	return fn(r.productRepo, r.adjustmentRepo)
}

func buildUseCase() (*product.UseCase, *fakeProductRepo, *fakeAdjustmentRepo) {
	productRepo := newFakeProductRepo()
	adjustmentRepo := &fakeAdjustmentRepo{}
	uc := product.NewUseCase(productRepo, adjustmentRepo, &fakeTxRunner{productRepo: productRepo, adjustmentRepo: adjustmentRepo})
	return uc, productRepo, adjustmentRepo
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:               "milk-001",
		Barcode:           "5012345678900",
		Name:              "Leche entera 1L",
		Category:          "Lácteos",
		CostPrice:         decimal.RequireFromString("0.80"),
		SellingPrice:      decimal.RequireFromString("1.20"),
		QuantityInStock:   50,
		MinStockThreshold: 20,
		MaxStockThreshold: 200,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaSKUYRegistraStockInicial(t *testing.T) {
	uc, _, adjustmentRepo := buildUseCase()

	resp, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "MILK-001", resp.SKU, "el SKU se normaliza a mayúsculas")
	assert.Equal(t, "NORMAL", resp.StockStatus)
	assert.True(t, resp.IsActive)

	// La entrada de apertura deja el libro reproducible desde cero
	require.Len(t, adjustmentRepo.entries, 1)
	opening := adjustmentRepo.entries[0]
	assert.Equal(t, entity.ReasonRestock, opening.Reason)
	assert.Equal(t, 0, opening.OldQuantity)
	assert.Equal(t, 50, opening.NewQuantity)
}

func TestCreate_SinStockInicialNoEscribeLibro(t *testing.T) {
	uc, _, adjustmentRepo := buildUseCase()

	in := validCreateRequest()
	in.QuantityInStock = 0

	resp, err := uc.Create(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, "OUT_OF_STOCK", resp.StockStatus)
	assert.Empty(t, adjustmentRepo.entries)
}

func TestCreate_AgregaTodasLasViolaciones(t *testing.T) {
	uc, _, _ := buildUseCase()

	in := dto.CreateProductRequest{
		SellingPrice:      decimal.RequireFromString("0.50"),
		CostPrice:         decimal.RequireFromString("0.80"),
		QuantityInStock:   -1,
		MinStockThreshold: 10,
		MaxStockThreshold: 5,
	}
	_, err := uc.Create(context.Background(), "user-1", in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr, "un comando inválido produce ValidationError")

	fields := make([]string, 0, len(vErr.Violations))
	for _, violation := range vErr.Violations {
		fields = append(fields, violation.Field)
	}
	// Todas las violaciones juntas, no solo la primera
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "sku")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "selling_price")
	assert.Contains(t, fields, "quantity_in_stock")
	assert.Contains(t, fields, "max_stock_threshold")
}

func TestUpdate_SKUInmutable(t *testing.T) {
	uc, _, _ := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	otherSKU := "MILK-002"
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{SKU: &otherSKU})

	var iErr *domain.ImmutableFieldError
	require.ErrorAs(t, err, &iErr)
	assert.Equal(t, "sku", iErr.Field)

	// El mismo SKU (aun en minúsculas) no es un cambio
	sameSKU := "milk-001"
	newName := "Leche entera"
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{SKU: &sameSKU, Name: &newName})
	require.NoError(t, err)
}

func TestUpdate_PrecioParcialNoInvierteVentaYCosto(t *testing.T) {
	uc, _, _ := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	// Solo el precio de venta: se cruza contra el costo almacenado (0.80)
	lowSelling := decimal.RequireFromString("0.01")
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{SellingPrice: &lowSelling})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "selling_price", vErr.Violations[0].Field)

	// Solo el costo: se cruza contra el precio de venta almacenado (1.20)
	highCost := decimal.RequireFromString("2.00")
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{CostPrice: &highCost})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "selling_price", vErr.Violations[0].Field)

	// El par completo y consistente sí pasa
	newCost := decimal.RequireFromString("2.00")
	newSelling := decimal.RequireFromString("2.50")
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{CostPrice: &newCost, SellingPrice: &newSelling})
	require.NoError(t, err)
	assert.True(t, resp.SellingPrice.Equal(newSelling))
}

func TestSoftDelete_ArchivaYDesapareceDeListados(t *testing.T) {
	uc, productRepo, _ := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(created.ID))

	// La fila sigue existiendo, solo archivada
	p, err := productRepo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.IsActive)

	// Archivar dos veces es not found
	err = uc.SoftDelete(created.ID)
	var nfErr *domain.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestAdjustStock_ReproduceElStockDesdeElLibro(t *testing.T) {
	uc, _, adjustmentRepo := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	steps := []struct {
		qty    int
		reason string
	}{
		{30, entity.ReasonSale},
		{80, entity.ReasonRestock},
		{78, entity.ReasonDamage},
	}
	for _, s := range steps {
		_, err := uc.AdjustStock(context.Background(), created.ID, "user-1", dto.AdjustStockRequest{
			NewQuantity: s.qty,
			Reason:      s.reason,
		})
		require.NoError(t, err)
	}

	// Reproducir los deltas desde cero debe dar la cantidad final
	replayed := 0
	for _, e := range adjustmentRepo.entries {
		assert.Equal(t, replayed, e.OldQuantity, "cada entrada parte de la cantidad previa")
		replayed += e.Delta()
	}
	assert.Equal(t, 78, replayed)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 78, got.QuantityInStock)
}

func TestAdjustStock_RechazaCantidadNegativa(t *testing.T) {
	uc, _, _ := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), created.ID, "user-1", dto.AdjustStockRequest{
		NewQuantity: -5,
		Reason:      entity.ReasonSale,
	})
	var qErr *domain.InvalidQuantityError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, -5, qErr.Quantity)
}

func TestAdjustStock_ReceivingReservadoAlProcesador(t *testing.T) {
	uc, _, adjustmentRepo := buildUseCase()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	adjustmentRepo.entries = nil

	_, err = uc.AdjustStock(context.Background(), created.ID, "user-1", dto.AdjustStockRequest{
		NewQuantity: 60,
		Reason:      entity.ReasonReceiving,
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, adjustmentRepo.entries, "un ajuste rechazado no escribe en el libro")
}
