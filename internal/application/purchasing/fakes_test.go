package purchasing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// Fakes en memoria para el caso de uso de órdenes de compra. El runner de
// transacciones simula el rollback restaurando un snapshot cuando el callback
// falla, para poder verificar la atomicidad de las recepciones.

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = make([]*entity.PurchaseOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		itCp := *it
		cp.Items = append(cp.Items, &itCp)
	}
	return &cp
}

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) { return r.GetByID(id) }

func (r *fakeOrderRepo) Update(o *entity.PurchaseOrder) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		r.orders[o.ID] = cloneOrder(o)
		return nil
	}
	cp := cloneOrder(o)
	cp.Items = stored.Items // la cabecera no arrastra líneas
	r.orders[o.ID] = cp
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(orderID string, items []*entity.PurchaseOrderItem) error {
	o, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	o.Items = nil
	for _, it := range items {
		cp := *it
		o.Items = append(o.Items, &cp)
	}
	return nil
}

func (r *fakeOrderRepo) UpdateItemReceipt(item *entity.PurchaseOrderItem) error {
	for _, o := range r.orders {
		for i, it := range o.Items {
			if it.ID == item.ID {
				cp := *item
				o.Items[i] = &cp
				return nil
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) List(filter repository.OrderFilter, _, _ int) ([]*entity.PurchaseOrder, int, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.SupplierID != "" && o.SupplierID != filter.SupplierID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) CountCreatedOn(day time.Time) (int, error) {
	n := 0
	for _, o := range r.orders {
		if o.CreatedAt.Year() == day.Year() && o.CreatedAt.YearDay() == day.YearDay() {
			n++
		}
	}
	return n, nil
}

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

func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error)     { return nil, nil }
func (r *fakeProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }

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

func (r *fakeProductRepo) SetActive(string, bool) error { return nil }

func (r *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Categories() ([]repository.Category, error)           { return nil, nil }
func (r *fakeProductRepo) ListBelowMinThreshold(int) ([]*entity.Product, error) { return nil, nil }

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

type fakeSupplierRepo struct {
	suppliers    map[string]*entity.Supplier
	associations map[string][]*entity.SupplierProduct // productID → asociaciones
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{
		suppliers:    make(map[string]*entity.Supplier),
		associations: make(map[string][]*entity.SupplierProduct),
	}
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) List(bool, int, int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

func (r *fakeSupplierRepo) UpdateStats(id string, totalOrders int, onTimeRate, rating decimal.Decimal) error {
	if s, ok := r.suppliers[id]; ok {
		s.TotalOrders = totalOrders
		s.OnTimeDeliveryRate = onTimeRate
		s.Rating = rating
	}
	return nil
}

func (r *fakeSupplierRepo) AvailableAssociations(productID string) ([]*entity.SupplierProduct, error) {
	return r.associations[productID], nil
}

type fakeDeliveryRepo struct {
	byOrder map[string]*entity.DeliveryTracking
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{byOrder: make(map[string]*entity.DeliveryTracking)}
}

func (r *fakeDeliveryRepo) Create(t *entity.DeliveryTracking) error {
	cp := *t
	r.byOrder[t.PurchaseOrderID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) GetByOrderID(orderID string) (*entity.DeliveryTracking, error) {
	t, ok := r.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeDeliveryRepo) Update(t *entity.DeliveryTracking) error {
	cp := *t
	r.byOrder[t.PurchaseOrderID] = &cp
	return nil
}

type fakeMetricsRepo struct {
	orderSummary    repository.OrderSummary
	deliveryMetrics repository.DeliveryMetrics
}

func (r *fakeMetricsRepo) ProductMetrics(context.Context) (*repository.ProductMetrics, error) {
	return &repository.ProductMetrics{}, nil
}

func (r *fakeMetricsRepo) LowStockItems(context.Context) ([]repository.LowStockRow, error) {
	return nil, nil
}

func (r *fakeMetricsRepo) OrderSummary(context.Context) (*repository.OrderSummary, error) {
	s := r.orderSummary
	return &s, nil
}

func (r *fakeMetricsRepo) DeliveryMetrics(context.Context) (*repository.DeliveryMetrics, error) {
	m := r.deliveryMetrics
	return &m, nil
}

// fakeTxRunner ejecuta el callback contra los fakes y restaura el estado
// completo si falla (rollback simulado).
type fakeTxRunner struct {
	orderRepo      *fakeOrderRepo
	productRepo    *fakeProductRepo
	adjustmentRepo *fakeAdjustmentRepo
	supplierRepo   *fakeSupplierRepo
	deliveryRepo   *fakeDeliveryRepo
}

func (r *fakeTxRunner) RunPurchasing(_ context.Context, fn func(
	repository.PurchaseOrderRepository,
	repository.ProductRepository,
	repository.AdjustmentRepository,
	repository.SupplierRepository,
	repository.DeliveryRepository,
) error) error {
	ordersSnap := make(map[string]*entity.PurchaseOrder, len(r.orderRepo.orders))
	for k, v := range r.orderRepo.orders {
		ordersSnap[k] = cloneOrder(v)
	}
	productsSnap := make(map[string]*entity.Product, len(r.productRepo.products))
	for k, v := range r.productRepo.products {
		cp := *v
		productsSnap[k] = &cp
	}
	adjustmentsSnap := append([]*entity.StockAdjustment(nil), r.adjustmentRepo.entries...)

	err := fn(r.orderRepo, r.productRepo, r.adjustmentRepo, r.supplierRepo, r.deliveryRepo)
	if err != nil {
		r.orderRepo.orders = ordersSnap
		r.productRepo.products = productsSnap
		r.adjustmentRepo.entries = adjustmentsSnap
	}
	return err
}
