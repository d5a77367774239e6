package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, order_number, supplier_id, status, order_date,
	expected_delivery_date, actual_delivery_date,
	subtotal, tax_amount, shipping_cost, discount_amount, total_amount,
	delivery_address, delivery_instructions, notes, reference_number,
	created_by, approved_by, approved_at, created_at, updated_at`

const orderItemColumns = `id, purchase_order_id, product_id, quantity_ordered, quantity_received,
	unit_price, total_price, product_name, product_sku, supplier_sku,
	is_received, is_quality_checked, quality_notes, received_date`

// PurchaseOrderRepo persiste el agregado orden de compra (cabecera + líneas).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con todas sus líneas.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.SupplierID, o.Status, o.OrderDate,
		o.ExpectedDeliveryDate, o.ActualDeliveryDate,
		o.Subtotal, o.TaxAmount, o.ShippingCost, o.DiscountAmount, o.TotalAmount,
		o.DeliveryAddress, o.DeliveryInstructions, o.Notes, o.ReferenceNumber,
		o.CreatedBy, o.ApprovedBy, o.ApprovedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, orderID string, items []*entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query,
			it.ID, orderID, it.ProductID, it.QuantityOrdered, it.QuantityReceived,
			it.UnitPrice, it.TotalPrice, it.ProductName, it.ProductSKU, it.SupplierSKU,
			it.IsReceived, it.IsQualityChecked, it.QualityNotes, it.ReceivedDate,
		); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) getOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.OrderDate,
		&o.ExpectedDeliveryDate, &o.ActualDeliveryDate,
		&o.Subtotal, &o.TaxAmount, &o.ShippingCost, &o.DiscountAmount, &o.TotalAmount,
		&o.DeliveryAddress, &o.DeliveryInstructions, &o.Notes, &o.ReferenceNumber,
		&o.CreatedBy, &o.ApprovedBy, &o.ApprovedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.itemsOf(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PurchaseOrderRepo) itemsOf(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.QuantityOrdered, &it.QuantityReceived,
			&it.UnitPrice, &it.TotalPrice, &it.ProductName, &it.ProductSKU, &it.SupplierSKU,
			&it.IsReceived, &it.IsQualityChecked, &it.QualityNotes, &it.ReceivedDate,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE); usar dentro de una tx.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste la cabecera (status, totales, fechas, aprobación, notas).
func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			status = $2, expected_delivery_date = $3, actual_delivery_date = $4,
			subtotal = $5, tax_amount = $6, shipping_cost = $7, discount_amount = $8, total_amount = $9,
			delivery_address = $10, delivery_instructions = $11, notes = $12, reference_number = $13,
			approved_by = $14, approved_at = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status, o.ExpectedDeliveryDate, o.ActualDeliveryDate,
		o.Subtotal, o.TaxAmount, o.ShippingCost, o.DiscountAmount, o.TotalAmount,
		o.DeliveryAddress, o.DeliveryInstructions, o.Notes, o.ReferenceNumber,
		o.ApprovedBy, o.ApprovedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza todas las líneas de la orden (solo pre-ORDERED).
func (r *PurchaseOrderRepo) ReplaceItems(orderID string, items []*entity.PurchaseOrderItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

// UpdateItemReceipt persiste los campos de recepción de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceipt(item *entity.PurchaseOrderItem) error {
	query := `
		UPDATE purchase_order_items SET
			quantity_received = $2, is_received = $3, is_quality_checked = $4,
			quality_notes = $5, received_date = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuantityReceived, item.IsReceived, item.IsQualityChecked,
		item.QualityNotes, item.ReceivedDate,
	)
	if err != nil {
		return fmt.Errorf("update order item receipt: %w", err)
	}
	return nil
}

// List lista órdenes con filtros y paginación, más recientes primero.
func (r *PurchaseOrderRepo) List(filter repository.OrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	ctx := context.Background()
	conds := []string{"1=1"}
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		conds = append(conds, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	where := "WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM purchase_orders %s ORDER BY order_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.OrderDate,
			&o.ExpectedDeliveryDate, &o.ActualDeliveryDate,
			&o.Subtotal, &o.TaxAmount, &o.ShippingCost, &o.DiscountAmount, &o.TotalAmount,
			&o.DeliveryAddress, &o.DeliveryInstructions, &o.Notes, &o.ReferenceNumber,
			&o.CreatedBy, &o.ApprovedBy, &o.ApprovedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range list {
		items, err := r.itemsOf(o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}
	return list, total, nil
}

// CountCreatedOn cuenta órdenes creadas en el día indicado (secuencia del order number).
func (r *PurchaseOrderRepo) CountCreatedOn(day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders of day: %w", err)
	}
	return n, nil
}
