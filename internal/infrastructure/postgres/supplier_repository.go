package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, company_name, contact_person, email, phone, address,
	tax_id, payment_terms, lead_time_days, minimum_order_value,
	rating, total_orders, on_time_delivery_rate, is_active, is_preferred, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.CompanyName, s.ContactPerson, s.Email, s.Phone, s.Address,
		s.TaxID, s.PaymentTerms, s.LeadTimeDays, s.MinimumOrderValue,
		s.Rating, s.TotalOrders, s.OnTimeDeliveryRate, s.IsActive, s.IsPreferred, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id,
	).Scan(
		&s.ID, &s.Name, &s.CompanyName, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.TaxID, &s.PaymentTerms, &s.LeadTimeDays, &s.MinimumOrderValue,
		&s.Rating, &s.TotalOrders, &s.OnTimeDeliveryRate, &s.IsActive, &s.IsPreferred, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores con paginación; activeOnly filtra los inactivos.
func (r *SupplierRepo) List(activeOnly bool, limit, offset int) ([]*entity.Supplier, int, error) {
	ctx := context.Background()
	where := ""
	if activeOnly {
		where = "WHERE is_active = true"
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers `+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers ` + where + ` ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.CompanyName, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
			&s.TaxID, &s.PaymentTerms, &s.LeadTimeDays, &s.MinimumOrderValue,
			&s.Rating, &s.TotalOrders, &s.OnTimeDeliveryRate, &s.IsActive, &s.IsPreferred, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// UpdateStats actualiza solo las estadísticas de desempeño del proveedor.
func (r *SupplierRepo) UpdateStats(id string, totalOrders int, onTimeRate, rating decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET total_orders = $2, on_time_delivery_rate = $3, rating = $4, updated_at = now() WHERE id = $1`,
		id, totalOrders, onTimeRate, rating,
	)
	if err != nil {
		return fmt.Errorf("update supplier stats: %w", err)
	}
	return nil
}

// AvailableAssociations devuelve las asociaciones proveedor-producto
// disponibles para un producto, solo de proveedores activos.
func (r *SupplierRepo) AvailableAssociations(productID string) ([]*entity.SupplierProduct, error) {
	query := `
		SELECT sp.id, sp.supplier_id, sp.product_id, sp.supplier_sku, sp.supplier_price,
		       sp.minimum_order_quantity, sp.lead_time_days, sp.is_preferred, sp.is_available,
		       sp.last_order_date, sp.last_price_update
		FROM supplier_products sp
		JOIN suppliers s ON s.id = sp.supplier_id
		WHERE sp.product_id = $1 AND sp.is_available = true AND s.is_active = true
		ORDER BY sp.supplier_price ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list supplier associations: %w", err)
	}
	defer rows.Close()

	var list []*entity.SupplierProduct
	for rows.Next() {
		var sp entity.SupplierProduct
		if err := rows.Scan(
			&sp.ID, &sp.SupplierID, &sp.ProductID, &sp.SupplierSKU, &sp.SupplierPrice,
			&sp.MinimumOrderQuantity, &sp.LeadTimeDays, &sp.IsPreferred, &sp.IsAvailable,
			&sp.LastOrderDate, &sp.LastPriceUpdate,
		); err != nil {
			return nil, fmt.Errorf("scan supplier association: %w", err)
		}
		list = append(list, &sp)
	}
	return list, rows.Err()
}
