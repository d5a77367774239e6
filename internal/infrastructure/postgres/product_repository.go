package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, description, category, subcategory, brand,
	cost_price, selling_price, quantity_in_stock, min_stock_threshold, max_stock_threshold,
	aisle, shelf, bin_location, unit_of_measure, weight, dimensions,
	is_perishable, expiry_date, days_until_expiry_warning, supplier_id, supplier_sku,
	is_active, created_at, updated_at, created_by`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Barcode, p.Name, p.Description, p.Category, p.Subcategory, p.Brand,
		p.CostPrice, p.SellingPrice, p.QuantityInStock, p.MinStockThreshold, p.MaxStockThreshold,
		p.Aisle, p.Shelf, p.BinLocation, p.UnitOfMeasure, p.Weight, p.Dimensions,
		p.IsPerishable, p.ExpiryDate, p.DaysUntilExpiryWarning, p.SupplierID, p.SupplierSKU,
		p.IsActive, p.CreatedAt, p.UpdatedAt, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.Category, &p.Subcategory, &p.Brand,
		&p.CostPrice, &p.SellingPrice, &p.QuantityInStock, &p.MinStockThreshold, &p.MaxStockThreshold,
		&p.Aisle, &p.Shelf, &p.BinLocation, &p.UnitOfMeasure, &p.Weight, &p.Dimensions,
		&p.IsPerishable, &p.ExpiryDate, &p.DaysUntilExpiryWarning, &p.SupplierID, &p.SupplierSKU,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID (incluye archivados).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU (el SKU se almacena en mayúsculas).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); usar dentro de una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza un producto existente. No toca sku (inmutable) ni
// quantity_in_stock (se maneja vía libro de ajustes).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET
			barcode = $2, name = $3, description = $4, category = $5, subcategory = $6, brand = $7,
			cost_price = $8, selling_price = $9, min_stock_threshold = $10, max_stock_threshold = $11,
			aisle = $12, shelf = $13, bin_location = $14, unit_of_measure = $15, weight = $16,
			dimensions = $17, is_perishable = $18, expiry_date = $19, days_until_expiry_warning = $20,
			supplier_id = $21, supplier_sku = $22, updated_at = $23
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Barcode, p.Name, p.Description, p.Category, p.Subcategory, p.Brand,
		p.CostPrice, p.SellingPrice, p.MinStockThreshold, p.MaxStockThreshold,
		p.Aisle, p.Shelf, p.BinLocation, p.UnitOfMeasure, p.Weight,
		p.Dimensions, p.IsPerishable, p.ExpiryDate, p.DaysUntilExpiryWarning,
		p.SupplierID, p.SupplierSKU, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo quantity_in_stock (usado por el libro de ajustes).
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity_in_stock = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// SetActive archiva o reactiva un producto.
func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// List lista productos activos con filtros y paginación. Devuelve también el
// total sin paginar para los metadatos de página.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where, args := buildProductWhere(filter)
	ctx := context.Background()

	var total int
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.Category, &p.Subcategory, &p.Brand,
			&p.CostPrice, &p.SellingPrice, &p.QuantityInStock, &p.MinStockThreshold, &p.MaxStockThreshold,
			&p.Aisle, &p.Shelf, &p.BinLocation, &p.UnitOfMeasure, &p.Weight, &p.Dimensions,
			&p.IsPerishable, &p.ExpiryDate, &p.DaysUntilExpiryWarning, &p.SupplierID, &p.SupplierSKU,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// buildProductWhere arma el WHERE del listado. El estado de stock se traduce
// al mismo predicado que deriva el estado en lectura.
func buildProductWhere(filter repository.ProductFilter) (string, []any) {
	conds := []string{"is_active = true"}
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Subcategory != "" {
		add("subcategory = $%d", filter.Subcategory)
	}
	if filter.Brand != "" {
		add("brand = $%d", filter.Brand)
	}
	if filter.SupplierID != "" {
		add("supplier_id = $%d", filter.SupplierID)
	}
	if filter.Perishable != nil {
		add("is_perishable = $%d", *filter.Perishable)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%", filter.Search)
		pattern, exact := len(args)-1, len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d OR barcode = $%d)",
			pattern, pattern, pattern, exact))
	}

	switch filter.StockStatus {
	case "OUT_OF_STOCK":
		conds = append(conds, "quantity_in_stock = 0")
	case "LOW_STOCK":
		conds = append(conds, "quantity_in_stock > 0 AND quantity_in_stock < min_stock_threshold")
	case "OVERSTOCK":
		conds = append(conds, "max_stock_threshold > 0 AND quantity_in_stock > max_stock_threshold")
	case "NORMAL":
		conds = append(conds, `quantity_in_stock > 0
			AND quantity_in_stock >= min_stock_threshold
			AND (max_stock_threshold = 0 OR quantity_in_stock <= max_stock_threshold)`)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// Categories devuelve las categorías activas con sus subcategorías.
func (r *ProductRepo) Categories() ([]repository.Category, error) {
	query := `
		SELECT category, ARRAY_AGG(DISTINCT subcategory) FILTER (WHERE subcategory <> '')
		FROM products
		WHERE is_active = true AND category <> ''
		GROUP BY category
		ORDER BY category`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []repository.Category
	for rows.Next() {
		var c repository.Category
		if err := rows.Scan(&c.Name, &c.Subcategories); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBelowMinThreshold devuelve productos activos con quantity_in_stock < min_stock_threshold.
func (r *ProductRepo) ListBelowMinThreshold(limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND min_stock_threshold > 0 AND quantity_in_stock < min_stock_threshold
		ORDER BY quantity_in_stock ASC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list below threshold: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.Category, &p.Subcategory, &p.Brand,
			&p.CostPrice, &p.SellingPrice, &p.QuantityInStock, &p.MinStockThreshold, &p.MaxStockThreshold,
			&p.Aisle, &p.Shelf, &p.BinLocation, &p.UnitOfMeasure, &p.Weight, &p.Dimensions,
			&p.IsPerishable, &p.ExpiryDate, &p.DaysUntilExpiryWarning, &p.SupplierID, &p.SupplierSKU,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
