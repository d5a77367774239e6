package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor de la tienda.
// Las estadísticas de desempeño (Rating, TotalOrders, OnTimeDeliveryRate) las
// actualiza únicamente el procesador de recepciones al completar una orden.
type Supplier struct {
	ID            string
	Name          string
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string

	// Condiciones comerciales
	TaxID             string
	PaymentTerms      string // ej. "Net 30"
	LeadTimeDays      int
	MinimumOrderValue decimal.Decimal

	// Desempeño
	Rating             decimal.Decimal // 0-5
	TotalOrders        int
	OnTimeDeliveryRate decimal.Decimal // porcentaje 0-100

	IsActive    bool
	IsPreferred bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SupplierProduct asocia un proveedor con un producto que ofrece.
// El motor de sugerencias de reorden elige la asociación disponible de menor precio.
type SupplierProduct struct {
	ID         string
	SupplierID string
	ProductID  string

	SupplierSKU          string
	SupplierPrice        decimal.Decimal
	MinimumOrderQuantity int
	LeadTimeDays         int

	IsPreferred     bool
	IsAvailable     bool
	LastOrderDate   *time.Time
	LastPriceUpdate time.Time
}
