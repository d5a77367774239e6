package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// CreateSupplierRequest comando para registrar un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`

	TaxID             string          `json:"tax_id"`
	PaymentTerms      string          `json:"payment_terms"`
	LeadTimeDays      int             `json:"lead_time_days"`
	MinimumOrderValue decimal.Decimal `json:"minimum_order_value"`

	IsPreferred bool `json:"is_preferred"`
}

// SupplierResponse salida de un proveedor con sus estadísticas de desempeño.
type SupplierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`

	TaxID             string          `json:"tax_id,omitempty"`
	PaymentTerms      string          `json:"payment_terms"`
	LeadTimeDays      int             `json:"lead_time_days"`
	MinimumOrderValue decimal.Decimal `json:"minimum_order_value"`

	Rating             decimal.Decimal `json:"rating"`
	TotalOrders        int             `json:"total_orders"`
	OnTimeDeliveryRate decimal.Decimal `json:"on_time_delivery_rate"`

	IsActive    bool      `json:"is_active"`
	IsPreferred bool      `json:"is_preferred"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToSupplierResponse mapea la entidad a su DTO.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:                 s.ID,
		Name:               s.Name,
		CompanyName:        s.CompanyName,
		ContactPerson:      s.ContactPerson,
		Email:              s.Email,
		Phone:              s.Phone,
		Address:            s.Address,
		TaxID:              s.TaxID,
		PaymentTerms:       s.PaymentTerms,
		LeadTimeDays:       s.LeadTimeDays,
		MinimumOrderValue:  s.MinimumOrderValue.Round(2),
		Rating:             s.Rating.Round(2),
		TotalOrders:        s.TotalOrders,
		OnTimeDeliveryRate: s.OnTimeDeliveryRate.Round(2),
		IsActive:           s.IsActive,
		IsPreferred:        s.IsPreferred,
		CreatedAt:          s.CreatedAt,
	}
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
