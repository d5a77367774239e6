// Package supplier casos de uso del catálogo de proveedores.
package supplier

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// UseCase casos de uso de proveedores.
type UseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(supplierRepo repository.SupplierRepository) *UseCase {
	return &UseCase{supplierRepo: supplierRepo}
}

// Create registra un proveedor activo con estadísticas en cero.
func (uc *UseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	v := &domain.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "requerido")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		v.Add("email", "formato inválido")
	}
	if in.LeadTimeDays < 0 {
		v.Add("lead_time_days", "no puede ser negativo")
	}
	if in.MinimumOrderValue.IsNegative() {
		v.Add("minimum_order_value", "no puede ser negativo")
	}
	if err := v.AsError(); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Supplier{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		CompanyName:       in.CompanyName,
		ContactPerson:     in.ContactPerson,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		TaxID:             in.TaxID,
		PaymentTerms:      in.PaymentTerms,
		LeadTimeDays:      in.LeadTimeDays,
		MinimumOrderValue: in.MinimumOrderValue,
		IsActive:          true,
		IsPreferred:       in.IsPreferred,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}

	out := dto.ToSupplierResponse(s)
	return &out, nil
}

// GetByID obtiene un proveedor.
func (uc *UseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Resource: "supplier", Key: id}
	}
	out := dto.ToSupplierResponse(s)
	return &out, nil
}

// List lista proveedores, por defecto solo activos.
func (uc *UseCase) List(activeOnly bool, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	suppliers, total, err := uc.supplierRepo.List(activeOnly, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		items = append(items, dto.ToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}
