// Package purchasing implementa el agregado orden de compra: creación,
// máquina de estados, recepciones y tracking de envíos.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// Config políticas del módulo.
type Config struct {
	TaxRate         decimal.Decimal // VAT sobre el subtotal
	OrderPrefix     string          // "PO"
	DeliveryAddress string          // dirección por defecto de la tienda
}

// UseCase casos de uso de órdenes de compra.
type UseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	deliveryRepo repository.DeliveryRepository
	metricsRepo  repository.MetricsRepository
	txRunner     TxRunner
	cfg          Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	deliveryRepo repository.DeliveryRepository,
	metricsRepo repository.MetricsRepository,
	txRunner TxRunner,
	cfg Config,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
		metricsRepo:  metricsRepo,
		txRunner:     txRunner,
		cfg:          cfg,
	}
}

// Create valida proveedor y líneas, calcula totales desde las líneas y crea la
// orden (PENDING, o DRAFT con save_as_draft) junto con su tracking en PENDING.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.IsActive {
		return nil, &domain.NotFoundError{Resource: "supplier", Key: in.SupplierID}
	}

	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := entity.OrderStatusPending
	if in.SaveAsDraft {
		status = entity.OrderStatusDraft
	}

	address := in.DeliveryAddress
	if address == "" {
		address = uc.cfg.DeliveryAddress
	}

	o := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		SupplierID:           in.SupplierID,
		Status:               status,
		OrderDate:            now,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		ShippingCost:         in.ShippingCost,
		DiscountAmount:       in.DiscountAmount,
		DeliveryAddress:      address,
		DeliveryInstructions: in.DeliveryInstructions,
		Notes:                in.Notes,
		ReferenceNumber:      in.ReferenceNumber,
		CreatedBy:            actor,
		CreatedAt:            now,
		UpdatedAt:            now,
		Items:                items,
	}
	order.ApplyTotals(o, uc.cfg.TaxRate)

	err = uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		seq, err := orderRepo.CountCreatedOn(now)
		if err != nil {
			return err
		}
		o.OrderNumber = fmt.Sprintf("%s-%s-%03d", uc.cfg.OrderPrefix, now.Format("20060102"), seq+1)

		if err := orderRepo.Create(o); err != nil {
			return err
		}
		// El tracking nace junto con la orden, en PENDING
		return deliveryRepo.Create(&entity.DeliveryTracking{
			ID:                    uuid.New().String(),
			PurchaseOrderID:       o.ID,
			Status:                entity.DeliveryStatusPending,
			EstimatedDeliveryDate: in.ExpectedDeliveryDate,
			DestinationLocation:   address,
			LastStatusUpdate:      now,
			StatusHistory:         historyJSON(nil, entity.DeliveryStatusEvent{Status: entity.DeliveryStatusPending, Timestamp: now}),
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToOrderResponse(o)
	return &out, nil
}

// buildItems valida las líneas como unidad y construye las entidades con
// snapshot del producto y total de línea calculado.
func (uc *UseCase) buildItems(reqs []dto.OrderItemRequest) ([]*entity.PurchaseOrderItem, error) {
	v := &domain.ValidationError{}
	if len(reqs) == 0 {
		v.Add("items", "se requiere al menos una línea")
		return nil, v
	}

	items := make([]*entity.PurchaseOrderItem, 0, len(reqs))
	for i, req := range reqs {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if req.ProductID == "" {
			v.Add(field("product_id"), "requerido")
			continue
		}
		if req.QuantityOrdered <= 0 {
			v.Add(field("quantity_ordered"), "debe ser mayor que 0")
		}
		if !req.UnitPrice.GreaterThan(decimal.Zero) {
			v.Add(field("unit_price"), "debe ser mayor que 0")
		}

		p, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			v.Add(field("product_id"), "producto no encontrado")
			continue
		}

		items = append(items, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			ProductID:       p.ID,
			QuantityOrdered: req.QuantityOrdered,
			UnitPrice:       req.UnitPrice,
			TotalPrice:      order.LineTotal(req.QuantityOrdered, req.UnitPrice),
			ProductName:     p.Name,
			ProductSKU:      p.SKU,
			SupplierSKU:     req.SupplierSKU,
		})
	}
	if err := v.AsError(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Resource: "purchase_order", Key: id}
	}
	out := dto.ToOrderResponse(o)
	return &out, nil
}

// List lista órdenes con filtros de estado y proveedor.
func (uc *UseCase) List(filter repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, total, err := uc.orderRepo.List(filter, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, dto.ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update modifica una orden pre-ORDERED. Si vienen líneas nuevas las reemplaza
// completas y recalcula los totales; una vez ORDERED las líneas son inmutables.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
		_ repository.DeliveryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return &domain.NotFoundError{Resource: "purchase_order", Key: id}
		}
		if !order.ItemsMutable(o.Status) {
			return &domain.InvalidStateTransitionError{Entity: "purchase_order", From: o.Status, Transition: "update"}
		}

		if in.ExpectedDeliveryDate != nil {
			o.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		}
		if in.DeliveryAddress != nil {
			o.DeliveryAddress = *in.DeliveryAddress
		}
		if in.DeliveryInstructions != nil {
			o.DeliveryInstructions = *in.DeliveryInstructions
		}
		if in.ShippingCost != nil {
			o.ShippingCost = *in.ShippingCost
		}
		if in.DiscountAmount != nil {
			o.DiscountAmount = *in.DiscountAmount
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		if in.ReferenceNumber != nil {
			o.ReferenceNumber = *in.ReferenceNumber
		}

		if in.Items != nil {
			items, err := uc.buildItems(in.Items)
			if err != nil {
				return err
			}
			for _, it := range items {
				it.PurchaseOrderID = o.ID
			}
			o.Items = items
			if err := orderRepo.ReplaceItems(o.ID, items); err != nil {
				return err
			}
		}

		// Totales siempre recalculados desde las líneas actuales
		order.ApplyTotals(o, uc.cfg.TaxRate)
		o.UpdatedAt = time.Now()
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// Submit pasa una orden DRAFT a PENDING.
func (uc *UseCase) Submit(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, id, order.TransitionSubmit, nil)
}

// Approve aprueba una orden PENDING y registra aprobador y fecha.
func (uc *UseCase) Approve(ctx context.Context, id, approver string) (*dto.OrderResponse, error) {
	if approver == "" {
		v := &domain.ValidationError{}
		v.Add("approved_by", "requerido")
		return nil, v
	}
	return uc.transition(ctx, id, order.TransitionApprove, func(o *entity.PurchaseOrder, now time.Time) {
		o.ApprovedBy = approver
		o.ApprovedAt = &now
	})
}

// MarkOrdered marca la orden como enviada al proveedor (APPROVED → ORDERED).
func (uc *UseCase) MarkOrdered(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, id, order.TransitionOrder, nil)
}

// MarkShipped marca la orden como despachada (ORDERED → SHIPPED) y mueve el
// tracking a PICKED_UP con fecha de despacho.
func (uc *UseCase) MarkShipped(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, id, order.TransitionShip, nil)
}

// Cancel cancela la orden desde cualquier estado no terminal. No revierte
// stock ni finanzas: nada se aplicó antes de la entrega.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, id, order.TransitionCancel, nil)
}

// transition aplica una transición de la máquina de estados bajo bloqueo de fila.
func (uc *UseCase) transition(ctx context.Context, id, t string, mutate func(*entity.PurchaseOrder, time.Time)) (*dto.OrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return &domain.NotFoundError{Resource: "purchase_order", Key: id}
		}

		next, err := order.Apply(o.Status, t)
		if err != nil {
			return err
		}

		now := time.Now()
		o.Status = next
		o.UpdatedAt = now
		if mutate != nil {
			mutate(o, now)
		}
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		updated = o

		if t == order.TransitionShip {
			return uc.markTrackingShipped(deliveryRepo, o.ID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// markTrackingShipped mueve el tracking a PICKED_UP al despachar la orden.
func (uc *UseCase) markTrackingShipped(deliveryRepo repository.DeliveryRepository, orderID string, now time.Time) error {
	tracking, err := deliveryRepo.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	if tracking == nil {
		return nil
	}
	if err := order.ApplyDeliveryStatus(tracking.Status, entity.DeliveryStatusPickedUp); err != nil {
		// El carrier pudo haber avanzado el tracking antes del cambio manual
		return nil
	}
	tracking.Status = entity.DeliveryStatusPickedUp
	tracking.ShippedDate = &now
	tracking.LastStatusUpdate = now
	tracking.UpdatedAt = now
	tracking.StatusHistory = historyJSON(tracking, entity.DeliveryStatusEvent{Status: entity.DeliveryStatusPickedUp, Timestamp: now})
	return deliveryRepo.Update(tracking)
}

// Summary agregados de órdenes por estado.
func (uc *UseCase) Summary(ctx context.Context) (*dto.OrderSummaryResponse, error) {
	s, err := uc.metricsRepo.OrderSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OrderSummaryResponse{
		TotalOrders:     s.TotalOrders,
		PendingOrders:   s.PendingOrders,
		ShippedOrders:   s.ShippedOrders,
		DeliveredOrders: s.DeliveredOrders,
		TotalValue:      s.TotalValue.Round(2),
		PendingValue:    s.PendingValue.Round(2),
	}, nil
}

// DeliverySummary métricas de envíos.
func (uc *UseCase) DeliverySummary(ctx context.Context) (*dto.DeliveryMetricsResponse, error) {
	m, err := uc.metricsRepo.DeliveryMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DeliveryMetricsResponse{
		InTransitCount:      m.InTransitCount,
		DeliveredToday:      m.DeliveredToday,
		DelayedDeliveries:   m.DelayedDeliveries,
		AverageDeliveryDays: m.AverageDeliveryDays.Round(1),
	}, nil
}
