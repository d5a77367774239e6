package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, purchase_order_id, tracking_number, carrier, status,
	shipped_date, estimated_delivery_date, actual_delivery_date,
	current_location, origin_location, destination_location,
	delivered_to, delivery_signature, delivery_photo_url, delivery_notes,
	last_status_update, status_history, created_at, updated_at`

// DeliveryRepo persiste el tracking de envíos (1:1 con la orden de compra).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de persistencia del tracking.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste un nuevo tracking.
func (r *DeliveryRepo) Create(t *entity.DeliveryTracking) error {
	query := `
		INSERT INTO delivery_tracking (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.PurchaseOrderID, t.TrackingNumber, t.Carrier, t.Status,
		t.ShippedDate, t.EstimatedDeliveryDate, t.ActualDeliveryDate,
		t.CurrentLocation, t.OriginLocation, t.DestinationLocation,
		t.DeliveredTo, t.DeliverySignature, t.DeliveryPhotoURL, t.DeliveryNotes,
		t.LastStatusUpdate, t.StatusHistory, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery tracking: %w", err)
	}
	return nil
}

// GetByOrderID obtiene el tracking de una orden.
func (r *DeliveryRepo) GetByOrderID(orderID string) (*entity.DeliveryTracking, error) {
	var t entity.DeliveryTracking
	err := r.q.QueryRow(context.Background(),
		`SELECT `+deliveryColumns+` FROM delivery_tracking WHERE purchase_order_id = $1`, orderID,
	).Scan(
		&t.ID, &t.PurchaseOrderID, &t.TrackingNumber, &t.Carrier, &t.Status,
		&t.ShippedDate, &t.EstimatedDeliveryDate, &t.ActualDeliveryDate,
		&t.CurrentLocation, &t.OriginLocation, &t.DestinationLocation,
		&t.DeliveredTo, &t.DeliverySignature, &t.DeliveryPhotoURL, &t.DeliveryNotes,
		&t.LastStatusUpdate, &t.StatusHistory, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery tracking: %w", err)
	}
	return &t, nil
}

// Update persiste el estado completo del tracking.
func (r *DeliveryRepo) Update(t *entity.DeliveryTracking) error {
	query := `
		UPDATE delivery_tracking SET
			tracking_number = $2, carrier = $3, status = $4,
			shipped_date = $5, estimated_delivery_date = $6, actual_delivery_date = $7,
			current_location = $8, origin_location = $9, destination_location = $10,
			delivered_to = $11, delivery_signature = $12, delivery_photo_url = $13, delivery_notes = $14,
			last_status_update = $15, status_history = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TrackingNumber, t.Carrier, t.Status,
		t.ShippedDate, t.EstimatedDeliveryDate, t.ActualDeliveryDate,
		t.CurrentLocation, t.OriginLocation, t.DestinationLocation,
		t.DeliveredTo, t.DeliverySignature, t.DeliveryPhotoURL, t.DeliveryNotes,
		t.LastStatusUpdate, t.StatusHistory, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery tracking: %w", err)
	}
	return nil
}
