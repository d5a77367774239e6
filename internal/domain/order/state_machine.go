// Package order contiene la lógica pura del agregado orden de compra:
// máquina de estados, máquina de estados del envío y cálculo de totales.
package order

import (
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// Transiciones de la orden de compra.
const (
	TransitionSubmit  = "submit"  // DRAFT → PENDING
	TransitionApprove = "approve" // PENDING → APPROVED
	TransitionOrder   = "order"   // APPROVED → ORDERED
	TransitionShip    = "ship"    // ORDERED → SHIPPED
	TransitionDeliver = "deliver" // SHIPPED u ORDERED (recepción completa) → DELIVERED
	TransitionCancel  = "cancel"  // cualquier estado no terminal → CANCELLED
	TransitionReceive = "receive" // recepción parcial; requiere ORDERED o SHIPPED
)

// forward define la progresión de un paso, sin saltos.
var forward = map[string]string{
	entity.OrderStatusDraft:    entity.OrderStatusPending,
	entity.OrderStatusPending:  entity.OrderStatusApproved,
	entity.OrderStatusApproved: entity.OrderStatusOrdered,
	entity.OrderStatusOrdered:  entity.OrderStatusShipped,
	entity.OrderStatusShipped:  entity.OrderStatusDelivered,
}

// Terminal indica si el estado no admite más transiciones.
func Terminal(status string) bool {
	return status == entity.OrderStatusDelivered || status == entity.OrderStatusCancelled
}

// Next devuelve el estado siguiente en la progresión normal.
func Next(status string) (string, bool) {
	next, ok := forward[status]
	return next, ok
}

// Apply valida y resuelve una transición. Devuelve el estado resultante o
// InvalidStateTransitionError nombrando estado actual y transición intentada.
func Apply(current, transition string) (string, error) {
	invalid := func() (string, error) {
		return "", &domain.InvalidStateTransitionError{
			Entity:     "purchase_order",
			From:       current,
			Transition: transition,
		}
	}

	switch transition {
	case TransitionSubmit:
		if current != entity.OrderStatusDraft {
			return invalid()
		}
		return entity.OrderStatusPending, nil
	case TransitionApprove:
		if current != entity.OrderStatusPending {
			return invalid()
		}
		return entity.OrderStatusApproved, nil
	case TransitionOrder:
		if current != entity.OrderStatusApproved {
			return invalid()
		}
		return entity.OrderStatusOrdered, nil
	case TransitionShip:
		if current != entity.OrderStatusOrdered {
			return invalid()
		}
		return entity.OrderStatusShipped, nil
	case TransitionDeliver:
		// La entrega resulta de una recepción completa estando ORDERED o SHIPPED.
		if current != entity.OrderStatusOrdered && current != entity.OrderStatusShipped {
			return invalid()
		}
		return entity.OrderStatusDelivered, nil
	case TransitionCancel:
		if Terminal(current) {
			return invalid()
		}
		return entity.OrderStatusCancelled, nil
	case TransitionReceive:
		if current != entity.OrderStatusOrdered && current != entity.OrderStatusShipped {
			return invalid()
		}
		return current, nil
	default:
		return invalid()
	}
}

// CanReceive indica si la orden admite recepciones en su estado actual.
func CanReceive(status string) bool {
	return status == entity.OrderStatusOrdered || status == entity.OrderStatusShipped
}

// ItemsMutable indica si las líneas de la orden aún pueden agregarse/editarse/quitarse.
// Una vez ORDERED las líneas son inmutables salvo los campos de recepción.
func ItemsMutable(status string) bool {
	switch status {
	case entity.OrderStatusDraft, entity.OrderStatusPending, entity.OrderStatusApproved:
		return true
	}
	return false
}
