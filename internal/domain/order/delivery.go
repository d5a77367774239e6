package order

import (
	"github.com/tu-usuario/supermarket-pro/internal/domain"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// deliveryRank ordena la progresión del envío; FAILED queda fuera (alcanzable
// desde cualquier estado no terminal).
var deliveryRank = map[string]int{
	entity.DeliveryStatusPending:        0,
	entity.DeliveryStatusPickedUp:       1,
	entity.DeliveryStatusInTransit:      2,
	entity.DeliveryStatusOutForDelivery: 3,
	entity.DeliveryStatusDelivered:      4,
}

// DeliveryTerminal indica si el estado del envío no admite más cambios.
func DeliveryTerminal(status string) bool {
	return status == entity.DeliveryStatusDelivered || status == entity.DeliveryStatusFailed
}

// ApplyDeliveryStatus valida el cambio de estado de un envío: solo hacia
// adelante en la progresión, o FAILED desde cualquier estado no terminal.
func ApplyDeliveryStatus(current, target string) error {
	invalid := func() error {
		return &domain.InvalidStateTransitionError{
			Entity:     "delivery",
			From:       current,
			Transition: target,
		}
	}
	if DeliveryTerminal(current) {
		return invalid()
	}
	if target == entity.DeliveryStatusFailed {
		return nil
	}
	curRank, okCur := deliveryRank[current]
	tgtRank, okTgt := deliveryRank[target]
	if !okCur || !okTgt || tgtRank <= curRank {
		return invalid()
	}
	return nil
}
