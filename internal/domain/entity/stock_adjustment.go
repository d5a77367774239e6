package entity

import "time"

// Razones de ajuste de stock. El procesador de recepciones usa ReasonReceiving
// en exclusiva; los ajustes manuales usan las demás.
const (
	ReasonRestock    = "RESTOCK"
	ReasonSale       = "SALE"
	ReasonDamage     = "DAMAGE"
	ReasonCorrection = "CORRECTION"
	ReasonReturn     = "RETURN"
	ReasonReceiving  = "RECEIVING"
)

// ValidAdjustmentReason indica si la razón pertenece al conjunto enumerado.
func ValidAdjustmentReason(reason string) bool {
	switch reason {
	case ReasonRestock, ReasonSale, ReasonDamage, ReasonCorrection, ReasonReturn, ReasonReceiving:
		return true
	}
	return false
}

// ManualAdjustmentReason indica si la razón puede usarse en un ajuste manual
// (RECEIVING queda reservada al procesador de recepciones).
func ManualAdjustmentReason(reason string) bool {
	return ValidAdjustmentReason(reason) && reason != ReasonReceiving
}

// StockAdjustment es una entrada inmutable del libro de ajustes de inventario.
// Invariante: reproducir los deltas desde el valor inicial debe dar el
// quantity_in_stock actual del producto.
type StockAdjustment struct {
	ID          string
	ProductID   string
	OldQuantity int
	NewQuantity int
	Reason      string
	Notes       string
	ReferenceID string // id del documento relacionado (ej. orden de compra en RECEIVING)
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor
}

// Delta devuelve el cambio neto de la entrada.
func (a StockAdjustment) Delta() int { return a.NewQuantity - a.OldQuantity }
