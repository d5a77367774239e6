package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio simples (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// FieldViolation describe una regla incumplida sobre un campo concreto.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones de un comando en un solo error:
// el caller recibe la lista completa, no solo la primera.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validación fallida"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

// Add registra una violación. Devuelve el receiver para encadenar.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
	return e
}

// HasViolations indica si se registró al menos una violación.
func (e *ValidationError) HasViolations() bool { return len(e.Violations) > 0 }

// AsError devuelve el error si hay violaciones, o nil si el comando es válido.
func (e *ValidationError) AsError() error {
	if e.HasViolations() {
		return e
	}
	return nil
}

// NotFoundError indica que un lookup por id/SKU/barcode no encontró el recurso.
type NotFoundError struct {
	Resource string // "product", "supplier", "purchase_order", ...
	Key      string // valor buscado
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.Key)
}

// ImmutableFieldError indica un intento de modificar un campo inmutable post-creación (ej. SKU).
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("el campo %s es inmutable después de la creación", e.Field)
}

// InvalidQuantityError indica una cantidad de stock objetivo negativa o mal formada.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("cantidad inválida: %d (debe ser >= 0)", e.Quantity)
}

// InvalidStateTransitionError indica una transición fuera de orden en la máquina de estados
// de una orden de compra o de un envío. Nombra el estado actual y la transición intentada.
type InvalidStateTransitionError struct {
	Entity     string // "purchase_order" | "delivery"
	From       string
	Transition string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transición %q inválida para %s en estado %s", e.Transition, e.Entity, e.From)
}

// OverReceiptError indica que un lote de recepción excedería la cantidad ordenada de una línea.
// El lote completo se rechaza: ninguna mutación parcial se aplica.
type OverReceiptError struct {
	ItemID          string
	Ordered         int
	AlreadyReceived int
	Requested       int
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("recepción excede lo ordenado en línea %s: ordenado %d, recibido %d, solicitado %d",
		e.ItemID, e.Ordered, e.AlreadyReceived, e.Requested)
}
