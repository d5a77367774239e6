package order

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// Totals son los campos financieros derivados de una orden.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeTotals recalcula los totales desde las líneas actuales:
// subtotal = Σ(total_price), tax = taxRate × subtotal,
// total = subtotal + tax + shipping − discount. Redondeo a 2 decimales.
// Se invoca en cada mutación de líneas pre-ORDERED; nunca se cachea obsoleto.
func ComputeTotals(items []*entity.PurchaseOrderItem, taxRate, shipping, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)
	return Totals{Subtotal: subtotal, TaxAmount: tax, TotalAmount: total}
}

// LineTotal calcula el total de una línea: cantidad × precio unitario, a 2 decimales.
func LineTotal(quantityOrdered int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantityOrdered))).Round(2)
}

// ApplyTotals escribe los totales recalculados sobre la orden.
func ApplyTotals(o *entity.PurchaseOrder, taxRate decimal.Decimal) {
	t := ComputeTotals(o.Items, taxRate, o.ShippingCost, o.DiscountAmount)
	o.Subtotal = t.Subtotal
	o.TaxAmount = t.TaxAmount
	o.TotalAmount = t.TotalAmount
}
