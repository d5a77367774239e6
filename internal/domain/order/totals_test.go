package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pro/internal/domain/order"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Escenario de la ficha: A 10 × £1.00 + B 5 × £2.00 → subtotal £20.00,
// tax £4.00 (20%), total £24.00 sin shipping ni descuento.
func TestComputeTotals_EscenarioBase(t *testing.T) {
	items := []*entity.PurchaseOrderItem{
		{QuantityOrdered: 10, UnitPrice: dec("1.00"), TotalPrice: order.LineTotal(10, dec("1.00"))},
		{QuantityOrdered: 5, UnitPrice: dec("2.00"), TotalPrice: order.LineTotal(5, dec("2.00"))},
	}
	got := order.ComputeTotals(items, dec("0.20"), decimal.Zero, decimal.Zero)

	assert.True(t, got.Subtotal.Equal(dec("20.00")), "subtotal = %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(dec("4.00")), "tax = %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(dec("24.00")), "total = %s", got.TotalAmount)
}

func TestComputeTotals_ShippingYDescuento(t *testing.T) {
	items := []*entity.PurchaseOrderItem{
		{QuantityOrdered: 3, UnitPrice: dec("4.99"), TotalPrice: order.LineTotal(3, dec("4.99"))},
	}
	got := order.ComputeTotals(items, dec("0.20"), dec("5.50"), dec("2.00"))

	// 14.97 + 2.99 (redondeado desde 2.994) + 5.50 - 2.00
	assert.True(t, got.Subtotal.Equal(dec("14.97")))
	assert.True(t, got.TaxAmount.Equal(dec("2.99")))
	assert.True(t, got.TotalAmount.Equal(dec("21.46")))
}

// total_amount == subtotal + tax + shipping − discount, recalculado tras cada
// mutación de líneas, nunca cacheado obsoleto.
func TestApplyTotals_RecalculaTrasMutacion(t *testing.T) {
	o := &entity.PurchaseOrder{
		ShippingCost:   decimal.Zero,
		DiscountAmount: decimal.Zero,
		Items: []*entity.PurchaseOrderItem{
			{QuantityOrdered: 10, UnitPrice: dec("1.00"), TotalPrice: dec("10.00")},
		},
	}
	order.ApplyTotals(o, dec("0.20"))
	assert.True(t, o.TotalAmount.Equal(dec("12.00")))

	// agregar una línea y recalcular
	o.Items = append(o.Items, &entity.PurchaseOrderItem{QuantityOrdered: 5, UnitPrice: dec("2.00"), TotalPrice: dec("10.00")})
	order.ApplyTotals(o, dec("0.20"))

	assert.True(t, o.Subtotal.Equal(dec("20.00")))
	assert.True(t, o.TaxAmount.Equal(dec("4.00")))
	assert.True(t, o.TotalAmount.Equal(dec("24.00")))
	assert.True(t, o.TotalAmount.Equal(o.Subtotal.Add(o.TaxAmount).Add(o.ShippingCost).Sub(o.DiscountAmount)))
}

func TestComputeTotals_SinLineas(t *testing.T) {
	got := order.ComputeTotals(nil, dec("0.20"), decimal.Zero, decimal.Zero)
	assert.True(t, got.TotalAmount.IsZero())
}
