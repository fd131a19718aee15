package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/inventory"
)

func newProduct() *entity.Product {
	return &entity.Product{
		ID:           "p1",
		UserID:       "u1",
		Name:         "iPhone 12",
		ProductType:  entity.ProductTypeCelular,
		ProfitMargin: entity.DefaultProfitMargin,
		IsActive:     true,
	}
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// Escenario de referencia: compra 10@100 -> stock 10, costo 100;
// compra 10@200 -> stock 20, costo 150.
func TestRegisterAcquisition_PromedioPonderado(t *testing.T) {
	p := newProduct()

	inventory.RegisterAcquisition(p, d(10), d(100), false)
	assert.True(t, p.Stock.Equal(d(10)), "stock = 10, got %s", p.Stock)
	assert.True(t, p.AverageCost.Equal(d(100)), "costo = 100, got %s", p.AverageCost)

	inventory.RegisterAcquisition(p, d(10), d(200), false)
	assert.True(t, p.Stock.Equal(d(20)), "stock = 20, got %s", p.Stock)
	assert.True(t, p.AverageCost.Equal(d(150)), "costo = 150, got %s", p.AverageCost)
	assert.True(t, p.TotalPurchased.Equal(d(3000)))
}

// El promedio debe ser la media ponderada real de todas las entradas no revertidas.
func TestRegisterAcquisition_MediaPonderadaSobreSecuencia(t *testing.T) {
	p := newProduct()
	entries := []struct{ qty, cost float64 }{
		{5, 80}, {3, 120}, {12, 95.5}, {1, 300},
	}
	var totalQty, totalValue decimal.Decimal
	for _, e := range entries {
		inventory.RegisterAcquisition(p, d(e.qty), d(e.cost), true)
		totalQty = totalQty.Add(d(e.qty))
		totalValue = totalValue.Add(d(e.qty).Mul(d(e.cost)))
	}
	want := totalValue.Div(totalQty)
	diff := p.AverageCost.Sub(want).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(1e-9)),
		"promedio %s debe igualar la media ponderada %s", p.AverageCost, want)
}

func TestRegisterAcquisition_ActualizaPrecioSugerido(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), false)
	// 100 * (1 + 30/100) = 130
	assert.True(t, p.SuggestedPrice.Equal(d(130)), "precio sugerido = 130, got %s", p.SuggestedPrice)
}

func TestRegisterAcquisition_SkipPriceUpdate(t *testing.T) {
	p := newProduct()
	p.SuggestedPrice = d(999)
	inventory.RegisterAcquisition(p, d(10), d(100), true)
	assert.True(t, p.SuggestedPrice.Equal(d(999)), "el precio explícito no debe recalcularse")
}

// Editar la cantidad de q1 a q2 (costo constante) cambia el stock exactamente en q2-q1.
func TestEditAcquisition_DeltaDeCantidad(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), true)
	inventory.RegisterAcquisition(p, d(5), d(100), true)

	inventory.EditAcquisition(p, d(5), d(100), d(8), d(100))
	assert.True(t, p.Stock.Equal(d(18)), "stock 15 + (8-5) = 18, got %s", p.Stock)
	assert.True(t, p.AverageCost.Equal(d(100)), "costo constante no cambia el promedio")
}

// Editar el costo debe deshacer el aporte viejo y aplicar el nuevo.
func TestEditAcquisition_RecalculaPromedio(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), true)
	inventory.RegisterAcquisition(p, d(10), d(200), true) // promedio 150

	// La segunda compra pasa de 10@200 a 10@300: promedio esperado (1000+3000)/20 = 200
	inventory.EditAcquisition(p, d(10), d(200), d(10), d(300))
	assert.True(t, p.Stock.Equal(d(20)))
	assert.True(t, p.AverageCost.Equal(d(200)), "promedio = 200, got %s", p.AverageCost)
}

// El aporte viejo se descuenta del valor total vigente, no del promedio ya
// mezclado: editar una compra anterior con otras encima da la media exacta.
func TestEditAcquisition_DeshaceAporteViejoExacto(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), true)
	inventory.RegisterAcquisition(p, d(10), d(200), true) // valor total 3000, promedio 150

	// La primera compra pasa de 10@100 a 5@100: (3000-1000+500)/15
	inventory.EditAcquisition(p, d(10), d(100), d(5), d(100))
	assert.True(t, p.Stock.Equal(d(15)))
	want := d(2500).Div(d(15))
	assert.True(t, p.AverageCost.Equal(want), "promedio = %s, got %s", want, p.AverageCost)
}

// Caso degenerado: si el stock queda en cero tras la edición el promedio no cambia.
func TestEditAcquisition_StockCeroDejaCostoIntacto(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), true)
	inventory.EditAcquisition(p, d(10), d(100), d(0), d(0))
	assert.True(t, p.Stock.IsZero())
	assert.True(t, p.AverageCost.Equal(d(100)), "promedio intacto en caso degenerado")
}

// Round-trip: crear y revertir una compra restaura stock y TotalPurchased exactos.
func TestReverseAcquisition_RoundTrip(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(7), d(50), true)
	stockBefore := p.Stock
	purchasedBefore := p.TotalPurchased

	inventory.RegisterAcquisition(p, d(3), d(90), true)
	inventory.ReverseAcquisition(p, d(3), d(270))

	assert.True(t, p.Stock.Equal(stockBefore), "stock restaurado exacto")
	assert.True(t, p.TotalPurchased.Equal(purchasedBefore), "totalPurchased restaurado exacto")
}

func TestReverseAcquisition_RecortaEnCero(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(2), d(10), true)
	inventory.ReverseAcquisition(p, d(5), d(100))
	assert.False(t, p.Stock.IsNegative(), "el stock nunca es negativo")
	assert.True(t, p.Stock.IsZero())
	assert.True(t, p.TotalPurchased.IsZero())
}

func TestRegisterDisposal_StockInsuficiente(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(3), d(100), true)

	err := inventory.RegisterDisposal(p, d(5), d(500))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, p.Stock.Equal(d(3)), "falla antes de mutar")
	assert.True(t, p.TotalSold.IsZero())
}

func TestRegisterDisposal_DescuentaYAcumula(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(10), d(100), true)

	require.NoError(t, inventory.RegisterDisposal(p, d(4), d(600)))
	assert.True(t, p.Stock.Equal(d(6)))
	assert.True(t, p.TotalSold.Equal(d(600)))
}

// Escenario de referencia: ajuste de -3 sobre stock 5 deja stock 2.
func TestAdjustStock_NegativoConRecorte(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(5), d(10), true)

	oldStock, newStock := inventory.AdjustStock(p, d(-3))
	assert.True(t, oldStock.Equal(d(5)))
	assert.True(t, newStock.Equal(d(2)))

	// Un ajuste mayor al stock disponible recorta en cero, nunca negativo.
	_, newStock = inventory.AdjustStock(p, d(-10))
	assert.True(t, newStock.IsZero())
}

func TestConsumePart_SinValidacionPeroRecortado(t *testing.T) {
	p := newProduct()
	inventory.RegisterAcquisition(p, d(2), d(30), true)

	// Consumir más de lo disponible no falla (asimetría vs ventas) pero recorta en 0.
	inventory.ConsumePart(p, d(5))
	assert.True(t, p.Stock.IsZero())
}

func TestSaleCommissionRate_OverrideDelProducto(t *testing.T) {
	emp := &entity.Employee{CommissionConfig: entity.DefaultCommissionConfig()}
	p := newProduct()

	assert.True(t, inventory.SaleCommissionRate(p, emp).Equal(d(5)), "sin override usa la tasa del empleado")

	override := d(12)
	p.CommissionRate = &override
	assert.True(t, inventory.SaleCommissionRate(p, emp).Equal(d(12)), "el override del producto manda")
}

func TestCommissionAmount(t *testing.T) {
	// 750 de ganancia al 10% = 75
	assert.True(t, inventory.CommissionAmount(d(750), d(10)).Equal(d(75)))
}
