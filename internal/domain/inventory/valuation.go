// Package inventory implementa la valuación por costo promedio ponderado
// (servicio de dominio). Todas las mutaciones de Stock/AverageCost de un
// producto pasan por aquí.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// WeightedAverage calcula el nuevo costo promedio ponderado.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverage(stock, avgCost, qty, unitCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(qty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(avgCost).Add(qty.Mul(unitCost))
	return num.Div(sum)
}

// RegisterAcquisition aplica una compra al producto: recalcula el costo
// promedio ponderado, suma stock y acumula TotalPurchased.
// Con qty > 0 la división nunca es por cero (stock+qty > 0).
// skipPriceUpdate evita recalcular SuggestedPrice cuando el caller va a
// fijar un precio explícito en la misma operación.
func RegisterAcquisition(p *entity.Product, qty, unitCost decimal.Decimal, skipPriceUpdate bool) {
	p.AverageCost = WeightedAverage(p.Stock, p.AverageCost, qty, unitCost)
	p.Stock = p.Stock.Add(qty)
	p.TotalPurchased = p.TotalPurchased.Add(qty.Mul(unitCost))
	if !skipPriceUpdate {
		p.UpdateSuggestedPrice()
	}
}

// EditAcquisition deshace algebraicamente el aporte viejo de una compra y
// aplica el nuevo: ajusta el stock por la diferencia de cantidades y
// recombina el valor del resto del inventario con el aporte nuevo.
// Si el stock resultante es cero (caso degenerado) el costo promedio se
// deja intacto.
func EditAcquisition(p *entity.Product, oldQty, oldCost, newQty, newCost decimal.Decimal) {
	// El valor del resto del inventario sale del valor total vigente menos el
	// aporte viejo de esta compra; el promedio actual aún lo contiene.
	otherValue := p.Stock.Mul(p.AverageCost).Sub(oldQty.Mul(oldCost))
	if otherValue.IsNegative() {
		otherValue = decimal.Zero
	}
	p.Stock = p.Stock.Add(newQty.Sub(oldQty))
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
	if p.Stock.IsPositive() {
		avg := otherValue.Add(newQty.Mul(newCost)).Div(p.Stock)
		if avg.IsNegative() {
			avg = decimal.Zero
		}
		p.AverageCost = avg
	}
	p.TotalPurchased = p.TotalPurchased.Sub(oldQty.Mul(oldCost)).Add(newQty.Mul(newCost))
	if p.TotalPurchased.IsNegative() {
		p.TotalPurchased = decimal.Zero
	}
	p.UpdateSuggestedPrice()
}

// ReverseAcquisition revierte una compra eliminada: resta stock y
// TotalPurchased, ambos recortados en cero.
func ReverseAcquisition(p *entity.Product, qty, totalCost decimal.Decimal) {
	p.Stock = p.Stock.Sub(qty)
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
	p.TotalPurchased = p.TotalPurchased.Sub(totalCost)
	if p.TotalPurchased.IsNegative() {
		p.TotalPurchased = decimal.Zero
	}
}

// RegisterDisposal aplica una venta: resta stock y acumula TotalSold.
// Una salida que exceda el stock es una falla dura de precondición: las
// ventas jamás se fabrican recortando stock.
func RegisterDisposal(p *entity.Product, qty, totalSale decimal.Decimal) error {
	if p.Stock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	p.Stock = p.Stock.Sub(qty)
	p.TotalSold = p.TotalSold.Add(totalSale)
	return nil
}

// ReverseDisposal revierte una venta eliminada: devuelve stock y resta TotalSold.
func ReverseDisposal(p *entity.Product, qty, totalSale decimal.Decimal) {
	p.Stock = p.Stock.Add(qty)
	p.TotalSold = p.TotalSold.Sub(totalSale)
}

// ConsumePart descuenta del stock un repuesto usado en servicio técnico.
// A diferencia de las ventas NO valida suficiencia (asimetría heredada del
// diseño original); el stock se recorta en cero para sostener la invariante.
func ConsumePart(p *entity.Product, qty decimal.Decimal) {
	p.Stock = p.Stock.Sub(qty)
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
}

// RestorePart devuelve al inventario un repuesto de un servicio eliminado.
func RestorePart(p *entity.Product, qty decimal.Decimal) {
	p.Stock = p.Stock.Add(qty)
}

// AdjustStock corrección manual de inventario: stock += delta, recortado en
// cero. Devuelve el stock anterior y el nuevo para que el caller registre el
// ajuste sintético de auditoría (único canal para drift inexplicado).
func AdjustStock(p *entity.Product, delta decimal.Decimal) (oldStock, newStock decimal.Decimal) {
	oldStock = p.Stock
	p.Stock = p.Stock.Add(delta)
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
	return oldStock, p.Stock
}

// SaleCommissionRate resuelve la tasa de comisión de una venta: la tasa
// específica del producto si existe, si no la del perfil del empleado.
func SaleCommissionRate(product *entity.Product, employee *entity.Employee) decimal.Decimal {
	if product.CommissionRate != nil {
		return *product.CommissionRate
	}
	return employee.CommissionConfig.SalesRate
}

// CommissionAmount calcula base * tasa / 100.
func CommissionAmount(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred)
}
