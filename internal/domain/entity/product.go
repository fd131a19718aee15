package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto. Solo "celular" genera comisión de venta.
const (
	ProductTypeCelular   = "celular"
	ProductTypeAccesorio = "accesorio"
	ProductTypeOtro      = "otro"
)

// Product representa un artículo del inventario de un local (multi-tenant por UserID).
// Stock y AverageCost se mantienen vía el motor de valuación (compras, ventas,
// ajustes y consumo de repuestos); nunca se asignan directo desde la API.
type Product struct {
	ID     string
	UserID string
	Name   string

	ProductType string // celular | accesorio | otro

	// CommissionRate es el % de comisión específico del producto.
	// nil = usar la tasa por defecto del empleado al momento de la venta.
	CommissionRate *decimal.Decimal

	Stock          decimal.Decimal // nunca negativo (se recorta en 0)
	AverageCost    decimal.Decimal // costo promedio ponderado
	SuggestedPrice decimal.Decimal
	ProfitMargin   decimal.Decimal // % sobre el costo, 30 por defecto

	// Acumulados monetarios
	TotalPurchased decimal.Decimal
	TotalSold      decimal.Decimal

	Category    string
	Brand       string
	Description string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultProfitMargin margen de ganancia por defecto (30%).
var DefaultProfitMargin = decimal.NewFromInt(30)

// UpdateSuggestedPrice recalcula SuggestedPrice = AverageCost * (1 + ProfitMargin/100).
// No hace nada si el costo promedio es cero (producto sin compras).
func (p *Product) UpdateSuggestedPrice() {
	if p.AverageCost.IsZero() {
		return
	}
	factor := decimal.NewFromInt(1).Add(p.ProfitMargin.Div(decimal.NewFromInt(100)))
	p.SuggestedPrice = p.AverageCost.Mul(factor)
}

// ValidProductType indica si el tipo de producto es uno de los permitidos.
func ValidProductType(t string) bool {
	switch t {
	case ProductTypeCelular, ProductTypeAccesorio, ProductTypeOtro:
		return true
	}
	return false
}
