package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedores sintéticos usados para registrar ajustes manuales de stock.
// Son el único canal para corregir inventario sin una compra real.
const (
	SupplierAdjustPositive = "AJUSTE POSITIVO"
	SupplierAdjustNegative = "AJUSTE NEGATIVO"
)

/// Purchase registra una adquisición de inventario. Es un registro de evento:
// al crearse/editarse/eliminarse ajusta Stock y AverageCost del producto.
type Purchase struct {
	ID     string
	UserID string

	ProductID   string
	ProductName string
	ProductType string

	Quantity  decimal.Decimal // > 0
	UnitCost  decimal.Decimal // >= 0
	TotalCost decimal.Decimal // = Quantity * UnitCost, recalculado en cada guardado

	Supplier string
	Invoice  string
	Notes    string

	PurchaseDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CalculateTotals recalcula TotalCost. Llamar siempre antes de persistir.
func (p *Purchase) CalculateTotals() {
	p.TotalCost = p.Quantity.Mul(p.UnitCost)
}

// IsAdjustment indica si la compra es un ajuste sintético de stock.
func (p *Purchase) IsAdjustment() bool {
	return p.Supplier == SupplierAdjustPositive || p.Supplier == SupplierAdjustNegative
}
