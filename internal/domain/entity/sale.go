package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en ventas.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Sale registra una venta. UnitCost es un snapshot del costo promedio del
// producto al momento de la venta y no cambia aunque el producto se recompre.
type Sale struct {
	ID     string
	UserID string

	ProductID   string
	ProductName string

	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal // >= 0
	UnitCost  decimal.Decimal // snapshot de Product.AverageCost, inmutable

	TotalSale decimal.Decimal // = Quantity * UnitPrice
	TotalCost decimal.Decimal // = Quantity * UnitCost
	Profit    decimal.Decimal // = TotalSale - TotalCost

	EmployeeID *string // vendedor asignado (opcional)

	Customer      string
	PaymentMethod string
	Notes         string

	SaleDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateTotals recalcula TotalSale, TotalCost y Profit. Llamar antes de persistir.
func (s *Sale) CalculateTotals() {
	s.TotalSale = s.Quantity.Mul(s.UnitPrice)
	s.TotalCost = s.Quantity.Mul(s.UnitCost)
	s.Profit = s.TotalSale.Sub(s.TotalCost)
}

// ValidPaymentMethod indica si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}
