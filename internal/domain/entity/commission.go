package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comisión.
const (
	CommissionTypeSale    = "sale"
	CommissionTypeService = "technical_service"
)

// Estados de una comisión. Máquina de estados solo hacia adelante:
// pending -> approved -> paid; cualquiera -> cancelled al eliminarse el origen.
const (
	CommissionPending   = "pending"
	CommissionApproved  = "approved"
	CommissionPaid      = "paid"
	CommissionCancelled = "cancelled"
)

// Commission obligación financiera con un empleado, derivada de una venta
// (base = ganancia) o de un servicio técnico (base = mano de obra).
// Una vez pagada es inmutable.
type Commission struct {
	ID     string
	UserID string

	EmployeeID  string
	Type        string // sale | technical_service
	ReferenceID string // ID de la venta o del servicio de origen
	Description string

	BaseAmount       decimal.Decimal
	CommissionRate   decimal.Decimal // 0-100
	CommissionAmount decimal.Decimal // = BaseAmount * CommissionRate / 100

	Status       string
	Date         time.Time
	ApprovedDate *time.Time
	PaidDate     *time.Time
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateAmount recalcula CommissionAmount a partir de base y tasa.
func (c *Commission) CalculateAmount() decimal.Decimal {
	c.CommissionAmount = c.BaseAmount.Mul(c.CommissionRate).Div(decimal.NewFromInt(100))
	return c.CommissionAmount
}
