package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cargos de empleado.
const (
	PositionVendedor        = "vendedor"
	PositionTecnico         = "tecnico"
	PositionVendedorTecnico = "vendedor_tecnico"
)

// CommissionConfig configuración de comisiones de un empleado.
// Las tasas son valores por defecto que las transacciones heredan al crearse;
// editar el perfil después NO modifica comisiones ya generadas.
type CommissionConfig struct {
	SalesEnabled    bool
	SalesRate       decimal.Decimal // % sobre la ganancia de la venta
	ServicesEnabled bool
	ServicesRate    decimal.Decimal // % sobre la mano de obra del servicio
}

// DefaultCommissionConfig valores por defecto: ventas 5%, servicios 10%, ambos habilitados.
func DefaultCommissionConfig() CommissionConfig {
	return CommissionConfig{
		SalesEnabled:    true,
		SalesRate:       decimal.NewFromInt(5),
		ServicesEnabled: true,
		ServicesRate:    decimal.NewFromInt(10),
	}
}

// Employee personal del local (vendedores y técnicos).
type Employee struct {
	ID     string
	UserID string

	Name     string
	Email    string
	Phone    string
	Position string // vendedor | tecnico | vendedor_tecnico

	CommissionConfig CommissionConfig

	IsActive  bool
	HireDate  time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidPosition indica si el cargo es uno de los permitidos.
func ValidPosition(p string) bool {
	switch p {
	case PositionVendedor, PositionTecnico, PositionVendedorTecnico:
		return true
	}
	return false
}
