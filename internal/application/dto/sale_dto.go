package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
	EmployeeID    *string         `json:"employee_id"`
	Customer      string          `json:"customer"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	SaleDate      *time.Time      `json:"sale_date"`
}

// UpdateSaleRequest entrada para editar una venta. Cambiar la cantidad ajusta
// el stock por el delta; la comisión asociada se recalcula desde cero.
type UpdateSaleRequest struct {
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	EmployeeID    *string          `json:"employee_id"`
	Customer      *string          `json:"customer"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalSale     decimal.Decimal `json:"total_sale"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Profit        decimal.Decimal `json:"profit"`
	EmployeeID    *string         `json:"employee_id,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	SaleDate      time.Time       `json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleCreatedResponse venta registrada. CommissionWarning se llena cuando la
// venta quedó confirmada pero la comisión no pudo generarse.
type SaleCreatedResponse struct {
	Sale              SaleResponse        `json:"sale"`
	Product           ProductResponse     `json:"product"`
	Commission        *CommissionResponse `json:"commission,omitempty"`
	CommissionWarning string              `json:"commission_warning,omitempty"`
}

// SaleListResponse listado de ventas con totales agregados.
type SaleListResponse struct {
	Count       int             `json:"count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	Sales       []SaleResponse  `json:"sales"`
}
