package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionConfigDTO configuración de comisiones de un empleado.
type CommissionConfigDTO struct {
	SalesEnabled    bool            `json:"sales_enabled"`
	SalesRate       decimal.Decimal `json:"sales_rate"`
	ServicesEnabled bool            `json:"services_enabled"`
	ServicesRate    decimal.Decimal `json:"services_rate"`
}

// CreateEmployeeRequest entrada para registrar un empleado.
type CreateEmployeeRequest struct {
	Name             string               `json:"name" validate:"required"`
	Position         string               `json:"position"`
	Phone            string               `json:"phone"`
	Email            string               `json:"email"`
	HireDate         *time.Time           `json:"hire_date"`
	Notes            string               `json:"notes"`
	CommissionConfig *CommissionConfigDTO `json:"commission_config"`
}

// UpdateEmployeeRequest entrada para editar un empleado.
type UpdateEmployeeRequest struct {
	Name             *string              `json:"name"`
	Position         *string              `json:"position"`
	Phone            *string              `json:"phone"`
	Email            *string              `json:"email"`
	Notes            *string              `json:"notes"`
	IsActive         *bool                `json:"is_active"`
	CommissionConfig *CommissionConfigDTO `json:"commission_config"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Position         string              `json:"position"`
	Phone            string              `json:"phone,omitempty"`
	Email            string              `json:"email,omitempty"`
	HireDate         time.Time           `json:"hire_date"`
	Notes            string              `json:"notes,omitempty"`
	CommissionConfig CommissionConfigDTO `json:"commission_config"`
	IsActive         bool                `json:"is_active"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// EmployeeListResponse listado de empleados.
type EmployeeListResponse struct {
	Count     int                `json:"count"`
	Employees []EmployeeResponse `json:"employees"`
}
