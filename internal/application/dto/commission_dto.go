package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionResponse salida de una comisión.
type CommissionResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	CommissionType string          `json:"commission_type"`
	ReferenceID    string          `json:"reference_id"`
	Description    string          `json:"description,omitempty"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	Rate           decimal.Decimal `json:"rate"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	ApprovedDate   *time.Time      `json:"approved_date,omitempty"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CommissionListResponse listado de comisiones con monto total.
type CommissionListResponse struct {
	Count       int                  `json:"count"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Commissions []CommissionResponse `json:"commissions"`
}

// PayCommissionRequest notas opcionales al marcar como pagada.
type PayCommissionRequest struct {
	Notes string `json:"notes"`
}

// PayBatchRequest pago en lote de comisiones aprobadas.
type PayBatchRequest struct {
	CommissionIDs []string `json:"commission_ids" validate:"required,min=1"`
	Notes         string   `json:"notes"`
}

// PayBatchResponse resultado del pago en lote.
type PayBatchResponse struct {
	Paid    int64  `json:"paid"`
	Message string `json:"message"`
}

// CommissionGroup subtotal de comisiones agrupadas (por tipo o estado).
type CommissionGroup struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyCommissionEmployee acumulado mensual de un empleado.
type MonthlyCommissionEmployee struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeName string                     `json:"employee_name"`
	Count        int                        `json:"count"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	ByType       map[string]CommissionGroup `json:"by_type"`
	ByStatus     map[string]CommissionGroup `json:"by_status"`
}

// MonthlyCommissionReport reporte mensual de comisiones.
type MonthlyCommissionReport struct {
	Year        int                         `json:"year"`
	Month       int                         `json:"month"`
	StartDate   time.Time                   `json:"start_date"`
	EndDate     time.Time                   `json:"end_date"`
	Count       int                         `json:"count"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	ByType      map[string]CommissionGroup  `json:"by_type"`
	ByStatus    map[string]CommissionGroup  `json:"by_status"`
	ByEmployee  []MonthlyCommissionEmployee `json:"by_employee"`
}
