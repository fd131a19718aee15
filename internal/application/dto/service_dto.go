package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCustomerDTO datos del cliente de un servicio técnico.
type ServiceCustomerDTO struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ServiceDeviceDTO datos del equipo recibido.
type ServiceDeviceDTO struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
}

// PartUsedInput repuesto de inventario a consumir. El costo unitario se toma
// como snapshot del costo promedio del producto al momento de usarlo.
type PartUsedInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// PartUsedResponse repuesto consumido, con snapshot de nombre y costo.
type PartUsedResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreateServiceRequest entrada para registrar un servicio técnico.
// CommissionRate en nil hereda la tarifa de servicios del técnico asignado;
// TechnicianCommission en nil calcula el monto como mano de obra * tarifa.
type CreateServiceRequest struct {
	Customer                ServiceCustomerDTO `json:"customer" validate:"required"`
	Device                  ServiceDeviceDTO   `json:"device"`
	ProblemDescription      string             `json:"problem_description" validate:"required"`
	TechnicianID            *string            `json:"technician_id"`
	LaborCost               decimal.Decimal    `json:"labor_cost"`
	PartsPrice              decimal.Decimal    `json:"parts_price"`
	CommissionRate          *decimal.Decimal   `json:"commission_rate"`
	TechnicianCommission    *decimal.Decimal   `json:"technician_commission"`
	PartsUsed               []PartUsedInput    `json:"parts_used"`
	Priority                string             `json:"priority"`
	PaymentMethod           string             `json:"payment_method"`
	EstimatedCompletionDate *time.Time         `json:"estimated_completion_date"`
	Notes                   string             `json:"notes"`
}

// UpdateServiceRequest entrada para editar un servicio. Cambiar el técnico sin
// tarifa explícita re-hereda la tarifa del nuevo técnico; la comisión se
// recalcula salvo que se envíe un monto manual.
type UpdateServiceRequest struct {
	Customer                *ServiceCustomerDTO `json:"customer"`
	Device                  *ServiceDeviceDTO   `json:"device"`
	ProblemDescription      *string             `json:"problem_description"`
	Diagnosis               *string             `json:"diagnosis"`
	Solution                *string             `json:"solution"`
	TechnicianID            *string             `json:"technician_id"`
	LaborCost               *decimal.Decimal    `json:"labor_cost"`
	PartsPrice              *decimal.Decimal    `json:"parts_price"`
	CommissionRate          *decimal.Decimal    `json:"commission_rate"`
	TechnicianCommission    *decimal.Decimal    `json:"technician_commission"`
	Priority                *string             `json:"priority"`
	PaymentMethod           *string             `json:"payment_method"`
	PaymentStatus           *string             `json:"payment_status"`
	EstimatedCompletionDate *time.Time          `json:"estimated_completion_date"`
	Notes                   *string             `json:"notes"`
}

// UpdateServiceStatusRequest cambio de estado del servicio.
type UpdateServiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ServiceResponse salida de un servicio técnico.
type ServiceResponse struct {
	ID                       string             `json:"id"`
	Customer                 ServiceCustomerDTO `json:"customer"`
	Device                   ServiceDeviceDTO   `json:"device"`
	ProblemDescription       string             `json:"problem_description"`
	Diagnosis                string             `json:"diagnosis,omitempty"`
	Solution                 string             `json:"solution,omitempty"`
	Status                   string             `json:"status"`
	Priority                 string             `json:"priority"`
	LaborCost                decimal.Decimal    `json:"labor_cost"`
	PartsCost                decimal.Decimal    `json:"parts_cost"`
	PartsPrice               decimal.Decimal    `json:"parts_price"`
	TotalCost                decimal.Decimal    `json:"total_cost"`
	TechnicianID             *string            `json:"technician_id,omitempty"`
	Technician               string             `json:"technician,omitempty"`
	TechnicianCommissionRate decimal.Decimal    `json:"technician_commission_rate"`
	TechnicianCommission     decimal.Decimal    `json:"technician_commission"`
	CommissionApproved       bool               `json:"commission_approved"`
	CommissionID             *string            `json:"commission_id,omitempty"`
	PartsUsed                []PartUsedResponse `json:"parts_used,omitempty"`
	EntryDate                time.Time          `json:"entry_date"`
	EstimatedCompletionDate  *time.Time         `json:"estimated_completion_date,omitempty"`
	CompletionDate           *time.Time         `json:"completion_date,omitempty"`
	DeliveryDate             *time.Time         `json:"delivery_date,omitempty"`
	PaymentMethod            string             `json:"payment_method,omitempty"`
	PaymentStatus            string             `json:"payment_status"`
	Notes                    string             `json:"notes,omitempty"`
	CreatedAt                time.Time          `json:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at"`
}

// ServiceListResponse listado de servicios.
type ServiceListResponse struct {
	Count    int               `json:"count"`
	Services []ServiceResponse `json:"services"`
}

// ServiceStatsSummary resumen operativo de servicios técnicos.
type ServiceStatsSummary struct {
	Total           int             `json:"total"`
	ByStatus        map[string]int  `json:"by_status"`
	ByPriority      map[string]int  `json:"by_priority"`
	PendingDelivery int             `json:"pending_delivery"`
	Revenue         decimal.Decimal `json:"revenue"`
	LaborRevenue    decimal.Decimal `json:"labor_revenue"`
	PartsRevenue    decimal.Decimal `json:"parts_revenue"`
	Commissions     decimal.Decimal `json:"commissions"`
}
