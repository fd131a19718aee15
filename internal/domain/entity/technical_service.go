package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un servicio técnico.
const (
	ServicePending      = "pending"
	ServiceInProgress   = "in_progress"
	ServiceWaitingParts = "waiting_parts"
	ServiceCompleted    = "completed"
	ServiceDelivered    = "delivered"
	ServiceCancelled    = "cancelled"
)

// Prioridades de un servicio técnico.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Estados de pago del servicio.
const (
	ServicePaymentPending = "pending"
	ServicePaymentPartial = "partial"
	ServicePaymentPaid    = "paid"
)

// ServiceCustomer datos del cliente del servicio técnico.
type ServiceCustomer struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// ServiceDevice datos del equipo recibido.
type ServiceDevice struct {
	Type         string
	Brand        string
	Model        string
	SerialNumber string
}

// PartUsed repuesto del inventario consumido por el servicio.
// UnitCost es snapshot del costo del producto al momento de usarlo.
type PartUsed struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
}

// TechnicalService ticket de reparación. El % de comisión se hereda del
// perfil del técnico al asignarlo pero es editable por servicio sin afectar
// el perfil; el monto se recalcula salvo que se fije manualmente.
type TechnicalService struct {
	ID     string
	UserID string

	Customer ServiceCustomer
	Device   ServiceDevice

	ProblemDescription string
	Diagnosis          string
	Solution           string

	Status   string
	Priority string

	LaborCost  decimal.Decimal // mano de obra
	PartsCost  decimal.Decimal // costo real del repuesto (lo pagó el negocio)
	PartsPrice decimal.Decimal // precio cobrado al cliente por el repuesto
	TotalCost  decimal.Decimal // lo que paga el cliente: LaborCost + (PartsPrice || PartsCost)

	TechnicianID             *string
	Technician               string // snapshot del nombre
	TechnicianCommissionRate decimal.Decimal
	TechnicianCommission     decimal.Decimal // = LaborCost * rate / 100, redondeado a 2 decimales
	CommissionApproved       bool
	CommissionID             *string

	PartsUsed []PartUsed

	EntryDate               time.Time
	EstimatedCompletionDate *time.Time
	CompletionDate          *time.Time // se fija una sola vez, al primer paso a "completed"
	DeliveryDate            *time.Time // se fija una sola vez, al primer paso a "delivered"

	PaymentMethod string
	PaymentStatus string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateTotal recalcula TotalCost. PartsPrice manda; si es cero se usa PartsCost.
func (s *TechnicalService) CalculateTotal() {
	parts := s.PartsPrice
	if parts.IsZero() {
		parts = s.PartsCost
	}
	s.TotalCost = s.LaborCost.Add(parts)
}

// CalculateTechnicianCommission calcula LaborCost * rate / 100 redondeado a 2 decimales.
func (s *TechnicalService) CalculateTechnicianCommission() decimal.Decimal {
	return s.LaborCost.Mul(s.TechnicianCommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}

// ValidServiceStatus indica si el estado es uno de los permitidos.
func ValidServiceStatus(st string) bool {
	switch st {
	case ServicePending, ServiceInProgress, ServiceWaitingParts,
		ServiceCompleted, ServiceDelivered, ServiceCancelled:
		return true
	}
	return false
}

// ValidPriority indica si la prioridad es una de las permitidas.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
