// Package services implementa los tickets de servicio técnico: consumo de
// repuestos del inventario, herencia de tarifa de comisión del técnico y la
// entrega como único camino de cierre financiero del ticket.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/inventory"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// UseCase casos de uso de servicio técnico.
type UseCase struct {
	txRunner     ports.TxRunner
	serviceRepo  repository.TechnicalServiceRepository
	employeeRepo repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	serviceRepo repository.TechnicalServiceRepository,
	employeeRepo repository.EmployeeRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
	}
}

// Create registra un ticket. Los repuestos se descuentan del inventario con
// snapshot de costo; la tarifa de comisión se hereda del perfil del técnico
// salvo tarifa explícita en la petición.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Customer.Name == "" || in.ProblemDescription == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.LaborCost.IsNegative() || in.PartsPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	for _, part := range in.PartsUsed {
		if part.ProductID == "" || !part.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var out dto.ServiceResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		svc := &entity.TechnicalService{
			ID:     uuid.New().String(),
			UserID: userID,
			Customer: entity.ServiceCustomer{
				Name:    in.Customer.Name,
				Phone:   in.Customer.Phone,
				Email:   in.Customer.Email,
				Address: in.Customer.Address,
			},
			Device: entity.ServiceDevice{
				Type:         in.Device.Type,
				Brand:        in.Device.Brand,
				Model:        in.Device.Model,
				SerialNumber: in.Device.SerialNumber,
			},
			ProblemDescription:      in.ProblemDescription,
			Status:                  entity.ServicePending,
			Priority:                priority,
			LaborCost:               in.LaborCost,
			PartsPrice:              in.PartsPrice,
			EntryDate:               now,
			EstimatedCompletionDate: in.EstimatedCompletionDate,
			PaymentMethod:           in.PaymentMethod,
			PaymentStatus:           entity.ServicePaymentPending,
			Notes:                   in.Notes,
			CreatedAt:               now,
			UpdatedAt:               now,
		}

		if in.TechnicianID != nil && *in.TechnicianID != "" {
			technician, err := r.Employees.GetActiveByID(userID, *in.TechnicianID)
			if err != nil {
				return err
			}
			if technician == nil {
				return domain.ErrNotFound
			}
			svc.TechnicianID = in.TechnicianID
			svc.Technician = technician.Name
			// La tarifa se hereda del perfil al asignar; editarla después
			// no toca el perfil del técnico
			svc.TechnicianCommissionRate = technician.CommissionConfig.ServicesRate
		}
		if in.CommissionRate != nil {
			if in.CommissionRate.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.TechnicianCommissionRate = *in.CommissionRate
		}

		for _, part := range in.PartsUsed {
			product, err := r.Products.GetForUpdate(userID, part.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			inventory.ConsumePart(product, part.Quantity)
			product.UpdatedAt = now
			if err := r.Products.Update(product); err != nil {
				return err
			}
			svc.PartsUsed = append(svc.PartsUsed, entity.PartUsed{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    part.Quantity,
				UnitCost:    product.AverageCost,
			})
			svc.PartsCost = svc.PartsCost.Add(part.Quantity.Mul(product.AverageCost))
		}

		svc.CalculateTotal()
		if in.TechnicianCommission != nil {
			if in.TechnicianCommission.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.TechnicianCommission = *in.TechnicianCommission
		} else {
			svc.TechnicianCommission = svc.CalculateTechnicianCommission()
		}

		if err := r.Services.Create(svc); err != nil {
			return err
		}
		out = dto.NewServiceResponse(svc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get devuelve un servicio del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.ServiceResponse, error) {
	svc, err := uc.serviceRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewServiceResponse(svc)
	return &out, nil
}

// List lista servicios con filtros opcionales.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.ServiceFilter) (*dto.ServiceListResponse, error) {
	services, err := uc.serviceRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	out := dto.ServiceListResponse{
		Count:    len(services),
		Services: make([]dto.ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		out.Services = append(out.Services, dto.NewServiceResponse(s))
	}
	return &out, nil
}

// Update edita un ticket. Cambiar el técnico sin tarifa explícita re-hereda
// la tarifa del nuevo técnico; la comisión se recalcula salvo monto manual.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	var out dto.ServiceResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		svc, err := r.Services.GetByID(userID, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.ErrNotFound
		}

		if in.Customer != nil {
			svc.Customer = entity.ServiceCustomer{
				Name:    in.Customer.Name,
				Phone:   in.Customer.Phone,
				Email:   in.Customer.Email,
				Address: in.Customer.Address,
			}
		}
		if in.Device != nil {
			svc.Device = entity.ServiceDevice{
				Type:         in.Device.Type,
				Brand:        in.Device.Brand,
				Model:        in.Device.Model,
				SerialNumber: in.Device.SerialNumber,
			}
		}
		if in.ProblemDescription != nil {
			svc.ProblemDescription = *in.ProblemDescription
		}
		if in.Diagnosis != nil {
			svc.Diagnosis = *in.Diagnosis
		}
		if in.Solution != nil {
			svc.Solution = *in.Solution
		}
		if in.Priority != nil {
			if !entity.ValidPriority(*in.Priority) {
				return domain.ErrInvalidInput
			}
			svc.Priority = *in.Priority
		}
		if in.PaymentMethod != nil {
			if *in.PaymentMethod != "" && !entity.ValidPaymentMethod(*in.PaymentMethod) {
				return domain.ErrInvalidInput
			}
			svc.PaymentMethod = *in.PaymentMethod
		}
		if in.PaymentStatus != nil {
			switch *in.PaymentStatus {
			case entity.ServicePaymentPending, entity.ServicePaymentPartial, entity.ServicePaymentPaid:
				svc.PaymentStatus = *in.PaymentStatus
			default:
				return domain.ErrInvalidInput
			}
		}
		if in.LaborCost != nil {
			if in.LaborCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.LaborCost = *in.LaborCost
		}
		if in.PartsPrice != nil {
			if in.PartsPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.PartsPrice = *in.PartsPrice
		}
		if in.EstimatedCompletionDate != nil {
			svc.EstimatedCompletionDate = in.EstimatedCompletionDate
		}
		if in.Notes != nil {
			svc.Notes = *in.Notes
		}

		if in.TechnicianID != nil {
			if *in.TechnicianID == "" {
				svc.TechnicianID = nil
				svc.Technician = ""
			} else {
				technician, err := r.Employees.GetActiveByID(userID, *in.TechnicianID)
				if err != nil {
					return err
				}
				if technician == nil {
					return domain.ErrNotFound
				}
				svc.TechnicianID = in.TechnicianID
				svc.Technician = technician.Name
				// Sin tarifa explícita, el nuevo técnico re-hereda la suya
				if in.CommissionRate == nil {
					svc.TechnicianCommissionRate = technician.CommissionConfig.ServicesRate
				}
			}
		}
		if in.CommissionRate != nil {
			if in.CommissionRate.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.TechnicianCommissionRate = *in.CommissionRate
		}

		svc.CalculateTotal()
		if in.TechnicianCommission != nil {
			if in.TechnicianCommission.IsNegative() {
				return domain.ErrInvalidInput
			}
			svc.TechnicianCommission = *in.TechnicianCommission
		} else {
			svc.TechnicianCommission = svc.CalculateTechnicianCommission()
		}

		svc.UpdatedAt = time.Now()
		if err := r.Services.Update(svc); err != nil {
			return err
		}
		out = dto.NewServiceResponse(svc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus cambia el estado del ticket. El paso a delivered se enruta por
// Deliver, que es el único camino de cierre; un ticket entregado no admite
// más cambios de estado.
func (uc *UseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateServiceStatusRequest) (*dto.ServiceResponse, error) {
	if !entity.ValidServiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == entity.ServiceDelivered {
		return uc.Deliver(ctx, userID, id)
	}

	var out dto.ServiceResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		svc, err := r.Services.GetByID(userID, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.ErrNotFound
		}
		if svc.Status == entity.ServiceDelivered {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if in.Status == entity.ServiceCompleted && svc.CompletionDate == nil {
			svc.CompletionDate = &now
		}
		svc.Status = in.Status
		svc.UpdatedAt = now
		if err := r.Services.Update(svc); err != nil {
			return err
		}
		out = dto.NewServiceResponse(svc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Deliver entrega el ticket: fija fechas de cierre una sola vez y materializa
// la comisión del técnico en estado approved (o aprueba la ya vinculada).
// Entregar dos veces es un error.
func (uc *UseCase) Deliver(ctx context.Context, userID, id string) (*dto.ServiceResponse, error) {
	var out dto.ServiceResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		svc, err := r.Services.GetByID(userID, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.ErrNotFound
		}
		if svc.Status == entity.ServiceDelivered {
			return domain.ErrAlreadyDelivered
		}

		now := time.Now()
		svc.Status = entity.ServiceDelivered
		if svc.DeliveryDate == nil {
			svc.DeliveryDate = &now
		}
		if svc.CompletionDate == nil {
			svc.CompletionDate = &now
		}
		// La entrega cierra el ciclo de comisión del ticket en todos los casos
		svc.CommissionApproved = true

		// La tarifa quedó pactada en el ticket al asignar el técnico; su baja o
		// configuración posterior no anulan una comisión ya devengada
		if svc.TechnicianID != nil && svc.TechnicianCommission.IsPositive() {
			if svc.CommissionID != nil {
				existing, err := r.Commissions.GetByID(userID, *svc.CommissionID)
				if err != nil {
					return err
				}
				if existing != nil && existing.Status != entity.CommissionPaid {
					existing.BaseAmount = svc.LaborCost
					existing.CommissionRate = svc.TechnicianCommissionRate
					existing.CommissionAmount = svc.TechnicianCommission
					if existing.Status != entity.CommissionApproved {
						existing.Status = entity.CommissionApproved
						existing.ApprovedDate = &now
					}
					existing.UpdatedAt = now
					if err := r.Commissions.Update(existing); err != nil {
						return err
					}
				}
			} else {
				commission := &entity.Commission{
					ID:               uuid.New().String(),
					UserID:           userID,
					EmployeeID:       *svc.TechnicianID,
					Type:             entity.CommissionTypeService,
					ReferenceID:      svc.ID,
					Description:      "Comisión por servicio técnico " + svc.Device.Brand + " " + svc.Device.Model,
					BaseAmount:       svc.LaborCost,
					CommissionRate:   svc.TechnicianCommissionRate,
					CommissionAmount: svc.TechnicianCommission,
					Status:           entity.CommissionApproved,
					Date:             now,
					ApprovedDate:     &now,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				if err := r.Commissions.Create(commission); err != nil {
					return err
				}
				svc.CommissionID = &commission.ID
			}
		}

		svc.UpdatedAt = now
		if err := r.Services.Update(svc); err != nil {
			return err
		}
		out = dto.NewServiceResponse(svc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un ticket: restituye al inventario los repuestos consumidos
// y cancela las comisiones que lo referencian (se conservan para auditoría).
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		svc, err := r.Services.GetByID(userID, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		for _, part := range svc.PartsUsed {
			product, err := r.Products.GetForUpdate(userID, part.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			inventory.RestorePart(product, part.Quantity)
			product.UpdatedAt = now
			if err := r.Products.Update(product); err != nil {
				return err
			}
		}

		if _, err := r.Commissions.CancelByReference(userID, svc.ID, entity.CommissionTypeService); err != nil {
			return err
		}
		return r.Services.Delete(userID, id)
	})
}

// StatsSummary agrega el estado operativo de los tickets: conteos por estado
// y prioridad, pendientes de entrega e ingresos/comisiones de lo entregado.
func (uc *UseCase) StatsSummary(ctx context.Context, userID string) (*dto.ServiceStatsSummary, error) {
	services, err := uc.serviceRepo.List(userID, repository.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	out := dto.ServiceStatsSummary{
		Total:      len(services),
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, s := range services {
		out.ByStatus[s.Status]++
		out.ByPriority[s.Priority]++
		if s.Status == entity.ServiceCompleted {
			out.PendingDelivery++
		}
		if s.Status == entity.ServiceDelivered {
			out.Revenue = out.Revenue.Add(s.TotalCost)
			out.LaborRevenue = out.LaborRevenue.Add(s.LaborCost)
			parts := s.PartsPrice
			if parts.IsZero() {
				parts = s.PartsCost
			}
			out.PartsRevenue = out.PartsRevenue.Add(parts)
			out.Commissions = out.Commissions.Add(s.TechnicianCommission)
		}
	}
	return &out, nil
}
