// Package commissions implementa el ciclo de vida de comisiones:
// pending -> approved -> paid, con cancelación terminal. Una comisión pagada
// es inmutable.
package commissions

import (
	"context"
	"time"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// UseCase casos de uso de comisiones.
type UseCase struct {
	txRunner       ports.TxRunner
	commissionRepo repository.CommissionRepository
	employeeRepo   repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	commissionRepo repository.CommissionRepository,
	employeeRepo repository.EmployeeRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		commissionRepo: commissionRepo,
		employeeRepo:   employeeRepo,
	}
}

// employeeNames resuelve los nombres de los empleados referenciados.
func (uc *UseCase) employeeNames(userID string, commissions []*entity.Commission) map[string]string {
	names := make(map[string]string)
	for _, c := range commissions {
		if _, ok := names[c.EmployeeID]; ok {
			continue
		}
		e, err := uc.employeeRepo.GetByID(userID, c.EmployeeID)
		if err != nil || e == nil {
			names[c.EmployeeID] = ""
			continue
		}
		names[c.EmployeeID] = e.Name
	}
	return names
}

// List lista comisiones con filtros opcionales y monto total del conjunto.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.CommissionFilter) (*dto.CommissionListResponse, error) {
	commissions, err := uc.commissionRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	names := uc.employeeNames(userID, commissions)
	out := dto.CommissionListResponse{
		Count:       len(commissions),
		Commissions: make([]dto.CommissionResponse, 0, len(commissions)),
	}
	for _, c := range commissions {
		out.TotalAmount = out.TotalAmount.Add(c.CommissionAmount)
		out.Commissions = append(out.Commissions, dto.NewCommissionResponse(c, names[c.EmployeeID]))
	}
	return &out, nil
}

// Get devuelve una comisión del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.CommissionResponse, error) {
	c, err := uc.commissionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := ""
	if e, err := uc.employeeRepo.GetByID(userID, c.EmployeeID); err == nil && e != nil {
		name = e.Name
	}
	out := dto.NewCommissionResponse(c, name)
	return &out, nil
}

// Approve aprueba una comisión pendiente. Aprobar una ya aprobada es
// idempotente; cualquier otro estado es una transición inválida. Para
// comisiones de servicio técnico sincroniza la bandera del ticket de origen.
func (uc *UseCase) Approve(ctx context.Context, userID, id string) (*dto.CommissionResponse, error) {
	var out dto.CommissionResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		c, err := r.Commissions.GetByID(userID, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		switch c.Status {
		case entity.CommissionApproved:
			out = dto.NewCommissionResponse(c, "")
			return nil
		case entity.CommissionPending:
		default:
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		c.Status = entity.CommissionApproved
		c.ApprovedDate = &now
		c.UpdatedAt = now
		if err := r.Commissions.Update(c); err != nil {
			return err
		}

		if c.Type == entity.CommissionTypeService {
			svc, err := r.Services.GetByID(userID, c.ReferenceID)
			if err != nil {
				return err
			}
			if svc != nil && !svc.CommissionApproved {
				svc.CommissionApproved = true
				svc.UpdatedAt = now
				if err := r.Services.Update(svc); err != nil {
					return err
				}
			}
		}
		out = dto.NewCommissionResponse(c, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Pay marca una comisión pendiente o aprobada como pagada. Una comisión
// pagada o cancelada no admite más transiciones.
func (uc *UseCase) Pay(ctx context.Context, userID, id string, in dto.PayCommissionRequest) (*dto.CommissionResponse, error) {
	c, err := uc.commissionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Status != entity.CommissionPending && c.Status != entity.CommissionApproved {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	c.Status = entity.CommissionPaid
	c.PaidDate = &now
	if in.Notes != "" {
		c.Notes = in.Notes
	}
	c.UpdatedAt = now
	if err := uc.commissionRepo.Update(c); err != nil {
		return nil, err
	}
	out := dto.NewCommissionResponse(c, "")
	return &out, nil
}

// PayBatch paga en lote las comisiones indicadas que estén pendientes o
// aprobadas; las demás se omiten sin error.
func (uc *UseCase) PayBatch(ctx context.Context, userID string, in dto.PayBatchRequest) (*dto.PayBatchResponse, error) {
	if len(in.CommissionIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paid, err := uc.commissionRepo.PayBatch(userID, in.CommissionIDs, in.Notes, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.PayBatchResponse{Paid: paid, Message: "comisiones pagadas"}, nil
}

// Cancel cancela una comisión no pagada. Es terminal y conserva el registro
// para auditoría.
func (uc *UseCase) Cancel(ctx context.Context, userID, id string) (*dto.CommissionResponse, error) {
	c, err := uc.commissionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Status == entity.CommissionPaid {
		return nil, domain.ErrInvalidTransition
	}
	if c.Status != entity.CommissionCancelled {
		c.Status = entity.CommissionCancelled
		c.UpdatedAt = time.Now()
		if err := uc.commissionRepo.Update(c); err != nil {
			return nil, err
		}
	}
	out := dto.NewCommissionResponse(c, "")
	return &out, nil
}

// MonthlyReport agrega las comisiones de un mes calendario: totales, desglose
// por tipo y estado, y acumulado por empleado. El rango cubre del primer día
// a las 00:00 hasta el último instante del mes.
func (uc *UseCase) MonthlyReport(ctx context.Context, userID string, year, month int) (*dto.MonthlyCommissionReport, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	commissions, err := uc.commissionRepo.List(userID, repository.CommissionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}
	names := uc.employeeNames(userID, commissions)

	report := dto.MonthlyCommissionReport{
		Year:      year,
		Month:     month,
		StartDate: start,
		EndDate:   end,
		Count:     len(commissions),
		ByType:    make(map[string]dto.CommissionGroup),
		ByStatus:  make(map[string]dto.CommissionGroup),
	}
	perEmployee := make(map[string]*dto.MonthlyCommissionEmployee)
	order := make([]string, 0)

	for _, c := range commissions {
		report.TotalAmount = report.TotalAmount.Add(c.CommissionAmount)

		g := report.ByType[c.Type]
		g.Count++
		g.Amount = g.Amount.Add(c.CommissionAmount)
		report.ByType[c.Type] = g

		g = report.ByStatus[c.Status]
		g.Count++
		g.Amount = g.Amount.Add(c.CommissionAmount)
		report.ByStatus[c.Status] = g

		emp, ok := perEmployee[c.EmployeeID]
		if !ok {
			emp = &dto.MonthlyCommissionEmployee{
				EmployeeID:   c.EmployeeID,
				EmployeeName: names[c.EmployeeID],
				ByType:       make(map[string]dto.CommissionGroup),
				ByStatus:     make(map[string]dto.CommissionGroup),
			}
			perEmployee[c.EmployeeID] = emp
			order = append(order, c.EmployeeID)
		}
		emp.Count++
		emp.TotalAmount = emp.TotalAmount.Add(c.CommissionAmount)

		g = emp.ByType[c.Type]
		g.Count++
		g.Amount = g.Amount.Add(c.CommissionAmount)
		emp.ByType[c.Type] = g

		g = emp.ByStatus[c.Status]
		g.Count++
		g.Amount = g.Amount.Add(c.CommissionAmount)
		emp.ByStatus[c.Status] = g
	}

	report.ByEmployee = make([]dto.MonthlyCommissionEmployee, 0, len(order))
	for _, id := range order {
		report.ByEmployee = append(report.ByEmployee, *perEmployee[id])
	}
	return &report, nil
}
