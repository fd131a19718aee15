// Package employees implementa el mantenimiento del personal del local.
// La eliminación es lógica: el empleado queda inactivo y sus comisiones
// históricas se conservan.
package employees

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// UseCase casos de uso de empleados.
type UseCase struct {
	employeeRepo repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(employeeRepo repository.EmployeeRepository) *UseCase {
	return &UseCase{employeeRepo: employeeRepo}
}

func applyCommissionConfig(cfg *entity.CommissionConfig, in *dto.CommissionConfigDTO) error {
	if in == nil {
		return nil
	}
	if in.SalesRate.IsNegative() || in.ServicesRate.IsNegative() {
		return domain.ErrInvalidInput
	}
	cfg.SalesEnabled = in.SalesEnabled
	cfg.SalesRate = in.SalesRate
	cfg.ServicesEnabled = in.ServicesEnabled
	cfg.ServicesRate = in.ServicesRate
	return nil
}

// Create registra un empleado. Sin configuración explícita hereda las tasas
// por defecto (ventas 5%, servicios 10%).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	position := in.Position
	if position == "" {
		position = entity.PositionVendedor
	}
	if !entity.ValidPosition(position) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	hireDate := now
	if in.HireDate != nil {
		hireDate = *in.HireDate
	}
	employee := &entity.Employee{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             name,
		Email:            in.Email,
		Phone:            in.Phone,
		Position:         position,
		CommissionConfig: entity.DefaultCommissionConfig(),
		IsActive:         true,
		HireDate:         hireDate,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := applyCommissionConfig(&employee.CommissionConfig, in.CommissionConfig); err != nil {
		return nil, err
	}
	if err := uc.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	out := dto.NewEmployeeResponse(employee)
	return &out, nil
}

// Get devuelve un empleado del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewEmployeeResponse(employee)
	return &out, nil
}

// List lista empleados con filtros opcionales de cargo y estado.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.EmployeeFilter) (*dto.EmployeeListResponse, error) {
	employees, err := uc.employeeRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	out := dto.EmployeeListResponse{
		Count:     len(employees),
		Employees: make([]dto.EmployeeResponse, 0, len(employees)),
	}
	for _, e := range employees {
		out.Employees = append(out.Employees, dto.NewEmployeeResponse(e))
	}
	return &out, nil
}

// Update edita un empleado. Cambiar las tasas de comisión solo afecta
// transacciones futuras; las comisiones ya generadas conservan su tasa.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Name = name
	}
	if in.Position != nil {
		if !entity.ValidPosition(*in.Position) {
			return nil, domain.ErrInvalidInput
		}
		employee.Position = *in.Position
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.Email != nil {
		employee.Email = *in.Email
	}
	if in.Notes != nil {
		employee.Notes = *in.Notes
	}
	if in.IsActive != nil {
		employee.IsActive = *in.IsActive
	}
	if err := applyCommissionConfig(&employee.CommissionConfig, in.CommissionConfig); err != nil {
		return nil, err
	}

	employee.UpdatedAt = time.Now()
	if err := uc.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	out := dto.NewEmployeeResponse(employee)
	return &out, nil
}

// Deactivate baja lógica del empleado. No toca comisiones existentes; las
// transacciones nuevas dejan de poder asignárselo.
func (uc *UseCase) Deactivate(ctx context.Context, userID, id string) error {
	employee, err := uc.employeeRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	if !employee.IsActive {
		return nil
	}
	employee.IsActive = false
	employee.UpdatedAt = time.Now()
	return uc.employeeRepo.Update(employee)
}
