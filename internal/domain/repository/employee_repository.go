package repository

import "github.com/Camilo196/Vendly/internal/domain/entity"

// EmployeeFilter filtros para listar empleados.
type EmployeeFilter struct {
	IsActive *bool
	Position string
}

// EmployeeRepository puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(userID, id string) (*entity.Employee, error)
	// GetActiveByID devuelve el empleado solo si está activo.
	GetActiveByID(userID, id string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	List(userID string, filter EmployeeFilter) ([]*entity.Employee, error)
}
