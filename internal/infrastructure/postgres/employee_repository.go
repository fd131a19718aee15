package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, user_id, name, email, phone, position, sales_enabled, sales_rate,
	services_enabled, services_rate, is_active, hire_date, notes, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.Email, &e.Phone, &e.Position,
		&e.CommissionConfig.SalesEnabled, &e.CommissionConfig.SalesRate,
		&e.CommissionConfig.ServicesEnabled, &e.CommissionConfig.ServicesRate,
		&e.IsActive, &e.HireDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

// Create persiste un empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.UserID, employee.Name, employee.Email, employee.Phone, employee.Position,
		employee.CommissionConfig.SalesEnabled, employee.CommissionConfig.SalesRate,
		employee.CommissionConfig.ServicesEnabled, employee.CommissionConfig.ServicesRate,
		employee.IsActive, employee.HireDate, employee.Notes, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado del tenant por ID.
func (r *EmployeeRepo) GetByID(userID, id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1 AND id = $2`
	return scanEmployee(r.q.QueryRow(context.Background(), query, userID, id))
}

// GetActiveByID devuelve el empleado solo si está activo.
func (r *EmployeeRepo) GetActiveByID(userID, id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1 AND id = $2 AND is_active = true`
	return scanEmployee(r.q.QueryRow(context.Background(), query, userID, id))
}

// Update actualiza un empleado existente.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET
			name = $3, email = $4, phone = $5, position = $6, sales_enabled = $7, sales_rate = $8,
			services_enabled = $9, services_rate = $10, is_active = $11, hire_date = $12,
			notes = $13, updated_at = $14
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		employee.UserID, employee.ID, employee.Name, employee.Email, employee.Phone, employee.Position,
		employee.CommissionConfig.SalesEnabled, employee.CommissionConfig.SalesRate,
		employee.CommissionConfig.ServicesEnabled, employee.CommissionConfig.ServicesRate,
		employee.IsActive, employee.HireDate, employee.Notes, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// List lista empleados con filtros opcionales de cargo y estado.
func (r *EmployeeRepo) List(userID string, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`
	args := []any{userID}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += ` AND is_active = $` + strconv.Itoa(len(args))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		query += ` AND position = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Name, &e.Email, &e.Phone, &e.Position,
			&e.CommissionConfig.SalesEnabled, &e.CommissionConfig.SalesRate,
			&e.CommissionConfig.ServicesEnabled, &e.CommissionConfig.ServicesRate,
			&e.IsActive, &e.HireDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
