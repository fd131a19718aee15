package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

var _ repository.TechnicalServiceRepository = (*TechnicalServiceRepo)(nil)

const serviceColumns = `id, user_id, customer_name, customer_phone, customer_email, customer_address,
	device_type, device_brand, device_model, device_serial, problem_description, diagnosis, solution,
	status, priority, labor_cost, parts_cost, parts_price, total_cost, technician_id, technician_name,
	commission_rate, commission_amount, commission_approved, commission_id, parts_used, entry_date,
	estimated_completion_date, completion_date, delivery_date, payment_method, payment_status, notes,
	created_at, updated_at`

// TechnicalServiceRepo implementación del puerto TechnicalServiceRepository sobre PostgreSQL
// (usable con pool o tx). Los repuestos consumidos se guardan como JSONB.
type TechnicalServiceRepo struct {
	q Querier
}

// NewTechnicalServiceRepository construye el adaptador de servicios. Pasar pool o tx (Querier).
func NewTechnicalServiceRepository(q Querier) *TechnicalServiceRepo {
	return &TechnicalServiceRepo{q: q}
}

// partUsedRecord forma JSON de un repuesto consumido.
type partUsedRecord struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

func marshalParts(parts []entity.PartUsed) ([]byte, error) {
	records := make([]partUsedRecord, 0, len(parts))
	for _, p := range parts {
		records = append(records, partUsedRecord(p))
	}
	return json.Marshal(records)
}

func unmarshalParts(raw []byte) ([]entity.PartUsed, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []partUsedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	parts := make([]entity.PartUsed, 0, len(records))
	for _, rec := range records {
		parts = append(parts, entity.PartUsed(rec))
	}
	return parts, nil
}

func scanService(row pgx.Row) (*entity.TechnicalService, error) {
	var s entity.TechnicalService
	var partsRaw []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.Customer.Name, &s.Customer.Phone, &s.Customer.Email, &s.Customer.Address,
		&s.Device.Type, &s.Device.Brand, &s.Device.Model, &s.Device.SerialNumber,
		&s.ProblemDescription, &s.Diagnosis, &s.Solution, &s.Status, &s.Priority,
		&s.LaborCost, &s.PartsCost, &s.PartsPrice, &s.TotalCost, &s.TechnicianID, &s.Technician,
		&s.TechnicianCommissionRate, &s.TechnicianCommission, &s.CommissionApproved, &s.CommissionID,
		&partsRaw, &s.EntryDate, &s.EstimatedCompletionDate, &s.CompletionDate, &s.DeliveryDate,
		&s.PaymentMethod, &s.PaymentStatus, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan technical service: %w", err)
	}
	if s.PartsUsed, err = unmarshalParts(partsRaw); err != nil {
		return nil, fmt.Errorf("decode parts_used: %w", err)
	}
	return &s, nil
}

// Create persiste un servicio técnico.
func (r *TechnicalServiceRepo) Create(service *entity.TechnicalService) error {
	partsRaw, err := marshalParts(service.PartsUsed)
	if err != nil {
		return fmt.Errorf("encode parts_used: %w", err)
	}
	query := `
		INSERT INTO technical_services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35)`
	_, err = r.q.Exec(context.Background(), query,
		service.ID, service.UserID, service.Customer.Name, service.Customer.Phone,
		service.Customer.Email, service.Customer.Address, service.Device.Type, service.Device.Brand,
		service.Device.Model, service.Device.SerialNumber, service.ProblemDescription,
		service.Diagnosis, service.Solution, service.Status, service.Priority, service.LaborCost,
		service.PartsCost, service.PartsPrice, service.TotalCost, service.TechnicianID,
		service.Technician, service.TechnicianCommissionRate, service.TechnicianCommission,
		service.CommissionApproved, service.CommissionID, partsRaw, service.EntryDate,
		service.EstimatedCompletionDate, service.CompletionDate, service.DeliveryDate,
		service.PaymentMethod, service.PaymentStatus, service.Notes,
		service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert technical service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio del tenant por ID.
func (r *TechnicalServiceRepo) GetByID(userID, id string) (*entity.TechnicalService, error) {
	query := `SELECT ` + serviceColumns + ` FROM technical_services WHERE user_id = $1 AND id = $2`
	return scanService(r.q.QueryRow(context.Background(), query, userID, id))
}

// Update actualiza un servicio existente.
func (r *TechnicalServiceRepo) Update(service *entity.TechnicalService) error {
	partsRaw, err := marshalParts(service.PartsUsed)
	if err != nil {
		return fmt.Errorf("encode parts_used: %w", err)
	}
	query := `
		UPDATE technical_services SET
			customer_name = $3, customer_phone = $4, customer_email = $5, customer_address = $6,
			device_type = $7, device_brand = $8, device_model = $9, device_serial = $10,
			problem_description = $11, diagnosis = $12, solution = $13, status = $14, priority = $15,
			labor_cost = $16, parts_cost = $17, parts_price = $18, total_cost = $19,
			technician_id = $20, technician_name = $21, commission_rate = $22, commission_amount = $23,
			commission_approved = $24, commission_id = $25, parts_used = $26,
			estimated_completion_date = $27, completion_date = $28, delivery_date = $29,
			payment_method = $30, payment_status = $31, notes = $32, updated_at = $33
		WHERE user_id = $1 AND id = $2`
	_, err = r.q.Exec(context.Background(), query,
		service.UserID, service.ID, service.Customer.Name, service.Customer.Phone,
		service.Customer.Email, service.Customer.Address, service.Device.Type, service.Device.Brand,
		service.Device.Model, service.Device.SerialNumber, service.ProblemDescription,
		service.Diagnosis, service.Solution, service.Status, service.Priority, service.LaborCost,
		service.PartsCost, service.PartsPrice, service.TotalCost, service.TechnicianID,
		service.Technician, service.TechnicianCommissionRate, service.TechnicianCommission,
		service.CommissionApproved, service.CommissionID, partsRaw,
		service.EstimatedCompletionDate, service.CompletionDate, service.DeliveryDate,
		service.PaymentMethod, service.PaymentStatus, service.Notes, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update technical service: %w", err)
	}
	return nil
}

// Delete elimina un servicio del tenant.
func (r *TechnicalServiceRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM technical_services WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete technical service: %w", err)
	}
	return nil
}

// List lista servicios del tenant con filtros opcionales, más recientes primero.
// El filtro de fechas aplica sobre la fecha de ingreso.
func (r *TechnicalServiceRepo) List(userID string, filter repository.ServiceFilter) ([]*entity.TechnicalService, error) {
	query := `SELECT ` + serviceColumns + ` FROM technical_services WHERE user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += ` AND priority = $` + strconv.Itoa(len(args))
	}
	if filter.Customer != "" {
		args = append(args, "%"+filter.Customer+"%")
		query += ` AND customer_name ILIKE $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY entry_date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list technical services: %w", err)
	}
	defer rows.Close()
	var list []*entity.TechnicalService
	for rows.Next() {
		var s entity.TechnicalService
		var partsRaw []byte
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Customer.Name, &s.Customer.Phone, &s.Customer.Email, &s.Customer.Address,
			&s.Device.Type, &s.Device.Brand, &s.Device.Model, &s.Device.SerialNumber,
			&s.ProblemDescription, &s.Diagnosis, &s.Solution, &s.Status, &s.Priority,
			&s.LaborCost, &s.PartsCost, &s.PartsPrice, &s.TotalCost, &s.TechnicianID, &s.Technician,
			&s.TechnicianCommissionRate, &s.TechnicianCommission, &s.CommissionApproved, &s.CommissionID,
			&partsRaw, &s.EntryDate, &s.EstimatedCompletionDate, &s.CompletionDate, &s.DeliveryDate,
			&s.PaymentMethod, &s.PaymentStatus, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan technical service: %w", err)
		}
		if s.PartsUsed, err = unmarshalParts(partsRaw); err != nil {
			return nil, fmt.Errorf("decode parts_used: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
