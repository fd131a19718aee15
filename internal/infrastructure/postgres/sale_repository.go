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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, user_id, product_id, product_name, quantity, unit_price, unit_cost,
	total_sale, total_cost, profit, employee_id, customer, payment_method, notes, sale_date,
	created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.UserID, sale.ProductID, sale.ProductName, sale.Quantity, sale.UnitPrice,
		sale.UnitCost, sale.TotalSale, sale.TotalCost, sale.Profit, sale.EmployeeID, sale.Customer,
		sale.PaymentMethod, sale.Notes, sale.SaleDate, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta del tenant por ID.
func (r *SaleRepo) GetByID(userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 AND id = $2`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&s.ID, &s.UserID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.UnitCost,
		&s.TotalSale, &s.TotalCost, &s.Profit, &s.EmployeeID, &s.Customer, &s.PaymentMethod,
		&s.Notes, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update actualiza una venta existente. El snapshot unit_cost no cambia.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET
			quantity = $3, unit_price = $4, total_sale = $5, total_cost = $6, profit = $7,
			employee_id = $8, customer = $9, payment_method = $10, notes = $11, updated_at = $12
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		sale.UserID, sale.ID, sale.Quantity, sale.UnitPrice, sale.TotalSale, sale.TotalCost,
		sale.Profit, sale.EmployeeID, sale.Customer, sale.PaymentMethod, sale.Notes, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina una venta del tenant.
func (r *SaleRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sales WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List lista ventas del tenant con filtros opcionales, más recientes primero.
func (r *SaleRepo) List(userID string, filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1`
	args := []any{userID}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY sale_date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.UnitCost,
			&s.TotalSale, &s.TotalCost, &s.Profit, &s.EmployeeID, &s.Customer, &s.PaymentMethod,
			&s.Notes, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
