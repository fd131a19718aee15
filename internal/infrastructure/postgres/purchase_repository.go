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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, user_id, product_id, product_name, product_type, quantity, unit_cost,
	total_cost, supplier, invoice, notes, purchase_date, created_at, updated_at`

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.UserID, purchase.ProductID, purchase.ProductName, purchase.ProductType,
		purchase.Quantity, purchase.UnitCost, purchase.TotalCost, purchase.Supplier, purchase.Invoice,
		purchase.Notes, purchase.PurchaseDate, purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra del tenant por ID.
func (r *PurchaseRepo) GetByID(userID, id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE user_id = $1 AND id = $2`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.ProductType, &p.Quantity, &p.UnitCost,
		&p.TotalCost, &p.Supplier, &p.Invoice, &p.Notes, &p.PurchaseDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// Update actualiza una compra existente.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	query := `
		UPDATE purchases SET
			product_name = $3, product_type = $4, quantity = $5, unit_cost = $6, total_cost = $7,
			supplier = $8, invoice = $9, notes = $10, purchase_date = $11, updated_at = $12
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		purchase.UserID, purchase.ID, purchase.ProductName, purchase.ProductType, purchase.Quantity,
		purchase.UnitCost, purchase.TotalCost, purchase.Supplier, purchase.Invoice, purchase.Notes,
		purchase.PurchaseDate, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// Delete elimina una compra del tenant.
func (r *PurchaseRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM purchases WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// List lista compras del tenant con filtros opcionales de fecha y producto,
// más recientes primero.
func (r *PurchaseRepo) List(userID string, filter repository.PurchaseFilter) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE user_id = $1`
	args := []any{userID}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND purchase_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND purchase_date <= $` + strconv.Itoa(len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY purchase_date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.ProductType, &p.Quantity, &p.UnitCost,
			&p.TotalCost, &p.Supplier, &p.Invoice, &p.Notes, &p.PurchaseDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
