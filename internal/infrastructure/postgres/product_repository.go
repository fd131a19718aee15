package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, product_type, commission_rate, stock, average_cost,
	suggested_price, profit_margin, total_purchased, total_sold, category, brand, description,
	is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.ProductType, &p.CommissionRate, &p.Stock, &p.AverageCost,
		&p.SuggestedPrice, &p.ProfitMargin, &p.TotalPurchased, &p.TotalSold, &p.Category, &p.Brand,
		&p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// Create persiste un nuevo producto. Stock y AverageCost inician según la entidad.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Name, product.ProductType, product.CommissionRate,
		product.Stock, product.AverageCost, product.SuggestedPrice, product.ProfitMargin,
		product.TotalPurchased, product.TotalSold, product.Category, product.Brand,
		product.Description, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del tenant por ID.
func (r *ProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2`
	return scanProduct(r.q.QueryRow(context.Background(), query, userID, id))
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para serializar
// mutaciones concurrentes de stock/costo. Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2 FOR UPDATE`
	return scanProduct(r.q.QueryRow(context.Background(), query, userID, id))
}

// FindByNameAndType busca por nombre (case-insensitive) y tipo exacto dentro del tenant.
func (r *ProductRepo) FindByNameAndType(userID, name, productType string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND lower(name) = lower($2) AND product_type = $3`
	return scanProduct(r.q.QueryRow(context.Background(), query, userID, name, productType))
}

// FindByName busca por nombre (case-insensitive), cualquier tipo.
func (r *ProductRepo) FindByName(userID, name string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND lower(name) = lower($2)
		ORDER BY created_at LIMIT 1`
	return scanProduct(r.q.QueryRow(context.Background(), query, userID, name))
}

// Update actualiza un producto existente, incluidos stock y costo promedio.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $3, product_type = $4, commission_rate = $5, stock = $6, average_cost = $7,
			suggested_price = $8, profit_margin = $9, total_purchased = $10, total_sold = $11,
			category = $12, brand = $13, description = $14, is_active = $15, updated_at = $16
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.UserID, product.ID, product.Name, product.ProductType, product.CommissionRate,
		product.Stock, product.AverageCost, product.SuggestedPrice, product.ProfitMargin,
		product.TotalPurchased, product.TotalSold, product.Category, product.Brand,
		product.Description, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListActive lista los productos activos del tenant.
func (r *ProductRepo) ListActive(userID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND is_active = true ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.ProductType, &p.CommissionRate, &p.Stock, &p.AverageCost,
			&p.SuggestedPrice, &p.ProfitMargin, &p.TotalPurchased, &p.TotalSold, &p.Category, &p.Brand,
			&p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ReactivateAll reactiva los productos desactivados del tenant.
func (r *ProductRepo) ReactivateAll(userID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = true, updated_at = now() WHERE user_id = $1 AND is_active = false`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("reactivate products: %w", err)
	}
	return cmd.RowsAffected(), nil
}
