package repository

import "github.com/Camilo196/Vendly/internal/domain/entity"

// ProductRepository puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas al tenant (userID).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(userID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes de stock/costo dentro de una tx.
	GetForUpdate(userID, id string) (*entity.Product, error)
	// FindByNameAndType busca por nombre (case-insensitive) y tipo exacto.
	FindByNameAndType(userID, name, productType string) (*entity.Product, error)
	// FindByName busca por nombre (case-insensitive), cualquier tipo.
	FindByName(userID, name string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListActive(userID string) ([]*entity.Product, error)
	// ReactivateAll reactiva los productos desactivados del tenant. Devuelve cuántos modificó.
	ReactivateAll(userID string) (int64, error)
}
