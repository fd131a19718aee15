package repository

import (
	"time"

	"github.com/Camilo196/Vendly/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProductID string
}

// SaleRepository puerto de persistencia para Sale.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(userID, id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(userID, id string) error
	List(userID string, filter SaleFilter) ([]*entity.Sale, error)
}
