package repository

import (
	"time"

	"github.com/Camilo196/Vendly/internal/domain/entity"
)

// PurchaseFilter filtros para listar compras.
type PurchaseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProductID string
}

// PurchaseRepository puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(userID, id string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	Delete(userID, id string) error
	List(userID string, filter PurchaseFilter) ([]*entity.Purchase, error)
}
