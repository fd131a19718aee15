package repository

import (
	"time"

	"github.com/Camilo196/Vendly/internal/domain/entity"
)

// ServiceFilter filtros para listar servicios técnicos.
type ServiceFilter struct {
	Status    string
	Priority  string
	Customer  string // match parcial sobre el nombre del cliente
	StartDate *time.Time
	EndDate   *time.Time
}

// TechnicalServiceRepository puerto de persistencia para TechnicalService.
type TechnicalServiceRepository interface {
	Create(service *entity.TechnicalService) error
	GetByID(userID, id string) (*entity.TechnicalService, error)
	Update(service *entity.TechnicalService) error
	Delete(userID, id string) error
	List(userID string, filter ServiceFilter) ([]*entity.TechnicalService, error)
}
