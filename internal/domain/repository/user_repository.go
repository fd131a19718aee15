package repository

import "github.com/Camilo196/Vendly/internal/domain/entity"

// UserRepository puerto de persistencia para User (tenant).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// IncrementStat incrementa un contador de uso del tenant
	// (entity.StatTotalSales / entity.StatTotalPurchases).
	IncrementStat(userID, stat string) error
}
