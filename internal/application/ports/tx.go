package ports

import (
	"context"

	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// TxRepos conjunto de repositorios atados a una misma transacción.
type TxRepos struct {
	Products    repository.ProductRepository
	Purchases   repository.PurchaseRepository
	Sales       repository.SaleRepository
	Employees   repository.EmployeeRepository
	Commissions repository.CommissionRepository
	Services    repository.TechnicalServiceRepository
	Users       repository.UserRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todas las mutaciones de una
// operación lógica (compra/venta/servicio + producto + comisión + stats)
// se confirmen o reviertan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
