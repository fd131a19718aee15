// Package sales implementa el registro y mantenimiento de ventas, incluida la
// generación condicional de comisiones para el vendedor.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/inventory"
	"github.com/Camilo196/Vendly/internal/domain/repository"
	"github.com/Camilo196/Vendly/pkg/logger"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner       ports.TxRunner
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	employeeRepo   repository.EmployeeRepository
	commissionRepo repository.CommissionRepository
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	commissionRepo repository.CommissionRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		employeeRepo:   employeeRepo,
		commissionRepo: commissionRepo,
		log:            log,
	}
}

// buildSaleCommission arma la comisión de una venta si aplican todas las
// condiciones: vendedor activo con comisiones de venta habilitadas, producto
// tipo celular y ganancia positiva. Devuelve nil cuando no corresponde
// comisión. Una tasa efectiva de cero genera una comisión de monto cero:
// el registro de atribución existe aunque no haya monto que pagar.
func buildSaleCommission(sale *entity.Sale, product *entity.Product, employee *entity.Employee, now time.Time) *entity.Commission {
	if employee == nil || !employee.CommissionConfig.SalesEnabled {
		return nil
	}
	if product.ProductType != entity.ProductTypeCelular {
		return nil
	}
	if !sale.Profit.IsPositive() {
		return nil
	}
	rate := inventory.SaleCommissionRate(product, employee)
	c := &entity.Commission{
		ID:             uuid.New().String(),
		UserID:         sale.UserID,
		EmployeeID:     employee.ID,
		Type:           entity.CommissionTypeSale,
		ReferenceID:    sale.ID,
		Description:    "Comisión por venta de " + product.Name,
		BaseAmount:     sale.Profit,
		CommissionRate: rate,
		Status:         entity.CommissionPending,
		Date:           sale.SaleDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.CalculateAmount()
	return c
}

// Create registra una venta: valida stock y costo registrado, toma snapshot
// del costo promedio, descuenta stock y acumula el total vendido en la misma
// transacción. La comisión se intenta después del commit: si falla, la venta
// queda firme y la respuesta lleva una advertencia.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleCreatedResponse, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	payment := in.PaymentMethod
	if payment == "" {
		payment = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(payment) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	var (
		resp       dto.SaleCreatedResponse
		commission *entity.Commission
	)
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetForUpdate(userID, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Sin costo promedio registrado no hay con qué valuar la salida
		if !product.AverageCost.IsPositive() {
			return domain.ErrNoRegisteredCost
		}

		sale := &entity.Sale{
			ID:            uuid.New().String(),
			UserID:        userID,
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			UnitCost:      product.AverageCost,
			Customer:      in.Customer,
			PaymentMethod: payment,
			Notes:         in.Notes,
			SaleDate:      saleDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if in.EmployeeID != nil && *in.EmployeeID != "" {
			sale.EmployeeID = in.EmployeeID
		}
		sale.CalculateTotals()

		if err := inventory.RegisterDisposal(product, sale.Quantity, sale.TotalSale); err != nil {
			return err
		}
		product.UpdatedAt = now
		if err := r.Products.Update(product); err != nil {
			return err
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		if err := r.Users.IncrementStat(userID, entity.StatTotalSales); err != nil {
			return err
		}

		if sale.EmployeeID != nil {
			employee, err := r.Employees.GetActiveByID(userID, *sale.EmployeeID)
			if err != nil {
				return err
			}
			commission = buildSaleCommission(sale, product, employee, now)
		}

		resp = dto.SaleCreatedResponse{
			Sale:    dto.NewSaleResponse(sale),
			Product: dto.NewProductResponse(product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// La venta ya está confirmada; un fallo aquí no la revierte
	if commission != nil {
		if err := uc.commissionRepo.Create(commission); err != nil {
			uc.log.Warn().Err(err).
				Str("sale_id", resp.Sale.ID).
				Str("employee_id", commission.EmployeeID).
				Msg("venta registrada pero la comisión no pudo generarse")
			resp.CommissionWarning = "la venta se registró pero la comisión no pudo generarse"
		} else {
			c := dto.NewCommissionResponse(commission, "")
			resp.Commission = &c
		}
	}
	return &resp, nil
}

// Get devuelve una venta del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// List lista ventas con filtros opcionales y totales agregados del período.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	out := dto.SaleListResponse{
		Count: len(sales),
		Sales: make([]dto.SaleResponse, 0, len(sales)),
	}
	for _, s := range sales {
		out.TotalSales = out.TotalSales.Add(s.TotalSale)
		out.TotalProfit = out.TotalProfit.Add(s.Profit)
		out.Sales = append(out.Sales, dto.NewSaleResponse(s))
	}
	return &out, nil
}

// Update edita una venta. El stock se ajusta por la diferencia de cantidades
// (con verificación de suficiencia) y la comisión asociada se descarta y se
// recrea bajo las reglas vigentes, todo en la misma transacción. El snapshot
// de costo unitario de la venta no cambia.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSaleRequest) (*dto.SaleCreatedResponse, error) {
	var resp dto.SaleCreatedResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		sale, err := r.Sales.GetByID(userID, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetForUpdate(userID, sale.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		oldQty, oldTotalSale := sale.Quantity, sale.TotalSale

		if in.Quantity != nil {
			if !in.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
			sale.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			sale.UnitPrice = *in.UnitPrice
		}
		if in.EmployeeID != nil {
			if *in.EmployeeID == "" {
				sale.EmployeeID = nil
			} else {
				sale.EmployeeID = in.EmployeeID
			}
		}
		if in.Customer != nil {
			sale.Customer = *in.Customer
		}
		if in.PaymentMethod != nil {
			if !entity.ValidPaymentMethod(*in.PaymentMethod) {
				return domain.ErrInvalidInput
			}
			sale.PaymentMethod = *in.PaymentMethod
		}
		if in.Notes != nil {
			sale.Notes = *in.Notes
		}
		sale.CalculateTotals()

		// Devuelve el aporte viejo y aplica el nuevo; falla si el stock no alcanza
		inventory.ReverseDisposal(product, oldQty, oldTotalSale)
		if err := inventory.RegisterDisposal(product, sale.Quantity, sale.TotalSale); err != nil {
			return err
		}

		now := time.Now()
		product.UpdatedAt = now
		if err := r.Products.Update(product); err != nil {
			return err
		}
		sale.UpdatedAt = now
		if err := r.Sales.Update(sale); err != nil {
			return err
		}

		// Las comisiones de la venta se recrean desde cero bajo las reglas vigentes
		if err := r.Commissions.DeleteByReference(userID, sale.ID, entity.CommissionTypeSale); err != nil {
			return err
		}
		var commission *entity.Commission
		if sale.EmployeeID != nil {
			employee, err := r.Employees.GetActiveByID(userID, *sale.EmployeeID)
			if err != nil {
				return err
			}
			commission = buildSaleCommission(sale, product, employee, now)
			if commission != nil {
				if err := r.Commissions.Create(commission); err != nil {
					return err
				}
			}
		}

		resp = dto.SaleCreatedResponse{
			Sale:    dto.NewSaleResponse(sale),
			Product: dto.NewProductResponse(product),
		}
		if commission != nil {
			c := dto.NewCommissionResponse(commission, "")
			resp.Commission = &c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete elimina una venta: restituye el stock, resta el total vendido y borra
// las comisiones que la referencian, en la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		sale, err := r.Sales.GetByID(userID, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetForUpdate(userID, sale.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		inventory.ReverseDisposal(product, sale.Quantity, sale.TotalSale)
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(product); err != nil {
			return err
		}
		if err := r.Commissions.DeleteByReference(userID, sale.ID, entity.CommissionTypeSale); err != nil {
			return err
		}
		if err := r.Sales.Delete(userID, id); err != nil {
			return err
		}
		out = dto.NewProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
