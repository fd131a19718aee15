// Package purchases implementa el registro y mantenimiento de compras de
// inventario. Cada mutación corre en una transacción con la fila del producto
// bloqueada (SELECT FOR UPDATE) para que stock y costo promedio se muevan en
// serie.
package purchases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/inventory"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// UseCase casos de uso de compras.
type UseCase struct {
	txRunner     ports.TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
	}
}

// Create registra una compra. Resuelve el producto por nombre (case-insensitive)
// y tipo dentro del tenant; si no existe lo crea sembrado con esta compra. El
// costo promedio se recalcula por media ponderada y el contador de compras del
// tenant se incrementa, todo en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseCreatedResponse, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	productType := in.ProductType
	if productType == "" {
		productType = entity.ProductTypeOtro
	}
	if !entity.ValidProductType(productType) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}

	var resp dto.PurchaseCreatedResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		existing, err := r.Products.FindByNameAndType(userID, name, productType)
		if err != nil {
			return err
		}

		var product *entity.Product
		isNew := existing == nil
		if isNew {
			product = &entity.Product{
				ID:           uuid.New().String(),
				UserID:       userID,
				Name:         name,
				ProductType:  productType,
				ProfitMargin: entity.DefaultProfitMargin,
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		} else {
			// Relee con bloqueo de fila para serializar stock/costo
			product, err = r.Products.GetForUpdate(userID, existing.ID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
		}

		explicitPrice := in.SuggestedPrice != nil && in.SuggestedPrice.IsPositive()
		inventory.RegisterAcquisition(product, in.Quantity, in.UnitCost, explicitPrice)
		if explicitPrice {
			product.SuggestedPrice = *in.SuggestedPrice
		}
		if in.CommissionRate != nil {
			product.CommissionRate = in.CommissionRate
		}
		product.UpdatedAt = now

		if isNew {
			if err := r.Products.Create(product); err != nil {
				return err
			}
		} else if err := r.Products.Update(product); err != nil {
			return err
		}

		purchase := &entity.Purchase{
			ID:           uuid.New().String(),
			UserID:       userID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductType:  product.ProductType,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
			Supplier:     in.Supplier,
			Invoice:      in.Invoice,
			Notes:        in.Notes,
			PurchaseDate: purchaseDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		purchase.CalculateTotals()
		if err := r.Purchases.Create(purchase); err != nil {
			return err
		}

		if err := r.Users.IncrementStat(userID, entity.StatTotalPurchases); err != nil {
			return err
		}

		resp = dto.PurchaseCreatedResponse{
			Purchase: dto.NewPurchaseResponse(purchase),
			Product:  dto.NewProductResponse(product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get devuelve una compra del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewPurchaseResponse(purchase)
	return &out, nil
}

// List lista las compras del tenant con filtros opcionales de fecha y producto.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	purchases, err := uc.purchaseRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	out := dto.PurchaseListResponse{
		Count:     len(purchases),
		Purchases: make([]dto.PurchaseResponse, 0, len(purchases)),
	}
	for _, p := range purchases {
		out.Purchases = append(out.Purchases, dto.NewPurchaseResponse(p))
	}
	return &out, nil
}

// Update edita una compra. Cambios de cantidad o costo deshacen el aporte
// original a stock/costo promedio y aplican el nuevo, en la misma transacción.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseCreatedResponse, error) {
	var resp dto.PurchaseCreatedResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		purchase, err := r.Purchases.GetByID(userID, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetForUpdate(userID, purchase.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		oldQty, oldCost := purchase.Quantity, purchase.UnitCost

		if in.Quantity != nil {
			if !in.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
			purchase.Quantity = *in.Quantity
		}
		if in.UnitCost != nil {
			if in.UnitCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			purchase.UnitCost = *in.UnitCost
		}
		if in.Supplier != nil {
			purchase.Supplier = *in.Supplier
		}
		if in.Invoice != nil {
			purchase.Invoice = *in.Invoice
		}
		if in.Notes != nil {
			purchase.Notes = *in.Notes
		}
		if in.ProductType != nil {
			if !entity.ValidProductType(*in.ProductType) {
				return domain.ErrInvalidInput
			}
			purchase.ProductType = *in.ProductType
			product.ProductType = *in.ProductType
		}

		now := time.Now()
		inventory.EditAcquisition(product, oldQty, oldCost, purchase.Quantity, purchase.UnitCost)
		if in.SuggestedPrice != nil && in.SuggestedPrice.IsPositive() {
			product.SuggestedPrice = *in.SuggestedPrice
		}
		product.UpdatedAt = now
		if err := r.Products.Update(product); err != nil {
			return err
		}

		purchase.CalculateTotals()
		purchase.UpdatedAt = now
		if err := r.Purchases.Update(purchase); err != nil {
			return err
		}

		resp = dto.PurchaseCreatedResponse{
			Purchase: dto.NewPurchaseResponse(purchase),
			Product:  dto.NewProductResponse(product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete elimina una compra revirtiendo su aporte: resta stock y acumulado de
// compras (ambos recortados en cero). El costo promedio vigente no se recalcula.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		purchase, err := r.Purchases.GetByID(userID, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetForUpdate(userID, purchase.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		inventory.ReverseAcquisition(product, purchase.Quantity, purchase.TotalCost)
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(product); err != nil {
			return err
		}
		if err := r.Purchases.Delete(userID, id); err != nil {
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
