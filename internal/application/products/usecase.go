// Package products implementa el mantenimiento del catálogo: altas, edición,
// ajustes manuales de stock con registro de auditoría y desactivación.
package products

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

// UseCase casos de uso del catálogo de productos.
type UseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo}
}

// Create da de alta un producto sin stock. El stock y el costo entran después
// vía compras. Nombre + tipo es único por tenant (case-insensitive).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	productType := in.ProductType
	if productType == "" {
		productType = entity.ProductTypeOtro
	}
	if !entity.ValidProductType(productType) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.FindByNameAndType(userID, name, productType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		ProductType:    productType,
		CommissionRate: in.CommissionRate,
		ProfitMargin:   entity.DefaultProfitMargin,
		Category:       in.Category,
		Brand:          in.Brand,
		Description:    in.Description,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.ProfitMargin != nil && !in.ProfitMargin.IsNegative() {
		product.ProfitMargin = *in.ProfitMargin
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Get devuelve un producto del tenant.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// List lista los productos activos del tenant.
func (uc *UseCase) List(ctx context.Context, userID string) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}
	out := dto.ProductListResponse{
		Count:    len(products),
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.NewProductResponse(p))
	}
	return &out, nil
}

// Update edita los campos descriptivos y de precio de un producto. Stock y
// costo promedio no se tocan por aquí.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.ProductType != nil {
		if !entity.ValidProductType(*in.ProductType) {
			return nil, domain.ErrInvalidInput
		}
		product.ProductType = *in.ProductType
	}
	if in.Name != nil || in.ProductType != nil {
		dup, err := uc.productRepo.FindByNameAndType(userID, product.Name, product.ProductType)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CommissionRate != nil {
		if in.CommissionRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CommissionRate = in.CommissionRate
	}
	if in.ProfitMargin != nil {
		if in.ProfitMargin.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ProfitMargin = *in.ProfitMargin
		product.UpdateSuggestedPrice()
	}
	// El precio explícito manda sobre el recalculado por margen
	if in.SuggestedPrice != nil {
		if in.SuggestedPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SuggestedPrice = *in.SuggestedPrice
	}

	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// AdjustStock corrige manualmente el stock de un producto y deja una compra
// sintética de auditoría (proveedor AJUSTE POSITIVO/NEGATIVO). Es el único
// canal para corregir inventario sin una compra o venta real.
func (uc *UseCase) AdjustStock(ctx context.Context, userID, id string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.Adjustment.IsZero() || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetForUpdate(userID, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		oldStock, newStock := inventory.AdjustStock(product, in.Adjustment)
		product.UpdatedAt = now
		if err := r.Products.Update(product); err != nil {
			return err
		}

		// Registro sintético para que el ajuste quede en el historial de compras
		applied := newStock.Sub(oldStock)
		supplier := entity.SupplierAdjustPositive
		if applied.IsNegative() {
			supplier = entity.SupplierAdjustNegative
		}
		audit := &entity.Purchase{
			ID:           uuid.New().String(),
			UserID:       userID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductType:  product.ProductType,
			Quantity:     applied.Abs(),
			UnitCost:     product.AverageCost,
			Supplier:     supplier,
			Notes:        in.Reason,
			PurchaseDate: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		audit.CalculateTotals()
		if err := r.Purchases.Create(audit); err != nil {
			return err
		}

		resp = dto.AdjustStockResponse{
			Product:  dto.NewProductResponse(product),
			OldStock: oldStock,
			NewStock: newStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Deactivate desactiva un producto sin stock. Con stock en mano se rechaza:
// primero hay que venderlo o ajustarlo a cero.
func (uc *UseCase) Deactivate(ctx context.Context, userID, id string) error {
	product, err := uc.productRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.Stock.IsPositive() {
		return domain.ErrProductHasStock
	}
	product.IsActive = false
	product.UpdatedAt = time.Now()
	return uc.productRepo.Update(product)
}

// ReactivateAll reactiva todos los productos desactivados del tenant.
func (uc *UseCase) ReactivateAll(ctx context.Context, userID string) (int64, error) {
	return uc.productRepo.ReactivateAll(userID)
}
