package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto explícitamente
// (también se crean implícitamente al registrar la primera compra).
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	ProductType    string           `json:"product_type"`
	Category       string           `json:"category"`
	Brand          string           `json:"brand"`
	Description    string           `json:"description"`
	ProfitMargin   *decimal.Decimal `json:"profit_margin"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// UpdateProductRequest entrada para actualizar un producto. Stock y
// AverageCost no se tocan por aquí: se manejan vía compras/ventas/ajustes.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	ProductType    *string          `json:"product_type"`
	Category       *string          `json:"category"`
	Brand          *string          `json:"brand"`
	Description    *string          `json:"description"`
	ProfitMargin   *decimal.Decimal `json:"profit_margin"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// AdjustStockRequest ajuste manual de inventario (delta positivo o negativo).
type AdjustStockRequest struct {
	Adjustment decimal.Decimal `json:"adjustment" validate:"required"`
	Reason     string          `json:"reason" validate:"required"`
}

// AdjustStockResponse resultado del ajuste con stock antes/después.
type AdjustStockResponse struct {
	Product  ProductResponse `json:"product"`
	OldStock decimal.Decimal `json:"old_stock"`
	NewStock decimal.Decimal `json:"new_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	ProductType    string           `json:"product_type"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Stock          decimal.Decimal  `json:"stock"`
	AverageCost    decimal.Decimal  `json:"average_cost"`
	SuggestedPrice decimal.Decimal  `json:"suggested_price"`
	ProfitMargin   decimal.Decimal  `json:"profit_margin"`
	TotalPurchased decimal.Decimal  `json:"total_purchased"`
	TotalSold      decimal.Decimal  `json:"total_sold"`
	Category       string           `json:"category,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Description    string           `json:"description,omitempty"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}
