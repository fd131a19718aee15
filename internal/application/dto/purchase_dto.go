package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest entrada para registrar una compra. El producto se
// resuelve por nombre (case-insensitive) + tipo dentro del tenant; si no
// existe se crea sembrado con esta compra.
type CreatePurchaseRequest struct {
	ProductName    string           `json:"product_name" validate:"required"`
	ProductType    string           `json:"product_type"`
	Quantity       decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Supplier       string           `json:"supplier"`
	Invoice        string           `json:"invoice"`
	Notes          string           `json:"notes"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
}

// UpdatePurchaseRequest entrada para editar una compra. Cambios de cantidad o
// costo ajustan retroactivamente stock y costo promedio del producto.
type UpdatePurchaseRequest struct {
	Quantity       *decimal.Decimal `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost"`
	Supplier       *string          `json:"supplier"`
	Invoice        *string          `json:"invoice"`
	Notes          *string          `json:"notes"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	ProductType    *string          `json:"product_type"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductType  string          `json:"product_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Supplier     string          `json:"supplier,omitempty"`
	Invoice      string          `json:"invoice,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseCreatedResponse compra registrada + estado resultante del producto.
type PurchaseCreatedResponse struct {
	Purchase PurchaseResponse `json:"purchase"`
	Product  ProductResponse  `json:"product"`
}

// PurchaseListResponse listado de compras.
type PurchaseListResponse struct {
	Count     int                `json:"count"`
	Purchases []PurchaseResponse `json:"purchases"`
}
