package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductReportLine acumulado de ventas de un producto en el período.
type ProductReportLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductType string          `json:"product_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Profit      decimal.Decimal `json:"profit"`
	Commissions decimal.Decimal `json:"commissions"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// ServiceReportBreakdown desglose de servicios entregados en el período.
type ServiceReportBreakdown struct {
	Count        int             `json:"count"`
	LaborRevenue decimal.Decimal `json:"labor_revenue"`
	PartsRevenue decimal.Decimal `json:"parts_revenue"`
	PartsCost    decimal.Decimal `json:"parts_cost"`
	Revenue      decimal.Decimal `json:"revenue"`
	Commissions  decimal.Decimal `json:"commissions"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// SalesReport reporte de ventas de un período.
type SalesReport struct {
	StartDate        time.Time              `json:"start_date"`
	EndDate          time.Time              `json:"end_date"`
	Count            int                    `json:"count"`
	TotalSales       decimal.Decimal        `json:"total_sales"`
	TotalCost        decimal.Decimal        `json:"total_cost"`
	GrossProfit      decimal.Decimal        `json:"gross_profit"`
	TotalCommissions decimal.Decimal        `json:"total_commissions"`
	NetProfit        decimal.Decimal        `json:"net_profit"`
	ByProduct        []ProductReportLine    `json:"by_product"`
	Services         ServiceReportBreakdown `json:"services"`
}

// InventorySummaryLine valor de inventario de un producto.
type InventorySummaryLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Stock       decimal.Decimal `json:"stock"`
	AverageCost decimal.Decimal `json:"average_cost"`
	Value       decimal.Decimal `json:"value"`
}

// BusinessSummary resumen general del negocio.
type BusinessSummary struct {
	GeneratedAt      time.Time              `json:"generated_at"`
	InventoryValue   decimal.Decimal        `json:"inventory_value"`
	ActiveProducts   int                    `json:"active_products"`
	TotalSales       decimal.Decimal        `json:"total_sales"`
	TotalPurchases   decimal.Decimal        `json:"total_purchases"`
	GrossProfit      decimal.Decimal        `json:"gross_profit"`
	TotalCommissions decimal.Decimal        `json:"total_commissions"`
	ServicesRevenue  decimal.Decimal        `json:"services_revenue"`
	Balance          decimal.Decimal        `json:"balance"`
	Inventory        []InventorySummaryLine `json:"inventory"`
}
