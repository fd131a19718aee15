// Package reports implementa los reportes agregados del negocio: ventas por
// período con comisiones atribuidas y el resumen general con valor de
// inventario y balance. Las respuestas se cachean con TTL corto.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
	"github.com/Camilo196/Vendly/pkg/logger"
)

// cacheTTL vigencia de los reportes cacheados.
const cacheTTL = 5 * time.Minute

// UseCase casos de uso de reportes.
type UseCase struct {
	saleRepo       repository.SaleRepository
	purchaseRepo   repository.PurchaseRepository
	productRepo    repository.ProductRepository
	serviceRepo    repository.TechnicalServiceRepository
	commissionRepo repository.CommissionRepository
	cache          ports.ReportCache
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.TechnicalServiceRepository,
	commissionRepo repository.CommissionRepository,
	cache ports.ReportCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		saleRepo:       saleRepo,
		purchaseRepo:   purchaseRepo,
		productRepo:    productRepo,
		serviceRepo:    serviceRepo,
		commissionRepo: commissionRepo,
		cache:          cache,
		log:            log,
	}
}

// activeStatuses estados de comisión que cuentan como costo del período.
// Las canceladas no representan obligación alguna.
var activeStatuses = []string{
	entity.CommissionPending,
	entity.CommissionApproved,
	entity.CommissionPaid,
}

// SalesReport arma el reporte de ventas de un período: totales, desglose por
// producto con comisiones atribuidas y ganancia neta, más el aporte de los
// servicios entregados en el rango.
func (uc *UseCase) SalesReport(ctx context.Context, userID string, start, end time.Time) (*dto.SalesReport, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	key := fmt.Sprintf("reports:%s:sales:%d:%d", userID, start.Unix(), end.Unix())
	var cached dto.SalesReport
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de reportes no disponible")
	} else if ok {
		return &cached, nil
	}

	sales, err := uc.saleRepo.List(userID, repository.SaleFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	report := dto.SalesReport{
		StartDate: start,
		EndDate:   end,
		Count:     len(sales),
	}

	// Comisiones de venta del período, atribuidas por venta de origen
	saleIDs := make([]string, 0, len(sales))
	for _, s := range sales {
		saleIDs = append(saleIDs, s.ID)
	}
	commissionByRef := make(map[string]decimal.Decimal)
	if len(saleIDs) > 0 {
		commissions, err := uc.commissionRepo.ListByReferences(userID, saleIDs, activeStatuses)
		if err != nil {
			return nil, err
		}
		for _, c := range commissions {
			commissionByRef[c.ReferenceID] = commissionByRef[c.ReferenceID].Add(c.CommissionAmount)
		}
	}

	lines := make(map[string]*dto.ProductReportLine)
	order := make([]string, 0)
	for _, s := range sales {
		report.TotalSales = report.TotalSales.Add(s.TotalSale)
		report.TotalCost = report.TotalCost.Add(s.TotalCost)

		line, ok := lines[s.ProductID]
		if !ok {
			line = &dto.ProductReportLine{ProductID: s.ProductID, ProductName: s.ProductName}
			if p, err := uc.productRepo.GetByID(userID, s.ProductID); err == nil && p != nil {
				line.ProductType = p.ProductType
			}
			lines[s.ProductID] = line
			order = append(order, s.ProductID)
		}
		line.Quantity = line.Quantity.Add(s.Quantity)
		line.TotalSales = line.TotalSales.Add(s.TotalSale)
		line.TotalCost = line.TotalCost.Add(s.TotalCost)
		line.Profit = line.Profit.Add(s.Profit)

		saleCommission := commissionByRef[s.ID]
		line.Commissions = line.Commissions.Add(saleCommission)
		report.TotalCommissions = report.TotalCommissions.Add(saleCommission)
	}
	report.GrossProfit = report.TotalSales.Sub(report.TotalCost)

	report.ByProduct = make([]dto.ProductReportLine, 0, len(order))
	for _, id := range order {
		line := lines[id]
		line.NetProfit = line.Profit.Sub(line.Commissions)
		report.ByProduct = append(report.ByProduct, *line)
	}

	// Servicios entregados dentro del rango, por fecha de entrega
	services, err := uc.serviceRepo.List(userID, repository.ServiceFilter{Status: entity.ServiceDelivered})
	if err != nil {
		return nil, err
	}
	for _, svc := range services {
		if svc.DeliveryDate == nil || svc.DeliveryDate.Before(start) || svc.DeliveryDate.After(end) {
			continue
		}
		report.Services.Count++
		report.Services.LaborRevenue = report.Services.LaborRevenue.Add(svc.LaborCost)
		parts := svc.PartsPrice
		if parts.IsZero() {
			parts = svc.PartsCost
		}
		report.Services.PartsRevenue = report.Services.PartsRevenue.Add(parts)
		report.Services.PartsCost = report.Services.PartsCost.Add(svc.PartsCost)
		report.Services.Revenue = report.Services.Revenue.Add(svc.TotalCost)
		report.Services.Commissions = report.Services.Commissions.Add(svc.TechnicianCommission)
	}
	report.Services.NetProfit = report.Services.Revenue.
		Sub(report.Services.PartsCost).
		Sub(report.Services.Commissions)

	report.TotalCommissions = report.TotalCommissions.Add(report.Services.Commissions)
	report.NetProfit = report.GrossProfit.
		Add(report.Services.Revenue.Sub(report.Services.PartsCost)).
		Sub(report.TotalCommissions)

	if err := uc.cache.Set(ctx, key, &report, cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear el reporte")
	}
	return &report, nil
}

// Summary arma el resumen general: valor de inventario a costo promedio,
// acumulados históricos de ventas/compras/comisiones y balance.
func (uc *UseCase) Summary(ctx context.Context, userID string) (*dto.BusinessSummary, error) {
	key := fmt.Sprintf("reports:%s:summary", userID)
	var cached dto.BusinessSummary
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de reportes no disponible")
	} else if ok {
		return &cached, nil
	}

	summary := dto.BusinessSummary{GeneratedAt: time.Now()}

	products, err := uc.productRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}
	summary.ActiveProducts = len(products)
	summary.Inventory = make([]dto.InventorySummaryLine, 0, len(products))
	for _, p := range products {
		value := p.Stock.Mul(p.AverageCost)
		summary.InventoryValue = summary.InventoryValue.Add(value)
		summary.Inventory = append(summary.Inventory, dto.InventorySummaryLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			AverageCost: p.AverageCost,
			Value:       value,
		})
	}

	sales, err := uc.saleRepo.List(userID, repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		summary.TotalSales = summary.TotalSales.Add(s.TotalSale)
		summary.GrossProfit = summary.GrossProfit.Add(s.Profit)
	}

	purchases, err := uc.purchaseRepo.List(userID, repository.PurchaseFilter{})
	if err != nil {
		return nil, err
	}
	for _, p := range purchases {
		// Los ajustes sintéticos no son egresos reales
		if p.IsAdjustment() {
			continue
		}
		summary.TotalPurchases = summary.TotalPurchases.Add(p.TotalCost)
	}

	commissions, err := uc.commissionRepo.List(userID, repository.CommissionFilter{})
	if err != nil {
		return nil, err
	}
	for _, c := range commissions {
		if c.Status == entity.CommissionCancelled {
			continue
		}
		summary.TotalCommissions = summary.TotalCommissions.Add(c.CommissionAmount)
	}

	services, err := uc.serviceRepo.List(userID, repository.ServiceFilter{Status: entity.ServiceDelivered})
	if err != nil {
		return nil, err
	}
	for _, svc := range services {
		summary.ServicesRevenue = summary.ServicesRevenue.Add(svc.TotalCost)
	}

	summary.Balance = summary.TotalSales.
		Add(summary.ServicesRevenue).
		Sub(summary.TotalPurchases).
		Sub(summary.TotalCommissions)

	if err := uc.cache.Set(ctx, key, &summary, cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear el reporte")
	}
	return &summary, nil
}
