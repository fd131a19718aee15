package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/reports"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/infrastructure/cache"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
	"github.com/Camilo196/Vendly/pkg/logger"
)

const (
	testUser     = "00000000-0000-0000-0000-0000000000aa"
	testProduct  = "00000000-0000-0000-0000-0000000000bb"
	testEmployee = "00000000-0000-0000-0000-0000000000cc"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase() (*reports.UseCase, *memory.Store) {
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := reports.NewUseCase(
		store.Sales(), store.Purchases(), store.Products(),
		store.Services(), store.Commissions(),
		cache.NewNoop(), log,
	)
	return uc, store
}

func seedProduct(t *testing.T, store *memory.Store, stock, avgCost int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:          testProduct,
		UserID:      testUser,
		Name:        "iPhone 12",
		ProductType: entity.ProductTypeCelular,
		Stock:       decimal.NewFromInt(stock),
		AverageCost: decimal.NewFromInt(avgCost),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func seedSale(t *testing.T, store *memory.Store, id string, qty, price, cost int64, date time.Time) {
	t.Helper()
	s := &entity.Sale{
		ID:          id,
		UserID:      testUser,
		ProductID:   testProduct,
		ProductName: "iPhone 12",
		Quantity:    decimal.NewFromInt(qty),
		UnitPrice:   decimal.NewFromInt(price),
		UnitCost:    decimal.NewFromInt(cost),
		SaleDate:    date,
		CreatedAt:   date,
		UpdatedAt:   date,
	}
	s.CalculateTotals()
	require.NoError(t, store.Sales().Create(s))
}

func seedCommission(t *testing.T, store *memory.Store, id, refID, status string, amount int64, date time.Time) {
	t.Helper()
	c := &entity.Commission{
		ID:             id,
		UserID:         testUser,
		EmployeeID:     testEmployee,
		Type:           entity.CommissionTypeSale,
		ReferenceID:    refID,
		BaseAmount:     decimal.NewFromInt(amount),
		CommissionRate: decimal.NewFromInt(100),
		Status:         status,
		Date:           date,
		CreatedAt:      date,
		UpdatedAt:      date,
	}
	c.CalculateAmount()
	require.NoError(t, store.Commissions().Create(c))
}

func TestSalesReport_RangoInvertido(t *testing.T) {
	uc, _ := newUseCase()
	now := time.Now()
	_, err := uc.SalesReport(context.Background(), testUser, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesReport_TotalesYComisionesAtribuidas(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, 8, 100)

	mid := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.Local)

	// Dos ventas en el rango, una fuera
	seedSale(t, store, "s1", 2, 150, 100, mid) // total 300, profit 100
	seedSale(t, store, "s2", 1, 200, 100, mid) // total 200, profit 100
	seedSale(t, store, "s3", 5, 150, 100, mid.AddDate(0, 2, 0))

	// Comisión activa de s1, cancelada de s2 (no cuenta)
	seedCommission(t, store, "c1", "s1", entity.CommissionPending, 5, mid)
	seedCommission(t, store, "c2", "s2", entity.CommissionCancelled, 99, mid)

	report, err := uc.SalesReport(context.Background(), testUser, start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count)
	assert.True(t, report.TotalSales.Equal(d(500)))
	assert.True(t, report.TotalCost.Equal(d(300)))
	assert.True(t, report.GrossProfit.Equal(d(200)))
	assert.True(t, report.TotalCommissions.Equal(d(5)), "las canceladas no son costo")
	assert.True(t, report.NetProfit.Equal(d(195)))

	require.Len(t, report.ByProduct, 1)
	line := report.ByProduct[0]
	assert.Equal(t, entity.ProductTypeCelular, line.ProductType)
	assert.True(t, line.Quantity.Equal(d(3)))
	assert.True(t, line.Profit.Equal(d(200)))
	assert.True(t, line.Commissions.Equal(d(5)))
	assert.True(t, line.NetProfit.Equal(d(195)))
}

func TestSalesReport_ServiciosPorFechaDeEntrega(t *testing.T) {
	uc, store := newUseCase()

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.Local)
	inRange := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.Local)
	outOfRange := time.Date(2026, time.April, 10, 10, 0, 0, 0, time.Local)

	mkService := func(id string, delivered time.Time) *entity.TechnicalService {
		svc := &entity.TechnicalService{
			ID:                   id,
			UserID:               testUser,
			Status:               entity.ServiceDelivered,
			LaborCost:            d(100),
			PartsCost:            d(40),
			TechnicianCommission: d(10),
			EntryDate:            delivered.AddDate(0, 0, -3),
			DeliveryDate:         &delivered,
			CreatedAt:            delivered,
			UpdatedAt:            delivered,
		}
		svc.CalculateTotal()
		return svc
	}
	require.NoError(t, store.Services().Create(mkService("sv1", inRange)))
	require.NoError(t, store.Services().Create(mkService("sv2", outOfRange)))

	report, err := uc.SalesReport(context.Background(), testUser, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Services.Count, "cuenta por fecha de entrega, no de ingreso")
	assert.True(t, report.Services.Revenue.Equal(d(140)))
	assert.True(t, report.Services.LaborRevenue.Equal(d(100)))
	assert.True(t, report.Services.PartsRevenue.Equal(d(40)), "sin precio al cliente se usa el costo")
	assert.True(t, report.Services.Commissions.Equal(d(10)))
	assert.True(t, report.Services.NetProfit.Equal(d(90)), "140 - 40 - 10")
	// Sin ventas: neto = aporte de servicios menos comisiones
	assert.True(t, report.NetProfit.Equal(d(90)))
}

func TestSummary_ValorDeInventarioYBalance(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, 10, 100)
	now := time.Now()

	seedSale(t, store, "s1", 2, 150, 100, now) // total 300

	// Una compra real y un ajuste sintético que no cuenta como egreso
	mkPurchase := func(id, supplier string, qty, cost int64) *entity.Purchase {
		p := &entity.Purchase{
			ID:           id,
			UserID:       testUser,
			ProductID:    testProduct,
			ProductName:  "iPhone 12",
			ProductType:  entity.ProductTypeCelular,
			Quantity:     decimal.NewFromInt(qty),
			UnitCost:     decimal.NewFromInt(cost),
			Supplier:     supplier,
			PurchaseDate: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		p.CalculateTotals()
		return p
	}
	require.NoError(t, store.Purchases().Create(mkPurchase("b1", "Distribuidora Norte", 10, 100)))
	require.NoError(t, store.Purchases().Create(mkPurchase("b2", entity.SupplierAdjustNegative, 3, 100)))

	seedCommission(t, store, "c1", "s1", entity.CommissionPaid, 5, now)
	seedCommission(t, store, "c2", "s1", entity.CommissionCancelled, 99, now)

	delivered := now
	svc := &entity.TechnicalService{
		ID:           "sv1",
		UserID:       testUser,
		Status:       entity.ServiceDelivered,
		LaborCost:    d(100),
		EntryDate:    now,
		DeliveryDate: &delivered,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	svc.CalculateTotal()
	require.NoError(t, store.Services().Create(svc))

	summary, err := uc.Summary(context.Background(), testUser)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ActiveProducts)
	assert.True(t, summary.InventoryValue.Equal(d(1000)), "10 unidades a costo 100")
	assert.True(t, summary.TotalSales.Equal(d(300)))
	assert.True(t, summary.GrossProfit.Equal(d(100)))
	assert.True(t, summary.TotalPurchases.Equal(d(1000)), "el ajuste sintético no suma")
	assert.True(t, summary.TotalCommissions.Equal(d(5)), "las canceladas no suman")
	assert.True(t, summary.ServicesRevenue.Equal(d(100)))
	// Balance = 300 + 100 - 1000 - 5
	assert.True(t, summary.Balance.Equal(d(-605)))
}
