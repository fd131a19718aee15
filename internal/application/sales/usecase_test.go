package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/sales"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
	"github.com/Camilo196/Vendly/pkg/logger"
)

const (
	testUser     = "00000000-0000-0000-0000-0000000000aa"
	testProduct  = "00000000-0000-0000-0000-0000000000bb"
	testEmployee = "00000000-0000-0000-0000-0000000000cc"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase() (*sales.UseCase, *memory.Store) {
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := sales.NewUseCase(
		memory.NewTxRunner(store),
		store.Sales(), store.Products(), store.Employees(), store.Commissions(),
		log,
	)
	return uc, store
}

// seedProduct carga un producto con stock y costo promedio ya valuados.
func seedProduct(t *testing.T, store *memory.Store, productType string, stock, avgCost int64, rate *decimal.Decimal) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:             testProduct,
		UserID:         testUser,
		Name:           "iPhone 12",
		ProductType:    productType,
		CommissionRate: rate,
		Stock:          decimal.NewFromInt(stock),
		AverageCost:    decimal.NewFromInt(avgCost),
		ProfitMargin:   entity.DefaultProfitMargin,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}))
}

// seedEmployee carga un vendedor con comisiones de venta configurables.
func seedEmployee(t *testing.T, store *memory.Store, active, salesEnabled bool, salesRate int64) {
	t.Helper()
	now := time.Now()
	cfg := entity.DefaultCommissionConfig()
	cfg.SalesEnabled = salesEnabled
	cfg.SalesRate = decimal.NewFromInt(salesRate)
	require.NoError(t, store.Employees().Create(&entity.Employee{
		ID:               testEmployee,
		UserID:           testUser,
		Name:             "Laura Pérez",
		Position:         entity.PositionVendedor,
		CommissionConfig: cfg,
		IsActive:         active,
		HireDate:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}))
}

func countCommissions(t *testing.T, store *memory.Store) int {
	t.Helper()
	list, err := store.Commissions().List(testUser, repository.CommissionFilter{})
	require.NoError(t, err)
	return len(list)
}

func TestCreate_DescuentaStockYCalculaGanancia(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150),
	})
	require.NoError(t, err)

	assert.True(t, out.Sale.TotalSale.Equal(d(300)))
	assert.True(t, out.Sale.UnitCost.Equal(d(100)), "snapshot del costo promedio vigente")
	assert.True(t, out.Sale.Profit.Equal(d(100)), "(150-100)*2")
	assert.True(t, out.Product.Stock.Equal(d(8)))
	assert.True(t, out.Product.TotalSold.Equal(d(300)))
	assert.Nil(t, out.Commission, "sin vendedor no hay comisión")
	assert.Empty(t, out.CommissionWarning)
}

func TestCreate_SinCostoRegistrado(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 0, nil)

	_, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(1), UnitPrice: d(150),
	})
	assert.ErrorIs(t, err, domain.ErrNoRegisteredCost)
}

func TestCreate_StockInsuficiente(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 1, 100, nil)

	_, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La transacción fallida no debe dejar mutaciones
	p, err := store.Products().GetByID(testUser, testProduct)
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d(1)))
	assert.True(t, p.TotalSold.IsZero())
}

func TestCreate_GeneraComisionPendiente(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Commission)
	assert.Equal(t, entity.CommissionPending, out.Commission.Status)
	assert.Equal(t, entity.CommissionTypeSale, out.Commission.CommissionType)
	assert.Equal(t, out.Sale.ID, out.Commission.ReferenceID)
	assert.True(t, out.Commission.BaseAmount.Equal(d(100)), "la base es la ganancia")
	assert.True(t, out.Commission.Rate.Equal(d(5)))
	assert.True(t, out.Commission.Amount.Equal(d(5)), "100 * 5%")
	assert.Equal(t, 1, countCommissions(t, store))
}

func TestCreate_TasaDelProductoManda(t *testing.T) {
	uc, store := newUseCase()
	override := d(8)
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, &override)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Commission)
	assert.True(t, out.Commission.Rate.Equal(d(8)),
		"la tasa específica del producto pisa la del empleado")
	assert.True(t, out.Commission.Amount.Equal(d(8)))
}

func TestCreate_TasaCeroGeneraComisionDeMontoCero(t *testing.T) {
	uc, store := newUseCase()
	zero := d(0)
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, &zero)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)

	// La atribución queda registrada aunque no haya monto que pagar
	require.NotNil(t, out.Commission)
	assert.Equal(t, entity.CommissionPending, out.Commission.Status)
	assert.True(t, out.Commission.Rate.IsZero())
	assert.True(t, out.Commission.Amount.IsZero())
	assert.True(t, out.Commission.BaseAmount.Equal(d(100)))
}

func TestCreate_SinComisionParaAccesorio(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeAccesorio, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Commission, "solo los celulares generan comisión de venta")
	assert.Equal(t, 0, countCommissions(t, store))
}

func TestCreate_SinComisionSinGanancia(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee

	// Venta al costo: ganancia cero
	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(100), EmployeeID: &empID,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Commission)
}

func TestCreate_SinComisionVentasDeshabilitadas(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, false, 5)
	empID := testEmployee

	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Commission)
}

func TestCreate_EmpleadoInactivoNoComisiona(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, false, true, 5)
	empID := testEmployee

	// La venta se registra igual; solo se omite la comisión
	out, err := uc.Create(context.Background(), testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Commission)
	assert.True(t, out.Product.Stock.Equal(d(8)))
}

func TestUpdate_AjustaStockYRecreaComision(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)

	newQty := d(3)
	out, err := uc.Update(ctx, testUser, created.Sale.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	require.NoError(t, err)

	assert.True(t, out.Product.Stock.Equal(d(7)), "10 - 3")
	assert.True(t, out.Sale.Profit.Equal(d(150)), "(150-100)*3")
	require.NotNil(t, out.Commission)
	assert.True(t, out.Commission.Amount.Equal(decimal.RequireFromString("7.5")), "150 * 5%")
	assert.Equal(t, 1, countCommissions(t, store),
		"la comisión vieja se descarta al recrearla")
}

func TestUpdate_QuitarVendedorEliminaComision(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)
	require.Equal(t, 1, countCommissions(t, store))

	none := ""
	out, err := uc.Update(ctx, testUser, created.Sale.ID, dto.UpdateSaleRequest{EmployeeID: &none})
	require.NoError(t, err)
	assert.Nil(t, out.Commission)
	assert.Equal(t, 0, countCommissions(t, store))
}

func TestDelete_RestituyeStockYBorraComision(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	seedEmployee(t, store, true, true, 5)
	empID := testEmployee
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateSaleRequest{
		ProductID: testProduct, Quantity: d(2), UnitPrice: d(150), EmployeeID: &empID,
	})
	require.NoError(t, err)

	product, err := uc.Delete(ctx, testUser, created.Sale.ID)
	require.NoError(t, err)

	assert.True(t, product.Stock.Equal(d(10)))
	assert.True(t, product.TotalSold.IsZero())
	assert.Equal(t, 0, countCommissions(t, store))

	s, err := store.Sales().GetByID(testUser, created.Sale.ID)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestList_TotalesAgregados(t *testing.T) {
	uc, store := newUseCase()
	seedProduct(t, store, entity.ProductTypeCelular, 10, 100, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.Create(ctx, testUser, dto.CreateSaleRequest{
			ProductID: testProduct, Quantity: d(1), UnitPrice: d(150),
		})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, testUser, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.TotalSales.Equal(d(300)))
	assert.True(t, out.TotalProfit.Equal(d(100)))
}
