package purchases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/purchases"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
)

const testUser = "00000000-0000-0000-0000-0000000000aa"

func newUseCase() (*purchases.UseCase, *memory.Store) {
	store := memory.NewStore()
	uc := purchases.NewUseCase(memory.NewTxRunner(store), store.Purchases(), store.Products())
	return uc, store
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreate_SiembraProductoNuevo(t *testing.T) {
	uc, store := newUseCase()

	out, err := uc.Create(context.Background(), testUser, dto.CreatePurchaseRequest{
		ProductName: "iPhone 12",
		ProductType: entity.ProductTypeCelular,
		Quantity:    d(10),
		UnitCost:    d(100),
		Supplier:    "Distribuidora Norte",
	})
	require.NoError(t, err)

	assert.True(t, out.Purchase.TotalCost.Equal(d(1000)), "total de la compra")
	assert.True(t, out.Product.Stock.Equal(d(10)))
	assert.True(t, out.Product.AverageCost.Equal(d(100)))
	// Precio sugerido = costo * (1 + margen 30%)
	assert.True(t, out.Product.SuggestedPrice.Equal(d(130)),
		"precio sugerido debe salir del margen por defecto")
	assert.True(t, out.Product.ProfitMargin.Equal(d(30)))
	assert.Equal(t, entity.ProductTypeCelular, out.Product.ProductType)

	p, err := store.Products().GetByID(testUser, out.Product.ID)
	require.NoError(t, err)
	require.NotNil(t, p, "el producto debe quedar persistido")
	assert.True(t, p.TotalPurchased.Equal(d(1000)))
}

func TestCreate_PromedioPonderado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Samsung A54", ProductType: entity.ProductTypeCelular,
		Quantity: d(10), UnitCost: d(100),
	})
	require.NoError(t, err)

	// La segunda compra resuelve el mismo producto por nombre (case-insensitive)
	out, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "samsung a54", ProductType: entity.ProductTypeCelular,
		Quantity: d(10), UnitCost: d(200),
	})
	require.NoError(t, err)

	assert.True(t, out.Product.Stock.Equal(d(20)))
	assert.True(t, out.Product.AverageCost.Equal(d(150)),
		"promedio ponderado: (10*100 + 10*200) / 20")
	assert.True(t, out.Product.TotalPurchased.Equal(d(3000)))
}

func TestCreate_PrecioExplicitoManda(t *testing.T) {
	uc, _ := newUseCase()
	price := d(500)

	out, err := uc.Create(context.Background(), testUser, dto.CreatePurchaseRequest{
		ProductName: "Xiaomi Redmi", ProductType: entity.ProductTypeCelular,
		Quantity: d(5), UnitCost: d(100), SuggestedPrice: &price,
	})
	require.NoError(t, err)
	assert.True(t, out.Product.SuggestedPrice.Equal(d(500)),
		"el precio explícito no debe ser pisado por el recalculado")
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "", Quantity: d(1), UnitCost: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Cable USB", Quantity: d(0), UnitCost: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Cable USB", ProductType: "comestible", Quantity: d(1), UnitCost: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de producto no reconocido")
}

func TestUpdate_AjusteRetroactivo(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Motorola G84", ProductType: entity.ProductTypeCelular,
		Quantity: d(10), UnitCost: d(100),
	})
	require.NoError(t, err)

	// Corregir el costo rehace el aporte de la compra al promedio
	newCost := d(200)
	out, err := uc.Update(ctx, testUser, created.Purchase.ID, dto.UpdatePurchaseRequest{
		UnitCost: &newCost,
	})
	require.NoError(t, err)

	assert.True(t, out.Purchase.TotalCost.Equal(d(2000)))
	assert.True(t, out.Product.Stock.Equal(d(10)), "el stock no cambia si la cantidad no cambió")
	assert.True(t, out.Product.AverageCost.Equal(d(200)))
	assert.True(t, out.Product.TotalPurchased.Equal(d(2000)))
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _ := newUseCase()
	qty := d(5)
	_, err := uc.Update(context.Background(), testUser, "inexistente", dto.UpdatePurchaseRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RevierteAporte(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Honor X8", ProductType: entity.ProductTypeCelular,
		Quantity: d(10), UnitCost: d(100),
	})
	require.NoError(t, err)
	second, err := uc.Create(ctx, testUser, dto.CreatePurchaseRequest{
		ProductName: "Honor X8", ProductType: entity.ProductTypeCelular,
		Quantity: d(10), UnitCost: d(200),
	})
	require.NoError(t, err)

	product, err := uc.Delete(ctx, testUser, second.Purchase.ID)
	require.NoError(t, err)

	assert.True(t, product.Stock.Equal(d(10)))
	assert.True(t, product.TotalPurchased.Equal(d(1000)))
	// El costo promedio vigente se conserva; no se recalcula hacia atrás
	assert.True(t, product.AverageCost.Equal(d(150)))

	p, err := store.Purchases().GetByID(testUser, second.Purchase.ID)
	require.NoError(t, err)
	assert.Nil(t, p, "la compra eliminada no debe existir")
}

func TestCreate_OtroTenantNoVeLaCompra(t *testing.T) {
	uc, store := newUseCase()

	out, err := uc.Create(context.Background(), testUser, dto.CreatePurchaseRequest{
		ProductName: "Vidrio templado", ProductType: entity.ProductTypeAccesorio,
		Quantity: d(50), UnitCost: d(2),
	})
	require.NoError(t, err)

	p, err := store.Purchases().GetByID("otro-tenant", out.Purchase.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}
