package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/services"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
)

const (
	testUser       = "00000000-0000-0000-0000-0000000000aa"
	testProduct    = "00000000-0000-0000-0000-0000000000bb"
	testTechnician = "00000000-0000-0000-0000-0000000000cc"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase() (*services.UseCase, *memory.Store) {
	store := memory.NewStore()
	uc := services.NewUseCase(memory.NewTxRunner(store), store.Services(), store.Employees())
	return uc, store
}

// seedPart carga un repuesto con stock y costo promedio.
func seedPart(t *testing.T, store *memory.Store, stock, avgCost int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:          testProduct,
		UserID:      testUser,
		Name:        "Pantalla iPhone 12",
		ProductType: entity.ProductTypeAccesorio,
		Stock:       decimal.NewFromInt(stock),
		AverageCost: decimal.NewFromInt(avgCost),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

// seedTechnician carga un técnico con tarifa de servicios configurable.
func seedTechnician(t *testing.T, store *memory.Store, active, servicesEnabled bool, servicesRate int64) {
	t.Helper()
	now := time.Now()
	cfg := entity.DefaultCommissionConfig()
	cfg.ServicesEnabled = servicesEnabled
	cfg.ServicesRate = decimal.NewFromInt(servicesRate)
	require.NoError(t, store.Employees().Create(&entity.Employee{
		ID:               testTechnician,
		UserID:           testUser,
		Name:             "Carlos Gómez",
		Position:         entity.PositionTecnico,
		CommissionConfig: cfg,
		IsActive:         active,
		HireDate:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}))
}

func baseRequest() dto.CreateServiceRequest {
	return dto.CreateServiceRequest{
		Customer:           dto.ServiceCustomerDTO{Name: "Ana Torres", Phone: "555-1234"},
		Device:             dto.ServiceDeviceDTO{Type: "celular", Brand: "Samsung", Model: "A54"},
		ProblemDescription: "No enciende",
		LaborCost:          d(100),
	}
}

func TestCreate_ConsumeRepuestosConSnapshotDeCosto(t *testing.T) {
	uc, store := newUseCase()
	seedPart(t, store, 5, 40)

	req := baseRequest()
	req.PartsUsed = []dto.PartUsedInput{{ProductID: testProduct, Quantity: d(2)}}

	out, err := uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)

	assert.Equal(t, entity.ServicePending, out.Status)
	assert.Equal(t, entity.PriorityMedium, out.Priority, "prioridad por defecto")
	assert.True(t, out.PartsCost.Equal(d(80)), "2 * 40")
	// Sin precio de repuesto al cliente, el total usa el costo real
	assert.True(t, out.TotalCost.Equal(d(180)))
	require.Len(t, out.PartsUsed, 1)
	assert.True(t, out.PartsUsed[0].UnitCost.Equal(d(40)))

	p, err := store.Products().GetByID(testUser, testProduct)
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d(3)), "el stock baja 5 -> 3")
}

func TestCreate_PrecioDeRepuestoAlClienteManda(t *testing.T) {
	uc, store := newUseCase()
	seedPart(t, store, 5, 40)

	req := baseRequest()
	req.PartsPrice = d(120)
	req.PartsUsed = []dto.PartUsedInput{{ProductID: testProduct, Quantity: d(1)}}

	out, err := uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)
	assert.True(t, out.PartsCost.Equal(d(40)))
	assert.True(t, out.TotalCost.Equal(d(220)), "labor 100 + precio al cliente 120")
}

func TestCreate_HeredaTarifaDelTecnico(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 15)
	techID := testTechnician

	req := baseRequest()
	req.TechnicianID = &techID

	out, err := uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Gómez", out.Technician)
	assert.True(t, out.TechnicianCommissionRate.Equal(d(15)))
	assert.True(t, out.TechnicianCommission.Equal(d(15)), "100 * 15%")
}

func TestCreate_TarifaExplicitaPisaLaHeredada(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 15)
	techID := testTechnician
	rate := d(20)

	req := baseRequest()
	req.TechnicianID = &techID
	req.CommissionRate = &rate

	out, err := uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)
	assert.True(t, out.TechnicianCommissionRate.Equal(d(20)))
	assert.True(t, out.TechnicianCommission.Equal(d(20)))
}

func TestCreate_MontoDeComisionExplicito(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 10)
	techID := testTechnician
	manual := d(25)

	req := baseRequest()
	req.TechnicianID = &techID
	req.TechnicianCommission = &manual

	out, err := uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)
	assert.True(t, out.TechnicianCommissionRate.Equal(d(10)), "la tarifa heredada se conserva")
	assert.True(t, out.TechnicianCommission.Equal(d(25)), "el monto manual no se recalcula")
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	req := baseRequest()
	req.Customer.Name = ""
	_, err := uc.Create(ctx, testUser, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = baseRequest()
	req.ProblemDescription = ""
	_, err = uc.Create(ctx, testUser, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = baseRequest()
	req.Priority = "altísima"
	_, err = uc.Create(ctx, testUser, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = baseRequest()
	req.PartsUsed = []dto.PartUsedInput{{ProductID: testProduct, Quantity: d(0)}}
	_, err = uc.Create(ctx, testUser, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad de repuesto en cero")
}

func TestUpdateStatus_CompletadoFijaLaFechaUnaSolaVez(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, testUser, created.ID, dto.UpdateServiceStatusRequest{Status: entity.ServiceCompleted})
	require.NoError(t, err)
	require.NotNil(t, out.CompletionDate)
	first := *out.CompletionDate

	// Volver a in_progress y completar de nuevo no mueve la fecha
	_, err = uc.UpdateStatus(ctx, testUser, created.ID, dto.UpdateServiceStatusRequest{Status: entity.ServiceInProgress})
	require.NoError(t, err)
	out, err = uc.UpdateStatus(ctx, testUser, created.ID, dto.UpdateServiceStatusRequest{Status: entity.ServiceCompleted})
	require.NoError(t, err)
	assert.True(t, out.CompletionDate.Equal(first))
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.UpdateStatus(context.Background(), testUser, "x", dto.UpdateServiceStatusRequest{Status: "perdido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeliver_MaterializaLaComisionAprobada(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 10)
	techID := testTechnician
	ctx := context.Background()

	req := baseRequest()
	req.TechnicianID = &techID
	created, err := uc.Create(ctx, testUser, req)
	require.NoError(t, err)

	out, err := uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.ServiceDelivered, out.Status)
	require.NotNil(t, out.DeliveryDate)
	require.NotNil(t, out.CompletionDate)
	assert.True(t, out.CommissionApproved)
	require.NotNil(t, out.CommissionID)

	c, err := store.Commissions().GetByID(testUser, *out.CommissionID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, entity.CommissionApproved, c.Status)
	assert.Equal(t, entity.CommissionTypeService, c.Type)
	assert.Equal(t, created.ID, c.ReferenceID)
	assert.True(t, c.BaseAmount.Equal(d(100)), "la base es la mano de obra")
	assert.True(t, c.CommissionAmount.Equal(d(10)))
	assert.Contains(t, c.Description, "Samsung A54")
}

func TestDeliver_DosVecesEsError(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)

	_, err = uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)

	_, err = uc.Deliver(ctx, testUser, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)
}

func TestDeliver_ViaUpdateStatus(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 10)
	techID := testTechnician
	ctx := context.Background()

	req := baseRequest()
	req.TechnicianID = &techID
	created, err := uc.Create(ctx, testUser, req)
	require.NoError(t, err)

	// El cambio a delivered se enruta por el cierre financiero
	out, err := uc.UpdateStatus(ctx, testUser, created.ID, dto.UpdateServiceStatusRequest{Status: entity.ServiceDelivered})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceDelivered, out.Status)
	assert.NotNil(t, out.CommissionID)
}

func TestDeliver_EntregadoBloqueaOtrasTransiciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)
	_, err = uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, testUser, created.ID, dto.UpdateServiceStatusRequest{Status: entity.ServicePending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeliver_SinTecnicoNoHayComision(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)

	out, err := uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out.CommissionID)
	assert.True(t, out.CommissionApproved,
		"la entrega cierra el ciclo de comisión aunque no haya comisión")

	list, err := store.Commissions().List(testUser, repository.CommissionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeliver_ConfiguracionDeshabilitadaNoAnulaLaComision(t *testing.T) {
	uc, store := newUseCase()
	// Técnico sin comisiones de servicio habilitadas pero con tarifa pactada
	// explícitamente en el ticket
	seedTechnician(t, store, true, false, 10)
	techID := testTechnician
	rate := d(50)
	ctx := context.Background()

	req := baseRequest()
	req.TechnicianID = &techID
	req.CommissionRate = &rate
	created, err := uc.Create(ctx, testUser, req)
	require.NoError(t, err)

	out, err := uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CommissionID, "la tarifa pactada en el ticket devenga igual")

	c, err := store.Commissions().GetByID(testUser, *out.CommissionID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.CommissionAmount.Equal(d(50)), "100 * 50%")
}

func TestDeliver_TecnicoDadoDeBajaConservaLaComision(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 10)
	techID := testTechnician
	ctx := context.Background()

	req := baseRequest()
	req.TechnicianID = &techID
	created, err := uc.Create(ctx, testUser, req)
	require.NoError(t, err)

	// Baja del técnico después de asignado el ticket
	tech, err := store.Employees().GetByID(testUser, testTechnician)
	require.NoError(t, err)
	tech.IsActive = false
	require.NoError(t, store.Employees().Update(tech))

	out, err := uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CommissionID, "la comisión devengada sobrevive a la baja")

	c, err := store.Commissions().GetByID(testUser, *out.CommissionID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, testTechnician, c.EmployeeID)
	assert.True(t, c.CommissionAmount.Equal(d(10)))
}

func TestUpdate_CambiarTecnicoReHeredaTarifa(t *testing.T) {
	uc, store := newUseCase()
	seedTechnician(t, store, true, true, 15)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)
	assert.True(t, created.TechnicianCommissionRate.IsZero())

	techID := testTechnician
	out, err := uc.Update(ctx, testUser, created.ID, dto.UpdateServiceRequest{TechnicianID: &techID})
	require.NoError(t, err)
	assert.True(t, out.TechnicianCommissionRate.Equal(d(15)))
	assert.True(t, out.TechnicianCommission.Equal(d(15)), "se recalcula con la tarifa heredada")
}

func TestUpdate_MontoManualNoSeRecalcula(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)

	manual := d(33)
	out, err := uc.Update(ctx, testUser, created.ID, dto.UpdateServiceRequest{TechnicianCommission: &manual})
	require.NoError(t, err)
	assert.True(t, out.TechnicianCommission.Equal(d(33)))
}

func TestDelete_RestituyeRepuestosYCancelaComision(t *testing.T) {
	uc, store := newUseCase()
	seedPart(t, store, 5, 40)
	seedTechnician(t, store, true, true, 10)
	techID := testTechnician
	ctx := context.Background()

	req := baseRequest()
	req.TechnicianID = &techID
	req.PartsUsed = []dto.PartUsedInput{{ProductID: testProduct, Quantity: d(2)}}
	created, err := uc.Create(ctx, testUser, req)
	require.NoError(t, err)

	delivered, err := uc.Deliver(ctx, testUser, created.ID)
	require.NoError(t, err)
	require.NotNil(t, delivered.CommissionID)

	require.NoError(t, uc.Delete(ctx, testUser, created.ID))

	p, err := store.Products().GetByID(testUser, testProduct)
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d(5)), "los repuestos vuelven al inventario")

	c, err := store.Commissions().GetByID(testUser, *delivered.CommissionID)
	require.NoError(t, err)
	require.NotNil(t, c, "la comisión se conserva para auditoría")
	assert.Equal(t, entity.CommissionCancelled, c.Status)

	svc, err := store.Services().GetByID(testUser, created.ID)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestStatsSummary_SoloLoEntregadoSuma(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)
	_, err = uc.Deliver(ctx, testUser, first.ID)
	require.NoError(t, err)

	second, err := uc.Create(ctx, testUser, baseRequest())
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, testUser, second.ID, dto.UpdateServiceStatusRequest{Status: entity.ServiceCompleted})
	require.NoError(t, err)

	stats, err := uc.StatsSummary(ctx, testUser)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[entity.ServiceDelivered])
	assert.Equal(t, 1, stats.ByStatus[entity.ServiceCompleted])
	assert.Equal(t, 1, stats.PendingDelivery)
	assert.True(t, stats.Revenue.Equal(d(100)), "solo el entregado aporta ingresos")
	assert.True(t, stats.LaborRevenue.Equal(d(100)))
}
