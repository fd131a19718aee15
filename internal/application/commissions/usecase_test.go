package commissions_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/commissions"
	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
)

const (
	testUser     = "00000000-0000-0000-0000-0000000000aa"
	testEmployee = "00000000-0000-0000-0000-0000000000cc"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase() (*commissions.UseCase, *memory.Store) {
	store := memory.NewStore()
	uc := commissions.NewUseCase(memory.NewTxRunner(store), store.Commissions(), store.Employees())
	return uc, store
}

// seedCommission carga una comisión en el estado indicado.
func seedCommission(t *testing.T, store *memory.Store, id, ctype, status string, amount int64, date time.Time) {
	t.Helper()
	c := &entity.Commission{
		ID:             id,
		UserID:         testUser,
		EmployeeID:     testEmployee,
		Type:           ctype,
		ReferenceID:    "ref-" + id,
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

func TestApprove_PendientePasaAAprobada(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 50, time.Now())

	out, err := uc.Approve(context.Background(), testUser, "c1")
	require.NoError(t, err)

	assert.Equal(t, entity.CommissionApproved, out.Status)
	require.NotNil(t, out.ApprovedDate)
}

func TestApprove_YaAprobadaEsIdempotente(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionApproved, 50, time.Now())

	out, err := uc.Approve(context.Background(), testUser, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionApproved, out.Status)
}

func TestApprove_CanceladaEsTransicionInvalida(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionCancelled, 50, time.Now())

	_, err := uc.Approve(context.Background(), testUser, "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApprove_ServicioSincronizaElTicket(t *testing.T) {
	uc, store := newUseCase()
	now := time.Now()
	seedCommission(t, store, "c1", entity.CommissionTypeService, entity.CommissionPending, 50, now)

	// El ticket de origen comparte el ReferenceID de la comisión
	require.NoError(t, store.Services().Create(&entity.TechnicalService{
		ID:        "ref-c1",
		UserID:    testUser,
		Status:    entity.ServiceDelivered,
		EntryDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	_, err := uc.Approve(context.Background(), testUser, "c1")
	require.NoError(t, err)

	svc, err := store.Services().GetByID(testUser, "ref-c1")
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.True(t, svc.CommissionApproved, "aprobar la comisión marca el ticket")
}

func TestPay_AprobadaPasaAPagadaConNotas(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionApproved, 50, time.Now())

	out, err := uc.Pay(context.Background(), testUser, "c1", dto.PayCommissionRequest{Notes: "efectivo"})
	require.NoError(t, err)

	assert.Equal(t, entity.CommissionPaid, out.Status)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "efectivo", out.Notes)
}

func TestPay_PendienteTambienSePuedePagar(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 50, time.Now())

	out, err := uc.Pay(context.Background(), testUser, "c1", dto.PayCommissionRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPaid, out.Status)
}

func TestPay_PagadaEsInmutable(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPaid, 50, time.Now())

	_, err := uc.Pay(context.Background(), testUser, "c1", dto.PayCommissionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestPay_NoExiste(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Pay(context.Background(), testUser, "inexistente", dto.PayCommissionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayBatch_OmiteLasNoElegibles(t *testing.T) {
	uc, store := newUseCase()
	now := time.Now()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 10, now)
	seedCommission(t, store, "c2", entity.CommissionTypeSale, entity.CommissionApproved, 20, now)
	seedCommission(t, store, "c3", entity.CommissionTypeSale, entity.CommissionPaid, 30, now)
	seedCommission(t, store, "c4", entity.CommissionTypeSale, entity.CommissionCancelled, 40, now)

	out, err := uc.PayBatch(context.Background(), testUser, dto.PayBatchRequest{
		CommissionIDs: []string{"c1", "c2", "c3", "c4", "no-existe"},
		Notes:         "quincena",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Paid, "solo pending y approved son pagables")

	c1, err := store.Commissions().GetByID(testUser, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPaid, c1.Status)
	assert.Equal(t, "quincena", c1.Notes)

	c4, err := store.Commissions().GetByID(testUser, "c4")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionCancelled, c4.Status, "las canceladas no cambian")
}

func TestPayBatch_SinIDs(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.PayBatch(context.Background(), testUser, dto.PayBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_PendientePasaACancelada(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 50, time.Now())

	out, err := uc.Cancel(context.Background(), testUser, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionCancelled, out.Status)
}

func TestCancel_PagadaNoSePuedeCancelar(t *testing.T) {
	uc, store := newUseCase()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPaid, 50, time.Now())

	_, err := uc.Cancel(context.Background(), testUser, "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestList_FiltraPorEstadoYSumaMontos(t *testing.T) {
	uc, store := newUseCase()
	now := time.Now()
	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 10, now)
	seedCommission(t, store, "c2", entity.CommissionTypeService, entity.CommissionPending, 20, now)
	seedCommission(t, store, "c3", entity.CommissionTypeSale, entity.CommissionPaid, 30, now)

	out, err := uc.List(context.Background(), testUser, repository.CommissionFilter{
		Status: entity.CommissionPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.TotalAmount.Equal(d(30)), "10 + 20 con tasa 100%")
}

func TestMonthlyReport_AgrupaPorTipoEstadoYEmpleado(t *testing.T) {
	uc, store := newUseCase()
	inMonth := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	outOfMonth := time.Date(2026, time.April, 2, 12, 0, 0, 0, time.Local)

	seedCommission(t, store, "c1", entity.CommissionTypeSale, entity.CommissionPending, 10, inMonth)
	seedCommission(t, store, "c2", entity.CommissionTypeService, entity.CommissionPaid, 20, inMonth)
	seedCommission(t, store, "c3", entity.CommissionTypeSale, entity.CommissionPending, 99, outOfMonth)

	report, err := uc.MonthlyReport(context.Background(), testUser, 2026, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count, "la de abril queda fuera")
	assert.True(t, report.TotalAmount.Equal(d(30)))
	assert.Equal(t, 1, report.ByType[entity.CommissionTypeSale].Count)
	assert.Equal(t, 1, report.ByType[entity.CommissionTypeService].Count)
	assert.True(t, report.ByStatus[entity.CommissionPaid].Amount.Equal(d(20)))
	require.Len(t, report.ByEmployee, 1)
	assert.True(t, report.ByEmployee[0].TotalAmount.Equal(d(30)))
}

func TestMonthlyReport_MesInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.MonthlyReport(context.Background(), testUser, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
