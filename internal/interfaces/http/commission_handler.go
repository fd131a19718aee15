package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Camilo196/Vendly/internal/application/commissions"
	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// CommissionHandler maneja las peticiones HTTP para Commission (protegido).
type CommissionHandler struct {
	uc *commissions.UseCase
}

// NewCommissionHandler construye el handler.
func NewCommissionHandler(uc *commissions.UseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// List godoc
// @Summary      Listar comisiones
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Filtrar por empleado"
// @Param        status       query  string  false  "pending | approved | paid | cancelled"
// @Param        type         query  string  false  "sale | service"
// @Param        start_date   query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.CommissionListResponse
// @Router       /api/commissions [get]
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	start, end, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	filter := repository.CommissionFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		StartDate:  start,
		EndDate:    end,
	}
	out, err := h.uc.List(c.UserContext(), userID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comisión por ID
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commissions/{id} [get]
func (h *CommissionHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	out, err := h.uc.Get(c.UserContext(), userID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar comisión pendiente
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/commissions/{id}/approve [post]
func (h *CommissionHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	out, err := h.uc.Approve(c.UserContext(), userID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		if err == domain.ErrInvalidTransition {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "solo se pueden aprobar comisiones pendientes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Marcar comisión como pagada
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la comisión"
// @Param        body  body  dto.PayCommissionRequest  false  "Notas del pago"
// @Success      200   {object}  dto.CommissionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commissions/{id}/pay [post]
func (h *CommissionHandler) Pay(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	var in dto.PayCommissionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Pay(c.UserContext(), userID, id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		if err == domain.ErrInvalidTransition {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "la comisión no admite pago en su estado actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PayBatch godoc
// @Summary      Pagar comisiones en lote
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PayBatchRequest  true  "IDs de comisiones y notas"
// @Success      200   {object}  dto.PayBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/commissions/pay-batch [post]
func (h *CommissionHandler) PayBatch(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.PayBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.CommissionIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "commission_ids es requerido"})
	}
	out, err := h.uc.PayBatch(c.UserContext(), userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "commission_ids es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar comisión
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/commissions/{id}/cancel [post]
func (h *CommissionHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	out, err := h.uc.Cancel(c.UserContext(), userID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		if err == domain.ErrInvalidTransition {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "una comisión pagada no puede cancelarse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MonthlyReport godoc
// @Summary      Reporte mensual de comisiones
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (default: actual)"
// @Param        month  query  int  false  "Mes 1-12 (default: actual)"
// @Success      200  {object}  dto.MonthlyCommissionReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/commissions/reports/monthly [get]
func (h *CommissionHandler) MonthlyReport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe estar entre 1 y 12"})
	}
	out, err := h.uc.MonthlyReport(c.UserContext(), userID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
