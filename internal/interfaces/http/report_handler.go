package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/application/reports"
)

// ReportHandler maneja los reportes consolidados (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Reporte de ventas por período
// @Description  Consolida ventas por producto, servicios entregados y comisiones del período. Sin fechas cubre el mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	userID := GetUserID(c)
	start, end, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	// Por defecto el período es el mes en curso.
	now := time.Now()
	if start == nil {
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		start = &s
	}
	if end == nil {
		end = &now
	}
	out, err := h.uc.SalesReport(c.UserContext(), userID, *start, *end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen general del negocio
// @Description  Totales históricos de ventas, compras, servicios, comisiones y valor del inventario.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BusinessSummary
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.uc.Summary(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
