package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// ReportHandler serves the dashboard and the audit trail.
type ReportHandler struct {
	reports ports.ReportService
	history ports.HistoryService
}

func NewReportHandler(reports ports.ReportService, history ports.HistoryService) *ReportHandler {
	return &ReportHandler{reports: reports, history: history}
}

// Dashboard returns the headline figures.
//
// @Summary      Dashboard
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  errorResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	stats, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Overdue lists clients with open payments past due.
//
// @Summary      Overdue clients
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.OverdueClient
// @Failure      401  {object}  errorResponse
// @Router       /api/inadimplentes [get]
func (h *ReportHandler) Overdue(c echo.Context) error {
	clients, err := h.reports.Overdue(c.Request().Context())
	if err != nil {
		return err
	}
	if clients == nil {
		clients = []*domain.OverdueClient{}
	}
	return c.JSON(http.StatusOK, clients)
}

// PaidThisMonth lists clients who paid during the current month.
//
// @Summary      Clients paid this month
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PaidClient
// @Failure      401  {object}  errorResponse
// @Router       /api/pagamentos/mes-atual [get]
func (h *ReportHandler) PaidThisMonth(c echo.Context) error {
	clients, err := h.reports.PaidThisMonth(c.Request().Context())
	if err != nil {
		return err
	}
	if clients == nil {
		clients = []*domain.PaidClient{}
	}
	return c.JSON(http.StatusOK, clients)
}

// History returns the most recent audit entries.
//
// @Summary      Audit trail
// @Tags         historico
// @Produce      json
// @Security     BearerAuth
// @Param        limite  query     int  false  "Maximum entries (default 50, max 500)"
// @Success      200     {array}   domain.HistoryEntry
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/historico [get]
func (h *ReportHandler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limite deve ser um número inteiro")
		}
		limit = n
	}

	entries, err := h.history.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
