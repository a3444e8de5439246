package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// @Summary Dashboard
// @Description Totals and the next three upcoming debts
// @Tags Reports
// @Produce json
// @Success 200 {object} services.Dashboard
// @Security BearerAuth
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	dashboard, err := h.reportService.Dashboard(c.Request.Context(), principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// @Summary Calendar
// @Description Days of a month with debts due, payments made or notes
// @Tags Reports
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /calendar [get]
func (h *ReportHandler) Calendar(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	month := c.DefaultQuery("month", time.Now().Format("2006-01"))

	days, err := h.reportService.Calendar(c.Request.Context(), principal, month)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "days": days})
}

// @Summary Reports
// @Description Totals, distribution by debt type and monthly paid vs due
// @Tags Reports
// @Produce json
// @Success 200 {object} services.Reports
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Reports(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	reports, err := h.reportService.Reports(c.Request.Context(), principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// @Summary Export Reports
// @Description Download the reports as CSV, XLSX or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	file, err := h.exportService.Export(c.Request.Context(), principal, c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
