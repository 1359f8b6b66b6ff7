package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
	now           func() time.Time
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService, now: time.Now}
}

// period reads month and year from the query, defaulting to the current month
func (h *ReportHandler) period(c *gin.Context) (int, int, bool) {
	now := h.now()
	month, year := int(now.Month()), now.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			respondInvalid(c, "month", "bulan harus berupa angka")
			return 0, 0, false
		}
		month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondInvalid(c, "year", "tahun harus berupa angka")
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}

// @Summary Dashboard
// @Description Room cards with portfolio totals
// @Tags Reports
// @Produce json
// @Success 200 {object} models.Dashboard
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Dashboard(c.Request.Context()))
}

// @Summary Monthly Report
// @Description Bills of a billing period with totals
// @Tags Reports
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year (YYYY)"
// @Success 200 {object} models.MonthlyReport
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.reportService.Monthly(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Report Years
// @Description Years having readings, newest first
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string][]int
// @Security BearerAuth
// @Router /reports/years [get]
func (h *ReportHandler) Years(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"years": h.reportService.Years(c.Request.Context())})
}

// @Summary Export Monthly Report
// @Description Downloads the monthly report as CSV, XLSX or PDF
// @Tags Reports
// @Produce octet-stream
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year (YYYY)"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/monthly/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	data, filename, contentType, err := h.exportService.ExportMonthly(c.Request.Context(), month, year, c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
