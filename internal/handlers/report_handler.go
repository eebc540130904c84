package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fincontrol/internal/report"
	"fincontrol/internal/services"
)

// ReportHandler handles dashboard and monthly report requests.
type ReportHandler struct {
	reportService services.ReportServicer
	sweepService  services.SweepServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, sweepService services.SweepServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, sweepService: sweepService}
}

// Dashboard handles the monthly dashboard view. Opening the dashboard is
// the moment a turned month gets closed out, so the sweep runs first.
// @Summary     Monthly dashboard
// @Description Get the month's summary; a finished month's leftovers are swept into reserves first
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       year  path int true "Year (YYYY)"
// @Param       month path int true "Month (MM)"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/{year}/{month} [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	month, err := parsePathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.sweepService.CloseOutMonth(time.Now()); err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.MonthlySummary(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// MonthlyReportPDF handles rendering the monthly report as a PDF.
// @Summary     Monthly report PDF
// @Description Render the month's closing report as a PDF document
// @Tags        reports
// @Accept      json
// @Produce     application/pdf
// @Security    SessionToken
// @Param       year  path int true "Year (YYYY)"
// @Param       month path int true "Month (MM)"
// @Success     200 {file} binary "PDF report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{year}/{month}/pdf [get]
func (h *ReportHandler) MonthlyReportPDF(c *gin.Context) {
	month, err := parsePathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.MonthlySummary(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pdf, err := report.MonthlyReport(summary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("relatorio-%s.pdf", strings.ReplaceAll(month, "/", "-"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
