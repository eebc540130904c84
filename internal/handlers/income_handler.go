package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/pagination"
	"fincontrol/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// RecordIncomeRequest represents the request payload for recording income.
type RecordIncomeRequest struct {
	Date        string  `json:"date" binding:"required,date_br"`
	Source      string  `json:"source" binding:"required,min=1,max=100"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

// RecordIncome handles recording an income entry.
// @Summary     Record income
// @Description Record an income entry; due installments of the entry's month are settled automatically
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body RecordIncomeRequest true "Income details"
// @Success     201 {object} models.IncomeEntry "Income recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) RecordIncome(c *gin.Context) {
	var req RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.incomeService.Record(req.Date, req.Source, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income": entry})
}

// ListIncome handles listing income entries for a month.
// @Summary     List income
// @Description Get a paginated list of income entries for a month, with the month total
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       year      path  int true "Year (YYYY)"
// @Param       month     path  int true "Month (MM)"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.IncomeEntry] "Paginated income entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{year}/{month} [get]
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	month, err := parsePathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.incomeService.List(month, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.incomeService.TotalForMonth(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": result, "total": total})
}
