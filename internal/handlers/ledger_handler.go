package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/pagination"
	"fincontrol/internal/services"
)

// LedgerHandler handles allocation, expense, and transfer requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// AssignAllocationRequest represents the request payload for assigning budget.
type AssignAllocationRequest struct {
	Month        string  `json:"month" binding:"required,month_key"`
	SubAccountID uint    `json:"sub_account_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// RecordExpenseRequest represents the request payload for recording an expense.
type RecordExpenseRequest struct {
	Date         string  `json:"date" binding:"required,date_br"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Description  string  `json:"description" binding:"required,min=1,max=255"`
	SubAccountID uint    `json:"sub_account_id" binding:"required"`
	Month        string  `json:"month" binding:"required,month_key"`
}

// RecordTransferRequest represents the request payload for a transfer.
type RecordTransferRequest struct {
	Date          string  `json:"date" binding:"required,date_br"`
	OriginID      uint    `json:"origin_id" binding:"required"`
	DestinationID uint    `json:"destination_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Justification string  `json:"justification" binding:"required,min=1,max=255"`
	Month         string  `json:"month" binding:"required,month_key"`
}

// AssignAllocation handles assigning budget to a sub-account for a month.
// @Summary     Assign allocation
// @Description Assign budget to a sub-account for a month; repeating adds to the existing allocation
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body AssignAllocationRequest true "Allocation details"
// @Success     200 {object} models.MonthlyAllocation "Allocation after the assignment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations [post]
func (h *LedgerHandler) AssignAllocation(c *gin.Context) {
	var req AssignAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocation, err := h.ledgerService.AssignAllocation(req.Month, req.SubAccountID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// RecordExpense handles recording an expense against a sub-account.
// @Summary     Record expense
// @Description Record an expense; refused when the month's balance cannot cover it
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body RecordExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *LedgerHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.ledgerService.RecordExpense(req.Date, req.Amount, req.Description, req.SubAccountID, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses handles listing expenses for a month.
// @Summary     List expenses
// @Description Get a paginated list of a month's expenses, newest first
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       year      path  int true "Year (YYYY)"
// @Param       month     path  int true "Month (MM)"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{year}/{month} [get]
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
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

	result, err := h.ledgerService.ListExpenses(month, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordTransfer handles moving balance between sub-accounts.
// @Summary     Record transfer
// @Description Move balance between two sub-accounts within a month, with a justification
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body RecordTransferRequest true "Transfer details"
// @Success     201 {object} models.Transfer "Transfer recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transfers [post]
func (h *LedgerHandler) RecordTransfer(c *gin.Context) {
	var req RecordTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transfer, err := h.ledgerService.RecordTransfer(
		req.Date, req.OriginID, req.DestinationID, req.Amount, req.Justification, req.Month,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transfer": transfer})
}

// ListTransfers handles listing transfers for a month.
// @Summary     List transfers
// @Description Get a paginated list of a month's transfers, newest first
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       year      path  int true "Year (YYYY)"
// @Param       month     path  int true "Month (MM)"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Transfer] "Paginated transfers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transfers/{year}/{month} [get]
func (h *LedgerHandler) ListTransfers(c *gin.Context) {
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

	result, err := h.ledgerService.ListTransfers(month, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MonthlyBalances handles listing every sub-account's balance for a month.
// @Summary     Monthly balances
// @Description Get every sub-account's allocated and current balance for a month
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       year  path int true "Year (YYYY)"
// @Param       month path int true "Month (MM)"
// @Success     200 {object} map[string][]services.SubAccountBalance "Balances"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balances/{year}/{month} [get]
func (h *LedgerHandler) MonthlyBalances(c *gin.Context) {
	month, err := parsePathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balances, err := h.ledgerService.MonthlyBalances(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}
