package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/services"
)

// LoanHandler handles loan and installment requests.
type LoanHandler struct {
	loanService services.LoanServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService services.LoanServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RegisterLoanRequest represents the request payload for registering a loan.
type RegisterLoanRequest struct {
	Institution       string  `json:"institution" binding:"required,min=1,max=100"`
	Contract          string  `json:"contract" binding:"required,min=1,max=100"`
	Type              string  `json:"type" binding:"required,min=1,max=50"`
	FirstInstallment  string  `json:"first_installment" binding:"required,month_key"`
	InstallmentCount  int     `json:"installment_count" binding:"required,gt=0"`
	InstallmentAmount float64 `json:"installment_amount" binding:"required,gt=0"`
}

// SettleInstallmentRequest represents the request payload for settling an installment.
type SettleInstallmentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   string  `json:"date" binding:"required,date_br"`
}

// RegisterLoan handles registering a loan with its installment schedule.
// @Summary     Register a loan
// @Description Register a loan; one open installment per month is generated from the first installment month
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body RegisterLoanRequest true "Loan details"
// @Success     201 {object} models.Loan "Loan registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [post]
func (h *LoanHandler) RegisterLoan(c *gin.Context) {
	var req RegisterLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.Register(
		req.Institution, req.Contract, req.Type,
		req.FirstInstallment, req.InstallmentCount, req.InstallmentAmount,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// ListLoans handles listing all loans.
// @Summary     List loans
// @Description Get all loans with their accumulated early-settlement savings
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Success     200 {object} map[string][]services.LoanSummary "Loans"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loanService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loans": loans})
}

// GetLoan handles retrieving a specific loan.
// @Summary     Get loan by ID
// @Description Get a specific loan by ID
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       id path int true "Loan ID"
// @Success     200 {object} models.Loan "Loan details"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	loan, err := h.loanService.GetLoanByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// ListInstallments handles listing a loan's installments.
// @Summary     List installments
// @Description Get all installments of a loan in schedule order
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       id path int true "Loan ID"
// @Success     200 {object} map[string][]models.Installment "Installments"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/installments [get]
func (h *LoanHandler) ListInstallments(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	installments, err := h.loanService.Installments(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": installments})
}

// SettleInstallment handles settling an installment, possibly at a discount.
// @Summary     Settle installment
// @Description Settle an open installment for an amount, recording the settlement date
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       id      path int                      true "Installment ID"
// @Param       request body SettleInstallmentRequest true "Settlement details"
// @Success     200 {object} models.Installment "Settled installment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Failure     409 {object} ErrorResponse "Installment already settled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /installments/{id}/settle [post]
func (h *LoanHandler) SettleInstallment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettleInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := h.loanService.Settle(id, req.Amount, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment})
}

// DeleteLoan handles deleting a loan and its installments.
// @Summary     Delete loan
// @Description Delete a loan and all of its installments
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       id path int true "Loan ID"
// @Success     200 {object} MessageResponse "Loan deleted"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted successfully"})
}
