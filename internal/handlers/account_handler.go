package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/services"
)

// AccountHandler handles account and sub-account requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateSubAccountRequest represents the request payload for creating a sub-account.
type CreateSubAccountRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	AccountID uint   `json:"account_id" binding:"required"`
}

// CreateAccount handles the creation of a new account.
// @Summary     Create an account
// @Description Create an account; repeating a name returns the existing account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// ListAccounts handles listing all accounts.
// @Summary     List accounts
// @Description Get all accounts ordered by name
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Success     200 {object} map[string][]models.Account "Accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// CreateSubAccount handles the creation of a new sub-account.
// @Summary     Create a sub-account
// @Description Create a sub-account under an existing account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       request body CreateSubAccountRequest true "Sub-account details"
// @Success     201 {object} models.SubAccount "Sub-account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sub-accounts [post]
func (h *AccountHandler) CreateSubAccount(c *gin.Context) {
	var req CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.accountService.CreateSubAccount(req.Name, req.AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sub_account": sub})
}

// ListSubAccounts handles listing all sub-accounts.
// @Summary     List sub-accounts
// @Description Get all sub-accounts with their accounts, ordered by account and name
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Success     200 {object} map[string][]models.SubAccount "Sub-accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sub-accounts [get]
func (h *AccountHandler) ListSubAccounts(c *gin.Context) {
	subs, err := h.accountService.ListSubAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub_accounts": subs})
}

// DeleteSubAccount handles deleting a sub-account.
// @Summary     Delete sub-account
// @Description Delete a sub-account with zero balance and no transfer history
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Param       id path int true "Sub-account ID"
// @Success     200 {object} MessageResponse "Sub-account deleted"
// @Failure     400 {object} ErrorResponse "Invalid sub-account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     409 {object} ErrorResponse "Sub-account has a balance or transfer history"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sub-accounts/{id} [delete]
func (h *AccountHandler) DeleteSubAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteSubAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-account deleted successfully"})
}
