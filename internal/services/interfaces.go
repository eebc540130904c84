package services

import (
	"time"

	"gorm.io/gorm"

	"fincontrol/internal/models"
	"fincontrol/internal/pagination"
)

// SessionServicer defines the contract for the single-operator session.
type SessionServicer interface {
	Login(username, password string) (*models.Session, error)
	Validate(token string, now time.Time) (*models.Session, error)
	Logout() error
}

// IncomeServicer defines the contract for income bookkeeping.
type IncomeServicer interface {
	Record(date, source string, amount float64, description string) (*models.IncomeEntry, error)
	TotalForMonth(month string) (float64, error)
	List(month string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error)
}

// AccountServicer defines the contract for accounts and sub-accounts.
type AccountServicer interface {
	CreateAccount(name string) (*models.Account, error)
	ListAccounts() ([]models.Account, error)
	CreateSubAccount(name string, accountID uint) (*models.SubAccount, error)
	ListSubAccounts() ([]models.SubAccount, error)
	GetSubAccountByID(id uint) (*models.SubAccount, error)
	DeleteSubAccount(id uint) error
	EnsureReserves() (*models.SubAccount, error)
}

// SubAccountBalance is one row of a month's balance sheet. Sub-accounts
// without an allocation for the month report zero initial and current.
type SubAccountBalance struct {
	SubAccountID uint    `json:"sub_account_id"`
	AccountName  string  `json:"account_name"`
	SubAccount   string  `json:"sub_account"`
	Initial      float64 `json:"initial"`
	Current      float64 `json:"current"`
}

// LedgerServicer defines the contract for allocations, expenses and transfers.
type LedgerServicer interface {
	AssignAllocation(month string, subAccountID uint, amount float64) (*models.MonthlyAllocation, error)
	RecordExpense(date string, amount float64, description string, subAccountID uint, month string) (*models.Expense, error)
	RecordTransfer(date string, originID, destinationID uint, amount float64, justification, month string) (*models.Transfer, error)
	RecordTransferTx(tx *gorm.DB, date string, originID, destinationID uint, amount float64, justification, month string) (*models.Transfer, error)
	MonthlyBalances(month string) ([]SubAccountBalance, error)
	ListExpenses(month string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	ListTransfers(month string, page pagination.PageRequest) (*pagination.PageResponse[models.Transfer], error)
}

// LoanSummary is a loan together with its accumulated early-settlement savings.
type LoanSummary struct {
	models.Loan
	Savings float64 `json:"savings"`
}

// LoanServicer defines the contract for loans and installments.
type LoanServicer interface {
	Register(institution, contract, loanType, firstMonth string, count int, amount float64) (*models.Loan, error)
	List() ([]LoanSummary, error)
	GetLoanByID(id uint) (*models.Loan, error)
	Installments(loanID uint) ([]models.Installment, error)
	Settle(installmentID uint, amount float64, date string) (*models.Installment, error)
	AutoSettleForMonth(tx *gorm.DB, month, incomeDate string) (int, error)
	Savings(loanID uint) (float64, error)
	Delete(loanID uint) error
}

// SweepServicer defines the contract for the month-close leftover sweep.
type SweepServicer interface {
	CloseOutMonth(now time.Time) (int, error)
}

// MonthlySummary aggregates a month's bookkeeping state for display and
// for the PDF report.
type MonthlySummary struct {
	MonthKey        string              `json:"month_key"`
	TotalIncome     float64             `json:"total_income"`
	TotalAllocated  float64             `json:"total_allocated"`
	TotalCurrent    float64             `json:"total_current"`
	ReservesBalance float64             `json:"reserves_balance"`
	Balances        []SubAccountBalance `json:"balances"`
	SettledLoans    []LoanSummary       `json:"settled_loans"`
}

// ReportServicer defines the contract for read-only reporting.
type ReportServicer interface {
	MonthlySummary(month string) (*MonthlySummary, error)
}
