package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/models"
	"fincontrol/internal/monthkey"
)

// reportService aggregates a month's state for the monthly report.
// Read-only; it never mutates the store.
type reportService struct {
	db            *gorm.DB
	incomeService IncomeServicer
	ledgerService LedgerServicer
	loanService   LoanServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, incomeService IncomeServicer, ledgerService LedgerServicer, loanService LoanServicer) ReportServicer {
	return &reportService{
		db:            db,
		incomeService: incomeService,
		ledgerService: ledgerService,
		loanService:   loanService,
	}
}

// MonthlySummary aggregates income, allocation balances, the reserves
// balance, and the loans with at least one installment settled in the
// month. Settlement-in-month is a suffix match of the settlement date
// against the month key ("15/01/2025" ends with "01/2025").
func (s *reportService) MonthlySummary(month string) (*MonthlySummary, error) {
	if !monthkey.IsValid(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	totalIncome, err := s.incomeService.TotalForMonth(month)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledgerService.MonthlyBalances(month)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		MonthKey:    month,
		TotalIncome: totalIncome,
		Balances:    balances,
	}
	for _, b := range balances {
		summary.TotalAllocated += b.Initial
		summary.TotalCurrent += b.Current
		if b.SubAccount == models.ReservesSubAccountName {
			summary.ReservesBalance = b.Current
		}
	}

	loans, err := s.loanService.List()
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		settled, err := s.settledInMonth(loan.ID, month)
		if err != nil {
			return nil, err
		}
		if settled {
			summary.SettledLoans = append(summary.SettledLoans, loan)
		}
	}

	return summary, nil
}

// settledInMonth reports whether any of the loan's installments was
// settled on a date inside the month.
func (s *reportService) settledInMonth(loanID uint, month string) (bool, error) {
	var installments []models.Installment
	if err := s.db.
		Where("loan_id = ? AND settled_amount IS NOT NULL AND settled_at IS NOT NULL", loanID).
		Find(&installments).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, installment := range installments {
		if strings.HasSuffix(*installment.SettledAt, month) {
			return true, nil
		}
	}
	return false, nil
}
