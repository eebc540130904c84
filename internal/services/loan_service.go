package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/models"
	"fincontrol/internal/monthkey"
)

// loanService handles loans and their installment schedules.
type loanService struct {
	db *gorm.DB
}

// NewLoanService creates a new LoanServicer.
func NewLoanService(db *gorm.DB) LoanServicer {
	return &loanService{db: db}
}

// Register inserts a loan and generates its full installment schedule:
// count installments starting at firstMonth, rolling forward one calendar
// month at a time with year carry, all open at the per-installment amount.
func (s *loanService) Register(institution, contract, loanType, firstMonth string, count int, amount float64) (*models.Loan, error) {
	if institution == "" || contract == "" || loanType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "institution, contract and type are required")
	}
	if count < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installment count must be at least 1")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installment amount must be greater than zero")
	}
	first, err := monthkey.Parse(firstMonth)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid first installment month")
	}

	loan := &models.Loan{
		Institution:       institution,
		Contract:          contract,
		Type:              loanType,
		FirstInstallment:  first.String(),
		InstallmentCount:  count,
		InstallmentAmount: amount,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		installments := make([]models.Installment, count)
		for i := 0; i < count; i++ {
			installments[i] = models.Installment{
				LoanID:         loan.ID,
				MonthKey:       first.Add(i).String(),
				OriginalAmount: amount,
			}
		}
		if err := tx.Create(&installments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// List returns all loans with their accumulated early-settlement savings.
func (s *loanService) List() ([]LoanSummary, error) {
	var loans []models.Loan
	if err := s.db.Order("id").Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summaries := make([]LoanSummary, 0, len(loans))
	for _, loan := range loans {
		savings, err := s.Savings(loan.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, LoanSummary{Loan: loan, Savings: savings})
	}
	return summaries, nil
}

// GetLoanByID retrieves a loan by ID.
func (s *loanService) GetLoanByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

// Installments returns a loan's schedule in creation order.
func (s *loanService) Installments(loanID uint) ([]models.Installment, error) {
	if _, err := s.GetLoanByID(loanID); err != nil {
		return nil, err
	}

	var installments []models.Installment
	if err := s.db.Where("loan_id = ?", loanID).Order("id").Find(&installments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return installments, nil
}

// Settle marks an installment as paid. The transition is terminal: a
// settled installment cannot be settled again. The settled amount may be
// below the original (early settlement at a discount) or equal to it.
func (s *loanService) Settle(installmentID uint, amount float64, date string) (*models.Installment, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "settlement amount must be greater than zero")
	}
	if !monthkey.IsValidDate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid settlement date")
	}

	var installment models.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&installment, installmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInstallmentNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if installment.Settled() {
			return apperrors.ErrInstallmentSettled
		}

		installment.SettledAmount = &amount
		installment.SettledAt = &date
		if err := tx.Model(&installment).
			Updates(map[string]interface{}{"settled_amount": amount, "settled_at": date}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

// AutoSettleForMonth settles every open installment due in the given
// month at its full original amount, dated with the triggering income's
// date, and logs an untracked expense (nil sub-account) for each. It runs
// inside the income-recording transaction and returns how many
// installments were settled.
func (s *loanService) AutoSettleForMonth(tx *gorm.DB, month, incomeDate string) (int, error) {
	var due []models.Installment
	if err := tx.Where("month_key = ? AND settled_amount IS NULL", month).
		Order("id").
		Find(&due).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range due {
		installment := &due[i]

		if err := tx.Model(installment).
			Updates(map[string]interface{}{
				"settled_amount": installment.OriginalAmount,
				"settled_at":     incomeDate,
			}).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var loan models.Loan
		if err := tx.First(&loan, installment.LoanID).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		expense := &models.Expense{
			Date:        incomeDate,
			Amount:      installment.OriginalAmount,
			Description: fmt.Sprintf("Parcela empréstimo %s contrato %s", loan.Institution, loan.Contract),
			MonthKey:    month,
		}
		if err := tx.Create(expense).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return len(due), nil
}

// Savings returns the sum of (original - settled) over a loan's settled
// installments. Full settlements contribute zero; early settlements at a
// discount accumulate.
func (s *loanService) Savings(loanID uint) (float64, error) {
	var savings float64
	err := s.db.Model(&models.Installment{}).
		Select("COALESCE(SUM(original_amount - settled_amount), 0)").
		Where("loan_id = ? AND settled_amount IS NOT NULL", loanID).
		Scan(&savings).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return savings, nil
}

// Delete removes a loan and its installment schedule.
func (s *loanService) Delete(loanID uint) error {
	loan, err := s.GetLoanByID(loanID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", loanID).Delete(&models.Installment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(loan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
