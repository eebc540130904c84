package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/logger"
	"fincontrol/internal/models"
	"fincontrol/internal/monthkey"
	"fincontrol/internal/pagination"
)

// incomeService handles income entries. Recording income also triggers
// automatic settlement of loan installments due in the same month.
type incomeService struct {
	db          *gorm.DB
	loanService LoanServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, loanService LoanServicer) IncomeServicer {
	return &incomeService{db: db, loanService: loanService}
}

// Record inserts an income entry, deriving the month key from the date,
// and settles any open installments due in that month. The entry, the
// settlements, and their expense rows commit atomically.
func (s *incomeService) Record(date, source string, amount float64, description string) (*models.IncomeEntry, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source is required")
	}
	key, err := monthkey.FromDate(date)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date")
	}

	entry := &models.IncomeEntry{
		Date:        date,
		Source:      source,
		Amount:      amount,
		Description: description,
		MonthKey:    key.String(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		settled, err := s.loanService.AutoSettleForMonth(tx, entry.MonthKey, date)
		if err != nil {
			return err
		}
		if settled > 0 {
			logger.Get().Infow("auto-settled installments on income",
				"month", entry.MonthKey,
				"count", settled,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// TotalForMonth returns the sum of income amounts for a month, zero when
// there are none.
func (s *incomeService) TotalForMonth(month string) (float64, error) {
	if !monthkey.IsValid(month) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	var total float64
	err := s.db.Model(&models.IncomeEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("month_key = ?", month).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// List returns a month's income entries, newest first.
func (s *incomeService) List(month string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.IncomeEntry{}).Where("month_key = ?", month)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.IncomeEntry
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
